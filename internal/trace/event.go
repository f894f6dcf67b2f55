package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
	KindError                     // failure, emitted at every level but off
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event.
// Lower values are coarser.
type Scope uint8

const (
	ScopeCommand      Scope = iota + 1 // one CLI command
	ScopeSubscription                  // messenger registration and teardown
	ScopeReplay                        // replay workers
	ScopeMessage                       // a single submitted message
)

func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeSubscription:
		return "subscription"
	case ScopeReplay:
		return "replay"
	case ScopeMessage:
		return "message"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer that stores it
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	Name     string // e.g. "replay", "subscribe"
	Detail   string
	Extra    map[string]string
}
