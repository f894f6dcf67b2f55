package trace

import (
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 { return globalSpans.Add(1) }

// Span tracks one logical operation from Begin to End.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin starts a span and emits its begin event. parent is 0 for root spans.
// With tracing disabled the returned span is inert.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !Enabled(t) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:   t,
		id:       NextSpanID(),
		parentID: parent,
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	s.emit(KindSpanBegin, "", nil)
	return s
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || !Enabled(s.tracer) {
		return 0
	}
	dur := time.Since(s.started)
	s.WithExtra("dur", dur.Round(time.Microsecond).String())
	s.emit(KindSpanEnd, detail, s.extra)
	return dur
}

// Fail emits an error event inside the span. A nil err is ignored.
func (s *Span) Fail(err error) {
	if s == nil || err == nil || !Enabled(s.tracer) {
		return
	}
	s.emit(KindError, err.Error(), nil)
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || !Enabled(s.tracer) {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) emit(kind Kind, detail string, extra map[string]string) {
	if !s.tracer.Level().ShouldEmit(kind, s.scope) {
		return
	}
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Name:     s.name,
		Detail:   detail,
		Extra:    extra,
	})
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, parent uint64, name, detail string) {
	if !Enabled(t) || !t.Level().ShouldEmit(KindPoint, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
