package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff     Level = iota // no tracing
	LevelError                // failures only
	LevelCommand              // command spans
	LevelDetail               // subscription and replay spans
	LevelDebug                // everything including per-message events
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelCommand:
		return "command"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "command":
		return LevelCommand, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|command|detail|debug)", s)
	}
}

// ShouldEmit reports whether an event of the given kind and scope passes this level.
func (l Level) ShouldEmit(kind Kind, scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError:
		return kind == KindError
	case LevelCommand:
		return kind == KindError || scope <= ScopeCommand
	case LevelDetail:
		return kind == KindError || scope <= ScopeReplay
	default:
		return true
	}
}
