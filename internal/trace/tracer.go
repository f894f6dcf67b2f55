package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)
	// Flush ensures all buffered events are written.
	Flush() error
	// Close flushes and releases resources.
	Close() error
	// Level returns the current tracing level.
	Level() Level
}

// Enabled reports whether t emits anything at all.
func Enabled(t Tracer) bool {
	return t != nil && t.Level() > LevelOff
}

// StorageMode determines how events are stored.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // circular buffer, dumped on failure
	ModeBoth                          // stream + ring
)

func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	default:
		return ModeStream, fmt.Errorf("invalid trace mode: %q (expected: stream|ring|both)", s)
	}
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks from OutputPath
	Output     io.Writer // if nil, OutputPath is opened
	OutputPath string    // "-" or "" for stderr
	RingSize   int       // default 4096
}

// Result is what New built. Ring is nil unless the mode keeps one.
type Result struct {
	Tracer Tracer
	Ring   *Ring
}

// New creates a Tracer based on Config.
func New(cfg Config) (Result, error) {
	if cfg.Level == LevelOff {
		return Result{Tracer: Nop}, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") {
			format = FormatNDJSON
		}
	}

	switch cfg.Mode {
	case ModeStream, 0:
		w, err := openOutput(cfg)
		if err != nil {
			return Result{}, err
		}
		return Result{Tracer: NewStream(w, cfg.Level, format)}, nil

	case ModeRing:
		ring := NewRing(cfg.RingSize, cfg.Level)
		return Result{Tracer: ring, Ring: ring}, nil

	case ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return Result{}, err
		}
		ring := NewRing(cfg.RingSize, cfg.Level)
		return Result{Tracer: NewMulti(cfg.Level, NewStream(w, cfg.Level, format), ring), Ring: ring}, nil

	default:
		return Result{}, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return stderr{}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// stderr writes to os.Stderr but is never closed.
type stderr struct{}

func (stderr) Write(p []byte) (int, error) { return os.Stderr.Write(p) }
