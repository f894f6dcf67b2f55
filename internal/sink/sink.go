package sink

import (
	"fmt"
	"io"
	"os"
	"strings"

	"vkdebug/internal/messenger"
	"vkdebug/internal/record"
)

// Sink receives records. Write must be goroutine-safe.
type Sink interface {
	// Write stores or forwards a record.
	Write(r *record.Record)
	// Flush ensures written records reached their destination.
	Flush() error
	// Close flushes and releases resources.
	Close() error
}

// Handler adapts s into a subscription callback.
func Handler(s Sink) messenger.Callback {
	return func(msg *messenger.Message) {
		r := record.FromMessage(msg)
		s.Write(&r)
	}
}

// StorageMode determines how records are kept.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // last RingSize records, written on Close
	ModeBoth                          // stream + ring kept for a failure dump
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
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	default:
		return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
	}
}

// Config holds sink configuration.
type Config struct {
	Mode       StorageMode
	Format     Format    // FormatAuto picks from OutputPath
	Color      bool      // colorize text output
	Output     io.Writer // for stream mode (if nil, use OutputPath)
	OutputPath string    // file path, "-" or "" for stdout
	RingSize   int       // for ring and both modes (default 1024)
}

// Built is the result of New. Ring is nil unless the mode keeps one.
type Built struct {
	Sink Sink
	Ring *Ring
}

// New creates a Sink based on Config.
func New(cfg Config) (Built, error) {
	if cfg.RingSize <= 0 {
		cfg.RingSize = 1024
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	switch cfg.Mode {
	case ModeStream, 0:
		w, err := openOutput(cfg)
		if err != nil {
			return Built{}, err
		}
		return Built{Sink: NewStream(w, format, cfg.Color)}, nil

	case ModeRing:
		w, err := openOutput(cfg)
		if err != nil {
			return Built{}, err
		}
		ring := NewRing(cfg.RingSize)
		return Built{Sink: &tail{Ring: ring, w: w, format: format, p: newPalette(cfg.Color)}, Ring: ring}, nil

	case ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return Built{}, err
		}
		ring := NewRing(cfg.RingSize)
		return Built{Sink: NewMulti(NewStream(w, format, cfg.Color), ring), Ring: ring}, nil

	default:
		return Built{}, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}

// openOutput opens the output writer from config.
func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open output: %w", err)
	}
	return f, nil
}

// nopCloser keeps Close from closing stdout.
type nopCloser struct{ io.Writer }
