package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vkdebug/internal/record"
	"vkdebug/internal/sink"
)

// Kind is a capture file format.
type Kind uint8

const (
	KindVkcap Kind = iota + 1
	KindNDJSON
)

func (k Kind) String() string {
	switch k {
	case KindVkcap:
		return "vkcap"
	case KindNDJSON:
		return "ndjson"
	default:
		return "unknown"
	}
}

// KindOf picks the format from the file extension.
func KindOf(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vkcap":
		return KindVkcap, nil
	case ".ndjson", ".jsonl":
		return KindNDJSON, nil
	default:
		return 0, fmt.Errorf("unknown capture extension %q (expected .vkcap or .ndjson)", filepath.Ext(path))
	}
}

// RecordReader yields records until io.EOF.
type RecordReader interface {
	Next() (record.Record, error)
}

// Source is an open capture file.
type Source struct {
	RecordReader
	Kind Kind
	f    *os.File
}

// Close closes the underlying file.
func (s *Source) Close() error { return s.f.Close() }

// Open opens a capture file for reading.
func Open(path string) (*Source, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src := &Source{Kind: kind, f: f}
	switch kind {
	case KindVkcap:
		r, err := NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		src.RecordReader = r
	default:
		src.RecordReader = NewNDJSONReader(f)
	}
	return src, nil
}

// Create creates a capture file whose format follows the extension.
func Create(path string) (sink.Sink, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if kind == KindNDJSON {
		return sink.NewStream(f, sink.FormatNDJSON, false), nil
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

// ReadAll drains r.
func ReadAll(r RecordReader) ([]record.Record, error) {
	var out []record.Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Copy writes every record of r to s and returns how many were copied.
func Copy(s sink.Sink, r RecordReader) (int, error) {
	n := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return n, s.Flush()
		}
		if err != nil {
			return n, err
		}
		s.Write(&rec)
		n++
	}
}
