package sink

import (
	"io"
	"sync"

	"vkdebug/internal/record"
)

// Stream writes records immediately to an io.Writer.
type Stream struct {
	mu      sync.Mutex
	w       io.Writer
	format  Format
	palette palette
	err     error
}

// NewStream creates a Stream. Colors only apply to FormatText.
func NewStream(w io.Writer, format Format, colorize bool) *Stream {
	if format == FormatAuto {
		format = FormatText
	}
	return &Stream{
		w:       w,
		format:  format,
		palette: newPalette(colorize && format == FormatText),
	}
}

// Write renders r and writes it. The first write error is kept and reported by Flush.
func (s *Stream) Write(r *record.Record) {
	data := formatRecord(r, s.format, s.palette)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	if _, err := s.w.Write(data); err != nil {
		s.err = err
	}
}

// Flush reports the first write error and flushes the writer if it can.
func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if flusher, ok := s.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (s *Stream) Close() error {
	err := s.Flush()
	if closer, ok := s.w.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
