package sink

import "vkdebug/internal/record"

// Multi fans records out to several sinks.
type Multi struct {
	sinks []Sink
}

// NewMulti creates a Multi writing to every sink in order.
func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Write sends r to all underlying sinks.
func (m *Multi) Write(r *record.Record) {
	for _, s := range m.sinks {
		s.Write(r)
	}
}

// Flush flushes all underlying sinks and returns the first error.
func (m *Multi) Flush() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes all underlying sinks and returns the first error.
func (m *Multi) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
