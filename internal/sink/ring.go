package sink

import (
	"io"
	"sync"

	"vkdebug/internal/record"
)

// Ring keeps the last N records in memory (circular buffer).
type Ring struct {
	mu       sync.RWMutex
	records  []record.Record
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
}

// NewRing creates a Ring with the given capacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Ring{
		records:  make([]record.Record, capacity),
		capacity: capacity,
	}
}

// Write stores a copy of r, evicting the oldest record when full.
func (t *Ring) Write(r *record.Record) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records[t.head] = *r
	t.head = (t.head + 1) % t.capacity
	if t.head == 0 {
		t.full = true
	}
}

// Len returns the number of stored records.
func (t *Ring) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.full {
		return t.capacity
	}
	return t.head
}

// Snapshot returns a copy of all stored records in arrival order.
func (t *Ring) Snapshot() []record.Record {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		result := make([]record.Record, t.head)
		copy(result, t.records[:t.head])
		return result
	}
	result := make([]record.Record, t.capacity)
	copy(result, t.records[t.head:])
	copy(result[t.capacity-t.head:], t.records[:t.head])
	return result
}

// Dump writes all stored records to w in the given format, without color.
func (t *Ring) Dump(w io.Writer, format Format) error {
	return t.dump(w, format, newPalette(false))
}

func (t *Ring) dump(w io.Writer, format Format, p palette) error {
	for _, r := range t.Snapshot() {
		if _, err := w.Write(formatRecord(&r, format, p)); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op for Ring.
func (t *Ring) Flush() error { return nil }

// Close is a no-op for Ring.
func (t *Ring) Close() error { return nil }

// tail keeps the last records and writes them to w when closed.
type tail struct {
	*Ring
	w      io.Writer
	format Format
	p      palette
}

func (t *tail) Close() error {
	err := t.Ring.dump(t.w, t.format, t.p)
	if closer, ok := t.w.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
