package sink

import (
	"sync"

	"vkdebug/internal/messenger"
	"vkdebug/internal/record"
)

type nopSink struct{}

func (nopSink) Write(*record.Record) {}
func (nopSink) Flush() error         { return nil }
func (nopSink) Close() error         { return nil }

// Nop discards every record.
var Nop Sink = nopSink{}

// Counter tallies records per severity flag.
type Counter struct {
	mu     sync.Mutex
	total  int
	counts map[messenger.Severity]int
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[messenger.Severity]int)}
}

// Write counts r once in total and once for every severity flag it carries.
func (c *Counter) Write(r *record.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	for _, s := range []messenger.Severity{
		messenger.SeverityError, messenger.SeverityWarning,
		messenger.SeverityInformation, messenger.SeverityVerbose,
	} {
		if r.Severity.Contains(s) {
			c.counts[s]++
		}
	}
}

// Total returns the number of records written.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Count returns how many records carried severity s.
func (c *Counter) Count(s messenger.Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[s]
}

func (c *Counter) Flush() error { return nil }
func (c *Counter) Close() error { return nil }
