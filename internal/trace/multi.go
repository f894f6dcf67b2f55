package trace

// Multi fans out trace events to several tracers.
type Multi struct {
	tracers []Tracer
	level   Level
}

func NewMulti(level Level, tracers ...Tracer) *Multi {
	return &Multi{tracers: tracers, level: level}
}

// Emit sends a copy of the event to every tracer, since tracers stamp Seq.
func (t *Multi) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

// Flush flushes all tracers and returns the first error.
func (t *Multi) Flush() error {
	var firstErr error
	for _, tr := range t.tracers {
		if err := tr.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes all tracers and returns the first error.
func (t *Multi) Close() error {
	var firstErr error
	for _, tr := range t.tracers {
		if err := tr.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *Multi) Level() Level { return t.level }
