// Package trace records what vkdebug itself is doing.
//
// It is the tool's own log: command boundaries, subscription lifecycle, replay progress.
// Debug messages from the graphics stack never go through it; those are records and
// travel through package sink.
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: failures only
//   - LevelCommand: command spans
//   - LevelDetail: subscription and replay spans
//   - LevelDebug: one event per submitted message
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeReplay, "replay", 0)
//	defer span.End("")
package trace
