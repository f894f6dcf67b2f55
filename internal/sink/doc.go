// Package sink consumes records produced by a messenger subscription.
//
// The messenger core never performs I/O; whatever a program does with a message
// happens in its callback. Handler adapts any Sink into such a callback, copying each
// message into an owned record.Record first.
//
// # Implementations
//
//   - Nop: discards everything
//   - Stream: writes each record to an io.Writer as text or NDJSON
//   - Ring: keeps the last N records in memory; in ring mode New writes them out on Close
//   - Multi: fans out to several sinks
//   - Counter: tallies records per severity
//
// Every Sink must be safe for concurrent use: callbacks arrive from any thread.
package sink
