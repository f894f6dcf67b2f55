// Package loopback is an in-process implementation of the debug-utils extension.
//
// It stands in for a driver: it keeps messenger registrations, builds event records in
// the native layout and calls registered callbacks the same way a loader would. Tests use
// it as the native double; the replay command uses it to feed captured events back
// through a real subscription.
package loopback
