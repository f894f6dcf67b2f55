// Package messenger subscribes Go callbacks to native debug-utils messages.
//
// Validation layers, the loader and drivers report errors, warnings and chatter through
// a debug messenger: a single native function pointer plus one pointer-sized user-data
// value. This package hides that ABI behind a typed, lifetime-bound Subscription.
//
// # Usage
//
//	sub, err := messenger.New(instance,
//	    messenger.SeverityErrorsAndWarnings,
//	    messenger.CategoryGeneral|messenger.CategoryValidation,
//	    func(msg *messenger.Message) {
//	        log.Printf("%s: %s", msg.Severity, msg.Description)
//	    })
//	if err != nil {
//	    return err
//	}
//	defer sub.Close()
//
// # Filters
//
// Severity and Category are independent flag sets. Presets are constants and sets
// combine with Union (or |). Filters are registration parameters for the native side;
// the package itself does no filtering and delivers every event it is handed.
//
// # Callbacks
//
// The native side may call back from any thread, concurrently, at any time while the
// subscription is active. Callbacks must therefore be safe for concurrent use. A
// panicking callback is recovered at the native boundary and the event is dropped;
// later events are still delivered. runtime.Goexit is not recovered and must not be
// called from a callback. The package never logs.
//
// Message strings alias native memory and die with the callback. Call Message.Clone
// before retaining anything.
//
// # Lifetime
//
// A Subscription moves from unregistered to active on New and to deregistered on
// Close, or automatically once it is unreachable. Deregistration happens exactly once;
// afterwards stale invocations through the old user-data value are ignored.
package messenger
