package messenger

import (
	"runtime"
	"sync/atomic"

	"vkdebug/internal/vk"
)

// Callback receives messages for a subscription.
//
// It may be called from any goroutine or native thread, including concurrently with
// itself, so it must be safe for concurrent use. Panics are recovered and dropped.
// A callback must not call runtime.Goexit (t.FailNow, for one): recover cannot stop it,
// and the unwind would cross the native frames that invoked the callback.
type Callback func(msg *Message)

// State is the lifecycle position of a Subscription.
type State uint32

const (
	StateUnregistered State = iota
	StateActive
	StateDeregistered
)

func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateActive:
		return "active"
	case StateDeregistered:
		return "deregistered"
	default:
		return "unknown"
	}
}

// Subscription is a registered debug messenger. The callback is reachable from native
// code for as long as the Subscription is active.
//
// A Subscription that becomes unreachable is torn down automatically, so keep it alive
// for as long as messages are wanted.
type Subscription struct {
	reg     *registration
	cleanup runtime.Cleanup
}

// registration holds everything teardown needs. It must not point back to its
// Subscription, or the cleanup would keep the Subscription reachable forever.
type registration struct {
	state     atomic.Uint32
	ctx       vk.Context
	fns       vk.DebugUtilsFns
	instance  vk.Instance
	messenger vk.DebugUtilsMessenger
	handle    uintptr
	release   func()
}

// New registers fn for the messages selected by severity and category.
//
// The filters are handed to the native side; the callback receives whatever the native
// side delivers. A native failure is returned unchanged as a vk.Result.
func New(ctx vk.Context, severity Severity, category Category, fn Callback) (*Subscription, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if fn == nil {
		return nil, ErrNilCallback
	}
	if !ctx.ExtensionEnabled(vk.ExtDebugUtils) {
		return nil, &CapabilityError{Extension: vk.ExtDebugUtils}
	}

	reg := &registration{
		ctx:      ctx,
		fns:      ctx.DebugUtils(),
		instance: ctx.Handle(),
		handle:   callbacks.put(fn),
	}
	info := vk.DebugUtilsMessengerCreateInfo{
		MessageSeverity: severity.Native(),
		MessageType:     category.Native(),
		PfnUserCallback: trampoline,
		PUserData:       reg.handle,
	}

	reg.release = ctx.Acquire()
	if reg.release == nil {
		reg.release = func() {}
	}
	m, res := reg.fns.CreateDebugUtilsMessenger(reg.instance, &info)
	if err := res.Err(); err != nil {
		callbacks.release(reg.handle)
		reg.release()
		return nil, err
	}
	reg.messenger = m
	reg.state.Store(uint32(StateActive))

	s := &Subscription{reg: reg}
	s.cleanup = runtime.AddCleanup(s, func(r *registration) { r.teardown() }, reg)
	return s, nil
}

// ErrorsAndWarnings registers fn for general errors and warnings.
func ErrorsAndWarnings(ctx vk.Context, fn Callback) (*Subscription, error) {
	return New(ctx, SeverityErrorsAndWarnings, CategoryGeneral, fn)
}

// Close deregisters the messenger. Once it returns the callback is not invoked again.
// Closing twice returns ErrClosed.
func (s *Subscription) Close() error {
	if s == nil || s.reg == nil {
		return ErrClosed
	}
	s.cleanup.Stop()
	if !s.reg.teardown() {
		return ErrClosed
	}
	return nil
}

// State reports where s is in its lifecycle.
func (s *Subscription) State() State {
	if s == nil || s.reg == nil {
		return StateUnregistered
	}
	return State(s.reg.state.Load())
}

// Messenger returns the native handle, or vk.NullMessenger once deregistered.
func (s *Subscription) Messenger() vk.DebugUtilsMessenger {
	if s.State() != StateActive {
		return vk.NullMessenger
	}
	return s.reg.messenger
}

// teardown runs at most once per registration and reports whether this call did it.
func (r *registration) teardown() bool {
	if !r.state.CompareAndSwap(uint32(StateActive), uint32(StateDeregistered)) {
		return false
	}
	// Destroy waits for in-flight callbacks, so the handle can go right after.
	r.fns.DestroyDebugUtilsMessenger(r.instance, r.messenger)
	callbacks.release(r.handle)
	r.release()
	r.ctx = nil
	return true
}
