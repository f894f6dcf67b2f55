package loopback

import (
	"errors"
	"sync"
	"sync/atomic"

	"vkdebug/internal/vk"
)

// ErrUnknownMessenger is returned when delivering to a messenger that does not exist.
var ErrUnknownMessenger = errors.New("loopback: unknown messenger")

// Calls counts native entry point invocations.
type Calls struct {
	Create  int
	Destroy int
}

// Instance is a software instance implementing vk.Context and vk.DebugUtilsFns.
type Instance struct {
	handle       vk.Instance
	extensions   map[string]struct{}
	createResult vk.Result

	mu   sync.Mutex
	next vk.DebugUtilsMessenger
	live map[vk.DebugUtilsMessenger]*registration

	creates  atomic.Int64
	destroys atomic.Int64
	refs     atomic.Int64
}

type registration struct {
	info vk.DebugUtilsMessengerCreateInfo
	// busy is read-held by every invocation; destroy write-locks it so it cannot
	// return while a callback is still running.
	busy sync.RWMutex
	dead bool
}

var instanceSeq atomic.Uintptr

// Option configures an Instance.
type Option func(*Instance)

// WithExtensions enables the named instance extensions.
func WithExtensions(names ...string) Option {
	return func(i *Instance) {
		for _, name := range names {
			i.extensions[name] = struct{}{}
		}
	}
}

// WithCreateResult makes every messenger create call fail with res.
func WithCreateResult(res vk.Result) Option {
	return func(i *Instance) {
		i.createResult = res
	}
}

// New returns an instance with no extensions enabled unless options say otherwise.
func New(opts ...Option) *Instance {
	i := &Instance{
		handle:     vk.Instance(instanceSeq.Add(1)),
		extensions: make(map[string]struct{}),
		live:       make(map[vk.DebugUtilsMessenger]*registration),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Handle implements vk.Context.
func (i *Instance) Handle() vk.Instance { return i.handle }

// ExtensionEnabled implements vk.Context.
func (i *Instance) ExtensionEnabled(name string) bool {
	_, ok := i.extensions[name]
	return ok
}

// DebugUtils implements vk.Context.
func (i *Instance) DebugUtils() vk.DebugUtilsFns { return i }

// Acquire implements vk.Context.
func (i *Instance) Acquire() func() {
	i.refs.Add(1)
	return sync.OnceFunc(func() { i.refs.Add(-1) })
}

// Refs returns the number of outstanding Acquire calls.
func (i *Instance) Refs() int64 { return i.refs.Load() }

// Calls returns how often the entry points were called.
func (i *Instance) Calls() Calls {
	return Calls{Create: int(i.creates.Load()), Destroy: int(i.destroys.Load())}
}

// Live returns the number of registered messengers.
func (i *Instance) Live() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.live)
}

// CreateDebugUtilsMessenger implements vk.DebugUtilsFns.
func (i *Instance) CreateDebugUtilsMessenger(instance vk.Instance, info *vk.DebugUtilsMessengerCreateInfo) (vk.DebugUtilsMessenger, vk.Result) {
	i.creates.Add(1)
	if i.createResult < 0 {
		return vk.NullMessenger, i.createResult
	}
	if instance != i.handle || info == nil || info.PfnUserCallback == nil {
		return vk.NullMessenger, vk.ErrorInitializationFailed
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.next++
	i.live[i.next] = &registration{info: *info}
	return i.next, vk.Success
}

// DestroyDebugUtilsMessenger implements vk.DebugUtilsFns. It blocks until in-flight
// callbacks of m have returned.
func (i *Instance) DestroyDebugUtilsMessenger(instance vk.Instance, m vk.DebugUtilsMessenger) {
	i.destroys.Add(1)
	if instance != i.handle {
		return
	}
	i.mu.Lock()
	reg, ok := i.live[m]
	delete(i.live, m)
	i.mu.Unlock()
	if !ok {
		return
	}
	reg.busy.Lock()
	reg.dead = true
	reg.busy.Unlock()
}

// Registration returns the create info m was registered with.
func (i *Instance) Registration(m vk.DebugUtilsMessenger) (vk.DebugUtilsMessengerCreateInfo, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	reg, ok := i.live[m]
	if !ok {
		return vk.DebugUtilsMessengerCreateInfo{}, false
	}
	return reg.info, true
}
