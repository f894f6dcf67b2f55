//go:build (darwin || linux) && (amd64 || arm64)

package loader

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/purego"

	"vkdebug/internal/vk"
)

// cCreateInfo has the layout of VkDebugUtilsMessengerCreateInfoEXT.
type cCreateInfo struct {
	sType           vk.StructureType
	pNext           uintptr
	flags           uint32
	messageSeverity vk.DebugUtilsMessageSeverityFlags
	messageType     vk.DebugUtilsMessageTypeFlags
	pfnUserCallback uintptr
	pUserData       uintptr
}

var (
	entryOnce sync.Once
	entry     uintptr
)

// entryPoint returns the C-callable address of dispatch. purego callbacks are never
// freed, so exactly one is created per process.
func entryPoint() uintptr {
	entryOnce.Do(func() {
		entry = purego.NewCallback(dispatch)
	})
	return entry
}

func defaultLibrary() string {
	if runtime.GOOS == "darwin" {
		return "libvulkan.1.dylib"
	}
	return "libvulkan.so.1"
}

// Library is an opened Vulkan loader.
type Library struct {
	handle              uintptr
	getInstanceProcAddr func(instance uintptr, name string) uintptr
}

// Open loads the Vulkan loader from path, or from the platform default when path is empty.
func Open(path string) (*Library, error) {
	if path == "" {
		path = defaultLibrary()
	}
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	sym, err := purego.Dlsym(h, "vkGetInstanceProcAddr")
	if err != nil {
		_ = purego.Dlclose(h)
		return nil, fmt.Errorf("loader: resolve vkGetInstanceProcAddr: %w", err)
	}
	lib := &Library{handle: h}
	purego.RegisterFunc(&lib.getInstanceProcAddr, sym)
	return lib, nil
}

// Close unloads the library. Contexts attached through it must be unused by then.
func (l *Library) Close() error {
	return purego.Dlclose(l.handle)
}

// Context is a host-created instance seen through the loader.
type Context struct {
	instance   vk.Instance
	extensions map[string]struct{}
	fns        vk.DebugUtilsFns
	refs       atomic.Int64
}

// Attach wraps instance, which the host created with the given extensions enabled.
func (l *Library) Attach(instance vk.Instance, extensions []string) (*Context, error) {
	if instance == 0 {
		return nil, ErrNullInstance
	}
	ctx := &Context{
		instance:   instance,
		extensions: make(map[string]struct{}, len(extensions)),
		fns:        unavailableFns{},
	}
	for _, name := range extensions {
		ctx.extensions[name] = struct{}{}
	}
	if !ctx.ExtensionEnabled(vk.ExtDebugUtils) {
		return ctx, nil
	}

	create := l.getInstanceProcAddr(uintptr(instance), "vkCreateDebugUtilsMessengerEXT")
	destroy := l.getInstanceProcAddr(uintptr(instance), "vkDestroyDebugUtilsMessengerEXT")
	if create == 0 || destroy == 0 {
		return nil, fmt.Errorf("loader: resolve debug utils entry points: %w", vk.ErrorExtensionNotPresent)
	}
	fns := &debugUtilsFns{slotOf: make(map[vk.DebugUtilsMessenger]uintptr)}
	purego.RegisterFunc(&fns.create, create)
	purego.RegisterFunc(&fns.destroy, destroy)
	ctx.fns = fns
	return ctx, nil
}

// Handle implements vk.Context.
func (c *Context) Handle() vk.Instance { return c.instance }

// ExtensionEnabled implements vk.Context.
func (c *Context) ExtensionEnabled(name string) bool {
	_, ok := c.extensions[name]
	return ok
}

// DebugUtils implements vk.Context.
func (c *Context) DebugUtils() vk.DebugUtilsFns { return c.fns }

// Acquire implements vk.Context. The host must not destroy the instance while Refs is
// non-zero.
func (c *Context) Acquire() func() {
	c.refs.Add(1)
	return sync.OnceFunc(func() { c.refs.Add(-1) })
}

// Refs returns the number of outstanding Acquire calls.
func (c *Context) Refs() int64 { return c.refs.Load() }

type debugUtilsFns struct {
	create  func(instance uintptr, info *cCreateInfo, allocator uintptr, out *uint64) int32
	destroy func(instance uintptr, messenger uint64, allocator uintptr)

	mu     sync.Mutex
	slotOf map[vk.DebugUtilsMessenger]uintptr
}

func (f *debugUtilsFns) CreateDebugUtilsMessenger(instance vk.Instance, info *vk.DebugUtilsMessengerCreateInfo) (vk.DebugUtilsMessenger, vk.Result) {
	key := slots.put(info.PfnUserCallback, info.PUserData)
	c := cCreateInfo{
		sType:           vk.StructureTypeDebugUtilsMessengerCreateInfo,
		flags:           info.Flags,
		messageSeverity: info.MessageSeverity,
		messageType:     info.MessageType,
		pfnUserCallback: entryPoint(),
		pUserData:       key,
	}
	var out uint64
	res := vk.Result(f.create(uintptr(instance), &c, 0, &out))
	if res < 0 {
		slots.release(key)
		return vk.NullMessenger, res
	}
	m := vk.DebugUtilsMessenger(out)
	f.mu.Lock()
	f.slotOf[m] = key
	f.mu.Unlock()
	return m, res
}

func (f *debugUtilsFns) DestroyDebugUtilsMessenger(instance vk.Instance, m vk.DebugUtilsMessenger) {
	f.destroy(uintptr(instance), uint64(m), 0)
	f.mu.Lock()
	key, ok := f.slotOf[m]
	delete(f.slotOf, m)
	f.mu.Unlock()
	if ok {
		slots.release(key)
	}
}

type unavailableFns struct{}

func (unavailableFns) CreateDebugUtilsMessenger(vk.Instance, *vk.DebugUtilsMessengerCreateInfo) (vk.DebugUtilsMessenger, vk.Result) {
	return vk.NullMessenger, vk.ErrorExtensionNotPresent
}

func (unavailableFns) DestroyDebugUtilsMessenger(vk.Instance, vk.DebugUtilsMessenger) {}
