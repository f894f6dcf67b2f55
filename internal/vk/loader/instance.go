//go:build (darwin || linux) && (amd64 || arm64)

package loader

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"fortio.org/safecast"
	"github.com/ebitengine/purego"

	"vkdebug/internal/vk"
)

// apiVersion11 is VK_API_VERSION_1_1.
const apiVersion11 = 1<<22 | 1<<12

type cApplicationInfo struct {
	sType              vk.StructureType
	pNext              uintptr
	pApplicationName   *byte
	applicationVersion uint32
	pEngineName        *byte
	engineVersion      uint32
	apiVersion         uint32
}

type cInstanceCreateInfo struct {
	sType                   vk.StructureType
	pNext                   uintptr
	flags                   uint32
	pApplicationInfo        *cApplicationInfo
	enabledLayerCount       uint32
	ppEnabledLayerNames     **byte
	enabledExtensionCount   uint32
	ppEnabledExtensionNames **byte
}

type cExtensionProperties struct {
	extensionName [256]byte
	specVersion   uint32
}

// ErrInstanceInUse is returned by Destroy while subscriptions still reference the instance.
var ErrInstanceInUse = errors.New("loader: instance still in use")

// Instance is an instance created by CreateInstance. It implements vk.Context.
type Instance struct {
	*Context

	mu        sync.Mutex
	destroyed bool
	destroy   func(instance uintptr, allocator uintptr)
	enumerate func(instance uintptr, count *uint32, devices uintptr) int32
}

func (l *Library) global(name string) (uintptr, error) {
	sym := l.getInstanceProcAddr(0, name)
	if sym == 0 {
		return 0, fmt.Errorf("loader: resolve %s: not exported", name)
	}
	return sym, nil
}

// InstanceExtensions lists the instance extensions the loader and its drivers offer.
func (l *Library) InstanceExtensions() ([]string, error) {
	sym, err := l.global("vkEnumerateInstanceExtensionProperties")
	if err != nil {
		return nil, err
	}
	var enumerate func(layer uintptr, count *uint32, props *cExtensionProperties) int32
	purego.RegisterFunc(&enumerate, sym)

	for {
		var count uint32
		if err := vk.Result(enumerate(0, &count, nil)).Err(); err != nil {
			return nil, fmt.Errorf("loader: vkEnumerateInstanceExtensionProperties: %w", err)
		}
		if count == 0 {
			return nil, nil
		}
		props := make([]cExtensionProperties, count)
		res := vk.Result(enumerate(0, &count, &props[0]))
		if res == vk.Incomplete {
			continue
		}
		if err := res.Err(); err != nil {
			return nil, fmt.Errorf("loader: vkEnumerateInstanceExtensionProperties: %w", err)
		}
		names := make([]string, 0, count)
		for i := range props[:count] {
			name, _ := vk.GoStringView(&props[i].extensionName[0])
			names = append(names, strings.Clone(name))
		}
		return names, nil
	}
}

// CreateInstance creates an instance with the given layers and extensions enabled.
func (l *Library) CreateInstance(appName string, layers, extensions []string) (*Instance, error) {
	sym, err := l.global("vkCreateInstance")
	if err != nil {
		return nil, err
	}
	var create func(info *cInstanceCreateInfo, allocator uintptr, out *uintptr) int32
	purego.RegisterFunc(&create, sym)

	var pin runtime.Pinner
	defer pin.Unpin()

	app := &cApplicationInfo{
		sType:            vk.StructureTypeApplicationInfo,
		pApplicationName: pinnedString(&pin, appName),
		pEngineName:      pinnedString(&pin, "vkdebug"),
		apiVersion:       apiVersion11,
	}
	pin.Pin(app)
	info := &cInstanceCreateInfo{
		sType:            vk.StructureTypeInstanceCreateInfo,
		pApplicationInfo: app,
	}
	if info.enabledLayerCount, info.ppEnabledLayerNames, err = pinnedStrings(&pin, layers); err != nil {
		return nil, err
	}
	if info.enabledExtensionCount, info.ppEnabledExtensionNames, err = pinnedStrings(&pin, extensions); err != nil {
		return nil, err
	}

	var handle uintptr
	if err := vk.Result(create(info, 0, &handle)).Err(); err != nil {
		return nil, fmt.Errorf("loader: vkCreateInstance: %w", err)
	}

	inst := &Instance{}
	lookup := func(name string) uintptr { return l.getInstanceProcAddr(handle, name) }
	destroy, enumerate, err := instanceEntryPoints(handle, lookup, callDestroy)
	if err != nil {
		return nil, err
	}
	purego.RegisterFunc(&inst.destroy, destroy)
	purego.RegisterFunc(&inst.enumerate, enumerate)

	ctx, err := l.Attach(vk.Instance(handle), extensions)
	if err != nil {
		inst.destroy(handle, 0)
		return nil, err
	}
	inst.Context = ctx
	return inst, nil
}

// instanceEntryPoints resolves the functions an Instance calls. When one is missing the
// instance is destroyed through vkDestroyInstance, if that resolved.
func instanceEntryPoints(handle uintptr, lookup func(name string) uintptr, destroyWith func(sym, handle uintptr)) (destroy, enumerate uintptr, err error) {
	destroy = lookup("vkDestroyInstance")
	enumerate = lookup("vkEnumeratePhysicalDevices")
	if destroy != 0 && enumerate != 0 {
		return destroy, enumerate, nil
	}
	if destroy != 0 {
		destroyWith(destroy, handle)
	}
	return 0, 0, fmt.Errorf("loader: resolve instance entry points: %w", vk.ErrorInitializationFailed)
}

func callDestroy(sym, handle uintptr) {
	var destroy func(instance uintptr, allocator uintptr)
	purego.RegisterFunc(&destroy, sym)
	destroy(handle, 0)
}

// PhysicalDeviceCount asks the instance how many physical devices it can see.
func (i *Instance) PhysicalDeviceCount() (int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return 0, ErrNullInstance
	}
	var count uint32
	if err := vk.Result(i.enumerate(uintptr(i.instance), &count, 0)).Err(); err != nil {
		return 0, fmt.Errorf("loader: vkEnumeratePhysicalDevices: %w", err)
	}
	return int(count), nil
}

// Destroy destroys the instance. It fails while subscriptions hold a reference.
func (i *Instance) Destroy() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return nil
	}
	if n := i.Refs(); n != 0 {
		return fmt.Errorf("%w: %d subscriptions", ErrInstanceInUse, n)
	}
	i.destroy(uintptr(i.instance), 0)
	i.destroyed = true
	return nil
}

func pinnedString(pin *runtime.Pinner, s string) *byte {
	p := vk.CStringPtr(s)
	pin.Pin(p)
	return p
}

func pinnedStrings(pin *runtime.Pinner, list []string) (uint32, **byte, error) {
	n, err := safecast.Conv[uint32](len(list))
	if err != nil {
		return 0, nil, err
	}
	if n == 0 {
		return 0, nil, nil
	}
	ptrs := make([]*byte, len(list))
	for i, s := range list {
		ptrs[i] = pinnedString(pin, s)
	}
	pin.Pin(&ptrs[0])
	return n, &ptrs[0], nil
}
