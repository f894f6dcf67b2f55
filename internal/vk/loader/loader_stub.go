//go:build !((darwin || linux) && (amd64 || arm64))

package loader

import "vkdebug/internal/vk"

// Library is unavailable on this platform.
type Library struct{}

// Open always fails with ErrUnsupported on this platform.
func Open(string) (*Library, error) {
	return nil, ErrUnsupported
}

// Close is a no-op.
func (*Library) Close() error { return nil }

// Context is unavailable on this platform.
type Context struct{}

// Attach always fails with ErrUnsupported on this platform.
func (*Library) Attach(vk.Instance, []string) (*Context, error) {
	return nil, ErrUnsupported
}

func (*Context) Handle() vk.Instance          { return 0 }
func (*Context) ExtensionEnabled(string) bool { return false }
func (*Context) DebugUtils() vk.DebugUtilsFns { return nil }
func (*Context) Acquire() func()              { return func() {} }
func (*Context) Refs() int64                  { return 0 }

// ErrInstanceInUse is returned by Destroy while subscriptions still reference the instance.
var ErrInstanceInUse = ErrUnsupported

// Instance is unavailable on this platform.
type Instance struct{ *Context }

// InstanceExtensions always fails with ErrUnsupported on this platform.
func (*Library) InstanceExtensions() ([]string, error) { return nil, ErrUnsupported }

// CreateInstance always fails with ErrUnsupported on this platform.
func (*Library) CreateInstance(string, []string, []string) (*Instance, error) {
	return nil, ErrUnsupported
}

func (*Instance) PhysicalDeviceCount() (int, error) { return 0, ErrUnsupported }
func (*Instance) Destroy() error                    { return nil }
