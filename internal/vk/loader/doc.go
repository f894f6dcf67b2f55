// Package loader binds the system Vulkan loader at run time, without cgo.
//
// Instance creation is the host application's job. Attach wraps an instance the host
// already created and returns a vk.Context whose debug-utils entry points are resolved
// through vkGetInstanceProcAddr. Native code calls back into Go through one process-wide
// entry point created with purego; the user-data value it sees is a slot key owned by
// this package, which maps back to the Go callback and user data of the registration.
package loader

import "errors"

// ErrUnsupported is returned on platforms purego callbacks do not support.
var ErrUnsupported = errors.New("loader: dynamic loading not supported on this platform")

// ErrNullInstance is returned by Attach for a zero instance handle.
var ErrNullInstance = errors.New("loader: null instance handle")
