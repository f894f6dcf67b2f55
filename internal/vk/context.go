package vk

// Context is the native instance a messenger is registered with.
type Context interface {
	// Handle identifies the instance in native calls.
	Handle() Instance
	// ExtensionEnabled reports whether the named extension was enabled at creation.
	ExtensionEnabled(name string) bool
	// DebugUtils returns the messenger entry points. Only valid when ExtDebugUtils is enabled.
	DebugUtils() DebugUtilsFns
	// Acquire pins the instance until the returned release func is called.
	Acquire() (release func())
}

// DebugUtilsFns is the function table of the debug-utils extension.
type DebugUtilsFns interface {
	CreateDebugUtilsMessenger(instance Instance, info *DebugUtilsMessengerCreateInfo) (DebugUtilsMessenger, Result)
	// DestroyDebugUtilsMessenger must not return while a callback for m is still running.
	DestroyDebugUtilsMessenger(instance Instance, m DebugUtilsMessenger)
}
