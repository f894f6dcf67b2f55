// Package vk mirrors the slice of the native debug-utils ABI that vkdebug talks to.
//
// The types here are laid out exactly like their C counterparts so that records handed
// over by a native loader can be reinterpreted in place. Nothing in this package owns
// native memory: every pointer field is borrowed from the caller for the duration of a
// single call.
//
// # Collaborators
//
//   - Context: the owning instance. Reports enabled extensions, exposes the function
//     table and lets a subscriber extend its lifetime.
//   - DebugUtilsFns: the create/destroy entry points of the messenger extension.
//
// Implementations live in vk/loopback (pure Go, used by tests and replay) and vk/loader
// (dynamic loading of the system Vulkan loader).
package vk
