package messenger

import "vkdebug/internal/vk"

var _ vk.DebugUtilsMessengerCallback = trampoline

// trampoline is the entry point registered with every messenger. It may run on any
// thread, concurrently with itself.
//
// The native side carries userData unmodified from registration; it is only ever a
// key issued by callbacks.put. A key that is no longer in the table belongs to a torn
// down subscription and the event is dropped.
func trampoline(
	severity vk.DebugUtilsMessageSeverityFlags,
	types vk.DebugUtilsMessageTypeFlags,
	data *vk.DebugUtilsMessengerCallbackData,
	userData uintptr,
) vk.Bool32 {
	fn, ok := callbacks.get(userData)
	if !ok || data == nil {
		return vk.False
	}
	msg := decodeMessage(severity, types, data)
	invokeGuarded(fn, &msg)
	// Never abort the native call that triggered the message.
	return vk.False
}

// invokeGuarded runs fn and discards any panic it raises. Unwinding must stop here:
// the caller frames belong to native code.
func invokeGuarded(fn Callback, msg *Message) {
	defer func() {
		_ = recover()
	}()
	fn(msg)
}
