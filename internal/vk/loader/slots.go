package loader

import (
	"sync"

	"vkdebug/internal/vk"
)

type slot struct {
	fn       vk.DebugUtilsMessengerCallback
	userData uintptr
}

// slotTable maps the user-data value handed to native code to the Go registration.
type slotTable struct {
	mu    sync.RWMutex
	next  uintptr
	slots map[uintptr]slot
}

var slots = slotTable{slots: make(map[uintptr]slot)}

func (t *slotTable) put(fn vk.DebugUtilsMessengerCallback, userData uintptr) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.slots[t.next] = slot{fn: fn, userData: userData}
	return t.next
}

func (t *slotTable) get(key uintptr) (slot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.slots[key]
	return s, ok
}

func (t *slotTable) release(key uintptr) {
	t.mu.Lock()
	delete(t.slots, key)
	t.mu.Unlock()
}

// dispatch is the body of the native entry point.
func dispatch(
	severity vk.DebugUtilsMessageSeverityFlags,
	types vk.DebugUtilsMessageTypeFlags,
	data *vk.DebugUtilsMessengerCallbackData,
	key uintptr,
) vk.Bool32 {
	s, ok := slots.get(key)
	if !ok || s.fn == nil {
		return vk.False
	}
	return s.fn(severity, types, data, s.userData)
}
