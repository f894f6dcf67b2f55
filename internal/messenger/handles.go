package messenger

import "sync"

// handleTable maps the opaque user-data value carried by the native side to the
// callback it was issued for. Keys are never reused.
type handleTable struct {
	mu    sync.RWMutex
	next  uintptr
	boxes map[uintptr]Callback
}

var callbacks = handleTable{boxes: make(map[uintptr]Callback)}

func (t *handleTable) put(fn Callback) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.boxes[t.next] = fn
	return t.next
}

func (t *handleTable) get(h uintptr) (Callback, bool) {
	t.mu.RLock()
	fn, ok := t.boxes[h]
	t.mu.RUnlock()
	return fn, ok
}

// release drops h and reports whether it was still present.
func (t *handleTable) release(h uintptr) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.boxes[h]; !ok {
		return false
	}
	delete(t.boxes, h)
	return true
}

func (t *handleTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.boxes)
}
