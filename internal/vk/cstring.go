package vk

import "unsafe"

// GoStringView returns a string that aliases the NUL-terminated buffer at p.
// The result is only valid while the buffer is; it reports false for a nil pointer.
func GoStringView(p *byte) (string, bool) {
	if p == nil {
		return "", false
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return unsafe.String(p, n), true
}

// CString returns a NUL-terminated copy of s.
func CString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// CStringPtr returns a pointer to the first byte of a NUL-terminated copy of s.
// The caller must keep the returned pointer reachable for as long as native code reads it.
func CStringPtr(s string) *byte {
	return &CString(s)[0]
}
