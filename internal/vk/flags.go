package vk

import "strconv"

// DebugUtilsMessageSeverityFlags is the native severity bitmask.
type DebugUtilsMessageSeverityFlags uint32

const (
	DebugUtilsMessageSeverityVerbose DebugUtilsMessageSeverityFlags = 0x00000001
	DebugUtilsMessageSeverityInfo    DebugUtilsMessageSeverityFlags = 0x00000010
	DebugUtilsMessageSeverityWarning DebugUtilsMessageSeverityFlags = 0x00000100
	DebugUtilsMessageSeverityError   DebugUtilsMessageSeverityFlags = 0x00001000
)

// Has reports whether any bit of mask is set in f.
func (f DebugUtilsMessageSeverityFlags) Has(mask DebugUtilsMessageSeverityFlags) bool {
	return f&mask != 0
}

func (f DebugUtilsMessageSeverityFlags) String() string {
	return "0x" + strconv.FormatUint(uint64(f), 16)
}

// DebugUtilsMessageTypeFlags is the native message type bitmask.
type DebugUtilsMessageTypeFlags uint32

const (
	DebugUtilsMessageTypeGeneral     DebugUtilsMessageTypeFlags = 0x00000001
	DebugUtilsMessageTypeValidation  DebugUtilsMessageTypeFlags = 0x00000002
	DebugUtilsMessageTypePerformance DebugUtilsMessageTypeFlags = 0x00000004
	// DebugUtilsMessageTypeDeviceAddressBinding comes from a later extension revision.
	DebugUtilsMessageTypeDeviceAddressBinding DebugUtilsMessageTypeFlags = 0x00000008
)

// Has reports whether any bit of mask is set in f.
func (f DebugUtilsMessageTypeFlags) Has(mask DebugUtilsMessageTypeFlags) bool {
	return f&mask != 0
}

func (f DebugUtilsMessageTypeFlags) String() string {
	return "0x" + strconv.FormatUint(uint64(f), 16)
}

// Bool32 is the native 32-bit boolean.
type Bool32 uint32

const (
	False Bool32 = 0
	True  Bool32 = 1
)
