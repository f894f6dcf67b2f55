package messenger

import "vkdebug/internal/vk"

var severityBits = [...]struct {
	flag   Severity
	native vk.DebugUtilsMessageSeverityFlags
}{
	{SeverityError, vk.DebugUtilsMessageSeverityError},
	{SeverityWarning, vk.DebugUtilsMessageSeverityWarning},
	{SeverityInformation, vk.DebugUtilsMessageSeverityInfo},
	{SeverityVerbose, vk.DebugUtilsMessageSeverityVerbose},
}

var categoryBits = [...]struct {
	flag   Category
	native vk.DebugUtilsMessageTypeFlags
}{
	{CategoryGeneral, vk.DebugUtilsMessageTypeGeneral},
	{CategoryValidation, vk.DebugUtilsMessageTypeValidation},
	{CategoryPerformance, vk.DebugUtilsMessageTypePerformance},
}

// Native encodes s as the native severity bitmask.
func (s Severity) Native() vk.DebugUtilsMessageSeverityFlags {
	var bits vk.DebugUtilsMessageSeverityFlags
	for _, b := range severityBits {
		if s&b.flag != 0 {
			bits |= b.native
		}
	}
	return bits
}

// SeverityFromNative decodes the severity bits observed on an event.
// Bits without a Severity counterpart are dropped.
func SeverityFromNative(bits vk.DebugUtilsMessageSeverityFlags) Severity {
	var s Severity
	for _, b := range severityBits {
		if bits.Has(b.native) {
			s |= b.flag
		}
	}
	return s
}

// Native encodes c as the native message type bitmask.
func (c Category) Native() vk.DebugUtilsMessageTypeFlags {
	var bits vk.DebugUtilsMessageTypeFlags
	for _, b := range categoryBits {
		if c&b.flag != 0 {
			bits |= b.native
		}
	}
	return bits
}

// CategoryFromNative decodes the message type bits observed on an event.
// Bits without a Category counterpart are dropped.
func CategoryFromNative(bits vk.DebugUtilsMessageTypeFlags) Category {
	var c Category
	for _, b := range categoryBits {
		if bits.Has(b.native) {
			c |= b.flag
		}
	}
	return c
}
