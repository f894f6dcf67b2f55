package vk

import (
	"fmt"
	"strconv"
	"unsafe"
)

// ExtDebugUtils is the instance extension that provides debug messengers.
const ExtDebugUtils = "VK_EXT_debug_utils"

// Instance is a dispatchable handle to the owning native instance.
type Instance uintptr

// DebugUtilsMessenger is a non-dispatchable messenger handle.
type DebugUtilsMessenger uint64

// NullMessenger is never returned by a successful create call.
const NullMessenger DebugUtilsMessenger = 0

// StructureType tags every extensible native record.
type StructureType int32

const (
	StructureTypeApplicationInfo                 StructureType = 0
	StructureTypeInstanceCreateInfo              StructureType = 1
	StructureTypeDebugUtilsObjectNameInfo        StructureType = 1000128000
	StructureTypeDebugUtilsLabel                 StructureType = 1000128002
	StructureTypeDebugUtilsMessengerCallbackData StructureType = 1000128003
	StructureTypeDebugUtilsMessengerCreateInfo   StructureType = 1000128004
)

// ObjectType identifies the kind of handle referenced by a message.
type ObjectType int32

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeInstance
	ObjectTypePhysicalDevice
	ObjectTypeDevice
	ObjectTypeQueue
	ObjectTypeSemaphore
	ObjectTypeCommandBuffer
	ObjectTypeFence
	ObjectTypeDeviceMemory
	ObjectTypeBuffer
	ObjectTypeImage
	ObjectTypeEvent
	ObjectTypeQueryPool
	ObjectTypeBufferView
	ObjectTypeImageView
	ObjectTypeShaderModule
	ObjectTypePipelineCache
	ObjectTypePipelineLayout
	ObjectTypeRenderPass
	ObjectTypePipeline
	ObjectTypeDescriptorSetLayout
	ObjectTypeSampler
	ObjectTypeDescriptorPool
	ObjectTypeDescriptorSet
	ObjectTypeFramebuffer
	ObjectTypeCommandPool
)

var objectTypeNames = [...]string{
	"unknown", "instance", "physical_device", "device", "queue", "semaphore",
	"command_buffer", "fence", "device_memory", "buffer", "image", "event",
	"query_pool", "buffer_view", "image_view", "shader_module", "pipeline_cache",
	"pipeline_layout", "render_pass", "pipeline", "descriptor_set_layout", "sampler",
	"descriptor_pool", "descriptor_set", "framebuffer", "command_pool",
}

func (t ObjectType) String() string {
	if t >= 0 && int(t) < len(objectTypeNames) {
		return objectTypeNames[t]
	}
	return "object_type(" + strconv.Itoa(int(t)) + ")"
}

// ParseObjectType is the inverse of ObjectType.String for the named types.
func ParseObjectType(s string) (ObjectType, bool) {
	for i, name := range objectTypeNames {
		if name == s {
			return ObjectType(i), true
		}
	}
	return ObjectTypeUnknown, false
}

// MarshalText writes the name, or the decimal value for types without one.
func (t ObjectType) MarshalText() ([]byte, error) {
	if t >= 0 && int(t) < len(objectTypeNames) {
		return []byte(objectTypeNames[t]), nil
	}
	return strconv.AppendInt(nil, int64(t), 10), nil
}

// UnmarshalText accepts a name or a decimal value.
func (t *ObjectType) UnmarshalText(text []byte) error {
	if v, ok := ParseObjectType(string(text)); ok {
		*t = v
		return nil
	}
	n, err := strconv.ParseInt(string(text), 10, 32)
	if err != nil {
		return fmt.Errorf("vk: unknown object type %q", text)
	}
	*t = ObjectType(n)
	return nil
}

// DebugUtilsLabel is a queue or command buffer label attached to a message.
type DebugUtilsLabel struct {
	SType      StructureType
	PNext      unsafe.Pointer
	PLabelName *byte
	Color      [4]float32
}

// DebugUtilsObjectNameInfo describes one object a message refers to.
type DebugUtilsObjectNameInfo struct {
	SType        StructureType
	PNext        unsafe.Pointer
	ObjectType   ObjectType
	ObjectHandle uint64
	PObjectName  *byte // nullable
}

// DebugUtilsMessengerCallbackData is the event record passed to a messenger callback.
// All pointers are borrowed and only valid for the duration of the callback.
type DebugUtilsMessengerCallbackData struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            uint32
	PMessageIDName   *byte // nullable
	MessageIDNumber  int32
	PMessage         *byte
	QueueLabelCount  uint32
	PQueueLabels     *DebugUtilsLabel
	CmdBufLabelCount uint32
	PCmdBufLabels    *DebugUtilsLabel
	ObjectCount      uint32
	PObjects         *DebugUtilsObjectNameInfo
}

// QueueLabels returns the queue labels as a slice over native memory.
func (d *DebugUtilsMessengerCallbackData) QueueLabels() []DebugUtilsLabel {
	return borrowSlice(d.PQueueLabels, d.QueueLabelCount)
}

// CmdBufLabels returns the command buffer labels as a slice over native memory.
func (d *DebugUtilsMessengerCallbackData) CmdBufLabels() []DebugUtilsLabel {
	return borrowSlice(d.PCmdBufLabels, d.CmdBufLabelCount)
}

// Objects returns the referenced objects as a slice over native memory.
func (d *DebugUtilsMessengerCallbackData) Objects() []DebugUtilsObjectNameInfo {
	return borrowSlice(d.PObjects, d.ObjectCount)
}

func borrowSlice[T any](p *T, n uint32) []T {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

// DebugUtilsMessengerCallback is the entry point a messenger invokes for every message.
// userData is the value supplied in the create info, carried unmodified.
type DebugUtilsMessengerCallback func(
	severity DebugUtilsMessageSeverityFlags,
	types DebugUtilsMessageTypeFlags,
	data *DebugUtilsMessengerCallbackData,
	userData uintptr,
) Bool32

// DebugUtilsMessengerCreateInfo is the registration descriptor for a messenger.
type DebugUtilsMessengerCreateInfo struct {
	Flags           uint32
	MessageSeverity DebugUtilsMessageSeverityFlags
	MessageType     DebugUtilsMessageTypeFlags
	PfnUserCallback DebugUtilsMessengerCallback
	PUserData       uintptr
}
