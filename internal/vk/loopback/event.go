package loopback

import (
	"fmt"

	"fortio.org/safecast"

	"vkdebug/internal/vk"
)

// Event is a message as the native side would report it.
type Event struct {
	Severity     vk.DebugUtilsMessageSeverityFlags
	Types        vk.DebugUtilsMessageTypeFlags
	IDName       string
	HasIDName    bool
	IDNumber     int32
	Message      string
	QueueLabels  []string
	CmdBufLabels []string
	Objects      []Object
}

// Object is a handle referenced by an Event.
type Object struct {
	Type    vk.ObjectType
	Handle  uint64
	Name    string
	HasName bool
}

// record builds the native callback data for ev. Every pointer in the result refers to
// memory owned by the result, so it stays valid while the record is reachable.
func (ev *Event) record() (*vk.DebugUtilsMessengerCallbackData, error) {
	data := &vk.DebugUtilsMessengerCallbackData{
		SType:           vk.StructureTypeDebugUtilsMessengerCallbackData,
		MessageIDNumber: ev.IDNumber,
		PMessage:        vk.CStringPtr(ev.Message),
	}
	if ev.HasIDName {
		data.PMessageIDName = vk.CStringPtr(ev.IDName)
	}

	var err error
	if data.PQueueLabels, data.QueueLabelCount, err = labels(ev.QueueLabels); err != nil {
		return nil, fmt.Errorf("queue labels: %w", err)
	}
	if data.PCmdBufLabels, data.CmdBufLabelCount, err = labels(ev.CmdBufLabels); err != nil {
		return nil, fmt.Errorf("command buffer labels: %w", err)
	}

	if len(ev.Objects) > 0 {
		count, err := safecast.Conv[uint32](len(ev.Objects))
		if err != nil {
			return nil, fmt.Errorf("objects: %w", err)
		}
		objs := make([]vk.DebugUtilsObjectNameInfo, len(ev.Objects))
		for i, o := range ev.Objects {
			objs[i] = vk.DebugUtilsObjectNameInfo{
				SType:        vk.StructureTypeDebugUtilsObjectNameInfo,
				ObjectType:   o.Type,
				ObjectHandle: o.Handle,
			}
			if o.HasName {
				objs[i].PObjectName = vk.CStringPtr(o.Name)
			}
		}
		data.ObjectCount = count
		data.PObjects = &objs[0]
	}
	return data, nil
}

func labels(names []string) (*vk.DebugUtilsLabel, uint32, error) {
	if len(names) == 0 {
		return nil, 0, nil
	}
	count, err := safecast.Conv[uint32](len(names))
	if err != nil {
		return nil, 0, err
	}
	out := make([]vk.DebugUtilsLabel, len(names))
	for i, name := range names {
		out[i] = vk.DebugUtilsLabel{
			SType:      vk.StructureTypeDebugUtilsLabel,
			PLabelName: vk.CStringPtr(name),
		}
	}
	return &out[0], count, nil
}
