// Package record holds owned copies of messenger messages.
//
// A record outlives the callback that produced it: every string is copied out of
// native memory. Records are what sinks, capture files and the live view work with.
package record

import (
	"sync/atomic"
	"time"

	"vkdebug/internal/messenger"
	"vkdebug/internal/vk"
)

// Record is a message detached from its native event.
type Record struct {
	Seq          uint64             `msgpack:"seq" json:"seq"`
	Time         time.Time          `msgpack:"time" json:"time"`
	Severity     messenger.Severity `msgpack:"severity" json:"severity"`
	Category     messenger.Category `msgpack:"category" json:"category"`
	IDName       string             `msgpack:"id_name,omitempty" json:"id_name,omitempty"`
	HasIDName    bool               `msgpack:"has_id_name" json:"has_id_name"`
	IDNumber     int32              `msgpack:"id_number" json:"id_number"`
	Description  string             `msgpack:"description" json:"description"`
	QueueLabels  []string           `msgpack:"queue_labels,omitempty" json:"queue_labels,omitempty"`
	CmdBufLabels []string           `msgpack:"cmd_buf_labels,omitempty" json:"cmd_buf_labels,omitempty"`
	Objects      []Object           `msgpack:"objects,omitempty" json:"objects,omitempty"`
}

// Object is an owned copy of messenger.Object.
type Object struct {
	Type    vk.ObjectType `msgpack:"type" json:"type"`
	Handle  uint64        `msgpack:"handle" json:"handle"`
	Name    string        `msgpack:"name,omitempty" json:"name,omitempty"`
	HasName bool          `msgpack:"has_name" json:"has_name"`
}

var seq atomic.Uint64

// NextSeq returns a process-wide monotonically increasing sequence number.
func NextSeq() uint64 {
	return seq.Add(1)
}

// FromMessage copies msg into a new record stamped with the current time.
func FromMessage(msg *messenger.Message) Record {
	owned := msg.Clone()
	r := Record{
		Seq:          NextSeq(),
		Time:         time.Now(),
		Severity:     owned.Severity,
		Category:     owned.Category,
		IDName:       owned.IDName,
		HasIDName:    owned.HasIDName,
		IDNumber:     owned.IDNumber,
		Description:  owned.Description,
		QueueLabels:  owned.QueueLabels,
		CmdBufLabels: owned.CmdBufLabels,
	}
	if len(owned.Objects) > 0 {
		r.Objects = make([]Object, len(owned.Objects))
		for i, o := range owned.Objects {
			r.Objects[i] = Object{Type: o.Type, Handle: o.Handle, Name: o.Name, HasName: o.HasName}
		}
	}
	return r
}
