package messenger

import (
	"strings"

	"vkdebug/internal/vk"
)

// Message is one event received by a subscription callback.
//
// Message text aliases native memory and is only valid until the callback returns.
// Use Clone before keeping a Message, or any string taken from it, past that point.
type Message struct {
	// Severity holds the severity bits set on this event.
	Severity Severity
	// Category holds the message type bits set on this event.
	Category Category
	// IDName names the layer or check that produced the message, if HasIDName.
	IDName    string
	HasIDName bool
	// IDNumber is the producer's numeric message identifier.
	IDNumber int32
	// Description is the message text.
	Description string
	// QueueLabels and CmdBufLabels list the active debug labels, innermost last.
	QueueLabels  []string
	CmdBufLabels []string
	// Objects lists the handles the message refers to.
	Objects []Object
}

// Object is a native handle referenced by a message.
type Object struct {
	Type    vk.ObjectType
	Handle  uint64
	Name    string
	HasName bool
}

// Clone returns a deep copy of m that does not alias native memory.
func (m *Message) Clone() *Message {
	c := *m
	c.IDName = strings.Clone(m.IDName)
	c.Description = strings.Clone(m.Description)
	c.QueueLabels = cloneStrings(m.QueueLabels)
	c.CmdBufLabels = cloneStrings(m.CmdBufLabels)
	if m.Objects != nil {
		c.Objects = make([]Object, len(m.Objects))
		for i, o := range m.Objects {
			o.Name = strings.Clone(o.Name)
			c.Objects[i] = o
		}
	}
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.Clone(s)
	}
	return out
}
