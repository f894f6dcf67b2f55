package record

import (
	"vkdebug/internal/vk/loopback"
)

// Event turns r back into a native event for the loopback driver. Each flag set in
// r becomes the matching native bit.
func (r *Record) Event() loopback.Event {
	ev := loopback.Event{
		Severity:     r.Severity.Native(),
		Types:        r.Category.Native(),
		IDName:       r.IDName,
		HasIDName:    r.HasIDName,
		IDNumber:     r.IDNumber,
		Message:      r.Description,
		QueueLabels:  r.QueueLabels,
		CmdBufLabels: r.CmdBufLabels,
	}
	if len(r.Objects) > 0 {
		ev.Objects = make([]loopback.Object, len(r.Objects))
		for i, o := range r.Objects {
			ev.Objects[i] = loopback.Object{Type: o.Type, Handle: o.Handle, Name: o.Name, HasName: o.HasName}
		}
	}
	return ev
}
