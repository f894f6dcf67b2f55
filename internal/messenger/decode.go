package messenger

import (
	"fmt"
	"unicode/utf8"

	"vkdebug/internal/vk"
)

// decodeMessage builds a Message over the borrowed record. Invalid UTF-8 anywhere in
// the record is a broken native contract and panics.
func decodeMessage(
	severity vk.DebugUtilsMessageSeverityFlags,
	types vk.DebugUtilsMessageTypeFlags,
	data *vk.DebugUtilsMessengerCallbackData,
) Message {
	msg := Message{
		Severity: SeverityFromNative(severity),
		Category: CategoryFromNative(types),
		IDNumber: data.MessageIDNumber,
	}
	msg.IDName, msg.HasIDName = borrowText(data.PMessageIDName, "message id name")
	msg.Description, _ = borrowText(data.PMessage, "message description")
	msg.QueueLabels = decodeLabels(data.QueueLabels(), "queue label")
	msg.CmdBufLabels = decodeLabels(data.CmdBufLabels(), "command buffer label")

	if objects := data.Objects(); len(objects) > 0 {
		msg.Objects = make([]Object, len(objects))
		for i := range objects {
			o := &objects[i]
			name, ok := borrowText(o.PObjectName, "object name")
			msg.Objects[i] = Object{
				Type:    o.ObjectType,
				Handle:  o.ObjectHandle,
				Name:    name,
				HasName: ok,
			}
		}
	}
	return msg
}

func decodeLabels(labels []vk.DebugUtilsLabel, what string) []string {
	if len(labels) == 0 {
		return nil
	}
	out := make([]string, len(labels))
	for i := range labels {
		out[i], _ = borrowText(labels[i].PLabelName, what)
	}
	return out
}

func borrowText(p *byte, what string) (string, bool) {
	s, ok := vk.GoStringView(p)
	if ok && !utf8.ValidString(s) {
		panic(fmt.Sprintf("messenger: %s is not valid UTF-8: %q", what, s))
	}
	return s, ok
}
