package record

import (
	"testing"

	"vkdebug/internal/messenger"
	"vkdebug/internal/vk"
	"vkdebug/internal/vk/loopback"
)

func TestFromMessageThroughSubscription(t *testing.T) {
	inst := loopback.New(loopback.WithExtensions(vk.ExtDebugUtils))
	var got []Record
	sub, err := messenger.New(inst, messenger.SeverityAll, messenger.CategoryAll, func(msg *messenger.Message) {
		got = append(got, FromMessage(msg))
	})
	if err != nil {
		t.Fatalf("messenger.New: %v", err)
	}
	defer sub.Close()

	want := Record{
		Severity:     messenger.SeverityWarning,
		Category:     messenger.CategoryValidation,
		IDName:       "VUID-vkQueueSubmit-fence-00063",
		HasIDName:    true,
		IDNumber:     99,
		Description:  "fence already submitted",
		CmdBufLabels: []string{"present"},
		Objects:      []Object{{Type: vk.ObjectTypeFence, Handle: 3, Name: "frame fence", HasName: true}},
	}
	if _, err := inst.Submit(want.Event()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records", len(got))
	}
	r := got[0]
	if r.Seq == 0 || r.Time.IsZero() {
		t.Fatalf("record not stamped: %+v", r)
	}
	if r.Severity != want.Severity || r.Category != want.Category || r.IDName != want.IDName ||
		!r.HasIDName || r.IDNumber != want.IDNumber || r.Description != want.Description {
		t.Fatalf("record = %+v, want %+v", r, want)
	}
	if len(r.CmdBufLabels) != 1 || r.CmdBufLabels[0] != "present" || r.QueueLabels != nil {
		t.Fatalf("labels = %v / %v", r.QueueLabels, r.CmdBufLabels)
	}
	if len(r.Objects) != 1 || r.Objects[0] != want.Objects[0] {
		t.Fatalf("objects = %+v", r.Objects)
	}
}

func TestNextSeqMonotonic(t *testing.T) {
	a, b := NextSeq(), NextSeq()
	if b <= a {
		t.Fatalf("NextSeq not increasing: %d then %d", a, b)
	}
}
