package capture

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"vkdebug/internal/messenger"
	"vkdebug/internal/record"
	"vkdebug/internal/vk"
)

func sampleRecords() []record.Record {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []record.Record{
		{
			Seq: 1, Time: at,
			Severity: messenger.SeverityError, Category: messenger.CategoryValidation,
			IDName: "VUID-vkCmdDraw-None-02699", HasIDName: true, IDNumber: -1234,
			Description:  "descriptor set 0 was never bound",
			QueueLabels:  []string{"graphics"},
			CmdBufLabels: []string{"shadow pass", "opaque"},
			Objects: []record.Object{
				{Type: vk.ObjectTypeCommandBuffer, Handle: 0x55aa, Name: "frame cmd", HasName: true},
				{Type: vk.ObjectTypePipeline, Handle: 7},
			},
		},
		{
			Seq: 2, Time: at.Add(time.Second),
			Severity: messenger.SeverityVerbose, Category: messenger.CategoryGeneral,
			Description: "loader: searching for layers",
		},
	}
}

func sameRecord(t *testing.T, got, want record.Record) {
	t.Helper()
	if !got.Time.Equal(want.Time) {
		t.Errorf("seq %d: time %v, want %v", want.Seq, got.Time, want.Time)
	}
	got.Time, want.Time = time.Time{}, time.Time{}
	if got.Seq != want.Seq || got.Severity != want.Severity || got.Category != want.Category ||
		got.IDName != want.IDName || got.HasIDName != want.HasIDName || got.IDNumber != want.IDNumber ||
		got.Description != want.Description {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
	if strings.Join(got.QueueLabels, "|") != strings.Join(want.QueueLabels, "|") ||
		strings.Join(got.CmdBufLabels, "|") != strings.Join(want.CmdBufLabels, "|") {
		t.Errorf("labels %q %q, want %q %q", got.QueueLabels, got.CmdBufLabels, want.QueueLabels, want.CmdBufLabels)
	}
	if len(got.Objects) != len(want.Objects) {
		t.Fatalf("objects %+v, want %+v", got.Objects, want.Objects)
	}
	for i := range want.Objects {
		if got.Objects[i] != want.Objects[i] {
			t.Errorf("object %d = %+v, want %+v", i, got.Objects[i], want.Objects[i])
		}
	}
}

func TestVkcapRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	want := sampleRecords()
	for i := range want {
		w.Write(&want[i])
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if w.Count() != len(want) {
		t.Fatalf("Count = %d", w.Count())
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if h := r.Header(); h.Magic != "vkcap" || h.Schema != schemaVersion || h.Created.IsZero() {
		t.Fatalf("header = %+v", h)
	}
	got, err := ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d records, want %d", len(got), len(want))
	}
	for i := range want {
		sameRecord(t, got[i], want[i])
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next after end = %v", err)
	}
}

func TestVkcapRejectsForeignStreams(t *testing.T) {
	if _, err := NewReader(strings.NewReader("")); !errors.Is(err, ErrNotCapture) {
		t.Fatalf("empty stream: %v", err)
	}

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&Header{Magic: "vkpkg", Schema: schemaVersion}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(&buf); !errors.Is(err, ErrNotCapture) {
		t.Fatalf("wrong magic: %v", err)
	}

	buf.Reset()
	if err := msgpack.NewEncoder(&buf).Encode(&Header{Magic: "vkcap", Schema: 99}); err != nil {
		t.Fatal(err)
	}
	_, err := NewReader(&buf)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Got != 99 {
		t.Fatalf("future schema: %v", err)
	}
}

func TestVkcapTruncated(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	recs := sampleRecords()
	w.Write(&recs[0])
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()-3]

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("truncated record: %v", err)
	}
}

func TestReadNDJSON(t *testing.T) {
	script := `# hand-written events
{"severity":"warning","category":"performance","id_name":"BestPractices-vkAllocateMemory-small-allocation","description":"small allocation"}

{"severity":"error,warning","category":"general,validation","description":"two flags","objects":[{"type":"image","handle":48879,"name":"albedo"},{"type":"1000150000","handle":1}]}
`
	got, err := ReadNDJSON(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ReadNDJSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d records", len(got))
	}
	if got[0].Severity != messenger.SeverityWarning || got[0].Category != messenger.CategoryPerformance ||
		!got[0].HasIDName || got[0].Description != "small allocation" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Severity != messenger.SeverityErrorsAndWarnings ||
		got[1].Category != messenger.CategoryGeneral|messenger.CategoryValidation || got[1].HasIDName {
		t.Errorf("second = %+v", got[1])
	}
	objs := got[1].Objects
	if len(objs) != 2 || objs[0].Type != vk.ObjectTypeImage || objs[0].Handle != 0xbeef || !objs[0].HasName ||
		objs[1].Type != vk.ObjectType(1000150000) || objs[1].HasName {
		t.Errorf("objects = %+v", objs)
	}
}

func TestReadNDJSONReportsLine(t *testing.T) {
	_, err := ReadNDJSON(strings.NewReader("{\"description\":\"ok\"}\n{\"severity\":\"loud\"}\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v", err)
	}
}

func TestCreateOpenConvert(t *testing.T) {
	dir := t.TempDir()
	want := sampleRecords()

	for _, name := range []string{"events.vkcap", "events.ndjson"} {
		path := filepath.Join(dir, name)
		s, err := Create(path)
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		for i := range want {
			s.Write(&want[i])
		}
		if err := s.Close(); err != nil {
			t.Fatalf("Close(%s): %v", name, err)
		}

		src, err := Open(path)
		if err != nil {
			t.Fatalf("Open(%s): %v", name, err)
		}
		got, err := ReadAll(src)
		_ = src.Close()
		if err != nil {
			t.Fatalf("ReadAll(%s): %v", name, err)
		}
		if len(got) != len(want) {
			t.Fatalf("%s: read %d records", name, len(got))
		}
		for i := range want {
			sameRecord(t, got[i], want[i])
		}
	}

	src, err := Open(filepath.Join(dir, "events.ndjson"))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	out, err := Create(filepath.Join(dir, "converted.vkcap"))
	if err != nil {
		t.Fatal(err)
	}
	n, err := Copy(out, src)
	if err != nil || n != len(want) {
		t.Fatalf("Copy = %d, %v", n, err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestKindOf(t *testing.T) {
	if k, err := KindOf("a/b.VKCAP"); err != nil || k != KindVkcap {
		t.Errorf("KindOf = %v, %v", k, err)
	}
	if k, err := KindOf("x.jsonl"); err != nil || k != KindNDJSON {
		t.Errorf("KindOf = %v, %v", k, err)
	}
	if _, err := KindOf("x.txt"); err == nil {
		t.Error("KindOf accepted .txt")
	}
	if _, err := Open("missing.txt"); err == nil {
		t.Error("Open accepted .txt")
	}
}
