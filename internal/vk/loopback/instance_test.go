package loopback

import (
	"sync"
	"testing"
	"time"

	"vkdebug/internal/vk"
)

type seen struct {
	mu       sync.Mutex
	messages []string
	ids      []string
	users    []uintptr
}

func (s *seen) callback(_ vk.DebugUtilsMessageSeverityFlags, _ vk.DebugUtilsMessageTypeFlags, data *vk.DebugUtilsMessengerCallbackData, user uintptr) vk.Bool32 {
	msg, _ := vk.GoStringView(data.PMessage)
	id, ok := vk.GoStringView(data.PMessageIDName)
	if !ok {
		id = "<nil>"
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.ids = append(s.ids, id)
	s.users = append(s.users, user)
	s.mu.Unlock()
	return vk.False
}

func register(t *testing.T, inst *Instance, s *seen, sev vk.DebugUtilsMessageSeverityFlags, types vk.DebugUtilsMessageTypeFlags, user uintptr) vk.DebugUtilsMessenger {
	t.Helper()
	m, res := inst.CreateDebugUtilsMessenger(inst.Handle(), &vk.DebugUtilsMessengerCreateInfo{
		MessageSeverity: sev,
		MessageType:     types,
		PfnUserCallback: s.callback,
		PUserData:       user,
	})
	if res != vk.Success {
		t.Fatalf("create: %v", res)
	}
	return m
}

func TestSubmitRoutesByFilter(t *testing.T) {
	inst := New(WithExtensions(vk.ExtDebugUtils))
	var errorsOnly, everything seen
	register(t, inst, &errorsOnly, vk.DebugUtilsMessageSeverityError, vk.DebugUtilsMessageTypeGeneral, 7)
	register(t, inst, &everything, 0x1111, 0x7, 9)

	events := []Event{
		{Severity: vk.DebugUtilsMessageSeverityError, Types: vk.DebugUtilsMessageTypeGeneral, Message: "boom", IDName: "VUID-1", HasIDName: true},
		{Severity: vk.DebugUtilsMessageSeverityInfo, Types: vk.DebugUtilsMessageTypeGeneral, Message: "fyi"},
		{Severity: vk.DebugUtilsMessageSeverityError, Types: vk.DebugUtilsMessageTypeValidation, Message: "invalid"},
	}
	total := 0
	for _, ev := range events {
		n, err := inst.Submit(ev)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		total += n
	}
	if total != 4 {
		t.Fatalf("delivered %d callbacks, want 4", total)
	}
	if len(errorsOnly.messages) != 1 || errorsOnly.messages[0] != "boom" || errorsOnly.ids[0] != "VUID-1" {
		t.Fatalf("errors-only messenger saw %v / %v", errorsOnly.messages, errorsOnly.ids)
	}
	if errorsOnly.users[0] != 7 {
		t.Fatalf("user data = %d, want 7", errorsOnly.users[0])
	}
	if len(everything.messages) != 3 || everything.ids[1] != "<nil>" {
		t.Fatalf("catch-all messenger saw %v / %v", everything.messages, everything.ids)
	}
}

func TestInvokeIgnoresFilters(t *testing.T) {
	inst := New()
	var s seen
	m := register(t, inst, &s, vk.DebugUtilsMessageSeverityError, vk.DebugUtilsMessageTypeGeneral, 1)
	err := inst.Invoke(m, Event{Severity: vk.DebugUtilsMessageSeverityVerbose, Types: vk.DebugUtilsMessageTypePerformance, Message: "chatter"})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if len(s.messages) != 1 {
		t.Fatalf("messages = %v", s.messages)
	}
	if err := inst.Invoke(m+100, Event{}); err != ErrUnknownMessenger {
		t.Fatalf("invoke unknown = %v, want ErrUnknownMessenger", err)
	}
}

func TestDestroyStopsDelivery(t *testing.T) {
	inst := New()
	var s seen
	m := register(t, inst, &s, 0x1111, 0x7, 1)
	inst.DestroyDebugUtilsMessenger(inst.Handle(), m)
	n, err := inst.Submit(Event{Severity: vk.DebugUtilsMessageSeverityError, Types: vk.DebugUtilsMessageTypeGeneral})
	if err != nil || n != 0 {
		t.Fatalf("submit after destroy = %d, %v", n, err)
	}
	if got := inst.Calls(); got != (Calls{Create: 1, Destroy: 1}) {
		t.Fatalf("calls = %+v", got)
	}
	if inst.Live() != 0 {
		t.Fatalf("live = %d", inst.Live())
	}
}

func TestDestroyWaitsForInFlightCallback(t *testing.T) {
	inst := New()
	entered := make(chan struct{})
	unblock := make(chan struct{})
	m, res := inst.CreateDebugUtilsMessenger(inst.Handle(), &vk.DebugUtilsMessengerCreateInfo{
		MessageSeverity: 0x1111,
		MessageType:     0x7,
		PfnUserCallback: func(vk.DebugUtilsMessageSeverityFlags, vk.DebugUtilsMessageTypeFlags, *vk.DebugUtilsMessengerCallbackData, uintptr) vk.Bool32 {
			close(entered)
			<-unblock
			return vk.False
		},
	})
	if res != vk.Success {
		t.Fatalf("create: %v", res)
	}

	go func() { _ = inst.Invoke(m, Event{Message: "slow"}) }()
	<-entered

	destroyed := make(chan struct{})
	go func() {
		inst.DestroyDebugUtilsMessenger(inst.Handle(), m)
		close(destroyed)
	}()

	select {
	case <-destroyed:
		t.Fatal("destroy returned while a callback was running")
	case <-time.After(20 * time.Millisecond):
	}
	close(unblock)
	select {
	case <-destroyed:
	case <-time.After(time.Second):
		t.Fatal("destroy did not return after the callback finished")
	}
}

func TestCreateFailureInjection(t *testing.T) {
	inst := New(WithCreateResult(vk.ErrorOutOfHostMemory))
	var s seen
	m, res := inst.CreateDebugUtilsMessenger(inst.Handle(), &vk.DebugUtilsMessengerCreateInfo{PfnUserCallback: s.callback})
	if res != vk.ErrorOutOfHostMemory || m != vk.NullMessenger {
		t.Fatalf("create = %v, %v", m, res)
	}
	if inst.Live() != 0 {
		t.Fatalf("live = %d", inst.Live())
	}
}

func TestEventRecordLayout(t *testing.T) {
	ev := Event{
		Message:      "object in use",
		IDNumber:     -17,
		QueueLabels:  []string{"frame"},
		CmdBufLabels: []string{"shadow pass", "draw"},
		Objects: []Object{
			{Type: vk.ObjectTypeBuffer, Handle: 0xdead, Name: "vertices", HasName: true},
			{Type: vk.ObjectTypeDevice, Handle: 0x1},
		},
	}
	data, err := ev.record()
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if data.SType != vk.StructureTypeDebugUtilsMessengerCallbackData || data.MessageIDNumber != -17 {
		t.Fatalf("header = %+v", data)
	}
	if data.PMessageIDName != nil {
		t.Fatal("id name set without HasIDName")
	}
	objs := data.Objects()
	if len(objs) != 2 || objs[0].ObjectHandle != 0xdead || objs[1].PObjectName != nil {
		t.Fatalf("objects = %+v", objs)
	}
	if name, _ := vk.GoStringView(objs[0].PObjectName); name != "vertices" {
		t.Fatalf("object name = %q", name)
	}
	if labels := data.CmdBufLabels(); len(labels) != 2 {
		t.Fatalf("cmd labels = %d", len(labels))
	}
	if label, _ := vk.GoStringView(data.QueueLabels()[0].PLabelName); label != "frame" {
		t.Fatalf("queue label = %q", label)
	}
}

func TestAcquireRelease(t *testing.T) {
	inst := New()
	release := inst.Acquire()
	if inst.Refs() != 1 {
		t.Fatalf("refs = %d", inst.Refs())
	}
	release()
	release()
	if inst.Refs() != 0 {
		t.Fatalf("refs after double release = %d", inst.Refs())
	}
}
