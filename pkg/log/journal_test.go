package log

import (
	"errors"
	"testing"
	"time"
)

func TestJournalStampsEvents(t *testing.T) {
	mem := &MemoryLogger{}
	j := NewJournal(mem, ComponentProvisioning)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	j.Request("cred.pairwise", 2, "a", "b", RequestEvent{})
	j.Rejection("acl.provision", "a", -1)
	j.Completion("cred.pairwise", 2, "a", CompletionEvent{Success: true})
	j.Duplicate("cred.pairwise", 2, "a")
	j.Error("acl.provision", "a", errors.New("ACE has no resources"))
	j.Error("acl.provision", "a", nil)

	events := mem.Events()
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	want := []Category{CategoryRequest, CategoryRejection, CategoryCompletion, CategoryDuplicate, CategoryError}
	for i, ev := range events {
		if ev.Category != want[i] {
			t.Errorf("event %d: category got %v, want %v", i, ev.Category, want[i])
		}
		if ev.Component != ComponentProvisioning {
			t.Errorf("event %d: component got %v", i, ev.Component)
		}
		if !ev.Timestamp.Equal(fixed) {
			t.Errorf("event %d: timestamp got %v", i, ev.Timestamp)
		}
	}
	if events[0].PeerID != "b" || *events[0].Handle != 2 {
		t.Errorf("request event: got %+v", events[0])
	}
}

func TestNilJournal(t *testing.T) {
	var j *Journal
	j.Request("x", 0, "", "", RequestEvent{})
	j.Registry("a", RegistryEvent{})

	NewJournal(nil, ComponentTool).Completion("x", 0, "", CompletionEvent{})
}
