package domain

import (
	"testing"
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		kind      EntryKind
		completed bool
		content   string
	}{
		{name: "open task", line: "- [ ] Buy milk", kind: KindTask, content: "Buy milk"},
		{name: "done task", line: "- [x] Ship release", kind: KindTask, completed: true, content: "Ship release"},
		{name: "note", line: "- Remember the keys", kind: KindNote, content: "Remember the keys"},
		{name: "event", line: "* Standup 10:00", kind: KindEvent, content: "Standup 10:00"},
		{name: "free text becomes note", line: "just some text", kind: KindNote, content: "just some text"},
		{name: "indented task", line: "  - [ ] Nested", kind: KindTask, content: "Nested"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ParseEntry(tt.line)
			if e.Kind != tt.kind {
				t.Errorf("ParseEntry() kind = %v, want %v", e.Kind, tt.kind)
			}
			if e.Completed != tt.completed {
				t.Errorf("ParseEntry() completed = %v, want %v", e.Completed, tt.completed)
			}
			if e.Content != tt.content {
				t.Errorf("ParseEntry() content = %q, want %q", e.Content, tt.content)
			}
		})
	}
}

func TestRoundTripPreservesContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "mixed entries", content: "- [ ] Task one\n- [x] Task done\n- A note\n* An event\nRaw line"},
		{name: "blank lines", content: "- [ ] Task\n\n- Note after blank"},
		{name: "markdown heading", content: "## Heading\n- [ ] Under heading"},
		{name: "empty", content: ""},
		{name: "only raw", content: "no entries here\nat all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := ParseLines(tt.content)
			if got := SerializeLines(lines); got != tt.content {
				t.Errorf("SerializeLines(ParseLines()) = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestRoundTripPreservesUnparseableLines(t *testing.T) {
	content := "-[ ] missing space\n* \n- [y] odd checkbox"
	lines := ParseLines(content)
	if got := SerializeLines(lines); got != content {
		t.Errorf("round trip = %q, want %q", got, content)
	}
}

func TestKindCycle(t *testing.T) {
	if got := KindTask.Cycle(); got != KindNote {
		t.Errorf("Task.Cycle() = %v, want Note", got)
	}
	if got := KindNote.Cycle(); got != KindEvent {
		t.Errorf("Note.Cycle() = %v, want Event", got)
	}
	if got := KindEvent.Cycle(); got != KindTask {
		t.Errorf("Event.Cycle() = %v, want Task", got)
	}
}

func TestToggleComplete(t *testing.T) {
	task := NewTask("write tests")
	task.ToggleComplete()
	if !task.Completed {
		t.Error("ToggleComplete() did not complete the task")
	}
	if task.Content != "write tests" {
		t.Errorf("ToggleComplete() changed content to %q", task.Content)
	}
	task.ToggleComplete()
	if task.Completed {
		t.Error("ToggleComplete() did not reopen the task")
	}

	note := EntryData{Kind: KindNote, Content: "a note"}
	note.ToggleComplete()
	if note.Completed {
		t.Error("ToggleComplete() must not complete a note")
	}
}

func TestEntryIndices(t *testing.T) {
	lines := ParseLines("## heading\n- [ ] a\n\n- b\n* c")
	got := EntryIndices(lines)
	want := []int{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("EntryIndices() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("EntryIndices()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestEntryAt(t *testing.T) {
	lines := ParseLines("raw\n- [ ] task")
	if EntryAt(lines, 0) != nil {
		t.Error("EntryAt() should be nil on a raw line")
	}
	if e := EntryAt(lines, 1); e == nil || e.Content != "task" {
		t.Errorf("EntryAt() = %+v, want task entry", e)
	}
	if EntryAt(lines, 5) != nil {
		t.Error("EntryAt() should be nil out of range")
	}
}
