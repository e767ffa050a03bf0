// Package domain contains the core types of the daybook journal: the
// line-oriented entry model, entry addressing, date parsing and the
// filter-query language. Everything here is pure; file I/O lives in the
// journal adapter.
package domain

import (
	"strings"
	"time"
)

// EntryKind is the type of a journal entry.
type EntryKind int

const (
	KindTask EntryKind = iota
	KindNote
	KindEvent
)

// Line prefixes of the persisted format. These are a format contract and
// must stay bit-exact: hand-edited files depend on them.
const (
	prefixTaskOpen = "- [ ] "
	prefixTaskDone = "- [x] "
	prefixNote     = "- "
	prefixEvent    = "* "
)

// Cycle returns the next kind in the Task -> Note -> Event -> Task rotation.
func (k EntryKind) Cycle() EntryKind {
	switch k {
	case KindTask:
		return KindNote
	case KindNote:
		return KindEvent
	default:
		return KindTask
	}
}

// String returns a lowercase name for the kind.
func (k EntryKind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindNote:
		return "note"
	default:
		return "event"
	}
}

// EntryData is a parsed entry without location metadata: the kind, the
// completion flag (tasks only) and the content after the prefix.
type EntryData struct {
	Kind      EntryKind
	Completed bool
	Content   string
}

// NewTask returns an incomplete task entry.
func NewTask(content string) EntryData {
	return EntryData{Kind: KindTask, Content: content}
}

// Prefix returns the serialized line prefix for the entry.
func (e EntryData) Prefix() string {
	switch {
	case e.Kind == KindTask && e.Completed:
		return prefixTaskDone
	case e.Kind == KindTask:
		return prefixTaskOpen
	case e.Kind == KindEvent:
		return prefixEvent
	default:
		return prefixNote
	}
}

// ToggleComplete flips the completion flag of a task. Notes and events are
// left untouched.
func (e *EntryData) ToggleComplete() {
	if e.Kind == KindTask {
		e.Completed = !e.Completed
	}
}

// SourceKind says where a displayed entry comes from relative to the
// viewed day.
type SourceKind int

const (
	// SourceLocal entries belong to the viewed day and are editable in place.
	SourceLocal SourceKind = iota
	// SourceLater entries are projected from another day via an @date token.
	SourceLater
	// SourceRecurring entries are projected via an @every-* rule.
	SourceRecurring
)

// Entry is an entry together with its physical address. SourceDate plus
// LineIndex is the only persistent identity an entry has; both are derived
// from a fresh scan and go stale after any mutation of the source section.
type Entry struct {
	EntryData
	SourceDate time.Time
	LineIndex  int
	Source     SourceKind
}

// NewEntry attaches location metadata to parsed entry data.
func NewEntry(data EntryData, sourceDate time.Time, lineIndex int, source SourceKind) Entry {
	return Entry{EntryData: data, SourceDate: sourceDate, LineIndex: lineIndex, Source: source}
}

// Editable reports whether the entry may be edited where it is displayed.
func (e Entry) Editable() bool {
	return e.Source == SourceLocal
}

// Line is one physical line of a day section: either a parsed entry or
// opaque text preserved verbatim. The set of implementations is closed.
type Line interface {
	isLine()
}

// EntryLine is a line holding a recognized entry.
type EntryLine struct {
	EntryData
}

// RawLine is any line that does not match an entry prefix: blank lines,
// headings, free markdown. It round-trips byte for byte.
type RawLine struct {
	Text string
}

func (*EntryLine) isLine() {}
func (*RawLine) isLine()   {}

// ParseEntry parses a single line into entry data, treating unrecognized
// text as a note. It never fails.
func ParseEntry(line string) EntryData {
	trimmed := strings.TrimLeft(line, " \t")

	if content, ok := strings.CutPrefix(trimmed, prefixTaskOpen); ok {
		return EntryData{Kind: KindTask, Content: content}
	}
	if content, ok := strings.CutPrefix(trimmed, prefixTaskDone); ok {
		return EntryData{Kind: KindTask, Completed: true, Content: content}
	}
	if content, ok := strings.CutPrefix(trimmed, prefixEvent); ok {
		return EntryData{Kind: KindEvent, Content: content}
	}
	if content, ok := strings.CutPrefix(trimmed, prefixNote); ok {
		return EntryData{Kind: KindNote, Content: content}
	}
	return EntryData{Kind: KindNote, Content: trimmed}
}

// ParseLine classifies one line as entry or raw text.
func ParseLine(line string) Line {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, prefixTaskOpen) ||
		strings.HasPrefix(trimmed, prefixTaskDone) ||
		strings.HasPrefix(trimmed, prefixEvent) ||
		strings.HasPrefix(trimmed, prefixNote) {
		return &EntryLine{EntryData: ParseEntry(line)}
	}
	return &RawLine{Text: line}
}

// ParseLines parses a day section's content into lines.
func ParseLines(content string) []Line {
	if content == "" {
		return nil
	}
	split := strings.Split(content, "\n")
	lines := make([]Line, 0, len(split))
	for _, s := range split {
		lines = append(lines, ParseLine(s))
	}
	return lines
}

// SerializeLine renders a line back to its persisted text.
func SerializeLine(line Line) string {
	switch l := line.(type) {
	case *EntryLine:
		return l.Prefix() + l.Content
	case *RawLine:
		return l.Text
	}
	return ""
}

// SerializeLines joins lines back into section content. It is the inverse
// of ParseLines.
func SerializeLines(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, SerializeLine(line))
	}
	return strings.Join(parts, "\n")
}

// EntryAt returns the entry line at idx, or nil if idx is out of range or
// the line is raw text.
func EntryAt(lines []Line, idx int) *EntryLine {
	if idx < 0 || idx >= len(lines) {
		return nil
	}
	entry, ok := lines[idx].(*EntryLine)
	if !ok {
		return nil
	}
	return entry
}

// EntryIndices returns the indices of all entry lines, in order. The
// position of an index in the returned slice is the entry's list position
// in the daily view.
func EntryIndices(lines []Line) []int {
	var indices []int
	for i, line := range lines {
		if _, ok := line.(*EntryLine); ok {
			indices = append(indices, i)
		}
	}
	return indices
}
