package tui

// Key-flow tests: each one drives Update with real key events and checks
// the journal file and session state afterwards, so regressions in key
// dispatch or commit wiring fail here.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/daybook/internal/adapters/journal"
	"github.com/xvierd/daybook/internal/config"
	"github.com/xvierd/daybook/internal/session"
)

// 2026-03-02 is a Monday.
const testJournal = `# 2026/03/01
- [ ] standup @every-weekday #work
- [ ] ship report @3/2/26 #work

# 2026/03/02
- [ ] alpha #work
- morning note
- [x] beta #home
* team sync
`

func key(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// send feeds a sequence of keys, typing multi-rune strings one rune at a
// time the way a terminal delivers them.
func send(m Model, keys ...string) Model {
	for _, k := range keys {
		if len([]rune(k)) > 1 && k != "enter" && k != "esc" && k != "tab" {
			for _, r := range k {
				result, _ := m.Update(key(string(r)))
				m = result.(Model)
			}
			continue
		}
		result, _ := m.Update(key(k))
		m = result.(Model)
	}
	return m
}

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.md")
	if err := os.WriteFile(path, []byte(testJournal), 0o644); err != nil {
		t.Fatal(err)
	}
	viewed := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	s, err := session.New(journal.NewStore(path), viewed)
	if err != nil {
		t.Fatal(err)
	}
	s.Now = func() time.Time { return viewed }
	if err := s.RefreshProjected(); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.FavoriteTags["1"] = "work"
	return NewModel(s, cfg), path
}

func journalText(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestEnterOpensCreatePromptAndCommits(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "enter")
	if m.inputMode != inputCreate {
		t.Fatalf("inputMode = %v, want create prompt", m.inputMode)
	}
	m = send(m, "call dentist", "enter")

	if m.inputMode != inputNone {
		t.Error("prompt should close after commit")
	}
	if !strings.Contains(journalText(t, path), "- [ ] call dentist\n") {
		t.Error("committed entry not written to the journal")
	}
}

func TestCreateExpandsFavoriteTagAndRelativeDate(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "enter", "review @tomorrow #1", "enter")

	if !strings.Contains(journalText(t, path), "- [ ] review @03/03 #work\n") {
		t.Errorf("favorite tag or relative date not expanded:\n%s", journalText(t, path))
	}
}

func TestCreateUndoRemovesEntry(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "enter", "oops", "enter")
	if !strings.Contains(journalText(t, path), "oops") {
		t.Fatal("entry not created")
	}
	m = send(m, "u")
	if strings.Contains(journalText(t, path), "oops") {
		t.Error("undo should remove the created entry")
	}
	m = send(m, "U")
	if !strings.Contains(journalText(t, path), "oops") {
		t.Error("redo should restore the entry")
	}
}

func TestEscCancelsPrompt(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "enter", "discarded", "esc")

	if m.inputMode != inputNone {
		t.Error("esc should close the prompt")
	}
	if strings.Contains(journalText(t, path), "discarded") {
		t.Error("cancelled input must not be written")
	}
}

func TestToggleTaskKey(t *testing.T) {
	m, path := newTestModel(t)

	// Rows 0 and 1 are projections; row 2 is the local alpha task.
	m = send(m, "j", "j", "x")

	if !strings.Contains(journalText(t, path), "- [x] alpha #work\n") {
		t.Errorf("alpha should be completed:\n%s", journalText(t, path))
	}
}

func TestToggleRecurringMaterializesDoneCopy(t *testing.T) {
	m, path := newTestModel(t)

	// Row 0 is the recurring standup projection.
	m = send(m, "x")

	text := journalText(t, path)
	if !strings.Contains(text, "- [x] ↺ standup\n") {
		t.Errorf("toggling a recurring projection should add a done copy:\n%s", text)
	}
	if !strings.Contains(text, "- [ ] standup @every-weekday #work\n") {
		t.Error("the recurring template must stay untouched")
	}
	if len(m.session.Projected) != 1 {
		t.Errorf("projection should be suppressed, still see %d", len(m.session.Projected))
	}
}

func TestEditKeyRewritesEntry(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "j", "j", "e")
	if m.inputMode != inputEdit {
		t.Fatalf("inputMode = %v, want edit prompt", m.inputMode)
	}
	if m.input.Value() != "alpha #work" {
		t.Fatalf("edit prompt should hold the entry content, got %q", m.input.Value())
	}
	m.input.SetValue("alpha revised #work")
	m = send(m, "enter")

	if !strings.Contains(journalText(t, path), "- [ ] alpha revised #work\n") {
		t.Error("edit not written")
	}
	m = send(m, "u")
	if !strings.Contains(journalText(t, path), "- [ ] alpha #work\n") {
		t.Error("undo should restore the original content")
	}
}

func TestEditProjectionRefused(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, "e")

	if m.inputMode != inputNone {
		t.Error("projections must not open the edit prompt")
	}
	if m.session.Status() == "" {
		t.Error("refusal should explain itself in the status line")
	}
}

func TestDeleteAndUndo(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "j", "j", "d")
	if strings.Contains(journalText(t, path), "alpha") {
		t.Fatal("delete should remove the line")
	}
	m = send(m, "u")
	if !strings.Contains(journalText(t, path), "- [ ] alpha #work\n") {
		t.Error("undo should restore the deleted entry")
	}
}

func TestYankPasteBelow(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "j", "j", "y", "p")

	text := journalText(t, path)
	if strings.Count(text, "alpha #work") != 2 {
		t.Errorf("paste should duplicate the yanked entry:\n%s", text)
	}
	m = send(m, "u")
	if strings.Count(journalText(t, path), "alpha #work") != 1 {
		t.Error("undo should remove the pasted copy")
	}
}

func TestCycleEntryTypeKey(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "j", "j", "c")

	if !strings.Contains(journalText(t, path), "- alpha #work\n") {
		t.Errorf("cycling a task should make it a note:\n%s", journalText(t, path))
	}

	m = send(m, "u")
	if !strings.Contains(journalText(t, path), "- [ ] alpha #work\n") {
		t.Errorf("undo should restore the task kind:\n%s", journalText(t, path))
	}
}

func TestDayNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, "h")
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !m.session.CurrentDate.Equal(want) {
		t.Errorf("h should move to the previous day, got %v", m.session.CurrentDate)
	}
	m = send(m, "l", "l")
	m = send(m, "t")
	if !m.session.CurrentDate.Equal(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("t should jump to today, got %v", m.session.CurrentDate)
	}
}

func TestFilterPromptAndReturn(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, "/", "#home", "enter")
	if !m.session.InFilterView() {
		t.Fatal("committing a filter query should open the filter view")
	}
	if got := len(m.session.Filter.Entries); got != 1 {
		t.Fatalf("#home should match 1 entry, got %d", got)
	}

	m = send(m, "esc")
	if m.session.InFilterView() {
		t.Fatal("esc should return to the daily view")
	}

	// Tab flips back to the remembered query.
	m = send(m, "tab")
	if !m.session.InFilterView() || m.session.Filter.Query != "#home" {
		t.Error("tab should reopen the last filter")
	}
}

func TestFavoriteTagDigitFilters(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, "1")

	if !m.session.InFilterView() {
		t.Fatal("a bound digit should open a tag filter")
	}
	if m.session.Filter.Query != "#work" {
		t.Errorf("query = %q, want #work", m.session.Filter.Query)
	}
}

func TestFilterQuickAddGoesToToday(t *testing.T) {
	m, path := newTestModel(t)

	m = send(m, "/", "#work", "enter")
	before := len(m.session.Filter.Entries)
	m = send(m, "enter", "new from filter #work", "enter")

	if !strings.Contains(journalText(t, path), "- [ ] new from filter #work\n") {
		t.Error("quick add should append to the journal")
	}
	if len(m.session.Filter.Entries) != before+1 {
		t.Error("quick add should extend the live result list")
	}
	if !m.session.InFilterView() {
		t.Error("quick add must stay in the filter view")
	}
}

func TestHideCompletedToggle(t *testing.T) {
	m, _ := newTestModel(t)

	visible := m.session.VisibleEntryCount()
	m = send(m, ".")
	if got := m.session.VisibleEntryCount(); got != visible-1 {
		t.Errorf("hiding completed should drop beta, got %d visible", got)
	}
	m = send(m, ".")
	if got := m.session.VisibleEntryCount(); got != visible {
		t.Errorf("toggle back should restore %d visible, got %d", visible, got)
	}
}

func TestTagHintTabCompletes(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, "enter", "pay rent #w")
	if m.hint == nil || !m.hint.Active() {
		t.Fatal("typing #w should surface the work tag hint")
	}
	m = send(m, "tab")
	if m.input.Value() != "pay rent #work" {
		t.Errorf("tab should apply the hint, got %q", m.input.Value())
	}
}

func TestViewRendersDay(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 80
	m.height = 24

	out := m.View()
	for _, want := range []string{"Monday, March 2 2026", "alpha", "standup", "team sync"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(m, "?")
	if !m.showHelp {
		t.Fatal("? should open the help overlay")
	}
	if !strings.Contains(m.View(), "undo / redo") {
		t.Error("help overlay should list the key table")
	}
	m = send(m, "j")
	if m.showHelp {
		t.Error("any key should close the help overlay")
	}
	if m.session.Daily.Selected != 0 {
		t.Error("the closing key must not also move the cursor")
	}
}
