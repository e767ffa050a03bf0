package tui

import (
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/daybook/internal/actions"
	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/hints"
)

// Update handles all TUI events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case calendarMsg:
		m.events = msg.store
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.inputMode != inputNone {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Keys shared by the daily and filter views.
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "g", "home":
		m.setCursor(0)
		return m, nil

	case "G", "end":
		m.setCursor(m.cursorMax())
		return m, nil

	case "x", " ":
		if err := m.session.ToggleSelected(); err != nil {
			m.status("", err)
		}
		m.refreshDayInfo()
		return m, nil

	case "e":
		m.openEdit()
		return m, nil

	case "d":
		m.deleteSelected()
		return m, nil

	case "u":
		m.status(m.executor.Undo(m.session))
		m.afterMutation()
		return m, nil

	case "U":
		m.status(m.executor.Redo(m.session))
		m.afterMutation()
		return m, nil

	case "y":
		if sel, ok := m.selectedEntry(); ok {
			m.session.Yank(sel)
			m.session.SetStatus("Yanked entry")
		}
		return m, nil

	case "p":
		m.pasteClipboard()
		return m, nil

	case "c":
		m.cycleSelected()
		return m, nil

	case "-":
		m.tagSelected(func(t actions.TagTarget) actions.Action {
			return &actions.RemoveLastTag{Targets: []actions.TagTarget{t}}
		})
		return m, nil

	case "_":
		m.tagSelected(func(t actions.TagTarget) actions.Action {
			return &actions.RemoveAllTags{Targets: []actions.TagTarget{t}}
		})
		return m, nil

	case ".":
		m.session.HideCompleted = !m.session.HideCompleted
		m.session.ClampDailySelection()
		return m, nil

	case "/":
		m.openFilterPrompt()
		return m, nil
	}

	// A digit bound to a favorite tag filters on it directly.
	if tag, ok := m.cfg.FavoriteTags[key]; ok {
		query := "#" + tag
		if err := m.session.EnterFilter(query); err != nil {
			m.status("", err)
			return m, nil
		}
		m.lastQuery = query
		return m, nil
	}

	if m.session.InFilterView() {
		return m.updateFilterKeys(key)
	}
	return m.updateDailyKeys(key)
}

func (m Model) updateDailyKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		m.openCreate(len(m.session.Lines), domain.KindTask)

	case "o":
		m.openCreate(m.createIndexBelow(), domain.KindTask)

	case "O":
		m.openCreate(m.createIndexAbove(), domain.KindTask)

	case "h", "[":
		m.shiftDay(-1)

	case "l", "]":
		m.shiftDay(1)

	case "t":
		if err := m.session.SetDate(m.session.Today()); err != nil {
			m.status("", err)
		}
		m.refreshDayInfo()

	case "tab":
		if m.lastQuery != "" {
			if err := m.session.EnterFilter(m.lastQuery); err != nil {
				m.status("", err)
			}
		}
	}
	return m, nil
}

func (m Model) updateFilterKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "tab":
		if m.session.Filter != nil {
			m.lastQuery = m.session.Filter.Query
		}
		m.session.ExitFilter()

	case "r":
		if err := m.session.RefreshFilter(); err != nil {
			m.status("", err)
		}

	case "enter":
		// Quick add goes to today regardless of the filtered dates.
		m.openCreate(0, domain.KindTask)
	}
	return m, nil
}

// moveCursor moves the selection of the active view by delta, clamped.
func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor() + delta)
}

func (m *Model) cursor() int {
	if f := m.session.Filter; f != nil {
		return f.Selected
	}
	return m.session.Daily.Selected
}

func (m *Model) cursorMax() int {
	if f := m.session.Filter; f != nil {
		return len(f.Entries) - 1
	}
	return m.session.VisibleEntryCount() - 1
}

func (m *Model) setCursor(pos int) {
	if max := m.cursorMax(); pos > max {
		pos = max
	}
	if pos < 0 {
		pos = 0
	}
	if f := m.session.Filter; f != nil {
		f.Selected = pos
		return
	}
	m.session.Daily.Selected = pos
}

// createIndexBelow returns the line index for a new entry below the
// cursor: after the selected local entry, or at the day's end when the
// cursor is on a projection.
func (m *Model) createIndexBelow() int {
	if sel, ok := m.selectedEntry(); ok {
		if l, ok := sel.Location.(domain.DailyLocation); ok {
			return l.LineIndex + 1
		}
	}
	return len(m.session.Lines)
}

// createIndexAbove mirrors createIndexBelow for insertion above the
// cursor. Above a projection means before the day's first own entry.
func (m *Model) createIndexAbove() int {
	if sel, ok := m.selectedEntry(); ok {
		if l, ok := sel.Location.(domain.DailyLocation); ok {
			return l.LineIndex
		}
	}
	if idx := m.session.EntryIndices; len(idx) > 0 {
		return idx[0]
	}
	return len(m.session.Lines)
}

func (m *Model) shiftDay(days int) {
	if err := m.session.SetDate(m.session.CurrentDate.AddDate(0, 0, days)); err != nil {
		m.status("", err)
		return
	}
	m.refreshDayInfo()
}

// afterMutation resyncs derived state after an undo or redo, which can
// touch any day of the journal.
func (m *Model) afterMutation() {
	m.session.ClampDailySelection()
	m.session.ClampFilterSelection()
	m.refreshDayInfo()
}

func (m *Model) deleteSelected() {
	sel, ok := m.selectedEntry()
	if !ok {
		return
	}
	m.status(m.executor.Execute(actions.NewDelete(sel.Location), m.session))
	m.afterMutation()
}

func (m *Model) cycleSelected() {
	sel, ok := m.selectedEntry()
	if !ok {
		return
	}
	// Undo restores the kind recorded in the file, not the view copy.
	date, idx := domain.Resolve(sel.Location, m.session.CurrentDate)
	m.status(m.executor.Execute(actions.NewCycle(actions.CycleTarget{
		Location:          sel.Location,
		OriginalKind:      m.session.Store.EntryKindAt(date, idx),
		OriginalCompleted: sel.Entry.Completed,
	}), m.session))
}

func (m *Model) tagSelected(build func(actions.TagTarget) actions.Action) {
	sel, ok := m.selectedEntry()
	if !ok {
		return
	}
	m.status(m.executor.Execute(build(actions.TagTarget{
		Location:        sel.Location,
		OriginalContent: sel.Entry.Content,
	}), m.session))
}

// pasteClipboard inserts the yanked entries below the cursor in the
// daily view as one undo step.
func (m *Model) pasteClipboard() {
	if len(m.session.Clipboard) == 0 {
		m.session.SetStatus("Clipboard is empty")
		return
	}
	if m.session.InFilterView() {
		m.session.SetStatus("Paste works in the daily view")
		return
	}
	at := m.createIndexBelow()
	entries := make([]domain.EntryData, len(m.session.Clipboard))
	copy(entries, m.session.Clipboard)

	lines := m.session.Lines
	tail := make([]domain.Line, len(lines[at:]))
	copy(tail, lines[at:])
	lines = lines[:at:at]
	for _, e := range entries {
		lines = append(lines, &domain.EntryLine{EntryData: e})
	}
	m.session.Lines = append(lines, tail...)
	if err := m.session.Save(); err != nil {
		m.status("", err)
		return
	}
	m.status(m.executor.Execute(&actions.PasteEntries{Target: actions.PasteTarget{
		Date:           m.session.CurrentDate,
		StartLineIndex: at,
		Entries:        entries,
	}}, m.session))
	if err := m.session.RefreshProjected(); err != nil {
		m.status("", err)
	}
	if vis, ok := m.session.VisibleIndexOfLine(at); ok {
		m.session.Daily.Selected = vis
	}
	m.refreshDayInfo()
}

// openCreate starts the new-entry prompt. In the daily view at is the
// line index to insert at; in the filter view it is ignored and the
// entry is appended to today.
func (m *Model) openCreate(at int, kind domain.EntryKind) {
	m.inputMode = inputCreate
	m.createAt = at
	m.createKind = kind
	m.startInput("")
}

func (m *Model) openEdit() {
	sel, ok := m.selectedEntry()
	if !ok {
		return
	}
	if _, ok := sel.Location.(domain.ProjectedLocation); ok {
		m.session.SetStatus("Projections are edited on their source day")
		return
	}
	m.inputMode = inputEdit
	m.editTarget = sel.Location
	m.editOrig = sel.Entry.Content
	m.startInput(sel.Entry.Content)
}

func (m *Model) openFilterPrompt() {
	m.inputMode = inputFilter
	initial := ""
	if m.session.Filter != nil {
		initial = m.session.Filter.Query
	}
	m.startInput(initial)
}

func (m *Model) startInput(value string) {
	if tags, err := m.session.Store.CollectTags(); err == nil {
		m.knownTags = tags
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.hint = nil
	m.session.SetStatus("")
}

func (m *Model) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.SetValue("")
	m.hint = nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closeInput()
		return m, nil

	case "enter":
		m.commitInput(false)
		return m, nil

	case "tab":
		if m.hint != nil && m.hint.Active() {
			m.input.SetValue(m.hint.Apply(m.input.Value()))
			m.input.CursorEnd()
			m.refreshHints()
			return m, nil
		}
		if m.inputMode == inputCreate {
			// Commit and keep the prompt open for the next entry.
			m.commitInput(true)
		}
		return m, nil

	case "shift+tab":
		if m.inputMode == inputCreate {
			m.createKind = m.createKind.Cycle()
		}
		return m, nil

	case "ctrl+n", "down":
		if m.hint != nil {
			m.hint.Next()
		}
		return m, nil

	case "ctrl+p", "up":
		if m.hint != nil {
			m.hint.Prev()
		}
		return m, nil

	case "backspace":
		if m.input.Value() == "" {
			m.closeInput()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshHints()
	return m, cmd
}

func (m *Model) refreshHints() {
	mode := hints.ModeEntry
	if m.inputMode == inputFilter {
		mode = hints.ModeFilter
	}
	h := hints.Compute(m.input.Value(), mode, m.knownTags, m.savedFilterNames())
	if h.Active() {
		m.hint = &h
		return
	}
	m.hint = nil
}

func (m *Model) savedFilterNames() []string {
	names := make([]string, 0, len(m.cfg.SavedFilters))
	for name := range m.cfg.SavedFilters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Model) commitInput(keepOpen bool) {
	switch m.inputMode {
	case inputCreate:
		m.commitCreate(keepOpen)
	case inputEdit:
		m.commitEdit()
	case inputFilter:
		m.commitFilter()
	}
}

// commitCreate writes the new entry and records the creation for undo.
func (m *Model) commitCreate(keepOpen bool) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		m.closeInput()
		return
	}
	today := m.session.Today()
	content = domain.ExpandFavoriteTags(content, m.cfg.FavoriteTags)
	content = domain.NormalizeRelativeDates(content, today)
	data := domain.EntryData{Kind: m.createKind, Content: content}

	if m.session.InFilterView() {
		m.commitQuickAdd(data, today)
		m.closeInput()
		return
	}

	at := m.createAt
	if at > len(m.session.Lines) {
		at = len(m.session.Lines)
	}
	lines := m.session.Lines
	tail := make([]domain.Line, len(lines[at:]))
	copy(tail, lines[at:])
	lines = append(lines[:at:at], &domain.EntryLine{EntryData: data})
	m.session.Lines = append(lines, tail...)
	if err := m.session.Save(); err != nil {
		m.status("", err)
		m.closeInput()
		return
	}
	m.status(m.executor.Execute(&actions.CreateEntry{Target: actions.CreateTarget{
		Date:      m.session.CurrentDate,
		LineIndex: at,
		Entry:     data,
	}}, m.session))
	if err := m.session.RefreshProjected(); err != nil {
		m.status("", err)
	}
	if vis, ok := m.session.VisibleIndexOfLine(at); ok {
		m.session.Daily.Selected = vis
	}
	m.refreshDayInfo()

	if keepOpen {
		m.createAt = at + 1
		m.input.SetValue("")
		m.hint = nil
		return
	}
	m.closeInput()
}

// commitQuickAdd appends an entry to today from inside the filter view
// and mirrors it into the live result list.
func (m *Model) commitQuickAdd(data domain.EntryData, today time.Time) {
	idx, err := m.session.Store.AppendEntry(today, data)
	if err != nil {
		m.status("", err)
		return
	}
	if f := m.session.Filter; f != nil {
		f.Entries = append(f.Entries, domain.NewEntry(data, today, idx, domain.SourceLocal))
	}
	if today.Equal(m.session.CurrentDate) {
		if err := m.session.ReloadDay(); err != nil {
			m.status("", err)
			return
		}
	}
	m.status(m.executor.Execute(&actions.CreateEntry{Target: actions.CreateTarget{
		Date:           today,
		LineIndex:      idx,
		Entry:          data,
		FilterQuickAdd: true,
	}}, m.session))
	m.refreshDayInfo()
}

func (m *Model) commitEdit() {
	content := strings.TrimSpace(m.input.Value())
	if content == "" || content == m.editOrig {
		m.closeInput()
		return
	}
	content = domain.ExpandFavoriteTags(content, m.cfg.FavoriteTags)
	content = domain.NormalizeRelativeDates(content, m.session.Today())
	if err := m.session.SetEntryContent(m.editTarget, content); err != nil {
		m.status("", err)
		m.closeInput()
		return
	}
	m.status(m.executor.Execute(&actions.EditEntry{Target: actions.EditTarget{
		Location:        m.editTarget,
		OriginalContent: m.editOrig,
		NewContent:      content,
	}}, m.session))
	m.closeInput()
}

func (m *Model) commitFilter() {
	query := strings.TrimSpace(m.input.Value())
	m.closeInput()
	if query == "" {
		return
	}
	expanded, unknown := domain.ExpandSavedFilters(query, m.cfg.SavedFilters)
	if len(unknown) > 0 {
		m.session.SetStatus("Unknown saved filter: " + strings.Join(unknown, " "))
		return
	}
	if err := m.session.EnterFilter(expanded); err != nil {
		m.status("", err)
		return
	}
	m.lastQuery = expanded
	if f := m.session.Filter; f != nil && !f.Filter.Valid() {
		m.session.SetStatus("Invalid filter: " + strings.Join(f.Filter.InvalidTokens, " "))
	}
}
