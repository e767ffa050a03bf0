package tui

import (
	"fmt"
	"strings"

	"github.com/xvierd/daybook/internal/adapters/calendar"
	"github.com/xvierd/daybook/internal/domain"
)

// View renders the active view: the open day or the filter results,
// followed by the prompt or status line and the key help.
func (m Model) View() string {
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	if m.session.InFilterView() {
		m.renderFilter(&b)
	} else {
		m.renderDaily(&b)
	}
	b.WriteString("\n")
	m.renderFooter(&b)
	return b.String()
}

func (m Model) renderDaily(b *strings.Builder) {
	today := m.session.Today()
	date := m.session.CurrentDate

	title := titleStyle.Render(date.Format("Monday, January 2 2006"))
	if date.Equal(domain.DayOf(today)) {
		title += " " + todayBadgeStyle.Render("· today")
	}
	b.WriteString(title + "\n")
	b.WriteString(m.weekStrip() + "\n\n")

	if m.events != nil {
		for _, ev := range m.events.EventsOn(date) {
			b.WriteString("  " + calEventStyle.Render(formatCalendarEvent(ev)) + "\n")
		}
	}

	row := 0
	for _, entry := range m.session.Projected {
		if !m.session.EntryVisible(entry.EntryData) {
			continue
		}
		line := projectedStyle.Render(projectionMark(entry.Source)) + " " + m.entryText(entry.EntryData)
		b.WriteString(m.renderRow(line, row) + "\n")
		row++
	}

	for _, idx := range m.session.EntryIndices {
		entry := domain.EntryAt(m.session.Lines, idx)
		if entry == nil || !m.session.EntryVisible(entry.EntryData) {
			continue
		}
		b.WriteString(m.renderRow(m.entryText(entry.EntryData), row) + "\n")
		row++
	}

	if row == 0 {
		b.WriteString(helpStyle.Render("  No entries. Press enter to add one.") + "\n")
	}
}

func (m Model) renderFilter(b *strings.Builder) {
	f := m.session.Filter
	b.WriteString(titleStyle.Render("Filter: "+f.Query) + "\n\n")

	for i, entry := range f.Entries {
		line := helpStyle.Render(entry.SourceDate.Format("01/02")) + " " + m.entryText(entry.EntryData)
		if i == f.Selected {
			line = selectedStyle.Render("▌") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if len(f.Entries) == 0 {
		b.WriteString(helpStyle.Render("  No matches.") + "\n")
	}
}

// renderRow adds the selection marker to a daily row.
func (m Model) renderRow(line string, row int) string {
	if m.inputMode == inputNone && row == m.session.Daily.Selected {
		return selectedStyle.Render("▌") + " " + line
	}
	return "  " + line
}

// entryText renders one entry with its prefix glyph, kind styling and
// highlighted tags.
func (m Model) entryText(e domain.EntryData) string {
	content := domain.TagRE.ReplaceAllStringFunc(e.Content, func(tag string) string {
		return tagStyle.Render(tag)
	})
	switch {
	case e.Kind == domain.KindTask && e.Completed:
		return completedStyle.Render("[x] " + e.Content)
	case e.Kind == domain.KindTask:
		return taskStyle.Render("[ ] ") + content
	case e.Kind == domain.KindEvent:
		return eventStyle.Render("◆ ") + content
	default:
		return noteStyle.Render("· ") + content
	}
}

func projectionMark(source domain.SourceKind) string {
	if source == domain.SourceRecurring {
		return "↺"
	}
	return "→"
}

// weekStrip renders Mon..Sun around the open day with activity markers.
func (m Model) weekStrip() string {
	start, _ := weekBounds(m.session.CurrentDate)
	var cells []string
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		label := day.Format("Mon 2")
		info := m.dayInfo[day]
		switch {
		case info.HasIncompleteTasks:
			label += stripMarkStyle.Render("•")
		case info.HasEntries || info.HasEvents:
			label += stripStyle.Render("·")
		default:
			label += " "
		}
		if day.Equal(m.session.CurrentDate) {
			label = titleStyle.Render(label)
		} else {
			label = stripStyle.Render(label)
		}
		cells = append(cells, label)
	}
	return strings.Join(cells, "  ")
}

// formatCalendarEvent renders an imported event as "HH:MM title", or just
// the title for all-day events.
func formatCalendarEvent(ev calendar.Event) string {
	if ev.AllDay {
		return "◆ " + ev.Title
	}
	return "◆ " + ev.Start.Local().Format("15:04") + " " + ev.Title
}

func (m Model) renderFooter(b *strings.Builder) {
	if m.inputMode != inputNone {
		b.WriteString(m.promptView())
		return
	}
	if status := m.session.Status(); status != "" {
		b.WriteString(statusStyle.Render(status) + "\n")
	}
	b.WriteString(helpStyle.Render(m.keyHints()))
}

func (m Model) promptView() string {
	label := ""
	switch m.inputMode {
	case inputCreate:
		label = "New " + m.createKind.String()
	case inputEdit:
		label = "Edit"
	case inputFilter:
		label = "Filter"
	}
	out := promptStyle.Render(label+":") + " " + m.input.View() + "\n"
	if m.hint != nil && m.hint.Active() {
		var items []string
		for i, item := range m.hint.Items {
			if i == m.hint.Selected {
				items = append(items, hintSelStyle.Render(item))
			} else {
				items = append(items, hintStyle.Render(item))
			}
			if i >= 7 {
				break
			}
		}
		out += "  " + strings.Join(items, "  ") + "\n"
	}
	return out
}

func (m Model) keyHints() string {
	if m.session.InFilterView() {
		return "enter add · e edit · x toggle · d delete · r refresh · esc back · ? help"
	}
	return "enter add · e edit · x toggle · h/l days · / filter · u undo · ? help"
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"enter", "new entry at the bottom"},
		{"o / O", "new entry below / above the cursor"},
		{"e", "edit entry"},
		{"x", "toggle task completion"},
		{"d", "delete entry"},
		{"c", "cycle entry type"},
		{"y / p", "yank / paste"},
		{"- / _", "remove last / all tags"},
		{"u / U", "undo / redo"},
		{"h l [ ]", "previous / next day"},
		{"t", "jump to today"},
		{"/", "filter entries"},
		{"tab", "toggle daily and filter view"},
		{"1-9", "filter on a favorite tag"},
		{".", "hide completed tasks"},
		{"g / G", "first / last entry"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", r[0], helpStyle.Render(r[1])))
	}
	b.WriteString("\n" + helpStyle.Render("press any key to close"))
	return b.String()
}
