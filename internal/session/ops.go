package session

import (
	"github.com/xvierd/daybook/internal/domain"
)

// Selected describes the entry under the cursor: where it lives and what
// it currently holds.
type Selected struct {
	Location domain.EntryLocation
	Entry    domain.EntryData
}

// SelectedEntry resolves the cursor position of the active view to an
// entry location. It returns false when the cursor sits on nothing, which
// happens on empty days and empty filter results.
func (s *Session) SelectedEntry() (Selected, bool) {
	if s.Filter != nil {
		if s.Filter.Selected < 0 || s.Filter.Selected >= len(s.Filter.Entries) {
			return Selected{}, false
		}
		entry := s.Filter.Entries[s.Filter.Selected]
		return Selected{
			Location: domain.FilterLocation{Index: s.Filter.Selected, Entry: entry},
			Entry:    entry.EntryData,
		}, true
	}

	// Projected entries are listed before the day's own entries.
	pos := 0
	for _, entry := range s.Projected {
		if !s.EntryVisible(entry.EntryData) {
			continue
		}
		if pos == s.Daily.Selected {
			return Selected{
				Location: domain.ProjectedLocation{Entry: entry},
				Entry:    entry.EntryData,
			}, true
		}
		pos++
	}
	for _, lineIdx := range s.EntryIndices {
		entry := domain.EntryAt(s.Lines, lineIdx)
		if entry == nil || !s.EntryVisible(entry.EntryData) {
			continue
		}
		if pos == s.Daily.Selected {
			return Selected{
				Location: domain.DailyLocation{LineIndex: lineIdx},
				Entry:    entry.EntryData,
			}, true
		}
		pos++
	}
	return Selected{}, false
}

// ToggleEntry flips task completion at a location. Toggling a recurring
// projection does not touch the template: it materializes a completed
// copy of the content, rule tag stripped and marked with the done-today
// prefix, in the viewed day's own section, which suppresses the
// projection for that date. Deleting the copy resurfaces it.
func (s *Session) ToggleEntry(loc domain.EntryLocation) error {
	switch l := loc.(type) {
	case domain.DailyLocation:
		entry := domain.EntryAt(s.Lines, l.LineIndex)
		if entry == nil || entry.Kind != domain.KindTask {
			return nil
		}
		entry.ToggleComplete()
		return s.Save()

	case domain.ProjectedLocation:
		if l.Entry.Kind != domain.KindTask {
			return nil
		}
		if l.Entry.Source == domain.SourceRecurring {
			return s.materializeDoneToday(l.Entry)
		}
		if err := s.Store.ToggleComplete(l.Entry.SourceDate, l.Entry.LineIndex); err != nil {
			return err
		}
		return s.RefreshProjected()

	case domain.FilterLocation:
		if l.Entry.Kind != domain.KindTask {
			return nil
		}
		if err := s.Store.ToggleComplete(l.Entry.SourceDate, l.Entry.LineIndex); err != nil {
			return err
		}
		if s.Filter != nil && l.Index >= 0 && l.Index < len(s.Filter.Entries) {
			row := &s.Filter.Entries[l.Index]
			row.Completed = !row.Completed
		}
		if l.Entry.SourceDate.Equal(s.CurrentDate) {
			return s.ReloadDay()
		}
		return nil
	}
	return nil
}

// ToggleSelected toggles the entry under the cursor.
func (s *Session) ToggleSelected() error {
	sel, ok := s.SelectedEntry()
	if !ok {
		return nil
	}
	return s.ToggleEntry(sel.Location)
}

func (s *Session) materializeDoneToday(entry domain.Entry) error {
	marker := domain.DoneTodayMarker(entry.Content)
	s.Lines = append(s.Lines, &domain.EntryLine{EntryData: domain.EntryData{
		Kind:      domain.KindTask,
		Completed: true,
		Content:   marker,
	}})
	if err := s.Save(); err != nil {
		return err
	}
	return s.RefreshProjected()
}

// Yank copies the entries at the given locations into the session
// clipboard. It does not mutate the journal.
func (s *Session) Yank(selections ...Selected) {
	if len(selections) == 0 {
		return
	}
	copied := make([]domain.EntryData, 0, len(selections))
	for _, sel := range selections {
		copied = append(copied, sel.Entry)
	}
	s.Clipboard = copied
}
