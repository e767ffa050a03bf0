package actions

import (
	"sort"
	"time"

	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/session"
)

// DeleteEntries removes one or more addressed entries as a single undo
// step. Targets are processed in descending line order so earlier deletes
// cannot shift the indexes of later ones.
type DeleteEntries struct {
	Targets []domain.EntryLocation
}

// NewDelete builds a batch delete action.
func NewDelete(targets ...domain.EntryLocation) *DeleteEntries {
	return &DeleteEntries{Targets: targets}
}

type deletedEntry struct {
	date      time.Time
	lineIndex int
	entry     domain.Entry
}

func (a *DeleteEntries) Apply(s *session.Session) (Action, error) {
	sort.SliceStable(a.Targets, func(i, j int) bool {
		return domain.LocationIndex(a.Targets[i]) > domain.LocationIndex(a.Targets[j])
	})

	var deleted []deletedEntry
	for _, target := range a.Targets {
		d, ok, err := deleteAt(s, target)
		if err != nil {
			return nil, err
		}
		if ok {
			deleted = append(deleted, d)
		}
	}

	// Filter-list rows are removed after all storage deletes, in
	// descending list order, so earlier removals cannot shift the
	// positions of later ones.
	if s.Filter != nil {
		var listIndexes []int
		for _, target := range a.Targets {
			if fl, ok := target.(domain.FilterLocation); ok {
				listIndexes = append(listIndexes, fl.Index)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(listIndexes)))
		for _, idx := range listIndexes {
			if idx < len(s.Filter.Entries) {
				s.Filter.Entries = append(s.Filter.Entries[:idx], s.Filter.Entries[idx+1:]...)
			}
		}
		s.ClampFilterSelection()
	}

	// Ascending order for restore.
	for i, j := 0, len(deleted)-1; i < j; i, j = i+1, j-1 {
		deleted[i], deleted[j] = deleted[j], deleted[i]
	}

	return &RestoreEntries{entries: deleted}, nil
}

func (a *DeleteEntries) Description() Description {
	n := len(a.Targets)
	return DescribeAlways(countedDesc(n, "Deleted"), countedDesc(n, "Restored"))
}

// deleteAt removes one entry and reports what was removed.
func deleteAt(s *session.Session, target domain.EntryLocation) (deletedEntry, bool, error) {
	switch loc := target.(type) {
	case domain.ProjectedLocation:
		if err := s.Store.DeleteEntry(loc.Entry.SourceDate, loc.Entry.LineIndex); err != nil {
			return deletedEntry{}, false, err
		}
		if err := s.RefreshProjected(); err != nil {
			return deletedEntry{}, false, err
		}
		s.ClampDailySelection()
		return deletedEntry{date: loc.Entry.SourceDate, lineIndex: loc.Entry.LineIndex, entry: loc.Entry}, true, nil

	case domain.DailyLocation:
		entry := domain.EntryAt(s.Lines, loc.LineIndex)
		if entry == nil {
			return deletedEntry{}, false, nil
		}
		d := deletedEntry{
			date:      s.CurrentDate,
			lineIndex: loc.LineIndex,
			entry:     domain.NewEntry(entry.EntryData, s.CurrentDate, loc.LineIndex, domain.SourceLocal),
		}
		s.Lines = append(s.Lines[:loc.LineIndex], s.Lines[loc.LineIndex+1:]...)
		if err := s.Save(); err != nil {
			return deletedEntry{}, false, err
		}
		s.ClampDailySelection()
		// Deleting a done-today marker resurfaces its recurring projection.
		if err := s.RefreshProjected(); err != nil {
			return deletedEntry{}, false, err
		}
		return d, true, nil

	case domain.FilterLocation:
		if err := s.Store.DeleteEntry(loc.Entry.SourceDate, loc.Entry.LineIndex); err != nil {
			return deletedEntry{}, false, err
		}
		// Later rows of the same day slide up one line.
		if s.Filter != nil {
			for i := range s.Filter.Entries {
				fe := &s.Filter.Entries[i]
				if fe.SourceDate.Equal(loc.Entry.SourceDate) && fe.LineIndex > loc.Entry.LineIndex {
					fe.LineIndex--
				}
			}
		}
		if loc.Entry.SourceDate.Equal(s.CurrentDate) {
			if err := s.ReloadDay(); err != nil {
				return deletedEntry{}, false, err
			}
		}
		return deletedEntry{date: loc.Entry.SourceDate, lineIndex: loc.Entry.LineIndex, entry: loc.Entry}, true, nil
	}
	return deletedEntry{}, false, nil
}

// RestoreEntries is the inverse of DeleteEntries: it splices the deleted
// entries back at their original positions. Insertions run in ascending
// line order with the position offset by the number of entries already
// put back, capped at the section length.
type RestoreEntries struct {
	entries []deletedEntry
}

func (a *RestoreEntries) Apply(s *session.Session) (Action, error) {
	sort.SliceStable(a.entries, func(i, j int) bool {
		return a.entries[i].lineIndex < a.entries[j].lineIndex
	})

	var deleteTargets []domain.EntryLocation
	var err error
	if s.Filter == nil {
		deleteTargets, err = a.restoreIntoDaily(s)
	} else {
		deleteTargets, err = a.restoreIntoFilter(s)
	}
	if err != nil {
		return nil, err
	}

	return &DeleteEntries{Targets: deleteTargets}, nil
}

func (a *RestoreEntries) restoreIntoDaily(s *session.Session) ([]domain.EntryLocation, error) {
	var targets []domain.EntryLocation

	var currentDay, otherDays []deletedEntry
	for _, d := range a.entries {
		if d.date.Equal(s.CurrentDate) {
			currentDay = append(currentDay, d)
		} else {
			otherDays = append(otherDays, d)
		}
	}

	if len(currentDay) > 0 {
		anyCompleted := false
		lastInsert := 0
		for i, d := range currentDay {
			insertIdx := d.lineIndex + i
			if insertIdx > len(s.Lines) {
				insertIdx = len(s.Lines)
			}
			if d.entry.Kind == domain.KindTask && d.entry.Completed {
				anyCompleted = true
			}
			targets = append(targets, domain.DailyLocation{LineIndex: insertIdx})
			line := &domain.EntryLine{EntryData: d.entry.EntryData}
			s.Lines = append(s.Lines[:insertIdx], append([]domain.Line{line}, s.Lines[insertIdx:]...)...)
			lastInsert = insertIdx
		}
		// A restored completed task must be visible, or the restore
		// would look like a no-op.
		if s.HideCompleted && anyCompleted {
			s.HideCompleted = false
		}
		if visible, ok := s.VisibleIndexOfLine(lastInsert); ok {
			s.Daily.Selected = visible
		}
		if err := s.Save(); err != nil {
			return nil, err
		}
	}

	if len(otherDays) > 0 {
		byDate := groupByDate(otherDays)
		for _, date := range sortedDates(byDate) {
			lines, err := s.Store.LoadDayLines(date)
			if err != nil {
				return nil, err
			}
			for i, d := range byDate[date] {
				insertIdx := d.lineIndex + i
				if insertIdx > len(lines) {
					insertIdx = len(lines)
				}
				line := &domain.EntryLine{EntryData: d.entry.EntryData}
				lines = append(lines[:insertIdx], append([]domain.Line{line}, lines[insertIdx:]...)...)
				restored := domain.NewEntry(d.entry.EntryData, date, insertIdx, d.entry.Source)
				targets = append(targets, domain.ProjectedLocation{Entry: restored})
			}
			if err := s.Store.SaveDayLines(date, lines); err != nil {
				return nil, err
			}
		}
		if err := s.RefreshProjected(); err != nil {
			return nil, err
		}
	}

	return targets, nil
}

func (a *RestoreEntries) restoreIntoFilter(s *session.Session) ([]domain.EntryLocation, error) {
	var targets []domain.EntryLocation

	byDate := groupByDate(a.entries)
	for _, date := range sortedDates(byDate) {
		lines, err := s.Store.LoadDayLines(date)
		if err != nil {
			return nil, err
		}
		for i, d := range byDate[date] {
			insertIdx := d.lineIndex + i
			if insertIdx > len(lines) {
				insertIdx = len(lines)
			}
			line := &domain.EntryLine{EntryData: d.entry.EntryData}
			lines = append(lines[:insertIdx], append([]domain.Line{line}, lines[insertIdx:]...)...)

			restored := domain.NewEntry(d.entry.EntryData, date, insertIdx, domain.SourceLocal)
			listIndex := len(s.Filter.Entries)
			s.Filter.Entries = append(s.Filter.Entries, restored)
			s.Filter.Selected = listIndex
			targets = append(targets, domain.FilterLocation{Index: listIndex, Entry: restored})
		}
		if err := s.Store.SaveDayLines(date, lines); err != nil {
			return nil, err
		}
		if date.Equal(s.CurrentDate) {
			if err := s.ReloadDay(); err != nil {
				return nil, err
			}
		}
	}

	return targets, nil
}

func (a *RestoreEntries) Description() Description {
	n := len(a.entries)
	return DescribeAlways(countedDesc(n, "Restored"), countedDesc(n, "Deleted"))
}

func groupByDate(entries []deletedEntry) map[time.Time][]deletedEntry {
	byDate := make(map[time.Time][]deletedEntry)
	for _, d := range entries {
		byDate[d.date] = append(byDate[d.date], d)
	}
	return byDate
}

func sortedDates(byDate map[time.Time][]deletedEntry) []time.Time {
	dates := make([]time.Time, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
