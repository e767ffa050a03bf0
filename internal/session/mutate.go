package session

import (
	"github.com/xvierd/daybook/internal/domain"
)

// SetEntryContent writes content to the entry a location points at and
// patches whichever view state mirrors it.
func (s *Session) SetEntryContent(loc domain.EntryLocation, content string) error {
	switch l := loc.(type) {
	case domain.ProjectedLocation:
		if _, err := s.Store.UpdateEntryContent(l.Entry.SourceDate, l.Entry.LineIndex, content); err != nil {
			return err
		}
		return s.RefreshProjected()

	case domain.DailyLocation:
		if entry := domain.EntryAt(s.Lines, l.LineIndex); entry != nil {
			entry.Content = content
			return s.Save()
		}
		return nil

	case domain.FilterLocation:
		if _, err := s.Store.UpdateEntryContent(l.Entry.SourceDate, l.Entry.LineIndex, content); err != nil {
			return err
		}
		if s.Filter != nil && l.Index < len(s.Filter.Entries) {
			s.Filter.Entries[l.Index].Content = content
		}
		if l.Entry.SourceDate.Equal(s.CurrentDate) {
			return s.ReloadDay()
		}
		return nil
	}
	return nil
}

// SetEntryKind forces the kind and completion state of the entry a
// location points at and patches the mirroring view state.
func (s *Session) SetEntryKind(loc domain.EntryLocation, kind domain.EntryKind, completed bool) error {
	if kind != domain.KindTask {
		completed = false
	}
	mutate := func(e *domain.EntryLine) {
		e.Kind = kind
		e.Completed = completed
	}

	switch l := loc.(type) {
	case domain.ProjectedLocation:
		if _, err := s.Store.MutateEntry(l.Entry.SourceDate, l.Entry.LineIndex, mutate); err != nil {
			return err
		}
		s.patchProjected(l.Entry, func(e *domain.Entry) {
			e.Kind = kind
			e.Completed = completed
		})
		return nil

	case domain.DailyLocation:
		if entry := domain.EntryAt(s.Lines, l.LineIndex); entry != nil {
			mutate(entry)
			return s.Save()
		}
		return nil

	case domain.FilterLocation:
		if _, err := s.Store.MutateEntry(l.Entry.SourceDate, l.Entry.LineIndex, mutate); err != nil {
			return err
		}
		if s.Filter != nil && l.Index < len(s.Filter.Entries) {
			s.Filter.Entries[l.Index].Kind = kind
			s.Filter.Entries[l.Index].Completed = completed
		}
		if l.Entry.SourceDate.Equal(s.CurrentDate) {
			return s.ReloadDay()
		}
		return nil
	}
	return nil
}

// CycleEntryKind advances the kind of the entry a location points at and
// patches the mirroring view state.
func (s *Session) CycleEntryKind(loc domain.EntryLocation) error {
	switch l := loc.(type) {
	case domain.ProjectedLocation:
		kind, ok, err := s.Store.CycleEntryType(l.Entry.SourceDate, l.Entry.LineIndex)
		if err != nil {
			return err
		}
		if ok {
			s.patchProjected(l.Entry, func(e *domain.Entry) {
				e.Kind = kind
				e.Completed = false
			})
		}
		return nil

	case domain.DailyLocation:
		if entry := domain.EntryAt(s.Lines, l.LineIndex); entry != nil {
			entry.Kind = entry.Kind.Cycle()
			entry.Completed = false
			return s.Save()
		}
		return nil

	case domain.FilterLocation:
		kind, ok, err := s.Store.CycleEntryType(l.Entry.SourceDate, l.Entry.LineIndex)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if s.Filter != nil && l.Index < len(s.Filter.Entries) {
			s.Filter.Entries[l.Index].Kind = kind
			s.Filter.Entries[l.Index].Completed = false
		}
		if l.Entry.SourceDate.Equal(s.CurrentDate) {
			return s.ReloadDay()
		}
		return nil
	}
	return nil
}

// patchProjected applies f to the in-memory projected entry matching the
// physical address of target.
func (s *Session) patchProjected(target domain.Entry, f func(*domain.Entry)) {
	for i := range s.Projected {
		p := &s.Projected[i]
		if p.SourceDate.Equal(target.SourceDate) && p.LineIndex == target.LineIndex {
			f(p)
			return
		}
	}
}
