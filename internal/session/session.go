// Package session holds the mutable state shared by the views and the
// action engine: the open day, its parsed lines, projected entries, the
// optional filter-result list and the status line.
package session

import (
	"time"

	"github.com/xvierd/daybook/internal/adapters/journal"
	"github.com/xvierd/daybook/internal/domain"
)

// DailyState is the selection state of the daily view.
type DailyState struct {
	Selected int
}

// FilterState is the state of an active filter view. Entries are a live
// snapshot: mutations through the action engine patch them in place so
// line indexes stay usable without rescanning the journal.
type FilterState struct {
	Query    string
	Filter   domain.Filter
	Entries  []domain.Entry
	Selected int
}

// Session is the single mutable context actions operate on.
type Session struct {
	Store *journal.Store

	CurrentDate   time.Time
	Lines         []domain.Line
	EntryIndices  []int
	Projected     []domain.Entry
	HideCompleted bool

	Daily  DailyState
	Filter *FilterState

	Clipboard []domain.EntryData

	// Now supplies the current date; swapped out in tests.
	Now func() time.Time

	status string
}

// New opens a session on the given journal at the given date.
func New(store *journal.Store, date time.Time) (*Session, error) {
	s := &Session{
		Store:       store,
		CurrentDate: domain.DayOf(date),
		Now:         domain.Today,
	}
	if err := s.ReloadDay(); err != nil {
		return nil, err
	}
	if err := s.RefreshProjected(); err != nil {
		return nil, err
	}
	return s, nil
}

// Today returns the current calendar date.
func (s *Session) Today() time.Time {
	return s.Now()
}

// InFilterView reports whether a filter-result list is active.
func (s *Session) InFilterView() bool {
	return s.Filter != nil
}

// ReloadDay re-reads the open day from disk.
func (s *Session) ReloadDay() error {
	lines, err := s.Store.LoadDayLines(s.CurrentDate)
	if err != nil {
		return err
	}
	s.Lines = lines
	s.EntryIndices = domain.EntryIndices(lines)
	return nil
}

// Save writes the in-memory day back to disk and recomputes the entry
// index table.
func (s *Session) Save() error {
	s.EntryIndices = domain.EntryIndices(s.Lines)
	return s.Store.SaveDayLines(s.CurrentDate, s.Lines)
}

// RefreshProjected rescans the journal for entries projecting onto the
// open day and drops the ones already done there.
func (s *Session) RefreshProjected() error {
	projected, err := s.Store.CollectProjected(s.CurrentDate, s.Today())
	if err != nil {
		return err
	}
	s.Projected = domain.FilterDoneToday(projected, s.Lines)
	return nil
}

// SetDate moves the session to another day.
func (s *Session) SetDate(date time.Time) error {
	s.CurrentDate = domain.DayOf(date)
	s.Daily.Selected = 0
	if err := s.ReloadDay(); err != nil {
		return err
	}
	return s.RefreshProjected()
}

// EnterFilter parses query and switches to the filter view. The query is
// applied even when invalid; invalid tokens simply match nothing.
func (s *Session) EnterFilter(query string) error {
	f := domain.ParseFilterQuery(query, s.Today())
	s.Filter = &FilterState{Query: query, Filter: f}
	return s.RefreshFilter()
}

// ExitFilter returns to the daily view.
func (s *Session) ExitFilter() {
	s.Filter = nil
}

// RefreshFilter re-runs the active filter query.
func (s *Session) RefreshFilter() error {
	if s.Filter == nil {
		return nil
	}
	entries, err := s.Store.CollectFiltered(&s.Filter.Filter, s.Today())
	if err != nil {
		return err
	}
	s.Filter.Entries = entries
	s.ClampFilterSelection()
	return nil
}

// EntryVisible applies the hide-completed setting to one entry.
func (s *Session) EntryVisible(e domain.EntryData) bool {
	return !s.HideCompleted || e.Kind != domain.KindTask || !e.Completed
}

// VisibleEntryCount counts the entries shown in the daily view: local
// entry lines plus projections, minus hidden completed tasks.
func (s *Session) VisibleEntryCount() int {
	count := 0
	for _, idx := range s.EntryIndices {
		if entry := domain.EntryAt(s.Lines, idx); entry != nil && s.EntryVisible(entry.EntryData) {
			count++
		}
	}
	for _, entry := range s.Projected {
		if s.EntryVisible(entry.EntryData) {
			count++
		}
	}
	return count
}

// VisibleIndexOfLine maps a physical line index to its position in the
// daily view, taking hidden entries and the projected block shown above
// the day's own entries into account.
func (s *Session) VisibleIndexOfLine(lineIndex int) (int, bool) {
	visible := 0
	for _, entry := range s.Projected {
		if s.EntryVisible(entry.EntryData) {
			visible++
		}
	}
	for _, idx := range s.EntryIndices {
		entry := domain.EntryAt(s.Lines, idx)
		if entry == nil || !s.EntryVisible(entry.EntryData) {
			continue
		}
		if idx == lineIndex {
			return visible, true
		}
		visible++
	}
	return 0, false
}

// ClampDailySelection keeps the daily selection inside the visible list.
func (s *Session) ClampDailySelection() {
	if visible := s.VisibleEntryCount(); visible > 0 && s.Daily.Selected >= visible {
		s.Daily.Selected = visible - 1
	}
}

// ClampFilterSelection keeps the filter selection inside the result list.
func (s *Session) ClampFilterSelection() {
	if s.Filter == nil {
		return
	}
	if n := len(s.Filter.Entries); n > 0 && s.Filter.Selected >= n {
		s.Filter.Selected = n - 1
	}
}

// SetStatus replaces the status line.
func (s *Session) SetStatus(msg string) {
	s.status = msg
}

// Status returns the current status line.
func (s *Session) Status() string {
	return s.status
}

// EntryContentAt reads the content of the entry a location points at,
// from memory for the open day and from disk otherwise.
func (s *Session) EntryContentAt(loc domain.EntryLocation) (string, bool) {
	if l, ok := loc.(domain.DailyLocation); ok {
		if entry := domain.EntryAt(s.Lines, l.LineIndex); entry != nil {
			return entry.Content, true
		}
		return "", false
	}
	date, idx := domain.Resolve(loc, s.CurrentDate)
	return s.Store.EntryContent(date, idx)
}
