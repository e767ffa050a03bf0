package domain

import "time"

// EntryLocation addresses one physical entry regardless of the view it is
// displayed in. The set of variants is closed and dispatched by type
// switch. A location is only valid for the duration of a single action:
// any line index inside it may be stale after the next mutation and must
// be recomputed from a fresh scan.
type EntryLocation interface {
	isLocation()
}

// DailyLocation addresses an entry physically on the day open in the main
// view.
type DailyLocation struct {
	LineIndex int
}

// ProjectedLocation addresses an entry stored elsewhere but displayed on
// the current day via the later/recurring projection.
type ProjectedLocation struct {
	Entry Entry
}

// FilterLocation addresses an entry reached through a filter-result list.
// Index is the position inside that list, kept so the in-memory results
// can be patched after a mutation; Entry carries the physical address.
type FilterLocation struct {
	Index int
	Entry Entry
}

func (DailyLocation) isLocation()     {}
func (ProjectedLocation) isLocation() {}
func (FilterLocation) isLocation()    {}

// Resolve returns the physical (date, line index) a location points at.
// Daily locations resolve against the currently open day.
func Resolve(loc EntryLocation, currentDate time.Time) (time.Time, int) {
	switch l := loc.(type) {
	case DailyLocation:
		return currentDate, l.LineIndex
	case ProjectedLocation:
		return l.Entry.SourceDate, l.Entry.LineIndex
	case FilterLocation:
		return l.Entry.SourceDate, l.Entry.LineIndex
	}
	return time.Time{}, -1
}

// LocationIndex returns the physical line index of a location, used for
// ordering batch operations.
func LocationIndex(loc EntryLocation) int {
	switch l := loc.(type) {
	case DailyLocation:
		return l.LineIndex
	case ProjectedLocation:
		return l.Entry.LineIndex
	case FilterLocation:
		return l.Entry.LineIndex
	}
	return -1
}
