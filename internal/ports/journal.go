// Package ports defines the interfaces (driven and driving ports)
// for the daybook application following hexagonal architecture
// principles. These interfaces define the contracts between the
// domain layer and external infrastructure.
package ports

import (
	"time"

	"github.com/xvierd/daybook/internal/domain"
)

// JournalStore defines the interface for day-sectioned journal persistence.
// This is a driven port (implemented by adapters).
type JournalStore interface {
	// Path returns the journal file location.
	Path() string

	// LoadDayLines reads and parses one day's section.
	LoadDayLines(date time.Time) ([]domain.Line, error)

	// SaveDayLines serializes lines back into the day's section. An empty
	// day is removed from the file entirely.
	SaveDayLines(date time.Time, lines []domain.Line) error

	// MutateEntry loads a day, applies f to the entry at lineIndex and
	// saves if the entry exists. Returns whether the entry was found.
	MutateEntry(date time.Time, lineIndex int, f func(*domain.EntryLine)) (bool, error)

	// DeleteEntry removes the line at lineIndex, if present.
	DeleteEntry(date time.Time, lineIndex int) error

	// EntryContent returns the content of the entry at lineIndex.
	EntryContent(date time.Time, lineIndex int) (string, bool)

	// AppendEntry adds an entry at the end of the day's section and
	// returns its line index.
	AppendEntry(date time.Time, data domain.EntryData) (int, error)

	// CollectProjected gathers entries from other days that project onto
	// target: entries of any kind whose @date resolves to target, and
	// recurring templates matching it.
	CollectProjected(target, today time.Time) ([]domain.Entry, error)

	// CollectFiltered walks the whole journal and returns the entries
	// matching filter, oldest day first.
	CollectFiltered(filter *domain.Filter, today time.Time) ([]domain.Entry, error)

	// CollectTags returns every distinct #tag in the journal, sorted
	// alphabetically.
	CollectTags() ([]string, error)

	// ScanDayRange reports which days in [start, end] hold entries, for
	// calendar display.
	ScanDayRange(start, end time.Time) (map[time.Time]DayInfo, error)
}

// DayInfo summarizes a day's content for calendar display.
type DayInfo struct {
	HasEntries         bool
	HasIncompleteTasks bool
	HasEvents          bool
}
