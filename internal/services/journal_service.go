// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xvierd/daybook/internal/config"
	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/ports"
)

// ErrEmptyContent is returned when an add request carries no text.
var ErrEmptyContent = errors.New("entry content is empty")

// JournalService handles journal use cases shared by the CLI commands
// and the MCP server.
type JournalService struct {
	store ports.JournalStore
	cfg   *config.Config
	now   func() time.Time
}

// NewJournalService creates a new journal service.
func NewJournalService(store ports.JournalStore, cfg *config.Config) *JournalService {
	return &JournalService{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// AddEntryRequest contains the data needed to append an entry.
type AddEntryRequest struct {
	Content string
	Kind    domain.EntryKind
	// Date selects the day section. Zero means today.
	Date time.Time
}

// AddedEntry describes where an entry landed.
type AddedEntry struct {
	Date      time.Time
	LineIndex int
	Content   string
}

// AddEntry expands favorite-tag shortcuts, pins relative date tokens and
// appends the entry to the requested day's section.
func (s *JournalService) AddEntry(req AddEntryRequest) (*AddedEntry, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	today := domain.DayOf(s.now())
	content = domain.ExpandFavoriteTags(content, s.cfg.FavoriteTags)
	content = domain.NormalizeRelativeDates(content, today)

	date := today
	if !req.Date.IsZero() {
		date = domain.DayOf(req.Date)
	}

	idx, err := s.store.AppendEntry(date, domain.EntryData{
		Kind:    req.Kind,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append entry: %w", err)
	}

	return &AddedEntry{Date: date, LineIndex: idx, Content: content}, nil
}

// Query expands saved-filter shortcuts, parses the query and returns the
// matching entries, oldest day first. Unknown shortcuts and malformed
// tokens are errors rather than a best-effort result.
func (s *JournalService) Query(query string) ([]domain.Entry, error) {
	expanded, unknown := domain.ExpandSavedFilters(query, s.cfg.SavedFilters)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown saved filter: %s", strings.Join(unknown, ", "))
	}

	today := domain.DayOf(s.now())
	filter := domain.ParseFilterQuery(expanded, today)
	if !filter.Valid() {
		return nil, fmt.Errorf("invalid filter: %s", strings.Join(filter.InvalidTokens, ", "))
	}

	entries, err := s.store.CollectFiltered(&filter, today)
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal: %w", err)
	}
	return entries, nil
}

// Tags returns every distinct tag used in the journal.
func (s *JournalService) Tags() ([]string, error) {
	tags, err := s.store.CollectTags()
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal: %w", err)
	}
	return tags, nil
}

// DayView is one day as displayed: the day's own entries followed by
// entries projected onto it from other days.
type DayView struct {
	Date      time.Time
	Entries   []domain.Entry
	Projected []domain.Entry
}

// Day loads a day's entries together with its projections. Recurring
// projections already completed on that day are dropped.
func (s *JournalService) Day(date time.Time) (*DayView, error) {
	date = domain.DayOf(date)
	lines, err := s.store.LoadDayLines(date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day: %w", err)
	}

	var entries []domain.Entry
	for _, idx := range domain.EntryIndices(lines) {
		entry := lines[idx].(*domain.EntryLine)
		entries = append(entries, domain.NewEntry(entry.EntryData, date, idx, domain.SourceLocal))
	}

	today := domain.DayOf(s.now())
	projected, err := s.store.CollectProjected(date, today)
	if err != nil {
		return nil, fmt.Errorf("failed to collect projections: %w", err)
	}

	return &DayView{
		Date:      date,
		Entries:   entries,
		Projected: domain.FilterDoneToday(projected, lines),
	}, nil
}

// Reminders are today's announceable items: events scheduled for the day
// and tasks still open on it.
type Reminders struct {
	Events []domain.Entry
	Due    []domain.Entry
}

// TodayReminders gathers the current day's events and open tasks,
// projections included.
func (s *JournalService) TodayReminders() (*Reminders, error) {
	view, err := s.Day(domain.DayOf(s.now()))
	if err != nil {
		return nil, err
	}

	r := &Reminders{}
	for _, entry := range append(view.Entries, view.Projected...) {
		switch entry.Kind {
		case domain.KindEvent:
			r.Events = append(r.Events, entry)
		case domain.KindTask:
			if !entry.Completed {
				r.Due = append(r.Due, entry)
			}
		}
	}
	return r, nil
}
