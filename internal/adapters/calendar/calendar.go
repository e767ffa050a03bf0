// Package calendar imports ICS calendar events from local files or HTTP
// sources. Events are read-only: they merge into the daily view but are
// never written back to the journal.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/apognu/gocal"
	"github.com/google/uuid"

	"github.com/xvierd/daybook/internal/domain"
)

// Event is one calendar occurrence on a specific day.
type Event struct {
	ID     string
	Title  string
	Source string
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Store holds fetched events grouped by day.
type Store struct {
	eventsByDate map[time.Time][]Event

	// Errors collects per-source fetch or parse failures from the last
	// refresh. Sources that fail are skipped, not fatal.
	Errors []error
}

// NewStore creates an empty event store.
func NewStore() *Store {
	return &Store{eventsByDate: make(map[time.Time][]Event)}
}

// EventsOn returns the events on one day, all-day events first, then by
// start time.
func (s *Store) EventsOn(date time.Time) []Event {
	return s.eventsByDate[domain.DayOf(date)]
}

// HasEventsOn reports whether any event falls on the day.
func (s *Store) HasEventsOn(date time.Time) bool {
	return len(s.eventsByDate[domain.DayOf(date)]) > 0
}

// Update replaces the store contents with a fresh event list.
func (s *Store) Update(events []Event) {
	s.eventsByDate = make(map[time.Time][]Event)
	for _, event := range events {
		day := domain.DayOf(event.Start)
		s.eventsByDate[day] = append(s.eventsByDate[day], event)
	}
	for _, dayEvents := range s.eventsByDate {
		sort.SliceStable(dayEvents, func(i, j int) bool {
			if dayEvents[i].AllDay != dayEvents[j].AllDay {
				return dayEvents[i].AllDay
			}
			return dayEvents[i].Start.Before(dayEvents[j].Start)
		})
	}
}

// Refresh fetches every configured source and rebuilds the store.
// Individual source failures are recorded and skipped.
func (s *Store) Refresh(fetcher *Fetcher, sources []string, start, end time.Time) {
	var all []Event
	s.Errors = nil

	for _, source := range sources {
		content, err := fetcher.Fetch(source)
		if err != nil {
			s.Errors = append(s.Errors, fmt.Errorf("%s: %w", source, err))
			continue
		}
		events, err := ParseICS(content, source, start, end)
		if err != nil {
			s.Errors = append(s.Errors, fmt.Errorf("%s: %w", source, err))
			continue
		}
		all = append(all, events...)
	}

	s.Update(all)
}

// ParseICS expands the VEVENTs of one ICS document into per-day events
// within [start, end]. Cancelled events and events without a summary are
// dropped. Recurrence rules and exdates are honored by the parser.
func ParseICS(content, source string, start, end time.Time) ([]Event, error) {
	parser := gocal.NewParser(strings.NewReader(content))
	parser.Start, parser.End = &start, &end
	if err := parser.Parse(); err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	var events []Event
	for _, e := range parser.Events {
		if e.Summary == "" || strings.EqualFold(e.Status, "CANCELLED") {
			continue
		}
		if e.Start == nil {
			continue
		}

		eventStart := *e.Start
		eventEnd := eventStart.Add(time.Hour)
		if e.End != nil {
			eventEnd = *e.End
		}
		allDay := isAllDay(eventStart, eventEnd)

		id := e.Uid
		if id == "" {
			id = uuid.NewString()
		}

		// Multi-day all-day events show up once per covered day.
		if allDay && eventEnd.Sub(eventStart) > 24*time.Hour {
			days := int(eventEnd.Sub(eventStart).Hours() / 24)
			for i := 0; i < days; i++ {
				day := domain.DayOf(eventStart.AddDate(0, 0, i))
				if day.Before(domain.DayOf(start)) || day.After(domain.DayOf(end)) {
					continue
				}
				events = append(events, Event{
					ID:     fmt.Sprintf("%s_%s", id, day.Format("2006-01-02")),
					Title:  e.Summary,
					Source: source,
					Start:  day,
					End:    day.AddDate(0, 0, 1),
					AllDay: true,
				})
			}
			continue
		}

		events = append(events, Event{
			ID:     id,
			Title:  e.Summary,
			Source: source,
			Start:  eventStart,
			End:    eventEnd,
			AllDay: allDay,
		})
	}
	return events, nil
}

// isAllDay treats midnight-to-midnight spans as all-day events, which is
// how date-valued DTSTART/DTEND come out of the parser.
func isAllDay(start, end time.Time) bool {
	midnight := func(t time.Time) bool {
		return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
	}
	return midnight(start) && midnight(end) && end.Sub(start) >= 24*time.Hour
}
