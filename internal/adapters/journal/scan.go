package journal

import (
	"sort"
	"strings"
	"time"

	"github.com/xvierd/daybook/internal/domain"
)

// CollectProjected gathers entries from other days that project onto
// target: entries deferred there with an @date, and recurring entries
// whose rule fires on that day. Entries written on the target day itself
// are local, not projections. Relative and year-less dates resolve
// against today, not the day the entry was written on, so a projection
// means the same thing wherever it is viewed from.
func (s *Store) CollectProjected(target, today time.Time) ([]domain.Entry, error) {
	journal, err := s.loadJournal()
	if err != nil {
		return nil, err
	}

	var entries []domain.Entry
	var sourceDate time.Time
	haveDay := false
	lineIndex := 0

	for _, line := range strings.Split(journal, "\n") {
		trimmed := strings.TrimSuffix(line, "\r")
		if date, ok := ParseDayHeader(trimmed); ok {
			sourceDate = date
			haveDay = true
			lineIndex = 0
			continue
		}
		if !haveDay {
			continue
		}
		if sourceDate.Equal(target) {
			lineIndex++
			continue
		}

		if entry, ok := domain.ParseLine(trimmed).(*domain.EntryLine); ok {
			if entryTarget, ok := domain.ExtractTargetDate(entry.Content, today); ok && entryTarget.Equal(target) {
				entries = append(entries, domain.NewEntry(entry.EntryData, sourceDate, lineIndex, domain.SourceLater))
			} else if rec, ok := domain.ExtractRecurrence(entry.Content); ok && rec.Matches(target) {
				entries = append(entries, domain.NewEntry(entry.EntryData, sourceDate, lineIndex, domain.SourceRecurring))
			}
		}
		lineIndex++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SourceDate.Before(entries[j].SourceDate)
	})
	return entries, nil
}

// CollectFiltered walks the whole journal and returns the entries
// matching filter, oldest day first. A filter with invalid tokens
// matches nothing.
func (s *Store) CollectFiltered(filter *domain.Filter, today time.Time) ([]domain.Entry, error) {
	if !filter.Valid() {
		return nil, nil
	}

	journal, err := s.loadJournal()
	if err != nil {
		return nil, err
	}

	var entries []domain.Entry
	var sourceDate time.Time
	haveDay := false
	lineIndex := 0

	for _, line := range strings.Split(journal, "\n") {
		trimmed := strings.TrimSuffix(line, "\r")
		if date, ok := ParseDayHeader(trimmed); ok {
			sourceDate = date
			haveDay = true
			lineIndex = 0
			continue
		}
		if !haveDay {
			continue
		}
		if filter.Before != nil && sourceDate.After(*filter.Before) {
			lineIndex++
			continue
		}
		if filter.After != nil && sourceDate.Before(*filter.After) {
			lineIndex++
			continue
		}

		if entry, ok := domain.ParseLine(trimmed).(*domain.EntryLine); ok {
			if s.matchesDateFlags(filter, entry, today) && filter.MatchesEntry(entry.EntryData) {
				entries = append(entries, domain.NewEntry(entry.EntryData, sourceDate, lineIndex, domain.SourceLocal))
			}
		}
		lineIndex++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SourceDate.Before(entries[j].SourceDate)
	})
	return entries, nil
}

// matchesDateFlags applies the @overdue, @later and @recurring predicates,
// which depend on the entry's content rather than its day section.
func (s *Store) matchesDateFlags(filter *domain.Filter, entry *domain.EntryLine, today time.Time) bool {
	if filter.Overdue {
		target, ok := domain.ExtractTargetDatePast(entry.Content, today)
		if !ok || !target.Before(today) {
			return false
		}
	}
	if filter.Later &&
		!domain.LaterDateRE.MatchString(entry.Content) &&
		!domain.RelativeDateRE.MatchString(entry.Content) {
		return false
	}
	if filter.Recurring && !domain.RecurringRE.MatchString(entry.Content) {
		return false
	}
	return true
}

// CollectTags returns every distinct #tag in the journal, deduplicated
// case-insensitively with the first spelling kept, sorted alphabetically.
func (s *Store) CollectTags() ([]string, error) {
	journal, err := s.loadJournal()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var tags []string
	for _, m := range domain.TagRE.FindAllStringSubmatch(journal, -1) {
		lower := strings.ToLower(m[1])
		if !seen[lower] {
			seen[lower] = true
			tags = append(tags, m[1])
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags, nil
}
