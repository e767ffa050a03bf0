package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Token patterns of the entry/filter mini-language.
var (
	// TagRE matches #tag tokens inside entry content.
	TagRE = regexp.MustCompile(`#([a-zA-Z][a-zA-Z0-9_-]*)`)

	// LaterDateRE matches @date tokens: @MM/DD, @MM/DD/YY, @MM/DD/YYYY
	// and @YYYY/MM/DD.
	LaterDateRE = regexp.MustCompile(`@(\d{4}/\d{1,2}/\d{1,2}|\d{1,2}/\d{1,2}(?:/\d{2,4})?)`)

	// RelativeDateRE matches relative date tokens written on entries.
	RelativeDateRE = regexp.MustCompile(`(?i)@(today|tomorrow|yesterday|d[1-9]\d{0,2}|mon|tue|wed|thu|fri|sat|sun)`)

	// FavoriteTagRE matches the #0..#9 favorite shortcuts.
	FavoriteTagRE = regexp.MustCompile(`#([0-9])\b`)

	// SavedFilterRE matches $name saved-filter shortcuts.
	SavedFilterRE = regexp.MustCompile(`\$(\w+)\b`)

	// RecurringRE matches @every-<rule> tags.
	RecurringRE = regexp.MustCompile(`(?i)@every-(day|weekday|monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun|[1-9]|[12]\d|3[01])(\s|$)`)

	lastTrailingTagRE = regexp.MustCompile(`\s*#[a-zA-Z][a-zA-Z0-9_-]*\s*$`)
	trailingTagsRE    = regexp.MustCompile(`(\s*#[a-zA-Z][a-zA-Z0-9_-]*)+\s*$`)
)

// ExtractTags returns every #tag in the content, in order of appearance.
func ExtractTags(content string) []string {
	var tags []string
	for _, m := range TagRE.FindAllStringSubmatch(content, -1) {
		tags = append(tags, m[1])
	}
	return tags
}

// ExtractTargetDate returns the date an entry is deferred to via its first
// @date token, resolved with future bias.
func ExtractTargetDate(content string, today time.Time) (time.Time, bool) {
	m := LaterDateRE.FindStringSubmatch(content)
	if m == nil {
		return time.Time{}, false
	}
	return ParseDate(m[1], ContextEntry, today)
}

// ExtractTargetDatePast resolves the first @date token with past bias.
// Used for overdue checks, where @12/30 seen on January 1st means last
// year, not eleven months ahead.
func ExtractTargetDatePast(content string, today time.Time) (time.Time, bool) {
	m := LaterDateRE.FindStringSubmatch(content)
	if m == nil {
		return time.Time{}, false
	}
	return ParseDate(m[1], ContextFilter, today)
}

// ExtractRecurrence returns the parsed @every-* rule of the entry, if any.
func ExtractRecurrence(content string) (Recurrence, bool) {
	m := RecurringRE.FindStringSubmatch(content)
	if m == nil {
		return Recurrence{}, false
	}
	return ParseRecurrence(m[1])
}

// StripRecurringTags removes @every-* tags from content. Used to build the
// done-today marker text for a recurring entry.
func StripRecurringTags(content string) string {
	return strings.TrimSpace(RecurringRE.ReplaceAllString(content, ""))
}

// DoneTodayMarker is the content of the materialized copy created when a
// recurring projection is completed on a specific date. A sibling entry
// with exactly this content suppresses the projection for that day.
func DoneTodayMarker(content string) string {
	return "↺ " + StripRecurringTags(content)
}

// FilterDoneToday drops recurring projections that already have a
// materialized done marker among the viewed day's lines. Completing a
// recurring projection writes such a marker instead of touching the
// source entry.
func FilterDoneToday(projected []Entry, lines []Line) []Entry {
	var localContents []string
	for _, line := range lines {
		if entry, ok := line.(*EntryLine); ok {
			localContents = append(localContents, entry.Content)
		}
	}

	var kept []Entry
	for _, entry := range projected {
		marker := DoneTodayMarker(entry.Content)
		done := false
		for _, c := range localContents {
			if c == marker {
				done = true
				break
			}
		}
		if !done {
			kept = append(kept, entry)
		}
	}
	return kept
}

// NormalizeRelativeDates rewrites relative date tokens to @MM/DD form
// (@MM/DD/YY for today, so the resolved date stays stable once written).
func NormalizeRelativeDates(content string, today time.Time) string {
	return RelativeDateRE.ReplaceAllStringFunc(content, func(tok string) string {
		name := tok[1:]
		date, ok := ParseNaturalDate(name, today)
		if !ok {
			return tok
		}
		if strings.EqualFold(name, "today") {
			return date.Format("@01/02/06")
		}
		return date.Format("@01/02")
	})
}

// ExpandFavoriteTags replaces #0..#9 shortcuts with the configured tags.
// Unconfigured digits are left as written.
func ExpandFavoriteTags(content string, favorites map[string]string) string {
	return FavoriteTagRE.ReplaceAllStringFunc(content, func(tok string) string {
		tag := favorites[tok[1:]]
		if tag == "" {
			return tok
		}
		return "#" + tag
	})
}

// ExpandSavedFilters replaces $name shortcuts with their configured query
// text and returns any names that have no definition.
func ExpandSavedFilters(query string, filters map[string]string) (string, []string) {
	var unknown []string
	expanded := SavedFilterRE.ReplaceAllStringFunc(query, func(tok string) string {
		if def, ok := filters[tok[1:]]; ok {
			return def
		}
		unknown = append(unknown, tok)
		return tok
	})
	return expanded, unknown
}

// RemoveLastTrailingTag strips the final trailing #tag. Returns false when
// there is no trailing tag or the entry is nothing but tags.
func RemoveLastTrailingTag(text string) (string, bool) {
	return removeTrailing(text, lastTrailingTagRE)
}

// RemoveAllTrailingTags strips the whole run of trailing #tags.
func RemoveAllTrailingTags(text string) (string, bool) {
	return removeTrailing(text, trailingTagsRE)
}

func removeTrailing(text string, re *regexp.Regexp) (string, bool) {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	before := text[:loc[0]]
	if strings.TrimSpace(TagRE.ReplaceAllString(before, "")) == "" {
		return "", false
	}
	return before, true
}

// AppendTag appends " #tag" to the content.
func AppendTag(content, tag string) string {
	return fmt.Sprintf("%s #%s", content, tag)
}
