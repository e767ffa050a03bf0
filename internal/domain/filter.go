package domain

import (
	"strings"
	"time"
)

// FilterKind is an entry-type selector inside a filter query.
type FilterKind int

const (
	FilterTask FilterKind = iota
	FilterNote
	FilterEvent
)

// Filter is a parsed filter query. A filter with a non-empty InvalidTokens
// list matches nothing: queries fail closed rather than returning a
// best-effort subset.
type Filter struct {
	Kinds        []FilterKind
	Completed    *bool
	Tags         []string
	ExcludeTags  []string
	Terms        []string
	ExcludeTerms []string
	ExcludeKinds []FilterKind
	Before       *time.Time
	After        *time.Time
	Overdue      bool
	Later        bool
	Recurring    bool

	InvalidTokens []string
}

// Valid reports whether every token of the query parsed.
func (f *Filter) Valid() bool {
	return len(f.InvalidTokens) == 0
}

func filterKindOf(k EntryKind) FilterKind {
	switch k {
	case KindTask:
		return FilterTask
	case KindNote:
		return FilterNote
	default:
		return FilterEvent
	}
}

func parseKindKeyword(s string) (FilterKind, bool) {
	switch s {
	case "tasks", "task", "t":
		return FilterTask, true
	case "notes", "note", "n":
		return FilterNote, true
	case "events", "event", "e":
		return FilterEvent, true
	}
	return 0, false
}

// ParseFilterQuery tokenizes a whitespace-separated query into a Filter.
// Recognized tokens: #tag, !type[/modifier], not:#tag, not:!type,
// not:text, @before:DATE, @after:DATE, @overdue, @later, @recurring and
// bare search terms. Unparseable tokens are collected, never dropped.
func ParseFilterQuery(query string, today time.Time) Filter {
	var f Filter

	for _, token := range strings.Fields(query) {
		if dateStr, ok := strings.CutPrefix(token, "@before:"); ok {
			if f.Before != nil {
				f.InvalidTokens = append(f.InvalidTokens, "Multiple @before dates")
			} else if date, ok := ParseFilterDate(dateStr, today); ok {
				f.Before = &date
			} else {
				f.InvalidTokens = append(f.InvalidTokens, token)
			}
			continue
		}
		if dateStr, ok := strings.CutPrefix(token, "@after:"); ok {
			if f.After != nil {
				f.InvalidTokens = append(f.InvalidTokens, "Multiple @after dates")
			} else if date, ok := ParseFilterDate(dateStr, today); ok {
				f.After = &date
			} else {
				f.InvalidTokens = append(f.InvalidTokens, token)
			}
			continue
		}
		switch token {
		case "@overdue":
			f.Overdue = true
			continue
		case "@later":
			f.Later = true
			continue
		case "@recurring":
			f.Recurring = true
			continue
		}
		if strings.HasPrefix(token, "@") {
			f.InvalidTokens = append(f.InvalidTokens, token)
			continue
		}

		if negated, ok := strings.CutPrefix(token, "not:"); ok {
			if tag, ok := strings.CutPrefix(negated, "#"); ok {
				f.ExcludeTags = append(f.ExcludeTags, tag)
			} else if kindStr, ok := strings.CutPrefix(negated, "!"); ok {
				if kind, ok := parseKindKeyword(kindStr); ok {
					f.ExcludeKinds = append(f.ExcludeKinds, kind)
				} else {
					f.InvalidTokens = append(f.InvalidTokens, token)
				}
			} else if negated != "" {
				f.ExcludeTerms = append(f.ExcludeTerms, negated)
			}
			continue
		}

		if kindStr, ok := strings.CutPrefix(token, "!"); ok {
			base := kindStr
			if idx := strings.IndexByte(kindStr, '/'); idx >= 0 {
				base = kindStr[:idx]
			}
			f.addKindToken(base, token)
			continue
		}

		if tag, ok := strings.CutPrefix(token, "#"); ok {
			f.Tags = append(f.Tags, tag)
			continue
		}
		f.Terms = append(f.Terms, token)
	}

	return f
}

// addKindToken handles the !type family, including !completed which is a
// task selector with a completion override.
func (f *Filter) addKindToken(base, token string) {
	var kind FilterKind
	var completed *bool
	switch base {
	case "tasks", "task", "t":
		kind = FilterTask
		v := false
		completed = &v
	case "completed", "c":
		kind = FilterTask
		v := true
		completed = &v
	case "notes", "note", "n":
		kind = FilterNote
	case "events", "event", "e":
		kind = FilterEvent
	default:
		f.InvalidTokens = append(f.InvalidTokens, token)
		return
	}

	found := false
	for _, k := range f.Kinds {
		if k == kind {
			found = true
			break
		}
	}
	if !found {
		f.Kinds = append(f.Kinds, kind)
	}

	// Conflicting completion selectors (!tasks !completed) cancel out and
	// show both states.
	if completed != nil {
		switch {
		case f.Completed == nil:
			f.Completed = completed
		case *f.Completed != *completed:
			f.Completed = nil
		}
	}
}

// MatchesEntry applies the type, tag and text predicates to one entry. The
// date, overdue, later and recurring predicates depend on the entry's
// location and are applied by the journal scan.
func (f *Filter) MatchesEntry(e EntryData) bool {
	kind := filterKindOf(e.Kind)

	if len(f.Kinds) > 0 {
		found := false
		for _, k := range f.Kinds {
			if k == kind {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, excluded := range f.ExcludeKinds {
		if kind == excluded {
			return false
		}
	}

	if f.Completed != nil && e.Kind == KindTask && e.Completed != *f.Completed {
		return false
	}

	entryTags := ExtractTags(e.Content)
	for _, required := range f.Tags {
		if !containsTag(entryTags, required) {
			return false
		}
	}
	for _, excluded := range f.ExcludeTags {
		if containsTag(entryTags, excluded) {
			return false
		}
	}

	content := strings.ToLower(e.Content)
	for _, term := range f.Terms {
		if !strings.Contains(content, strings.ToLower(term)) {
			return false
		}
	}
	for _, term := range f.ExcludeTerms {
		if strings.Contains(content, strings.ToLower(term)) {
			return false
		}
	}

	return true
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
