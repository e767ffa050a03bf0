// Package hints computes inline completion hints for the entry editor
// and the filter prompt: journal tags, date tokens, filter syntax and
// saved filter names, keyed off the token under the cursor.
package hints

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Kind says what the hint list holds.
type Kind int

const (
	KindNone Kind = iota
	KindTags
	KindDates
	KindFilterSyntax
	KindSavedFilters
)

// Mode is the input context hints are computed for.
type Mode int

const (
	// ModeEntry is entry creation and editing.
	ModeEntry Mode = iota
	// ModeFilter is the filter query prompt.
	ModeFilter
)

// Hints is a computed hint list with a selection cursor.
type Hints struct {
	Kind     Kind
	Prefix   string
	Items    []string
	Selected int
}

// Date tokens offered on entries and in filter queries. Ordering is
// display order.
var (
	entryDateTokens = []string{
		"@today", "@tomorrow", "@yesterday",
		"@mon", "@tue", "@wed", "@thu", "@fri", "@sat", "@sun",
		"@every-day", "@every-weekday",
		"@every-mon", "@every-tue", "@every-wed", "@every-thu",
		"@every-fri", "@every-sat", "@every-sun",
	}
	filterDateTokens = []string{
		"@before:", "@after:", "@overdue", "@later", "@recurring",
	}
	filterTypeTokens = []string{
		"!tasks", "!tasks/completed", "!tasks/incomplete",
		"!notes", "!events", "!completed",
	}
)

// Active reports whether there is anything to show.
func (h *Hints) Active() bool {
	return h.Kind != KindNone && len(h.Items) > 0
}

// Next moves the selection down, wrapping.
func (h *Hints) Next() {
	if len(h.Items) > 0 {
		h.Selected = (h.Selected + 1) % len(h.Items)
	}
}

// Prev moves the selection up, wrapping.
func (h *Hints) Prev() {
	if len(h.Items) > 0 {
		h.Selected = (h.Selected + len(h.Items) - 1) % len(h.Items)
	}
}

// Apply replaces the token under the cursor with the selected item and
// returns the new input.
func (h *Hints) Apply(input string) string {
	if !h.Active() {
		return input
	}
	item := h.Items[h.Selected]
	idx := strings.LastIndexAny(input, " \t")
	if idx < 0 {
		return item
	}
	return input[:idx+1] + item
}

// Compute builds the hint list for the current input. Tags come from the
// journal scan; savedFilters from config.
func Compute(input string, mode Mode, tags, savedFilters []string) Hints {
	if input == "" || strings.HasSuffix(input, " ") {
		return Hints{}
	}
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Hints{}
	}
	token := fields[len(fields)-1]

	// Negation wraps the inner token's hints.
	if mode == ModeFilter {
		if rest, ok := strings.CutPrefix(token, "not:"); ok {
			inner := computeToken(rest, mode, tags, savedFilters)
			for i, item := range inner.Items {
				inner.Items[i] = "not:" + item
			}
			return inner
		}
	}
	return computeToken(token, mode, tags, savedFilters)
}

func computeToken(token string, mode Mode, tags, savedFilters []string) Hints {
	switch {
	case strings.HasPrefix(token, "#"):
		return tagHints(token[1:], tags)
	case strings.HasPrefix(token, "@"):
		if mode == ModeFilter {
			return prefixHints(KindDates, token, filterDateTokens)
		}
		return prefixHints(KindDates, token, entryDateTokens)
	case mode == ModeFilter && strings.HasPrefix(token, "!"):
		return prefixHints(KindFilterSyntax, token, filterTypeTokens)
	case mode == ModeFilter && strings.HasPrefix(token, "$"):
		return savedFilterHints(token[1:], savedFilters)
	}
	return Hints{}
}

// tagHints ranks journal tags against the typed prefix.
func tagHints(prefix string, tags []string) Hints {
	var items []string
	if prefix == "" {
		items = append(items, tags...)
	} else {
		for _, m := range fuzzy.Find(prefix, tags) {
			items = append(items, m.Str)
		}
	}
	for i, item := range items {
		items[i] = "#" + item
	}
	// A single hint equal to what is already typed is noise.
	if len(items) == 1 && strings.EqualFold(items[0], "#"+prefix) {
		return Hints{}
	}
	if len(items) == 0 {
		return Hints{}
	}
	return Hints{Kind: KindTags, Prefix: prefix, Items: items}
}

func savedFilterHints(prefix string, savedFilters []string) Hints {
	var items []string
	for _, name := range savedFilters {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			items = append(items, "$"+name)
		}
	}
	if len(items) == 0 {
		return Hints{}
	}
	return Hints{Kind: KindSavedFilters, Prefix: prefix, Items: items}
}

func prefixHints(kind Kind, token string, candidates []string) Hints {
	var items []string
	for _, c := range candidates {
		if strings.HasPrefix(c, token) && c != token {
			items = append(items, c)
		}
	}
	if len(items) == 0 {
		return Hints{}
	}
	return Hints{Kind: kind, Prefix: token, Items: items}
}
