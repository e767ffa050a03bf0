package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"buy milk #errands #home", []string{"errands", "home"}},
		{"no tags here", nil},
		{"#tag-with-dash and #under_score", []string{"tag-with-dash", "under_score"}},
		{"#9 is not a tag", nil},
	}

	for _, tt := range tests {
		got := ExtractTags(tt.content)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExtractTags(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestExtractTargetDate(t *testing.T) {
	today := Date(2026, time.January, 5)

	got, ok := ExtractTargetDate("pay rent @2/1", today)
	if !ok || !got.Equal(Date(2026, time.February, 1)) {
		t.Errorf("got %v, %v", got, ok)
	}

	// Entry context rolls a passed month/day forward a year.
	got, ok = ExtractTargetDate("renew domain @1/2", today)
	if !ok || !got.Equal(Date(2027, time.January, 2)) {
		t.Errorf("got %v, %v", got, ok)
	}

	// Past bias for overdue checks keeps it in the recent past.
	got, ok = ExtractTargetDatePast("renew domain @12/30", today)
	if !ok || !got.Equal(Date(2025, time.December, 30)) {
		t.Errorf("past bias: got %v, %v", got, ok)
	}

	if _, ok := ExtractTargetDate("no date at all", today); ok {
		t.Error("expected no date")
	}
}

func TestExtractRecurrence(t *testing.T) {
	rec, ok := ExtractRecurrence("standup @every-weekday")
	if !ok || rec.Kind != RecurWeekdays {
		t.Errorf("got %+v, %v", rec, ok)
	}

	rec, ok = ExtractRecurrence("rent @every-1 #money")
	if !ok || rec.Kind != RecurMonthly || rec.MonthDay != 1 {
		t.Errorf("got %+v, %v", rec, ok)
	}

	if _, ok := ExtractRecurrence("plain entry"); ok {
		t.Error("expected no recurrence")
	}
}

func TestDoneTodayMarker(t *testing.T) {
	got := DoneTodayMarker("standup @every-weekday #work")
	want := "↺ standup #work"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFilterDoneToday(t *testing.T) {
	projected := []Entry{
		NewEntry(NewTask("standup @every-mon"), Date(2026, time.March, 1), 0, SourceRecurring),
		NewEntry(NewTask("review @every-day"), Date(2026, time.March, 1), 1, SourceRecurring),
	}
	lines := ParseLines("- [x] ↺ standup\n- [ ] something else")

	kept := FilterDoneToday(projected, lines)

	if len(kept) != 1 {
		t.Fatalf("kept %d entries, want 1", len(kept))
	}
	if kept[0].Content != "review @every-day" {
		t.Errorf("kept %q", kept[0].Content)
	}
}

func TestNormalizeRelativeDates(t *testing.T) {
	today := Date(2026, time.January, 5) // a Monday

	tests := []struct {
		content string
		want    string
	}{
		{"do it @today", "do it @01/05/26"},
		{"do it @tomorrow", "do it @01/06"},
		{"do it @d3", "do it @01/08"},
		{"do it @fri", "do it @01/09"},
		{"no dates", "no dates"},
		{"already absolute @01/09", "already absolute @01/09"},
	}

	for _, tt := range tests {
		if got := NormalizeRelativeDates(tt.content, today); got != tt.want {
			t.Errorf("NormalizeRelativeDates(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestExpandFavoriteTags(t *testing.T) {
	favorites := map[string]string{"1": "work", "2": "home"}

	if got := ExpandFavoriteTags("fix sink #2", favorites); got != "fix sink #home" {
		t.Errorf("got %q", got)
	}
	// Unconfigured digits are left alone.
	if got := ExpandFavoriteTags("call #7", favorites); got != "call #7" {
		t.Errorf("got %q", got)
	}
}

func TestExpandSavedFilters(t *testing.T) {
	filters := map[string]string{"urgent": "!tasks #urgent"}

	expanded, unknown := ExpandSavedFilters("$urgent @overdue", filters)
	if expanded != "!tasks #urgent @overdue" || len(unknown) != 0 {
		t.Errorf("got %q, %v", expanded, unknown)
	}

	_, unknown = ExpandSavedFilters("$nope", filters)
	if !reflect.DeepEqual(unknown, []string{"$nope"}) {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestRemoveTrailingTags(t *testing.T) {
	got, ok := RemoveLastTrailingTag("task #a #b")
	if !ok || got != "task #a" {
		t.Errorf("RemoveLastTrailingTag = %q, %v", got, ok)
	}

	got, ok = RemoveAllTrailingTags("task #a #b")
	if !ok || got != "task" {
		t.Errorf("RemoveAllTrailingTags = %q, %v", got, ok)
	}

	// An entry that is nothing but tags is left alone.
	if _, ok := RemoveLastTrailingTag("#only #tags"); ok {
		t.Error("expected failure on tag-only content")
	}
	if _, ok := RemoveLastTrailingTag("no tags"); ok {
		t.Error("expected failure without trailing tag")
	}
}

func TestAppendTag(t *testing.T) {
	if got := AppendTag("task", "work"); got != "task #work" {
		t.Errorf("got %q", got)
	}
}
