package domain

import (
	"testing"
	"time"
)

func TestParseRecurrence(t *testing.T) {
	tests := []struct {
		input string
		want  Recurrence
		ok    bool
	}{
		{"day", Recurrence{Kind: RecurDaily}, true},
		{"weekday", Recurrence{Kind: RecurWeekdays}, true},
		{"monday", Recurrence{Kind: RecurWeekly, Weekday: time.Monday}, true},
		{"Fri", Recurrence{Kind: RecurWeekly, Weekday: time.Friday}, true},
		{"15", Recurrence{Kind: RecurMonthly, MonthDay: 15}, true},
		{"31", Recurrence{Kind: RecurMonthly, MonthDay: 31}, true},
		{"0", Recurrence{}, false},
		{"32", Recurrence{}, false},
		{"fortnight", Recurrence{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRecurrence(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseRecurrence(%q) = %+v, %v; want %+v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRecurrenceMatches(t *testing.T) {
	tests := []struct {
		name string
		rule Recurrence
		date time.Time
		want bool
	}{
		{"daily always", Recurrence{Kind: RecurDaily}, Date(2026, time.March, 14), true},
		{"weekdays hits friday", Recurrence{Kind: RecurWeekdays}, Date(2026, time.March, 13), true},
		{"weekdays skips saturday", Recurrence{Kind: RecurWeekdays}, Date(2026, time.March, 14), false},
		{"weekly hits", Recurrence{Kind: RecurWeekly, Weekday: time.Monday}, Date(2026, time.March, 9), true},
		{"weekly misses", Recurrence{Kind: RecurWeekly, Weekday: time.Monday}, Date(2026, time.March, 10), false},
		{"monthly hits", Recurrence{Kind: RecurMonthly, MonthDay: 15}, Date(2026, time.April, 15), true},
		{"monthly misses", Recurrence{Kind: RecurMonthly, MonthDay: 15}, Date(2026, time.April, 16), false},
		{"monthly 31 clamps to april 30", Recurrence{Kind: RecurMonthly, MonthDay: 31}, Date(2026, time.April, 30), true},
		{"monthly 30 clamps to feb 28", Recurrence{Kind: RecurMonthly, MonthDay: 30}, Date(2026, time.February, 28), true},
		{"monthly 30 in leap feb clamps to 29", Recurrence{Kind: RecurMonthly, MonthDay: 30}, Date(2028, time.February, 29), true},
		{"monthly 30 not on feb 27", Recurrence{Kind: RecurMonthly, MonthDay: 30}, Date(2026, time.February, 27), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Matches(tt.date); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.date.Format(DayFormat), got, tt.want)
			}
		})
	}
}
