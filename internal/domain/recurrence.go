package domain

import (
	"strconv"
	"strings"
	"time"
)

// RecurKind is the shape of an @every-* rule.
type RecurKind int

const (
	// RecurDaily repeats every day.
	RecurDaily RecurKind = iota
	// RecurWeekdays repeats Monday through Friday.
	RecurWeekdays
	// RecurWeekly repeats on one weekday.
	RecurWeekly
	// RecurMonthly repeats on one day of the month, clamped to the last
	// valid day of short months.
	RecurMonthly
)

// Recurrence is a parsed @every-* rule.
type Recurrence struct {
	Kind     RecurKind
	Weekday  time.Weekday // RecurWeekly only
	MonthDay int          // RecurMonthly only, 1..31
}

// ParseRecurrence parses the rule part of an @every-<rule> tag.
func ParseRecurrence(s string) (Recurrence, bool) {
	s = strings.ToLower(s)
	switch s {
	case "day":
		return Recurrence{Kind: RecurDaily}, true
	case "weekday":
		return Recurrence{Kind: RecurWeekdays}, true
	}
	if wd, ok := ParseWeekday(s); ok {
		return Recurrence{Kind: RecurWeekly, Weekday: wd}, true
	}
	if day, err := strconv.Atoi(s); err == nil && day >= 1 && day <= 31 {
		return Recurrence{Kind: RecurMonthly, MonthDay: day}, true
	}
	return Recurrence{}, false
}

// Matches reports whether the rule fires on the given date.
func (r Recurrence) Matches(date time.Time) bool {
	switch r.Kind {
	case RecurDaily:
		return true
	case RecurWeekdays:
		wd := date.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case RecurWeekly:
		return date.Weekday() == r.Weekday
	case RecurMonthly:
		last := lastDayOfMonth(date)
		if r.MonthDay > last {
			return date.Day() == last
		}
		return date.Day() == r.MonthDay
	}
	return false
}

func lastDayOfMonth(date time.Time) int {
	firstOfNext := Date(date.Year(), date.Month(), 1).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
