package domain

import (
	"strconv"
	"strings"
	"time"
)

// DayFormat is the header date layout of the persisted file.
const DayFormat = "2006/01/02"

// Date builds a calendar date. All dates in the journal are day-precision;
// they are represented as midnight UTC so == and Equal behave.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayOf truncates a timestamp to its calendar date.
func DayOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date in local time.
func Today() time.Time {
	return DayOf(time.Now())
}

// ParseContext selects the year/direction bias used when a date token is
// ambiguous. Entry-authoring context always prefers the future; filter
// context prefers the past unless the token carries an explicit "+".
// The duality is intentional: "@1/15" written on an entry schedules it
// forward, while "@after:1/15" in a query almost always looks backward.
type ParseContext int

const (
	ContextEntry ParseContext = iota
	ContextFilter
	ContextInterface
)

// ParseWeekday parses a full or three-letter weekday name.
func ParseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(s) {
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	case "sunday", "sun":
		return time.Sunday, true
	}
	return 0, false
}

// nextWeekday returns the next occurrence of target strictly after today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	ahead := (int(target) - int(today.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return today.AddDate(0, 0, ahead)
}

// prevWeekday returns the most recent occurrence of target strictly before today.
func prevWeekday(today time.Time, target time.Weekday) time.Time {
	back := (int(today.Weekday()) - int(target) + 7) % 7
	if back == 0 {
		back = 7
	}
	return today.AddDate(0, 0, -back)
}

// parseRelativeDate handles today/tomorrow/yesterday, dN offsets and
// weekday names. The context supplies the default direction; a trailing
// "+" forces future and "-" forces past.
func parseRelativeDate(input string, today time.Time, ctx ParseContext) (time.Time, bool) {
	lower := strings.ToLower(input)

	switch lower {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	case "yesterday":
		return today.AddDate(0, 0, -1), true
	}

	base := lower
	explicitFuture := false
	explicitPast := false
	if b, ok := strings.CutSuffix(lower, "+"); ok {
		base, explicitFuture = b, true
	} else if b, ok := strings.CutSuffix(lower, "-"); ok {
		base, explicitPast = b, true
	}

	var future bool
	switch ctx {
	case ContextEntry, ContextInterface:
		future = !explicitPast
	case ContextFilter:
		future = explicitFuture
	}

	if daysStr, ok := strings.CutPrefix(base, "d"); ok && len(daysStr) > 0 && len(daysStr) <= 3 {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			if future {
				return today.AddDate(0, 0, days), true
			}
			return today.AddDate(0, 0, -days), true
		}
	}

	if wd, ok := ParseWeekday(base); ok {
		if future {
			return nextWeekday(today, wd), true
		}
		return prevWeekday(today, wd), true
	}

	return time.Time{}, false
}

// resolveMonthDay applies the year-completion rule for a bare MM/DD: in
// future bias a month/day already passed rolls to next year, in past bias
// a month/day still ahead rolls to last year.
func resolveMonthDay(month, day int, today time.Time, future bool) (time.Time, bool) {
	if !validMonthDay(today.Year(), month, day) {
		return time.Time{}, false
	}
	date := Date(today.Year(), time.Month(month), day)
	if future && date.Before(today) {
		if !validMonthDay(today.Year()+1, month, day) {
			return time.Time{}, false
		}
		return Date(today.Year()+1, time.Month(month), day), true
	}
	if !future && date.After(today) {
		if !validMonthDay(today.Year()-1, month, day) {
			return time.Time{}, false
		}
		return Date(today.Year()-1, time.Month(month), day), true
	}
	return date, true
}

func validMonthDay(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	d := Date(year, time.Month(month), day)
	return int(d.Month()) == month && d.Day() == day
}

// parseAbsoluteDate handles MM/DD, MM/DD/YY, MM/DD/YYYY and YYYY/MM/DD.
// Only the year-less form is context sensitive.
func parseAbsoluteDate(s string, today time.Time, ctx ParseContext) (time.Time, bool) {
	parts := strings.Split(s, "/")

	// YYYY/MM/DD, recognized by an exactly four-digit first part.
	if len(parts) == 3 && len(parts[0]) == 4 {
		year, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		day, err3 := strconv.Atoi(parts[2])
		if err1 == nil && err2 == nil && err3 == nil && validMonthDay(year, month, day) {
			return Date(year, time.Month(month), day), true
		}
		return time.Time{}, false
	}

	// MM/DD/YY or MM/DD/YYYY.
	if len(parts) == 3 {
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		year, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return time.Time{}, false
		}
		if year < 100 {
			year += 2000
		}
		if !validMonthDay(year, month, day) {
			return time.Time{}, false
		}
		return Date(year, time.Month(month), day), true
	}

	// MM/DD without a year: year completion per context.
	if len(parts) == 2 {
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return time.Time{}, false
		}
		future := ctx == ContextEntry || ctx == ContextInterface
		return resolveMonthDay(month, day, today, future)
	}

	return time.Time{}, false
}

// ParseDate parses a date token, trying relative forms first and falling
// back to absolute ones.
func ParseDate(input string, ctx ParseContext, today time.Time) (time.Time, bool) {
	if d, ok := parseRelativeDate(input, today, ctx); ok {
		return d, true
	}
	return parseAbsoluteDate(input, today, ctx)
}

// ParseNaturalDate parses a date written on an entry (future bias).
func ParseNaturalDate(input string, today time.Time) (time.Time, bool) {
	return ParseDate(input, ContextEntry, today)
}

// ParseFilterDate parses a date inside a filter query (past bias, "+" for
// explicit future).
func ParseFilterDate(input string, today time.Time) (time.Time, bool) {
	return ParseDate(input, ContextFilter, today)
}
