package period

import (
	"errors"
	"strings"
	"time"
)

// Granularity names a calendar bucket used by analytics and goals.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
	Yearly  Granularity = "yearly"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Range is an inclusive [Start, End] window. End is the last millisecond of the final day.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func endOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

// ParseGranularity accepts the four enumerated names, case-insensitive.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case Daily, Weekly, Monthly, Yearly:
		return g, nil
	}
	return "", ErrInvalidPeriod
}

// For returns the range of granularity p that contains ref, in ref's location.
func For(p Granularity, ref time.Time) (Range, error) {
	y, m, d := ref.Date()
	loc := ref.Location()

	switch p {
	case Daily:
		return Range{Start: time.Date(y, m, d, 0, 0, 0, 0, loc), End: endOfDay(y, m, d, loc)}, nil

	case Weekly:
		// Weeks start on Monday; Sunday belongs to the week that started six days earlier.
		weekday := int(ref.Weekday())
		diff := d - weekday + 1
		if weekday == 0 {
			diff = d - weekday - 6
		}
		start := time.Date(y, m, diff, 0, 0, 0, 0, loc)
		return Range{Start: start, End: endOfDay(y, m, diff+6, loc)}, nil

	case Monthly:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		// day 0 of next month is the last day of this one
		return Range{Start: start, End: endOfDay(y, m+1, 0, loc)}, nil

	case Yearly:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return Range{Start: start, End: endOfDay(y, time.December, 31, loc)}, nil
	}

	return Range{}, ErrInvalidPeriod
}

// MonthRange is the monthly range of the given calendar month.
func MonthRange(month, year int, loc *time.Location) Range {
	r, _ := For(Monthly, time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc))
	return r
}

// DayBounds widens two calendar dates to [start 00:00, end 23:59:59.999].
func DayBounds(start, end time.Time) Range {
	s, _ := For(Daily, start)
	e, _ := For(Daily, end)
	return Range{Start: s.Start, End: e.End}
}

// WorkingDays counts calendar days in [start, end] (inclusive) that are not Sundays.
func WorkingDays(start, end time.Time) int {
	loc := start.Location()
	cur := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc)

	count := 0
	for !cur.After(last) {
		if cur.Weekday() != time.Sunday {
			count++
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return count
}

// PreviousMonth returns the calendar month before (month, year), wrapping January to December.
func PreviousMonth(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}

// DaysInMonth handles leap years through the "day 0 of next month" trick.
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInYear is 366 for leap years.
func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// Days returns one daily range per calendar day in [start, end].
func Days(start, end time.Time) []Range {
	var out []Range
	cur := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for !cur.After(end) {
		r, _ := For(Daily, cur)
		out = append(out, r)
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}
