package weekcal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidWeekKey = errors.New("invalid week key")

// Range is the Monday..Sunday span a week key denotes. Both bounds are
// midnight UTC; End is the Sunday, not the following Monday.
type Range struct {
	Start time.Time
	End   time.Time
}

// WeekNumber returns the ISO 8601 week number of the given date.
func WeekNumber(value time.Time) int {
	_, week := value.ISOWeek()
	return week
}

// KeyFor formats the week key ("2025-W20") of the ISO week containing
// the given date.
func KeyFor(value time.Time) string {
	year, week := value.ISOWeek()
	return FormatKey(year, week)
}

// FormatKey builds a week key from an ISO year and week number.
func FormatKey(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseKey splits a week key into ISO year and week number. The year
// segment must be four digits and the week segment must be W1..W53.
func ParseKey(key string) (int, int, error) {
	trimmed := strings.TrimSpace(key)
	yearPart, weekPart, found := strings.Cut(trimmed, "-")
	if !found {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidWeekKey, key)
	}
	if len(yearPart) != 4 {
		return 0, 0, fmt.Errorf("%w: year segment %q must be 4 digits", ErrInvalidWeekKey, yearPart)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year segment %q: %v", ErrInvalidWeekKey, yearPart, err)
	}
	if !strings.HasPrefix(weekPart, "W") {
		return 0, 0, fmt.Errorf("%w: week segment %q must start with W", ErrInvalidWeekKey, weekPart)
	}
	week, err := strconv.Atoi(strings.TrimPrefix(weekPart, "W"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: week segment %q: %v", ErrInvalidWeekKey, weekPart, err)
	}
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("%w: week %d out of range 1..53", ErrInvalidWeekKey, week)
	}
	return year, week, nil
}

// WeekRange returns the Monday..Sunday span of the given ISO week.
// January 4 is always inside ISO week 1, so the Monday of week 1 anchors
// every other week of the year; adjacent weeks are contiguous with no
// gaps or overlaps. Week 53 is only valid in years that actually have
// 53 ISO weeks; in a 52-week year it belongs to the next year's week 1
// and is rejected.
func WeekRange(week, year int) (Range, error) {
	if week < 1 || week > 53 {
		return Range{}, fmt.Errorf("%w: week %d out of range 1..53", ErrInvalidWeekKey, week)
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	firstMonday := jan4.AddDate(0, 0, 1-weekday)

	start := firstMonday.AddDate(0, 0, (week-1)*7)
	if isoYear, isoWeek := start.ISOWeek(); isoYear != year || isoWeek != week {
		return Range{}, fmt.Errorf("%w: year %d has no week %d", ErrInvalidWeekKey, year, week)
	}
	return Range{Start: start, End: start.AddDate(0, 0, 6)}, nil
}

// RangeFromKey parses the key and delegates to WeekRange.
func RangeFromKey(key string) (Range, error) {
	year, week, err := ParseKey(key)
	if err != nil {
		return Range{}, err
	}
	return WeekRange(week, year)
}

// Contains reports whether the calendar day of value falls inside the
// range, ignoring time of day.
func (r Range) Contains(value time.Time) bool {
	day := time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(r.Start) && !day.After(r.End)
}
