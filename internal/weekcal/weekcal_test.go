package weekcal

import (
	"errors"
	"testing"
	"time"
)

func TestWeekRange_KnownWeeks(t *testing.T) {
	t.Parallel()

	got, err := WeekRange(10, 2025)
	if err != nil {
		t.Fatalf("week range: %v", err)
	}
	wantStart := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Start.Equal(wantStart) || !got.End.Equal(wantEnd) {
		t.Fatalf("unexpected range for 2025-W10: %v .. %v", got.Start, got.End)
	}

	got, err = WeekRange(20, 2025)
	if err != nil {
		t.Fatalf("week range: %v", err)
	}
	if !got.Start.Equal(time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start for 2025-W20: %v", got.Start)
	}
}

func TestWeekRange_AdjacentWeeksAreContiguous(t *testing.T) {
	t.Parallel()

	for week := 1; week < 52; week++ {
		current, err := WeekRange(week, 2025)
		if err != nil {
			t.Fatalf("week %d: %v", week, err)
		}
		next, err := WeekRange(week+1, 2025)
		if err != nil {
			t.Fatalf("week %d: %v", week+1, err)
		}
		if !next.Start.Equal(current.End.AddDate(0, 0, 1)) {
			t.Fatalf("gap between week %d and %d: %v vs %v", week, week+1, current.End, next.Start)
		}
	}
}

func TestWeekRange_StartWeekNumberRoundTrips(t *testing.T) {
	t.Parallel()

	// 2020 is a 53-week ISO year.
	cases := []struct {
		year  int
		weeks int
	}{
		{2020, 53},
		{2025, 52},
	}
	for _, c := range cases {
		for week := 1; week <= c.weeks; week++ {
			r, err := WeekRange(week, c.year)
			if err != nil {
				t.Fatalf("%d-W%02d: %v", c.year, week, err)
			}
			if got := WeekNumber(r.Start); got != week {
				t.Fatalf("%d-W%02d: start maps to week %d", c.year, week, got)
			}
			if days := int(r.End.Sub(r.Start).Hours()/24) + 1; days != 7 {
				t.Fatalf("%d-W%02d: span is %d days", c.year, week, days)
			}
			if !r.Contains(r.Start) || !r.Contains(r.End) {
				t.Fatalf("%d-W%02d: range does not contain its own bounds", c.year, week)
			}
		}
	}
}

func TestWeekRange_RejectsWeek53InShortYears(t *testing.T) {
	t.Parallel()

	// 2025 has 52 ISO weeks; its would-be week 53 starts in 2026-W01.
	if _, err := WeekRange(53, 2025); !errors.Is(err, ErrInvalidWeekKey) {
		t.Fatalf("2025-W53: expected ErrInvalidWeekKey, got %v", err)
	}
	if _, err := RangeFromKey("2025-W53"); !errors.Is(err, ErrInvalidWeekKey) {
		t.Fatalf("2025-W53 key: expected ErrInvalidWeekKey, got %v", err)
	}

	// 2020 has 53 ISO weeks, so its week 53 stays valid.
	r, err := WeekRange(53, 2020)
	if err != nil {
		t.Fatalf("2020-W53: %v", err)
	}
	if !r.Start.Equal(time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start for 2020-W53: %v", r.Start)
	}
}

func TestRangeFromKey(t *testing.T) {
	t.Parallel()

	got, err := RangeFromKey("2025-W10")
	if err != nil {
		t.Fatalf("range from key: %v", err)
	}
	if !got.Start.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", got.Start)
	}
}

func TestParseKey_RejectsMalformedKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "2025", "25-W10", "2025-10", "2025-W00", "2025-W54", "2025-Wxx", "year-W10"} {
		if _, _, err := ParseKey(key); !errors.Is(err, ErrInvalidWeekKey) {
			t.Fatalf("key %q: expected ErrInvalidWeekKey, got %v", key, err)
		}
	}
}

func TestKeyFor_ConsistentWithWeekRange(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	key := KeyFor(date)
	if key != "2025-W10" {
		t.Fatalf("unexpected key: %s", key)
	}

	r, err := RangeFromKey(key)
	if err != nil {
		t.Fatalf("range from key: %v", err)
	}
	if !r.Contains(date) {
		t.Fatalf("range %v..%v does not contain %v", r.Start, r.End, date)
	}
}
