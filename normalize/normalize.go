// Package normalize caps a week's regular hours at the weekly limit for
// export. Stored entries are never mutated; callers get tagged copies.
package normalize

import (
	"math"

	"weeksheet/timesheet"
)

// WeeklyCapHours is the regular-hour budget one week may carry on export.
const WeeklyCapHours = 40.0

// ForExport scales every entry's RegularHours down proportionally when
// the week total exceeds WeeklyCapHours, so the scaled entries sum to
// exactly the cap at 2-decimal precision. TTLHours is recomputed as
// RegularHours + OTHours for adjusted entries. Rounding drift is pushed
// into the last entry. Totals at or under the cap pass through
// unchanged, which also makes the operation idempotent.
func ForExport(entries []timesheet.Entry) []timesheet.NormalizedEntry {
	out := make([]timesheet.NormalizedEntry, 0, len(entries))

	total := timesheet.SumRegularHours(entries)
	if total <= WeeklyCapHours {
		for _, entry := range entries {
			out = append(out, timesheet.NormalizedEntry{Entry: entry})
		}
		return out
	}

	ratio := WeeklyCapHours / total
	normalizedSum := 0.0
	for _, entry := range entries {
		scaled := Round2(entry.RegularHours * ratio)
		normalizedSum += scaled

		copied := entry
		copied.RegularHours = scaled
		copied.TTLHours = Round2(scaled + copied.OTHours)
		out = append(out, timesheet.NormalizedEntry{
			Entry:         copied,
			OriginalHours: entry.RegularHours,
			IsNormalized:  true,
		})
	}

	// Per-entry rounding can leave the sum a few hundredths off the cap;
	// the last entry absorbs the remainder.
	difference := Round2(WeeklyCapHours - normalizedSum)
	if difference != 0 && len(out) > 0 {
		last := &out[len(out)-1]
		last.RegularHours = Round2(last.RegularHours + difference)
		last.TTLHours = Round2(last.RegularHours + last.OTHours)
	}

	return out
}

// Entries strips the normalization tags, returning plain entries in the
// same order.
func Entries(normalized []timesheet.NormalizedEntry) []timesheet.Entry {
	entries := make([]timesheet.Entry, 0, len(normalized))
	for _, item := range normalized {
		entries = append(entries, item.Entry)
	}
	return entries
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
