package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Candidate date layouts tried in priority order. The non-padded day and
// month verbs also accept zero-padded values, so each layout covers both
// "2025-03-05" and "2025-3-5" style inputs.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
}

const isoDateFormat = "2006-01-02"

// parseFlexibleDate parses a calendar day tolerating "-", "/" and "."
// separators. Parsed dates are midnight UTC so that day-offset
// arithmetic is exact. Years at or before 1900 are rejected as
// implausible for a timesheet.
func parseFlexibleDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		if parsed.Year() <= 1900 {
			return time.Time{}, fmt.Errorf("implausible year in date %q", raw)
		}
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", raw)
}

// parseHours parses a decimal hour value. Blank, non-numeric and
// negative inputs all resolve to 0; malformed hour cells never reject a
// row.
func parseHours(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	hours, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || hours < 0 {
		return 0
	}
	return hours
}
