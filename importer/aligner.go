package importer

import (
	"fmt"
	"math"
	"time"

	"weeksheet/internal/weekcal"
)

// AlignedRow is a source record whose date fields have been remapped
// onto the target week. StartDate/EndDate fall back to the aligned
// primary date when the source cell is absent or unparseable.
type AlignedRow struct {
	Record    Record
	Date      string
	StartDate string
	EndDate   string
}

// AlignResult carries the remapped rows plus per-row rejections.
// SourceWeekKey is empty when no row had a parseable date.
type AlignResult struct {
	SourceWeekKey string
	DayOffset     int
	Rows          []AlignedRow
	Failures      []string
}

// AlignRows shifts every date field of every record by the day delta
// between the source week's Monday and the target week's Monday, so
// weekday alignment and multi-day spans survive the move, including
// across month and year boundaries.
//
// The source week is taken from the first record with a parseable date;
// records from a second source week in the same file are shifted by the
// same offset and may land outside the target week. Rows without a
// parseable primary date are rejected into Failures and excluded from
// Rows.
func AlignRows(records []Record, targetWeekKey string) (*AlignResult, error) {
	targetRange, err := weekcal.RangeFromKey(targetWeekKey)
	if err != nil {
		return nil, fmt.Errorf("resolve target week %q: %w", targetWeekKey, err)
	}

	result := &AlignResult{Rows: make([]AlignedRow, 0, len(records))}

	result.SourceWeekKey = detectSourceWeek(records)
	if result.SourceWeekKey != "" && result.SourceWeekKey != targetWeekKey {
		sourceRange, err := weekcal.RangeFromKey(result.SourceWeekKey)
		if err != nil {
			return nil, fmt.Errorf("resolve source week %q: %w", result.SourceWeekKey, err)
		}
		result.DayOffset = int(math.Round(targetRange.Start.Sub(sourceRange.Start).Hours() / 24))
	}

	for _, record := range records {
		primaryRaw := record.Get(dateAliases...)
		primary, err := parseFlexibleDate(primaryRaw)
		if err != nil {
			result.Failures = append(result.Failures,
				fmt.Sprintf("row %d: invalid date %q", record.RowNumber, primaryRaw))
			continue
		}

		aligned := primary.AddDate(0, 0, result.DayOffset)
		result.Rows = append(result.Rows, AlignedRow{
			Record:    record,
			Date:      aligned.Format(isoDateFormat),
			StartDate: alignSecondaryDate(record.Get(startDateAliases...), aligned, result.DayOffset),
			EndDate:   alignSecondaryDate(record.Get(endDateAliases...), aligned, result.DayOffset),
		})
	}

	return result, nil
}

func detectSourceWeek(records []Record) string {
	for _, record := range records {
		parsed, err := parseFlexibleDate(record.Get(dateAliases...))
		if err != nil {
			continue
		}
		return weekcal.KeyFor(parsed)
	}
	return ""
}

func alignSecondaryDate(raw string, alignedPrimary time.Time, dayOffset int) string {
	parsed, err := parseFlexibleDate(raw)
	if err != nil {
		return alignedPrimary.Format(isoDateFormat)
	}
	return parsed.AddDate(0, 0, dayOffset).Format(isoDateFormat)
}
