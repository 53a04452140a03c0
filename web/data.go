package web

import (
	"sort"

	"weeksheet/internal/weekcal"
	"weeksheet/normalize"
	"weeksheet/timesheet"
)

type WeekRow struct {
	WeekKey      string  `json:"weekKey"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	EntryCount   int     `json:"entryCount"`
	RegularHours float64 `json:"regularHours"`
	OverCap      bool    `json:"overCap"`
}

type EntryRow struct {
	ID                  string  `json:"id"`
	Date                string  `json:"date"`
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
	Task                string  `json:"task"`
	Zone                string  `json:"zone"`
	ProjectCode         string  `json:"projectCode"`
	ProductModule       string  `json:"productModule"`
	ActivityType        string  `json:"activityType"`
	TTLHours            float64 `json:"ttlHours"`
	RegularHours        float64 `json:"regularHours"`
	OTHours             float64 `json:"otHours"`
	EmployeeName        string  `json:"employeeName"`
	InternalOrOutsource string  `json:"internalOrOutsource"`
}

// BuildWeekRows summarizes a collection for the week overview, sorted by
// week key. Weeks whose key no longer parses (hand-edited databases)
// keep empty range fields rather than disappearing.
func BuildWeekRows(collection timesheet.Collection) []WeekRow {
	keys := make([]string, 0, len(collection))
	for key := range collection {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]WeekRow, 0, len(keys))
	for _, key := range keys {
		entries := collection[key]
		row := WeekRow{
			WeekKey:      key,
			EntryCount:   len(entries),
			RegularHours: normalize.Round2(timesheet.SumRegularHours(entries)),
		}
		row.OverCap = row.RegularHours > normalize.WeeklyCapHours

		if weekRange, err := weekcal.RangeFromKey(key); err == nil {
			row.StartDate = weekRange.Start.Format("2006-01-02")
			row.EndDate = weekRange.End.Format("2006-01-02")
		}
		rows = append(rows, row)
	}
	return rows
}

func BuildEntryRows(entries []timesheet.Entry) []EntryRow {
	rows := make([]EntryRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, EntryRow{
			ID:                  entry.ID,
			Date:                entry.Date,
			StartDate:           entry.StartDate,
			EndDate:             entry.EndDate,
			Task:                entry.Task,
			Zone:                entry.Zone,
			ProjectCode:         entry.ProjectCode,
			ProductModule:       entry.ProductModule,
			ActivityType:        entry.ActivityType,
			TTLHours:            entry.TTLHours,
			RegularHours:        entry.RegularHours,
			OTHours:             entry.OTHours,
			EmployeeName:        entry.EmployeeName,
			InternalOrOutsource: entry.InternalOrOutsource,
		})
	}
	return rows
}
