package timesheet

// Entry is one recorded unit of work inside a week. Date fields are
// calendar days in YYYY-MM-DD form; StartDate/EndDate default to Date
// when a source row does not carry them.
type Entry struct {
	ID                  string
	Date                string
	StartDate           string
	EndDate             string
	Task                string
	Zone                string
	ProjectCode         string
	ProductModule       string
	ActivityType        string
	TTLHours            float64
	RegularHours        float64
	OTHours             float64
	EmployeeName        string
	InternalOrOutsource string
}

// NormalizedEntry is the export-time view of an Entry after the weekly
// cap has been applied. OriginalHours and IsNormalized are never
// persisted.
type NormalizedEntry struct {
	Entry
	OriginalHours float64
	IsNormalized  bool
}

// BasicInfo is the single employee-identity record shared by all weeks.
type BasicInfo struct {
	EmployeeName string
	EmployeeType string
}

// Collection maps week keys ("2025-W20") to that week's entries. Entry
// order inside a week is meaningful and preserved across load/save.
type Collection map[string][]Entry

// SumRegularHours totals RegularHours across a week's entries.
func SumRegularHours(entries []Entry) float64 {
	total := 0.0
	for _, entry := range entries {
		total += entry.RegularHours
	}
	return total
}
