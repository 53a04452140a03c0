package importer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"weeksheet/timesheet"
)

var (
	// ErrUserDeclined marks a confirmation prompt answered with no. It is
	// a normal abort path: nothing has been persisted past the declined
	// gate.
	ErrUserDeclined = errors.New("import declined")

	// ErrNoEmployeeName is returned when basic info must be bootstrapped
	// but no row carries an employee name.
	ErrNoEmployeeName = errors.New("no employee name found in import rows")

	// ErrNoValidRows is returned when every row was rejected.
	ErrNoValidRows = errors.New("no importable rows")
)

// Store is the persistence surface the import pipeline writes through.
// LoadBasicInfo returns nil when no profile has been saved yet.
type Store interface {
	LoadAll() (timesheet.Collection, error)
	SaveAll(collection timesheet.Collection) error
	LoadBasicInfo() (*timesheet.BasicInfo, error)
	SaveBasicInfo(info timesheet.BasicInfo) error
}

// Confirmer answers yes/no questions; the CLI binds it to the terminal,
// tests and the web API use canned deciders.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) (bool, error)

func (f ConfirmerFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AutoApprove accepts every prompt (--yes runs, web imports).
func AutoApprove() Confirmer {
	return ConfirmerFunc(func(string) (bool, error) { return true, nil })
}

// Summary reports one completed import run.
type Summary struct {
	TargetWeekKey string
	SourceWeekKey string
	Imported      int
	Appended      bool
	Failures      []string
}

type Service struct {
	store   Store
	confirm Confirmer
}

func NewService(store Store, confirm Confirmer) *Service {
	return &Service{store: store, confirm: confirm}
}

// Run drives one import of parsed records into the target week. Stages
// run in order: basic-info bootstrap, identity consistency check, date
// alignment, row materialization, merge decision, persist. A declined
// prompt aborts with ErrUserDeclined; row-level rejections accumulate in
// the summary and never abort the batch on their own.
//
// Two writes can happen, each gated independently: the basic-info record
// (only on first-ever import, after its prompt) and the collection
// (after the merge decision). There are no partial writes of either.
func (s *Service) Run(records []Record, targetWeekKey string) (*Summary, error) {
	info, err := s.resolveBasicInfo(records)
	if err != nil {
		return nil, err
	}

	if err := s.checkIdentityConsistency(records, info.EmployeeName); err != nil {
		return nil, err
	}

	aligned, err := AlignRows(records, targetWeekKey)
	if err != nil {
		return nil, err
	}

	entries := materializeEntries(aligned.Rows, info)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoValidRows, strings.Join(aligned.Failures, "; "))
	}

	summary := &Summary{
		TargetWeekKey: targetWeekKey,
		Imported:      len(entries),
		Failures:      aligned.Failures,
	}
	if aligned.SourceWeekKey != targetWeekKey {
		summary.SourceWeekKey = aligned.SourceWeekKey
	}

	collection, err := s.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load timesheets: %w", err)
	}
	if collection == nil {
		collection = timesheet.Collection{}
	}

	existing := collection[targetWeekKey]
	if len(existing) > 0 {
		ok, err := s.confirm.Confirm(fmt.Sprintf(
			"Week %s already has %d entries. Append %d imported entries?",
			targetWeekKey, len(existing), len(entries)))
		if err != nil {
			return nil, fmt.Errorf("read merge confirmation: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("merge into %s: %w", targetWeekKey, ErrUserDeclined)
		}
		summary.Appended = true
		collection[targetWeekKey] = append(existing, entries...)
	} else {
		collection[targetWeekKey] = entries
	}

	if err := s.store.SaveAll(collection); err != nil {
		return nil, fmt.Errorf("save timesheets: %w", err)
	}

	return summary, nil
}

// resolveBasicInfo returns the stored employee profile, bootstrapping it
// from the rows on first import. The bootstrap save is gated by its own
// confirmation and happens before any collection write.
func (s *Service) resolveBasicInfo(records []Record) (timesheet.BasicInfo, error) {
	stored, err := s.store.LoadBasicInfo()
	if err != nil {
		return timesheet.BasicInfo{}, fmt.Errorf("load basic info: %w", err)
	}
	if stored != nil {
		return *stored, nil
	}

	extracted, found := extractBasicInfo(records)
	if !found {
		return timesheet.BasicInfo{}, ErrNoEmployeeName
	}

	ok, err := s.confirm.Confirm(fmt.Sprintf(
		"No employee profile saved yet. Use %q (%s) from the imported file?",
		extracted.EmployeeName, orUnspecified(extracted.EmployeeType)))
	if err != nil {
		return timesheet.BasicInfo{}, fmt.Errorf("read profile confirmation: %w", err)
	}
	if !ok {
		return timesheet.BasicInfo{}, fmt.Errorf("employee profile bootstrap: %w", ErrUserDeclined)
	}

	if err := s.store.SaveBasicInfo(extracted); err != nil {
		return timesheet.BasicInfo{}, fmt.Errorf("save basic info: %w", err)
	}
	return extracted, nil
}

// checkIdentityConsistency prompts when rows carry names other than the
// stored profile name. Imported entries are always stamped with the
// profile name; the prompt only decides whether the import proceeds.
func (s *Service) checkIdentityConsistency(records []Record, globalName string) error {
	mismatched := map[string]struct{}{}
	for _, record := range records {
		name := record.Get(employeeNameAliases...)
		if name == "" || strings.EqualFold(name, globalName) {
			continue
		}
		mismatched[name] = struct{}{}
	}
	if len(mismatched) == 0 {
		return nil
	}

	names := make([]string, 0, len(mismatched))
	for name := range mismatched {
		names = append(names, name)
	}
	sort.Strings(names)

	ok, err := s.confirm.Confirm(fmt.Sprintf(
		"File contains entries for %s but your profile is %q. Import them all as %q?",
		strings.Join(names, ", "), globalName, globalName))
	if err != nil {
		return fmt.Errorf("read identity confirmation: %w", err)
	}
	if !ok {
		return fmt.Errorf("employee name mismatch: %w", ErrUserDeclined)
	}
	return nil
}

func extractBasicInfo(records []Record) (timesheet.BasicInfo, bool) {
	for _, record := range records {
		name := record.Get(employeeNameAliases...)
		if name == "" {
			continue
		}
		return timesheet.BasicInfo{
			EmployeeName: name,
			EmployeeType: record.Get(employeeTypeAliases...),
		}, true
	}
	return timesheet.BasicInfo{}, false
}

// materializeEntries builds persistent entries from aligned rows. Hour
// cells parse tolerantly (bad values become 0); identity fields come
// from the profile, never from the row.
func materializeEntries(rows []AlignedRow, info timesheet.BasicInfo) []timesheet.Entry {
	entries := make([]timesheet.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, timesheet.Entry{
			ID:                  uuid.NewString(),
			Date:                row.Date,
			StartDate:           row.StartDate,
			EndDate:             row.EndDate,
			Task:                row.Record.Get(taskAliases...),
			Zone:                row.Record.Get(zoneAliases...),
			ProjectCode:         row.Record.Get(projectCodeAliases...),
			ProductModule:       row.Record.Get(productModuleAliases...),
			ActivityType:        row.Record.Get(activityTypeAliases...),
			TTLHours:            parseHours(row.Record.Get(ttlHoursAliases...)),
			RegularHours:        parseHours(row.Record.Get(regularHoursAliases...)),
			OTHours:             parseHours(row.Record.Get(otHoursAliases...)),
			EmployeeName:        info.EmployeeName,
			InternalOrOutsource: info.EmployeeType,
		})
	}
	return entries
}

func orUnspecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unspecified"
	}
	return value
}
