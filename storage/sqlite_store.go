package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"

	"weeksheet/timesheet"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrWeekNotFound = errors.New("week not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	// position preserves display order inside a week; the last position
	// is also the entry that absorbs rounding remainders on export.
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
	week_key TEXT NOT NULL,
	position INTEGER NOT NULL,
	id TEXT NOT NULL,
	date TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	task TEXT NOT NULL DEFAULT '',
	zone TEXT NOT NULL DEFAULT '',
	project_code TEXT NOT NULL DEFAULT '',
	product_module TEXT NOT NULL DEFAULT '',
	activity_type TEXT NOT NULL DEFAULT '',
	ttl_hours REAL NOT NULL DEFAULT 0,
	regular_hours REAL NOT NULL DEFAULT 0,
	ot_hours REAL NOT NULL DEFAULT 0,
	employee_name TEXT NOT NULL DEFAULT '',
	internal_or_outsource TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (week_key, position)
);

CREATE TABLE IF NOT EXISTS basic_info (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	employee_name TEXT NOT NULL,
	employee_type TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const entryColumns = `
	week_key,
	position,
	id,
	date,
	start_date,
	end_date,
	task,
	zone,
	project_code,
	product_module,
	activity_type,
	ttl_hours,
	regular_hours,
	ot_hours,
	employee_name,
	internal_or_outsource`

// LoadAll reads the full week->entries collection, entries ordered by
// stored position.
func (s *SQLiteStore) LoadAll() (timesheet.Collection, error) {
	query := `SELECT` + entryColumns + `
FROM entries
ORDER BY week_key, position;`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	collection := timesheet.Collection{}
	for rows.Next() {
		weekKey, entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		collection[weekKey] = append(collection[weekKey], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return collection, nil
}

// SaveAll replaces the stored collection with the given snapshot in one
// transaction.
func (s *SQLiteStore) SaveAll(collection timesheet.Collection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM entries;`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear entries: %w", err)
	}

	insertStmt := `INSERT INTO entries (` + entryColumns + `
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	weekKeys := make([]string, 0, len(collection))
	for weekKey := range collection {
		weekKeys = append(weekKeys, weekKey)
	}
	sort.Strings(weekKeys)

	for _, weekKey := range weekKeys {
		for position, entry := range collection[weekKey] {
			if _, err := stmt.Exec(
				weekKey,
				position,
				entry.ID,
				entry.Date,
				entry.StartDate,
				entry.EndDate,
				entry.Task,
				entry.Zone,
				entry.ProjectCode,
				entry.ProductModule,
				entry.ActivityType,
				entry.TTLHours,
				entry.RegularHours,
				entry.OTHours,
				entry.EmployeeName,
				entry.InternalOrOutsource,
			); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert entry %s/%d: %w", weekKey, position, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// WeekEntries returns one week's entries in stored order. A week with no
// entries yields an empty slice, not an error.
func (s *SQLiteStore) WeekEntries(weekKey string) ([]timesheet.Entry, error) {
	query := `SELECT` + entryColumns + `
FROM entries
WHERE week_key = ?
ORDER BY position;`

	rows, err := s.db.Query(query, weekKey)
	if err != nil {
		return nil, fmt.Errorf("query entries for %s: %w", weekKey, err)
	}
	defer rows.Close()

	entries := make([]timesheet.Entry, 0, 16)
	for rows.Next() {
		_, entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries for %s: %w", weekKey, err)
	}

	return entries, nil
}

// WeekKeys lists the stored week keys in ascending order.
func (s *SQLiteStore) WeekKeys() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT week_key FROM entries ORDER BY week_key;`)
	if err != nil {
		return nil, fmt.Errorf("query week keys: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0, 16)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan week key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate week keys: %w", err)
	}

	return keys, nil
}

// DeleteWeek removes one week's entries and returns ErrWeekNotFound when
// nothing was stored under the key.
func (s *SQLiteStore) DeleteWeek(weekKey string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE week_key = ?;`, weekKey)
	if err != nil {
		return fmt.Errorf("delete week %s: %w", weekKey, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read deleted row count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrWeekNotFound
	}
	return nil
}

// LoadBasicInfo returns the stored employee profile, or nil when none
// has been saved yet.
func (s *SQLiteStore) LoadBasicInfo() (*timesheet.BasicInfo, error) {
	var info timesheet.BasicInfo
	err := s.db.QueryRow(`SELECT employee_name, employee_type FROM basic_info WHERE id = 1;`).
		Scan(&info.EmployeeName, &info.EmployeeType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query basic info: %w", err)
	}
	return &info, nil
}

func (s *SQLiteStore) SaveBasicInfo(info timesheet.BasicInfo) error {
	const upsertStmt = `
INSERT INTO basic_info (id, employee_name, employee_type)
VALUES (1, ?, ?)
ON CONFLICT (id) DO UPDATE SET employee_name = excluded.employee_name, employee_type = excluded.employee_type;`

	if _, err := s.db.Exec(upsertStmt, info.EmployeeName, info.EmployeeType); err != nil {
		return fmt.Errorf("save basic info: %w", err)
	}
	return nil
}

func scanEntry(rows *sql.Rows) (string, timesheet.Entry, error) {
	var (
		weekKey  string
		position int
		entry    timesheet.Entry
	)
	if err := rows.Scan(
		&weekKey,
		&position,
		&entry.ID,
		&entry.Date,
		&entry.StartDate,
		&entry.EndDate,
		&entry.Task,
		&entry.Zone,
		&entry.ProjectCode,
		&entry.ProductModule,
		&entry.ActivityType,
		&entry.TTLHours,
		&entry.RegularHours,
		&entry.OTHours,
		&entry.EmployeeName,
		&entry.InternalOrOutsource,
	); err != nil {
		return "", timesheet.Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	return weekKey, entry, nil
}
