package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"weeksheet/storage"
	"weeksheet/timesheet"
)

func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "weeksheet_test.db")
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedWeek(t *testing.T, store *storage.SQLiteStore, weekKey string, entries []timesheet.Entry) {
	t.Helper()

	collection, err := store.LoadAll()
	if err != nil {
		t.Fatalf("load collection: %v", err)
	}
	if collection == nil {
		collection = timesheet.Collection{}
	}
	collection[weekKey] = entries
	if err := store.SaveAll(collection); err != nil {
		t.Fatalf("save collection: %v", err)
	}
}

func TestServer_WeeksOverview(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	seedWeek(t, store, "2025-W20", []timesheet.Entry{
		{ID: "a", Date: "2025-05-12", RegularHours: 30},
		{ID: "b", Date: "2025-05-13", RegularHours: 15},
	})

	ts := httptest.NewServer(NewServer(store))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/weeks")
	if err != nil {
		t.Fatalf("request weeks: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var rows []WeekRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode weeks: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 week row, got %d", len(rows))
	}
	row := rows[0]
	if row.WeekKey != "2025-W20" || row.EntryCount != 2 || row.RegularHours != 45 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if !row.OverCap {
		t.Fatalf("expected over-cap marker for 45h week")
	}
	if row.StartDate != "2025-05-12" || row.EndDate != "2025-05-18" {
		t.Fatalf("unexpected range: %s .. %s", row.StartDate, row.EndDate)
	}
}

func TestServer_WeekEntriesRejectsBadKey(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(openTestStore(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/weeks/not-a-week/entries")
	if err != nil {
		t.Fatalf("request entries: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestServer_ExportAppliesNormalization(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	seedWeek(t, store, "2025-W20", []timesheet.Entry{
		{ID: "a", Date: "2025-05-12", RegularHours: 20, TTLHours: 20},
		{ID: "b", Date: "2025-05-13", RegularHours: 20, TTLHours: 20},
		{ID: "c", Date: "2025-05-14", RegularHours: 10, TTLHours: 10},
	})

	ts := httptest.NewServer(NewServer(store))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/weeks/2025-W20/export.csv")
	if err != nil {
		t.Fatalf("request export: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	text := string(body)
	if !strings.Contains(text, ",16,") {
		t.Fatalf("expected scaled hours in export: %s", text)
	}

	// Raw export keeps stored values.
	resp, err = http.Get(ts.URL + "/api/weeks/2025-W20/export.csv?normalize=0")
	if err != nil {
		t.Fatalf("request raw export: %v", err)
	}
	defer resp.Body.Close()
	body, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(body), ",20,") {
		t.Fatalf("expected raw hours in export: %s", string(body))
	}
}

func TestServer_ImportRequiresConfirmationForMerge(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	if err := store.SaveBasicInfo(timesheet.BasicInfo{EmployeeName: "Alice", EmployeeType: "internal"}); err != nil {
		t.Fatalf("save basic info: %v", err)
	}
	seedWeek(t, store, "2025-W20", []timesheet.Entry{
		{ID: "existing", Date: "2025-05-12", RegularHours: 8, EmployeeName: "Alice"},
	})

	ts := httptest.NewServer(NewServer(store))
	defer ts.Close()

	csvBody := "Date,Task,RegularHours,EmployeeName\n2025-03-03,Design,8,Alice\n"

	resp, err := http.Post(ts.URL+"/api/weeks/2025-W20/import", "text/csv", strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("request import: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 without confirm, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "confirmation required") {
		t.Fatalf("expected prompt in body: %s", string(body))
	}

	resp, err = http.Post(ts.URL+"/api/weeks/2025-W20/import?confirm=1", "text/csv", strings.NewReader(csvBody))
	if err != nil {
		t.Fatalf("request confirmed import: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with confirm, got %d", resp.StatusCode)
	}

	var imported importResponse
	if err := json.NewDecoder(resp.Body).Decode(&imported); err != nil {
		t.Fatalf("decode import response: %v", err)
	}
	if imported.Imported != 1 || !imported.Appended || imported.SourceWeekKey != "2025-W10" {
		t.Fatalf("unexpected import response: %+v", imported)
	}

	entries, err := store.WeekEntries("2025-W20")
	if err != nil {
		t.Fatalf("week entries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "existing" {
		t.Fatalf("expected appended entries, got %+v", entries)
	}
}

func TestServer_DeleteWeek(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	seedWeek(t, store, "2025-W20", []timesheet.Entry{{ID: "a", Date: "2025-05-12"}})

	ts := httptest.NewServer(NewServer(store))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/weeks/2025-W20", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete week: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete week again: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted week, got %d", resp.StatusCode)
	}
}

func TestServer_ProfileNotFoundBeforeBootstrap(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(NewServer(openTestStore(t)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/profile")
	if err != nil {
		t.Fatalf("request profile: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
