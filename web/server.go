// Package web serves a localhost-only single-user JSON API over the
// local timesheet store; it intentionally has no auth in this mode.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"weeksheet/importer"
	"weeksheet/internal/weekcal"
	"weeksheet/normalize"
	"weeksheet/output"
	"weeksheet/storage"
	"weeksheet/timesheet"
)

type Server struct {
	store *storage.SQLiteStore

	// importMu keeps at most one import pipeline in flight; the pipeline
	// does two dependent store writes that must not interleave.
	importMu sync.Mutex

	mux *http.ServeMux
}

func NewServer(store *storage.SQLiteStore) http.Handler {
	server := &Server{store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/weeks", server.handleWeeks)
	mux.HandleFunc("GET /api/weeks/{week}/entries", server.handleWeekEntries)
	mux.HandleFunc("GET /api/weeks/{week}/export.csv", server.handleWeekExport)
	mux.HandleFunc("POST /api/weeks/{week}/import", server.handleWeekImport)
	mux.HandleFunc("DELETE /api/weeks/{week}", server.handleWeekDelete)
	mux.HandleFunc("GET /api/profile", server.handleProfile)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	collection, err := s.store.LoadAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, BuildWeekRows(collection))
}

func (s *Server) handleWeekEntries(w http.ResponseWriter, r *http.Request) {
	weekKey, ok := weekKeyFromPath(w, r)
	if !ok {
		return
	}

	entries, err := s.store.WeekEntries(weekKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, BuildEntryRows(entries))
}

func (s *Server) handleWeekExport(w http.ResponseWriter, r *http.Request) {
	weekKey, ok := weekKeyFromPath(w, r)
	if !ok {
		return
	}

	entries, err := s.store.WeekEntries(weekKey)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		http.Error(w, "no entries for week "+weekKey, http.StatusNotFound)
		return
	}

	normalized := normalize.ForExport(entries)
	if r.URL.Query().Get("normalize") == "0" {
		normalized = plainCopies(entries)
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", weekKey+".csv"))
	if err := (&output.CSVWriter{}).WriteTo(w, normalized); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Server) handleWeekImport(w http.ResponseWriter, r *http.Request) {
	weekKey, ok := weekKeyFromPath(w, r)
	if !ok {
		return
	}

	records, err := (&importer.CSVReader{}).ReadFrom(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Without ?confirm=1 every prompt is declined; the 409 response
	// carries the question so the client can resubmit with consent.
	var gate importer.Confirmer
	pending := &pendingConfirmation{}
	if r.URL.Query().Get("confirm") == "1" {
		gate = importer.AutoApprove()
	} else {
		gate = pending
	}

	s.importMu.Lock()
	summary, err := importer.NewService(s.store, gate).Run(records, weekKey)
	s.importMu.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, importer.ErrUserDeclined):
			http.Error(w, "confirmation required: "+pending.prompt, http.StatusConflict)
		case errors.Is(err, importer.ErrNoValidRows), errors.Is(err, importer.ErrNoEmployeeName):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		TargetWeekKey: summary.TargetWeekKey,
		SourceWeekKey: summary.SourceWeekKey,
		Imported:      summary.Imported,
		Appended:      summary.Appended,
		Failures:      summary.Failures,
	})
}

func (s *Server) handleWeekDelete(w http.ResponseWriter, r *http.Request) {
	weekKey, ok := weekKeyFromPath(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteWeek(weekKey); err != nil {
		if errors.Is(err, storage.ErrWeekNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	info, err := s.store.LoadBasicInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if info == nil {
		http.Error(w, "no employee profile saved", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		EmployeeName: info.EmployeeName,
		EmployeeType: info.EmployeeType,
	})
}

type importResponse struct {
	TargetWeekKey string   `json:"targetWeekKey"`
	SourceWeekKey string   `json:"sourceWeekKey,omitempty"`
	Imported      int      `json:"imported"`
	Appended      bool     `json:"appended"`
	Failures      []string `json:"failures,omitempty"`
}

type profileResponse struct {
	EmployeeName string `json:"employeeName"`
	EmployeeType string `json:"employeeType"`
}

// pendingConfirmation declines every prompt and remembers the first
// question asked.
type pendingConfirmation struct {
	prompt string
}

func (c *pendingConfirmation) Confirm(prompt string) (bool, error) {
	if c.prompt == "" {
		c.prompt = prompt
	}
	return false, nil
}

func weekKeyFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	weekKey := strings.TrimSpace(r.PathValue("week"))
	if _, _, err := weekcal.ParseKey(weekKey); err != nil {
		http.Error(w, "invalid week key (expected YYYY-Wnn)", http.StatusBadRequest)
		return "", false
	}
	return weekKey, true
}

func plainCopies(entries []timesheet.Entry) []timesheet.NormalizedEntry {
	copies := make([]timesheet.NormalizedEntry, 0, len(entries))
	for _, entry := range entries {
		copies = append(copies, timesheet.NormalizedEntry{Entry: entry})
	}
	return copies
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
