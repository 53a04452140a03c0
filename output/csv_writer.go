package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"weeksheet/timesheet"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, entries []timesheet.NormalizedEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	return w.WriteTo(file, entries)
}

// WriteTo streams CSV content to any writer; the web export handler
// writes straight into the HTTP response.
func (w *CSVWriter) WriteTo(out io.Writer, entries []timesheet.NormalizedEntry) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, entry := range entries {
		if err := writer.Write(exportRow(entry)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
