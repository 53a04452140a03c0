package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

type CSVReader struct{}

func (r *CSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	records, err := r.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("read csv file %s: %w", path, err)
	}
	return records, nil
}

// ReadFrom parses CSV content from any reader; the web import endpoint
// feeds request bodies through here without a temp file.
func (r *CSVReader) ReadFrom(input io.Reader) ([]Record, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	normalized := normalizeHeaders(headers)
	records := make([]Record, 0, 64)
	rowNumber := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNumber+1, err)
		}

		rowNumber++
		records = append(records, recordFromRow(normalized, row, rowNumber))
	}

	return records, nil
}
