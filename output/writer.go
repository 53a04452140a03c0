package output

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"weeksheet/timesheet"
)

type Writer interface {
	Write(path string, entries []timesheet.NormalizedEntry) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DetectFormat infers the output format from the file extension. It
// returns "" when the extension names no known format, so callers can
// fall through to their own default.
func DetectFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return ""
	}
}

// exportHeaders match the import aliases, so an exported file can be
// re-imported without a mapping step.
var exportHeaders = []string{
	"Date",
	"StartDate",
	"EndDate",
	"Task",
	"Zone",
	"ProjectCode",
	"ProductModule",
	"ActivityType",
	"TTLHours",
	"RegularHours",
	"OTHours",
	"EmployeeName",
	"InternalOrOutsource",
}

func exportRow(entry timesheet.NormalizedEntry) []string {
	return []string{
		entry.Date,
		entry.StartDate,
		entry.EndDate,
		entry.Task,
		entry.Zone,
		entry.ProjectCode,
		entry.ProductModule,
		entry.ActivityType,
		formatHours(entry.TTLHours),
		formatHours(entry.RegularHours),
		formatHours(entry.OTHours),
		entry.EmployeeName,
		entry.InternalOrOutsource,
	}
}

func formatHours(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
