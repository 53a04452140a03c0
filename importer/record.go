package importer

import (
	"strings"
)

// Record is one data row of an imported timesheet, keyed by normalized
// column header. RowNumber is 1-based over data rows (the header row is
// not counted).
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the first non-missing value among the given column keys.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, header := range raw {
		headers[i] = normalizeHeader(header)
	}
	return headers
}

// recordFromRow maps one data row onto the normalized headers. Short
// rows pad the trailing columns with empty strings, so Record.Get never
// distinguishes a missing cell from a blank one.
func recordFromRow(headers, row []string, rowNumber int) Record {
	values := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(row) {
			values[header] = row[i]
		} else {
			values[header] = ""
		}
	}
	return Record{RowNumber: rowNumber, Values: values}
}

// Column aliases per logical field, tried in order: English PascalCase,
// English camelCase, Chinese header. Header normalization collapses the
// two English casings into one lookup, but the declared order is the
// resolution contract shared with the export headers.
var (
	dateAliases          = []string{"Date", "date", "日期"}
	startDateAliases     = []string{"StartDate", "startDate", "开始日期"}
	endDateAliases       = []string{"EndDate", "endDate", "结束日期"}
	taskAliases          = []string{"Task", "task", "任务"}
	zoneAliases          = []string{"Zone", "zone", "区域"}
	projectCodeAliases   = []string{"ProjectCode", "projectCode", "项目编码"}
	productModuleAliases = []string{"ProductModule", "productModule", "产品模块"}
	activityTypeAliases  = []string{"ActivityType", "activityType", "活动类型"}
	ttlHoursAliases      = []string{"TTLHours", "ttlHours", "总工时"}
	regularHoursAliases  = []string{"RegularHours", "regularHours", "正常工时"}
	otHoursAliases       = []string{"OTHours", "otHours", "加班工时"}
	employeeNameAliases  = []string{"EmployeeName", "employeeName", "员工姓名", "姓名"}
	employeeTypeAliases  = []string{"InternalOrOutsource", "internalOrOutsource", "内部或外包", "员工类型"}
)

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
