package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_AppliesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(`{}`))
	if err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
	if cfg.Storage.DBPath != "./weeksheet.db" {
		t.Fatalf("unexpected default db path: %q", cfg.Storage.DBPath)
	}
	if !cfg.Export.NormalizeHours {
		t.Fatalf("expected normalization enabled by default")
	}
	if cfg.Export.Format != "csv" {
		t.Fatalf("unexpected default export format: %q", cfg.Export.Format)
	}
	if cfg.Import.AutoConfirm {
		t.Fatalf("expected interactive imports by default")
	}
}

func TestValidateYAMLContent_RejectsUnsupportedExportFormat(t *testing.T) {
	t.Parallel()

	content := []byte(`storage:
  db_path: "./weeksheet.db"
export:
  format: "parquet"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for unsupported export format")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_AcceptsExcelFormat(t *testing.T) {
	t.Parallel()

	content := []byte(`storage:
  db_path: "/tmp/weeksheet.db"
export:
  normalize_hours: false
  format: "excel"
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected config to validate: %v", err)
	}
	if cfg.Export.NormalizeHours {
		t.Fatalf("expected normalization disabled")
	}
	if cfg.Export.Format != "excel" {
		t.Fatalf("unexpected format: %q", cfg.Export.Format)
	}
}

func TestExampleYAML_Validates(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("example config should validate: %v", err)
	}
}
