package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"weeksheet/config"
	"weeksheet/normalize"
	"weeksheet/output"
	"weeksheet/storage"
	"weeksheet/timesheet"
)

var (
	exportWeekKey   string
	exportFormat    string
	exportOutput    string
	exportDBPath    string
	exportNormalize string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored weeks to CSV/Excel",
	Long: `Export stored entries to CSV or Excel.

By default regular hours are normalized: when a week's regular hours exceed
40, every entry is scaled down proportionally so the week sums to exactly
40.00 and total hours are recomputed. Stored data is never changed by an
export.

With --week one week is exported; without it, all stored weeks are exported
into one file, each week normalized independently.`,
	Example: `
  # Export one week with the 40-hour cap applied
  weeksheet export --week 2025-W20 --output ./2025-W20.csv

  # Export all weeks to Excel
  weeksheet export --output ./all-weeks.xlsx

  # Export raw stored hours without the cap
  weeksheet export --week 2025-W20 --normalize off --output ./raw.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		format := resolveExportFormat(exportFormat, exportOutput, cfg.Export.Format)
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}

		applyCap, err := resolveNormalizeMode(exportNormalize, cfg.Export.NormalizeHours)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(resolveDBPath(exportDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		rows, weeks, err := collectExportRows(store, exportWeekKey, applyCap)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("nothing to export")
		}

		if err := writer.Write(exportOutput, rows); err != nil {
			return err
		}

		fmt.Printf("Export completed. Weeks: %d, Rows: %d, Format: %s, File: %s\n",
			weeks, len(rows), format, exportOutput)
		return nil
	},
}

func collectExportRows(store *storage.SQLiteStore, weekKey string, applyCap bool) ([]timesheet.NormalizedEntry, int, error) {
	if weekKey != "" {
		entries, err := store.WeekEntries(weekKey)
		if err != nil {
			return nil, 0, err
		}
		return exportView(entries, applyCap), 1, nil
	}

	collection, err := store.LoadAll()
	if err != nil {
		return nil, 0, err
	}

	keys := make([]string, 0, len(collection))
	for key := range collection {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]timesheet.NormalizedEntry, 0, 64)
	for _, key := range keys {
		rows = append(rows, exportView(collection[key], applyCap)...)
	}
	return rows, len(keys), nil
}

func exportView(entries []timesheet.Entry, applyCap bool) []timesheet.NormalizedEntry {
	if applyCap {
		return normalize.ForExport(entries)
	}

	rows := make([]timesheet.NormalizedEntry, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, timesheet.NormalizedEntry{Entry: entry})
	}
	return rows
}

// resolveExportFormat picks the output format: explicit flag first, then
// the output file extension, then the configured default. The config
// default only applies when the extension says nothing (e.g. ".out").
func resolveExportFormat(flagValue, outputPath, configFormat string) string {
	if f := strings.TrimSpace(flagValue); f != "" {
		return f
	}
	if f := output.DetectFormat(outputPath); f != "" {
		return f
	}
	if f := strings.TrimSpace(configFormat); f != "" {
		return f
	}
	return "csv"
}

func resolveNormalizeMode(mode string, configDefault bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return configDefault, nil
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid normalize mode %q (supported: auto|on|off)", mode)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportWeekKey, "week", "w", "", "Week key to export (all weeks when omitted)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension, then config)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to local SQLite database (default: storage.db_path from config)")
	exportCmd.Flags().StringVar(&exportNormalize, "normalize", "auto", "Apply the 40-hour cap: auto|on|off")

	_ = exportCmd.MarkFlagRequired("output")
}
