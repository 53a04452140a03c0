package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"weeksheet/config"
	"weeksheet/importer"
	"weeksheet/storage"
)

var (
	importInput   string
	importFormat  string
	importWeekKey string
	importDBPath  string
	importYes     bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV/Excel timesheet into one target week",
	Long: `Read a timesheet file, re-align every date onto the target week, and merge
the rows into the local SQLite database.

The source week is detected from the first row with a parseable date; all
three date columns (date, start date, end date) are shifted by the same
week-start offset so weekdays and multi-day spans survive the move.
Column headers may be English (PascalCase or camelCase) or Chinese.

Confirmation prompts guard three decisions:
- adopting the employee profile from the file on first-ever import,
- importing rows whose employee name differs from the saved profile,
- appending to a target week that already has entries.
Declining any prompt aborts the import without writing.

Rows without a parseable date are skipped and listed in the summary; they
never abort the rest of the batch.`,
	Example: `
  # Import a CSV timesheet into week 2025-W20
  weeksheet import -i timesheet.csv --week 2025-W20

  # Import an Excel timesheet, answering yes to all prompts
  weeksheet import -i timesheet.xlsx --week 2025-W20 --yes

  # Force the csv reader regardless of file extension
  weeksheet import -i export.txt --format csv --week 2025-W20

  # Import with custom config file
  weeksheet --configFile ./custom.yaml import -i timesheet.csv --week 2025-W20
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		reader, err := importer.ReaderForFile(importInput, importFormat)
		if err != nil {
			return err
		}
		records, err := reader.Read(importInput)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(resolveDBPath(importDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		confirm := terminalConfirmer(os.Stdin, os.Stdout)
		if importYes || cfg.Import.AutoConfirm {
			confirm = importer.AutoApprove()
		}

		summary, err := importer.NewService(store, confirm).Run(records, importWeekKey)
		if err != nil {
			return err
		}

		if summary.SourceWeekKey != "" {
			fmt.Printf("Import completed. Week: %s, Rows imported: %d, Re-aligned from: %s\n",
				summary.TargetWeekKey, summary.Imported, summary.SourceWeekKey)
		} else {
			fmt.Printf("Import completed. Week: %s, Rows imported: %d\n",
				summary.TargetWeekKey, summary.Imported)
		}
		if summary.Appended {
			fmt.Println("Entries were appended after the week's existing entries.")
		}
		for _, failure := range summary.Failures {
			fmt.Printf("Skipped %s\n", failure)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "Input file path")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVarP(&importWeekKey, "week", "w", "", "Target week key, format YYYY-Wnn")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to local SQLite database (default: storage.db_path from config)")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Answer yes to all confirmation prompts")

	_ = importCmd.MarkFlagRequired("input")
	_ = importCmd.MarkFlagRequired("week")
}

func resolveDBPath(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Storage.DBPath
}
