package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"weeksheet/config"
	"weeksheet/internal/weekcal"
	"weeksheet/normalize"
	"weeksheet/storage"
	"weeksheet/timesheet"
)

var weeksDBPath string

var weeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List stored weeks",
	Long: `List every stored week with its date range, entry count and total
regular hours. Weeks whose regular hours exceed 40 are marked; the cap is
applied on export, not in storage.`,
	Example: `
  weeksheet weeks
  weeksheet weeks --db ./weeksheet.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(resolveDBPath(weeksDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		collection, err := store.LoadAll()
		if err != nil {
			return err
		}
		if len(collection) == 0 {
			fmt.Println("No weeks stored yet. Import one with: weeksheet import")
			return nil
		}

		keys := make([]string, 0, len(collection))
		for key := range collection {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Printf("%-10s  %-23s  %7s  %10s\n", "Week", "Range", "Entries", "Reg. hours")
		for _, key := range keys {
			entries := collection[key]
			total := normalize.Round2(timesheet.SumRegularHours(entries))

			rangeText := "?"
			if r, err := weekcal.RangeFromKey(key); err == nil {
				rangeText = fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
			}

			marker := ""
			if total > normalize.WeeklyCapHours {
				marker = "  (over 40h cap)"
			}
			fmt.Printf("%-10s  %-23s  %7d  %10.2f%s\n", key, rangeText, len(entries), total, marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weeksCmd)

	weeksCmd.Flags().StringVar(&weeksDBPath, "db", "", "Path to local SQLite database (default: storage.db_path from config)")
}
