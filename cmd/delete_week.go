package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"weeksheet/config"
	"weeksheet/internal/weekcal"
	"weeksheet/storage"
)

var (
	deleteWeekKey    string
	deleteWeekDBPath string
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteWeekCmd = &cobra.Command{
	Use:   "delete-week",
	Short: "Delete all entries of one stored week",
	Long: `Destructive cleanup command.

This command deletes every stored entry of the given week. Other weeks and
the employee profile are untouched. Before deletion, an interactive
security prompt requires typing exactly "Y".`,
	Example: `
  # Delete one week (requires interactive confirmation)
  weeksheet delete-week --week 2025-W20
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := weekcal.ParseKey(deleteWeekKey); err != nil {
			return err
		}

		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		confirmed, err := confirmDeleteWeekPrompt(deletePromptInput, deletePromptOutput, deleteWeekKey)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		store, err := storage.OpenSQLite(resolveDBPath(deleteWeekDBPath, cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteWeek(deleteWeekKey); err != nil {
			if errors.Is(err, storage.ErrWeekNotFound) {
				return fmt.Errorf("no stored entries for week %s", deleteWeekKey)
			}
			return err
		}

		fmt.Printf("Deleted week: %s\n", deleteWeekKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteWeekCmd)

	deleteWeekCmd.Flags().StringVarP(&deleteWeekKey, "week", "w", "", "Week key to delete, e.g. 2025-W20")
	deleteWeekCmd.Flags().StringVar(&deleteWeekDBPath, "db", "", "Path to local SQLite database (default: storage.db_path from config)")

	_ = deleteWeekCmd.MarkFlagRequired("week")
}

func confirmDeleteWeekPrompt(input io.Reader, output io.Writer, weekKey string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete all entries of week %q? Type Y to confirm: ", weekKey); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}
