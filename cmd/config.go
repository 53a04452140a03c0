package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage weeksheet configuration file values.",
	Long: `Create, edit and display the weeksheet configuration file.

The configuration stores application-wide values:
- storage.db_path
- import.auto_confirm
- export.normalize_hours
- export.format`,
	Example: `
  # Create default config in $HOME/.weeksheet.yaml
  weeksheet config create

  # Show active config and source file
  weeksheet config show

  # Open active config in editor (creates example if missing)
  weeksheet config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
