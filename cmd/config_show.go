package cmd

import (
	"fmt"
	"github.com/spf13/viper"

	"github.com/spf13/cobra"
	"weeksheet/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  weeksheet config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file found, using defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("storage.db_path: %s\n", cfg.Storage.DBPath)
		fmt.Printf("import.auto_confirm: %t\n", cfg.Import.AutoConfirm)
		fmt.Printf("export.normalize_hours: %t\n", cfg.Export.NormalizeHours)
		fmt.Printf("export.format: %s\n", cfg.Export.Format)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
