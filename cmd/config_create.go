package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a starter configuration file.",
	Long: `Write the example configuration template to the active config path.

An existing config file is left untouched; use "config edit" to change one.`,
	Example: `
  # Create default config at $HOME/.weeksheet.yaml
  weeksheet config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := activeConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := seedConfigTemplate(path)
		if err != nil {
			return err
		}
		if !created {
			fmt.Printf("Config file already exists at: %s\n", path)
			return nil
		}

		fmt.Printf("New config file created at: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
