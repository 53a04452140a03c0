/*
Copyright © 2025

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weeksheet/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weeksheet",
	Short: "Track weekly work-hour entries with CSV/Excel import, export, and a 40-hour export cap.",
	Long: `
**********************************************
*               WEEKSHEET                    *
**********************************************

This CLI keeps weekly work-hour entries in a local SQLite database, keyed by
ISO week ("2025-W20"). Timesheets import from CSV or Excel with automatic
date re-alignment onto the chosen target week, and export back to CSV/Excel
with regular hours normalized to the 40-hour weekly cap.

Supported input formats:
- CSV: .csv
- Excel: .xlsx, .xlsm, .xls
`,
	Example: `
  # Create configuration file
  weeksheet config create

  # Import a timesheet into week 2025-W20 (dates re-aligned automatically)
  weeksheet import -i timesheet.csv --week 2025-W20

  # List stored weeks with totals
  weeksheet weeks

  # Export one week with the 40-hour cap applied
  weeksheet export --week 2025-W20 --output ./2025-W20.csv

  # Delete one week's entries
  weeksheet delete-week --week 2025-W20

  # Start the local JSON API
  weeksheet serve --port 8080
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.weeksheet.yaml, then ./.weeksheet.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".weeksheet" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".weeksheet")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: weeksheet config create")
	}
}
