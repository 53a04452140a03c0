package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"weeksheet/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the active config file.",
	Long: `Open the weeksheet config in a text editor and validate the result.

The editor comes from $VISUAL, then $EDITOR, then vi. A missing config
file is seeded with the example template before the editor starts. After
the editor exits, the saved file must parse and validate as weeksheet
YAML or the command fails.`,
	Example: `
  # Edit the active config
  weeksheet config edit

  # Edit a specific file
  weeksheet --configFile ./team.yaml config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := activeConfigPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		seeded, err := seedConfigTemplate(path)
		if err != nil {
			return err
		}
		if seeded {
			fmt.Printf("No config file found, seeded template at: %s\n", path)
		}

		editor := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"), path)
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}

		edited, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read edited config: %w", err)
		}
		if _, err := config.ValidateYAMLContent(edited); err != nil {
			return fmt.Errorf("validate %s: %w", path, err)
		}

		fmt.Printf("Configuration saved and validated: %s\n", path)
		return nil
	},
}

// activeConfigPath picks the file the config subcommands operate on:
// the --configFile flag, then whatever viper loaded, then
// $HOME/.weeksheet.yaml even when no file exists there yet.
func activeConfigPath(flagPath, loadedPath string) (string, error) {
	if strings.TrimSpace(flagPath) != "" {
		return flagPath, nil
	}
	if strings.TrimSpace(loadedPath) != "" {
		return loadedPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".weeksheet.yaml"), nil
}

// seedConfigTemplate writes the example config when nothing exists at
// path yet. It reports whether a file was written.
func seedConfigTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("write example config: %w", err)
	}
	return true, nil
}

// editorCommand builds the editor invocation from the first non-empty
// candidate. The $VISUAL/$EDITOR value may carry its own arguments
// ("code --wait"); the config path is appended last.
func editorCommand(visual, editor, configPath string) *exec.Cmd {
	for _, candidate := range []string{visual, editor} {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		return exec.Command(fields[0], append(fields[1:], configPath)...)
	}
	return exec.Command("vi", configPath)
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
