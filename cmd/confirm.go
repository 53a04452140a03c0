package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"weeksheet/importer"
)

// terminalConfirmer asks yes/no questions on the terminal. Declining is
// the default: only "y"/"yes" proceeds.
func terminalConfirmer(input io.Reader, output io.Writer) importer.Confirmer {
	if output == nil {
		output = io.Discard
	}
	reader := bufio.NewReader(input)

	return importer.ConfirmerFunc(func(prompt string) (bool, error) {
		if _, err := fmt.Fprintf(output, "%s [y/N]: ", prompt); err != nil {
			return false, fmt.Errorf("write confirmation prompt: %w", err)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read confirmation: %w", err)
		}

		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	})
}
