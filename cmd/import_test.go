package cmd

import (
	"bytes"
	"testing"

	"weeksheet/config"
)

func TestTerminalConfirmer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "y confirms", input: "y\n", want: true},
		{name: "yes confirms", input: "yes\n", want: true},
		{name: "uppercase Y confirms", input: "Y\n", want: true},
		{name: "n declines", input: "n\n", want: false},
		{name: "empty declines", input: "\n", want: false},
		{name: "eof declines", input: "", want: false},
		{name: "y without newline confirms", input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			confirm := terminalConfirmer(bytes.NewBufferString(tt.input), &out)

			got, err := confirm.Confirm("Append to week 2025-W20?")
			if err != nil {
				t.Fatalf("confirm returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if out.Len() == 0 {
				t.Fatalf("expected prompt output")
			}
		})
	}
}

func TestTerminalConfirmerConsumesOneLinePerPrompt(t *testing.T) {
	var out bytes.Buffer
	confirm := terminalConfirmer(bytes.NewBufferString("y\nn\n"), &out)

	first, err := confirm.Confirm("first")
	if err != nil {
		t.Fatalf("first confirm returned error: %v", err)
	}
	second, err := confirm.Confirm("second")
	if err != nil {
		t.Fatalf("second confirm returned error: %v", err)
	}

	if !first || second {
		t.Fatalf("expected first=true second=false, got first=%v second=%v", first, second)
	}
}

func TestResolveDBPath(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.DBPath = "./from-config.db"

	if got := resolveDBPath("./from-flag.db", cfg); got != "./from-flag.db" {
		t.Fatalf("expected flag value to win, got %q", got)
	}
	if got := resolveDBPath("", cfg); got != "./from-config.db" {
		t.Fatalf("expected config value, got %q", got)
	}
}
