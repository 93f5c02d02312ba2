package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eburon/orbit/pkg/cli"
)

func TestOutputYAML(t *testing.T) {
	var buf bytes.Buffer
	result := map[string]any{"language1": "auto", "language2": "English (US)"}
	if err := cli.Output(result, cli.OutputOptions{Writer: &buf}); err != nil {
		t.Fatalf("Output() = %v, want nil", err)
	}
	out := buf.String()
	if !strings.Contains(out, "language1: auto") {
		t.Errorf("yaml output missing language1 field: %q", out)
	}
	if !strings.Contains(out, "language2: English (US)") {
		t.Errorf("yaml output missing language2 field: %q", out)
	}
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	result := map[string]any{"role": "user", "text": "Hola"}
	err := cli.Output(result, cli.OutputOptions{Format: cli.FormatJSON, Writer: &buf})
	if err != nil {
		t.Fatalf("Output() = %v, want nil", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("json output not parseable: %v", err)
	}
	if got["text"] != "Hola" {
		t.Errorf("text = %v, want %q", got["text"], "Hola")
	}
}

func TestOutputUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := cli.Output("x", cli.OutputOptions{Format: "toml", Writer: &buf})
	if err == nil {
		t.Fatal("Output() with unsupported format = nil, want error")
	}
}

func TestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := cli.Output([]string{"a", "b"}, cli.OutputOptions{Format: cli.FormatJSON, File: path})
	if err != nil {
		t.Fatalf("Output() = %v, want nil", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() = %v, want nil", err)
	}
	var got []string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("file output not parseable: %v", err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("file output = %v, want [a b]", got)
	}
}
