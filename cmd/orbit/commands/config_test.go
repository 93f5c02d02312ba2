package commands

import (
	"strings"
	"testing"

	"github.com/eburon/orbit/cmd/orbit/internal/config"
)

func TestConfigSetAndView(t *testing.T) {
	dir := setupTestEnv(t)

	_, stderr, code := runCLI(t, "config", "set", "defaults.language2", "Spanish")
	if code != 0 {
		t.Fatalf("set failed: %s", stderr)
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Defaults.Language2 != "Spanish" {
		t.Fatalf("Language2 = %q, want %q", cfg.Defaults.Language2, "Spanish")
	}

	globalConfig = nil
	stdout, stderr, code := runCLI(t, "config", "view")
	if code != 0 {
		t.Fatalf("view failed: %s", stderr)
	}
	if !strings.Contains(stdout, "Spanish") {
		t.Fatalf("expected saved language in view output, got: %s", stdout)
	}
}

func TestConfigSetRejectsGuestAuto(t *testing.T) {
	setupTestEnv(t)

	_, _, code := runCLI(t, "config", "set", "defaults.language2", "auto")
	if code == 0 {
		t.Fatal("expected failure setting guest language to auto")
	}
}

func TestConfigSetUnknownKey(t *testing.T) {
	setupTestEnv(t)

	_, _, code := runCLI(t, "config", "set", "nope", "x")
	if code == 0 {
		t.Fatal("expected failure for unknown key")
	}
}

func TestConfigLanguages(t *testing.T) {
	setupTestEnv(t)

	stdout, stderr, code := runCLI(t, "config", "languages")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "English (US)") || !strings.Contains(stdout, "Orus") {
		t.Fatalf("expected catalog entries, got: %s", stdout)
	}
}
