package commands

import (
	"strings"
	"testing"
)

func TestSettingsSetAndShow(t *testing.T) {
	setupTestEnv(t)

	_, stderr, code := runCLI(t, "settings", "set", "voice1", "Puck", "--id", "SI1234")
	if code != 0 {
		t.Fatalf("set failed: %s", stderr)
	}

	stdout, stderr, code := runCLI(t, "settings", "show", "--id", "SI1234")
	if code != 0 {
		t.Fatalf("show failed: %s", stderr)
	}
	if !strings.Contains(stdout, "Puck") {
		t.Fatalf("expected stored voice in output, got: %s", stdout)
	}
}

func TestSettingsPromptRequiresElevation(t *testing.T) {
	setupTestEnv(t)

	_, _, code := runCLI(t, "settings", "set", "systemPrompt", "x", "--id", "SI1234")
	if code == 0 {
		t.Fatal("expected failure for non-elevated staff ID")
	}

	_, stderr, code := runCLI(t, "settings", "set", "systemPrompt", "x", "--id", "SI0000")
	if code != 0 {
		t.Fatalf("elevated set failed: %s", stderr)
	}
}
