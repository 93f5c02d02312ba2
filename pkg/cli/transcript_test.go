package cli_test

import (
	"strings"
	"testing"
	"time"

	"github.com/eburon/orbit/pkg/cli"
	"github.com/eburon/orbit/pkg/session"
)

func TestRenderTurnLabels(t *testing.T) {
	tr := cli.NewTranscript(cli.DefaultTheme)
	ts := time.Date(2025, 3, 1, 9, 30, 15, 0, time.UTC)

	tests := []struct {
		role session.Role
		want string
	}{
		{session.RoleUser, "staff"},
		{session.RoleAgent, "guest"},
		{session.RoleSystem, "system"},
	}
	for _, tt := range tests {
		line := tr.RenderTurn(session.Turn{Timestamp: ts, Role: tt.role, Text: "hi", IsFinal: true}, false)
		if !strings.Contains(line, tt.want) {
			t.Errorf("RenderTurn(%s) = %q, want label %q", tt.role, line, tt.want)
		}
		if !strings.Contains(line, "09:30:15") {
			t.Errorf("RenderTurn(%s) = %q, want timestamp", tt.role, line)
		}
	}
}

func TestRenderStreamingCursor(t *testing.T) {
	tr := cli.NewTranscript(cli.DefaultTheme)
	open := session.Turn{Timestamp: time.Now(), Role: session.RoleAgent, Text: "Hel"}

	line := tr.RenderTurn(open, true)
	if !strings.Contains(line, "▌") {
		t.Errorf("open tail turn = %q, want streaming cursor", line)
	}

	closed := open
	closed.IsFinal = true
	line = tr.RenderTurn(closed, true)
	if strings.Contains(line, "▌") {
		t.Errorf("final turn = %q, want no streaming cursor", line)
	}
}

func TestRenderOnlyTailShowsCursor(t *testing.T) {
	tr := cli.NewTranscript(cli.DefaultTheme)
	now := time.Now()
	turns := []session.Turn{
		{Timestamp: now, Role: session.RoleUser, Text: "Hello", IsFinal: true},
		{Timestamp: now, Role: session.RoleAgent, Text: "Hola"},
	}
	out := tr.Render(turns)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Render() produced %d lines, want 2", len(lines))
	}
	if strings.Contains(lines[0], "▌") {
		t.Errorf("non-tail line = %q, want no cursor", lines[0])
	}
	if !strings.Contains(lines[1], "▌") {
		t.Errorf("tail line = %q, want cursor", lines[1])
	}
}
