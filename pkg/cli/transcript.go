package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eburon/orbit/pkg/session"
)

// Theme defines the transcript color scheme.
type Theme struct {
	Staff  lipgloss.Color // Staff ("user") turns
	Guest  lipgloss.Color // Guest ("agent") turns
	System lipgloss.Color
	Dim    lipgloss.Color
}

// DefaultTheme is the stock scheme.
var DefaultTheme = Theme{
	Staff:  lipgloss.Color("#00ff9f"),
	Guest:  lipgloss.Color("#5fafff"),
	System: lipgloss.Color("#ffaf00"),
	Dim:    lipgloss.Color("#6e7681"),
}

// Transcript renders turns for the terminal.
type Transcript struct {
	staff  lipgloss.Style
	guest  lipgloss.Style
	system lipgloss.Style
	dim    lipgloss.Style
}

// NewTranscript creates a renderer from a theme.
func NewTranscript(t Theme) *Transcript {
	return &Transcript{
		staff:  lipgloss.NewStyle().Bold(true).Foreground(t.Staff),
		guest:  lipgloss.NewStyle().Bold(true).Foreground(t.Guest),
		system: lipgloss.NewStyle().Foreground(t.System),
		dim:    lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// RenderTurn renders one turn as a single line. An open streaming turn
// gets a trailing cursor marker; closed turns render as static text.
func (tr *Transcript) RenderTurn(turn session.Turn, streaming bool) string {
	var label lipgloss.Style
	var name string
	switch turn.Role {
	case session.RoleUser:
		label, name = tr.staff, "staff"
	case session.RoleAgent:
		label, name = tr.guest, "guest"
	default:
		label, name = tr.system, "system"
	}

	var b strings.Builder
	b.WriteString(tr.dim.Render(turn.Timestamp.Format("15:04:05")))
	b.WriteString(" ")
	b.WriteString(label.Render(name))
	b.WriteString("  ")
	b.WriteString(turn.Text)
	if streaming && !turn.IsFinal {
		b.WriteString(tr.dim.Render(" ▌"))
	}
	return b.String()
}

// Render renders a whole log. Only the tail may show the streaming cursor.
func (tr *Transcript) Render(turns []session.Turn) string {
	lines := make([]string, len(turns))
	for i, turn := range turns {
		lines[i] = tr.RenderTurn(turn, i == len(turns)-1)
	}
	return strings.Join(lines, "\n")
}
