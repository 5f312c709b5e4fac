package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mbarreto/decklens"
	"github.com/mbarreto/decklens/view"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Query   lipgloss.Style
	Step    lipgloss.Style
	Code    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	CodeBg  lipgloss.Style

	// Result styles the structured payload renderers.
	Result view.Styles
}

// NewStyles creates Styles from a Theme.
func NewStyles(t decklens.Theme) Styles {
	return Styles{
		Query:   lipgloss.NewStyle().Foreground(ansiColor(t.Query)).Bold(true),
		Step:    lipgloss.NewStyle().Foreground(ansiColor(t.Step)),
		Code:    lipgloss.NewStyle().Foreground(ansiColor(t.Code)),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		CodeBg:  lipgloss.NewStyle().Background(ansiColor(t.CodeBg)).PaddingLeft(1),
		Result:  view.NewStyles(t),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
