package view

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mbarreto/decklens"
)

// Styles maps a Theme to lipgloss styles for result rendering.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Bar     lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t decklens.Theme) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Cell:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Bar:     lipgloss.NewStyle().Foreground(ansiColor(t.Query)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
