package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mbarreto/decklens"
)

var _ MessageBlock = (*QueryBlock)(nil)

// QueryBlock renders an analyst query with a "> " prefix. Non-default
// analysis modes are tagged so a transcript mixing modes stays readable.
type QueryBlock struct {
	text   string
	mode   decklens.AnalysisMode
	styles Styles
}

// NewQueryBlock creates a QueryBlock.
func NewQueryBlock(text string, mode decklens.AnalysisMode, styles Styles) *QueryBlock {
	return &QueryBlock{text: text, mode: mode, styles: styles}
}

func (b *QueryBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *QueryBlock) View(width int) string {
	content := b.styles.Query.Render("> ") + b.text
	if b.mode != "" && b.mode != decklens.ModeSingle {
		content += " " + b.styles.Muted.Render("["+string(b.mode)+"]")
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
