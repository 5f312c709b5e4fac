package bubbletea

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*CodeBlock)(nil)

// CodeBlock renders the generated analysis code with a collapsible toggle.
// Code streams line by line during the turn and may be overwritten wholesale
// at the end when the backend sends the final version.
type CodeBlock struct {
	code      string
	collapsed bool
	styles    Styles
}

// NewCodeBlock creates an expanded CodeBlock for a live turn.
func NewCodeBlock(styles Styles) *CodeBlock {
	return &CodeBlock{styles: styles}
}

// NewCodeBlockFromArchive creates a collapsed CodeBlock for a replayed
// transcript entry.
func NewCodeBlockFromArchive(code string, styles Styles) *CodeBlock {
	return &CodeBlock{code: code, collapsed: true, styles: styles}
}

// SetCode replaces the rendered code snapshot.
func (b *CodeBlock) SetCode(code string) {
	b.code = code
}

func (b *CodeBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *CodeBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	lines := 0
	if b.code != "" {
		lines = strings.Count(strings.TrimSuffix(b.code, "\n"), "\n") + 1
	}
	header := b.styles.Code.Render(indicator+" Código") + " " +
		b.styles.Muted.Render(fmtLines(lines))
	if b.collapsed {
		return wrap.Render(header)
	}
	if b.code == "" {
		return wrap.Render(header)
	}
	body := b.styles.CodeBg.Width(width).Render(
		b.styles.Code.Render(strings.TrimSuffix(b.code, "\n")))
	return wrap.Render(header) + "\n" + body
}

func fmtLines(n int) string {
	if n == 1 {
		return "(1 linha)"
	}
	return "(" + strconv.Itoa(n) + " linhas)"
}
