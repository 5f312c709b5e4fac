package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mbarreto/decklens"
	"github.com/mbarreto/decklens/output"
)

var _ MessageBlock = (*ExecutionBlock)(nil)

const maxPreviewLen = 60

// ExecutionBlock renders a code execution outcome with a collapsible
// toggle. Successful executions start collapsed; failures start expanded.
type ExecutionBlock struct {
	exec      decklens.ExecutionResult
	collapsed bool
	styles    Styles
}

// NewExecutionBlock creates an ExecutionBlock.
func NewExecutionBlock(exec decklens.ExecutionResult, styles Styles) *ExecutionBlock {
	return &ExecutionBlock{
		exec:      exec,
		collapsed: exec.Success,
		styles:    styles,
	}
}

func (b *ExecutionBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		if !b.exec.Success {
			// Failures are always expanded.
			b.collapsed = false
			return b, nil
		}
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ExecutionBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	statusIcon := "✓"
	iconStyle := b.styles.Success
	if !b.exec.Success {
		statusIcon = "✗"
		iconStyle = b.styles.Error
	}
	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.Step.Render(indicator+" Execução") + " " + iconStyle.Render(statusIcon)

	if b.collapsed {
		if preview := b.preview(); preview != "" {
			header += "  " + b.styles.Muted.Render(preview)
		}
		return wrap.Render(header)
	}

	var sb strings.Builder
	sb.WriteString(header)
	if out := value(b.exec.Stdout); out != "" {
		sb.WriteString("\n")
		sb.WriteString(output.Clean(out))
	}
	if errOut := value(b.exec.Stderr); errOut != "" {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Error.Render(output.Clean(errOut)))
	}
	return wrap.Render(sb.String())
}

func (b *ExecutionBlock) preview() string {
	src := value(b.exec.Stdout)
	if src == "" {
		src = value(b.exec.Stderr)
	}
	if src == "" {
		return ""
	}
	line := firstLine(output.Sanitize(src))
	runes := []rune(line)
	if len(runes) > maxPreviewLen {
		line = string(runes[:maxPreviewLen]) + "…"
	}
	return line
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
