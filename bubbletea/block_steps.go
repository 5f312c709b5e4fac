package bubbletea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mbarreto/decklens"
)

var _ MessageBlock = (*StepsBlock)(nil)

// StepsBlock renders the agent's pipeline steps with a collapsible toggle.
// Steps stream in during the turn; the block always shows the current
// snapshot, so it starts expanded and is collapsed in replayed transcripts.
type StepsBlock struct {
	steps     []decklens.AgentStep
	collapsed bool
	styles    Styles
}

// NewStepsBlock creates an expanded StepsBlock for a live turn.
func NewStepsBlock(styles Styles) *StepsBlock {
	return &StepsBlock{styles: styles}
}

// NewStepsBlockFromArchive creates a collapsed StepsBlock for a replayed
// transcript entry.
func NewStepsBlockFromArchive(steps []decklens.AgentStep, styles Styles) *StepsBlock {
	return &StepsBlock{steps: steps, collapsed: true, styles: styles}
}

// SetSteps replaces the rendered snapshot.
func (b *StepsBlock) SetSteps(steps []decklens.AgentStep) {
	b.steps = steps
}

func (b *StepsBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *StepsBlock) View(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	done := 0
	for _, s := range b.steps {
		if s.Status == decklens.StepCompleted {
			done++
		}
	}

	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.Step.Render(indicator+" Etapas") + " " +
		b.styles.Muted.Render(progressTag(done, len(b.steps)))
	if b.collapsed {
		return wrap.Render(header)
	}

	var sb strings.Builder
	sb.WriteString(header)
	for _, s := range b.steps {
		sb.WriteString("\n")
		sb.WriteString(b.renderStep(s))
	}
	return wrap.Render(sb.String())
}

func (b *StepsBlock) renderStep(s decklens.AgentStep) string {
	mark := b.styles.Muted.Render("…")
	if s.Status == decklens.StepCompleted {
		mark = b.styles.Success.Render("✓")
	}
	name := s.Name
	if name == "" {
		name = s.Node
	}
	line := "  " + mark + " "
	if s.Icon != "" {
		line += s.Icon + " "
	}
	line += b.styles.Step.Render(name)
	if s.Detail != "" {
		line += " " + b.styles.Muted.Render(s.Detail)
	} else if s.Description != "" {
		line += " " + b.styles.Muted.Render(s.Description)
	}
	return line
}

func progressTag(done, total int) string {
	if total == 0 {
		return ""
	}
	return fmt.Sprintf("(%d/%d)", done, total)
}
