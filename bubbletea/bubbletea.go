// Package bubbletea provides the Bubble Tea TUI for decklens: a transcript
// of query turns rendered as blocks, a streaming status line, and a text
// input for the next query.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbarreto/decklens"
)

// RunFunc executes one query turn. The onEvent callback is called for each
// streaming event in arrival order. The function blocks until the turn
// completes or the context is cancelled; transcript archiving is the
// runner's job, not the TUI's.
type RunFunc func(ctx context.Context, session *decklens.Session, text string, mode decklens.AnalysisMode, onEvent func(decklens.Event)) error

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. The context is used for graceful shutdown — when
// cancelled, the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// StreamEventMsg wraps a streaming event for delivery to the model.
type StreamEventMsg struct {
	Event decklens.Event
}

// TurnDoneMsg signals that the query turn has completed.
type TurnDoneMsg struct {
	Err error
}
