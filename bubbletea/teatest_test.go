package bubbletea_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/mbarreto/decklens"
	bt "github.com/mbarreto/decklens/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Teatest(t *testing.T) {
	t.Parallel()

	t.Run("full query cycle with event delivery", func(t *testing.T) {
		t.Parallel()

		run := func(_ context.Context, session *decklens.Session, text string, mode decklens.AnalysisMode, onEvent func(decklens.Event)) error {
			onEvent(decklens.EventStart{})
			onEvent(decklens.EventResponseChunk{Chunk: "O EARM está em 62%."})
			onEvent(decklens.EventComplete{})
			session.Messages = append(session.Messages,
				decklens.QueryMessage{ID: "q1", Text: text, Mode: mode},
				decklens.AnswerMessage{ID: "a1", Response: "O EARM está em 62%."},
			)
			return nil
		}

		session := &decklens.Session{ID: "s-1"}
		m := bt.New(run, session, decklens.DefaultTheme())

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)

		tm.Type("qual o earm?")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("EARM está em 62%")) &&
				bytes.Contains(out, []byte("Enter envia"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.Model)
		require.True(t, ok)
		assert.False(t, final.Running())
		assert.NoError(t, final.Err())
		// The runner archives query and answer into the session.
		assert.Len(t, session.Messages, 2)
	})

	t.Run("existing transcript renders on init", func(t *testing.T) {
		t.Parallel()

		session := &decklens.Session{
			ID: "s-1",
			Messages: []decklens.Message{
				decklens.QueryMessage{ID: "q1", Text: "qual a carga do sul?"},
				decklens.AnswerMessage{ID: "a1", Response: "A carga do Sul é 12 GWmed."},
			},
		}
		m := bt.New(nopRun, session, decklens.DefaultTheme())

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("qual a carga do sul?")) &&
				bytes.Contains(out, []byte("12 GWmed"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
		tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
	})
}
