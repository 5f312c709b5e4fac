package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbarreto/decklens"
	bt "github.com/mbarreto/decklens/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, run bt.RunFunc) bt.Model {
	t.Helper()
	return initModelWithSession(t, run, &decklens.Session{ID: "s-1"})
}

// initModelWithSession creates a model over an existing session transcript.
func initModelWithSession(t *testing.T, run bt.RunFunc, session *decklens.Session) bt.Model {
	t.Helper()
	m := bt.New(run, session, decklens.DefaultTheme())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopRun is a run function that does nothing.
func nopRun(_ context.Context, _ *decklens.Session, _ string, _ decklens.AnalysisMode, _ func(decklens.Event)) error {
	return nil
}

// feedEvents pumps a sequence of stream events through the model.
func feedEvents(t *testing.T, m bt.Model, events ...decklens.Event) bt.Model {
	t.Helper()
	for _, evt := range events {
		m = updateModel(t, m, bt.StreamEventMsg{Event: evt})
	}
	return m
}
