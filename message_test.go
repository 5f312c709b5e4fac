package decklens_test

import (
	"testing"
	"time"

	"github.com/mbarreto/decklens"
	"github.com/stretchr/testify/assert"
)

func TestAnswerFromProgress(t *testing.T) {
	t.Parallel()

	t.Run("archives the full turn state", func(t *testing.T) {
		t.Parallel()
		stdout := "ok"
		p := decklens.NewProgress()
		p.Response = "O EARM subiu."
		p.Code = "df = earm(deck)"
		p.Steps = []decklens.AgentStep{{Node: "planner", Status: decklens.StepCompleted}}
		p.Execution = &decklens.ExecutionResult{Success: true, Stdout: &stdout}
		p.Result = &decklens.Result{ToolName: "earmtool"}

		ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		msg := decklens.AnswerFromProgress("a1", p, ts)

		assert.Equal(t, "a1", msg.ID)
		assert.Equal(t, "O EARM subiu.", msg.Response)
		assert.Equal(t, "df = earm(deck)", msg.Code)
		assert.Equal(t, p.Steps, msg.Steps)
		assert.Equal(t, p.Execution, msg.Execution)
		assert.Equal(t, p.Result, msg.Result)
		assert.Empty(t, msg.Err)
		assert.Equal(t, ts, msg.Timestamp)
	})

	t.Run("preserves the error alongside partial content", func(t *testing.T) {
		t.Parallel()
		p := decklens.NewProgress()
		p.Response = "resposta parcial"
		p.Err = "deck não carregado"

		msg := decklens.AnswerFromProgress("a2", p, time.Now())

		assert.Equal(t, "resposta parcial", msg.Response)
		assert.Equal(t, "deck não carregado", msg.Err)
	})
}
