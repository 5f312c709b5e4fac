package decklens_test

import (
	"testing"

	"github.com/mbarreto/decklens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func apply(p *decklens.Progress, events ...decklens.Event) {
	for _, evt := range events {
		p.Apply(evt)
	}
}

func TestProgress_StartResetsEverything(t *testing.T) {
	t.Parallel()

	// Build up arbitrary prior state.
	p := decklens.NewProgress()
	apply(&p,
		decklens.EventStart{},
		decklens.EventNodeStart{Node: "plan", Name: "Planning"},
		decklens.EventCodeLine{Line: "x = 1"},
		decklens.EventResponseChunk{Chunk: "partial"},
		decklens.EventExecutionResult{Success: true, Stdout: ptr("out")},
		decklens.EventRetry{Count: 2, MaxRetries: ptr(5)},
		decklens.EventError{Message: "boom"},
	)

	p.Apply(decklens.EventStart{})

	want := decklens.NewProgress()
	want.Streaming = true
	assert.Equal(t, want, p)
}

func TestProgress_StartResetsZeroValueToo(t *testing.T) {
	t.Parallel()
	var p decklens.Progress
	p.Apply(decklens.EventStart{})

	assert.True(t, p.Streaming)
	assert.Equal(t, decklens.DefaultMaxRetries, p.MaxRetries)
	assert.Empty(t, p.Steps)
}

func TestProgress_CodeAppendThenOverwrite(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	apply(&p,
		decklens.EventCodeLine{Line: "a"},
		decklens.EventCodeLine{Line: "b"},
	)
	assert.Equal(t, "a\nb", p.Code, "lines join with a newline, no leading newline")

	p.Apply(decklens.EventCodeComplete{Code: "x"})
	assert.Equal(t, "x", p.Code, "code_complete overwrites, never appends")
}

func TestProgress_ResponseAppendThenOverwrite(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	apply(&p,
		decklens.EventResponseStart{},
		decklens.EventResponseChunk{Chunk: "Hel"},
		decklens.EventResponseChunk{Chunk: "lo"},
	)
	assert.Equal(t, "Hello", p.Response, "chunks concatenate with no separator")

	p.Apply(decklens.EventResponseComplete{Response: "Goodbye"})
	assert.Equal(t, "Goodbye", p.Response)
}

func TestProgress_StepDedupAndCompletion(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	apply(&p,
		decklens.EventNodeStart{Node: "fetch", Name: "Fetching", Icon: "⚡"},
		decklens.EventNodeStart{Node: "analyze", Name: "Analyzing"},
		decklens.EventNodeStart{Node: "fetch", Name: "Fetching"},
	)

	require.Len(t, p.Steps, 2, "repeated node_start must not duplicate")
	assert.Equal(t, "fetch", p.Steps[0].Node)
	assert.Equal(t, "analyze", p.Steps[1].Node)
	assert.Equal(t, decklens.StepRunning, p.Steps[0].Status)

	p.Apply(decklens.EventNodeComplete{Node: "fetch"})
	assert.Equal(t, decklens.StepCompleted, p.Steps[0].Status)
	assert.Equal(t, "fetch", p.Steps[0].Node, "completion must not reorder steps")
	assert.Equal(t, decklens.StepRunning, p.Steps[1].Status)
}

func TestProgress_NodeDetailUpdatesInPlace(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	apply(&p,
		decklens.EventNodeStart{Node: "fetch", Name: "Fetching"},
		decklens.EventNodeDetail{Node: "fetch", Detail: "reading dger.dat"},
		decklens.EventNodeDetail{Node: "fetch", Detail: "reading sistema.dat"},
	)

	require.Len(t, p.Steps, 1)
	assert.Equal(t, "reading sistema.dat", p.Steps[0].Detail)
}

func TestProgress_EventsForUnknownNodeCreateStep(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	p.Apply(decklens.EventNodeDetail{Node: "ghost", Detail: "early detail"})

	require.Len(t, p.Steps, 1)
	assert.Equal(t, decklens.StepRunning, p.Steps[0].Status)

	p.Apply(decklens.EventNodeComplete{Node: "other"})
	require.Len(t, p.Steps, 2)
	assert.Equal(t, decklens.StepCompleted, p.Steps[1].Status)
}

func TestProgress_ExecutionResultPartialMerge(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	p.Apply(decklens.EventExecutionResult{Success: true, Stdout: ptr("first part")})

	require.NotNil(t, p.Execution)
	assert.True(t, p.Execution.Success)
	require.NotNil(t, p.Execution.Stdout)

	// Second event without stdout must not clear the earlier value.
	p.Apply(decklens.EventExecutionResult{Success: false, Stderr: ptr("warning")})
	assert.False(t, p.Execution.Success)
	require.NotNil(t, p.Execution.Stdout)
	assert.Equal(t, "first part", *p.Execution.Stdout)
	require.NotNil(t, p.Execution.Stderr)
	assert.Equal(t, "warning", *p.Execution.Stderr)
}

func TestProgress_RetryMerge(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	assert.Equal(t, decklens.DefaultMaxRetries, p.MaxRetries)

	p.Apply(decklens.EventRetry{Count: 1})
	assert.Equal(t, 1, p.RetryCount)
	assert.Equal(t, decklens.DefaultMaxRetries, p.MaxRetries, "absent max keeps prior value")

	p.Apply(decklens.EventRetry{Count: 2, MaxRetries: ptr(5)})
	assert.Equal(t, 2, p.RetryCount)
	assert.Equal(t, 5, p.MaxRetries)
}

func TestProgress_ErrorKeepsPartialText(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	apply(&p,
		decklens.EventStart{},
		decklens.EventResponseChunk{Chunk: "partial answer"},
		decklens.EventError{Message: "tool crashed"},
	)

	assert.False(t, p.Streaming)
	assert.Equal(t, "tool crashed", p.Err)
	assert.Equal(t, "partial answer", p.Response, "partial answer stays visible alongside the error")
}

func TestProgress_CompleteStopsStreamingOnly(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	apply(&p,
		decklens.EventStart{},
		decklens.EventCodeComplete{Code: "df.head()"},
		decklens.EventResponseComplete{Response: "done"},
	)
	assert.True(t, p.Streaming)

	p.Apply(decklens.EventComplete{})
	assert.False(t, p.Streaming)
	assert.Equal(t, "df.head()", p.Code)
	assert.Equal(t, "done", p.Response)
}

func TestProgress_CompleteRecordsResult(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	res := &decklens.Result{
		ToolName:          "EARMTool",
		VisualizationType: "table_with_line_chart",
		Data:              decklens.Record{"data": []any{map[string]any{"mes": "jan"}}},
	}
	p.Apply(decklens.EventComplete{Result: res})

	require.NotNil(t, p.Result)
	assert.Equal(t, "EARMTool", p.Result.ToolName)
}

// The reducer must not assume a strict global event order. Feed permuted
// and partial sequences and confirm sensible merged state, never a crash.
func TestProgress_PermutedAndPartialSequences(t *testing.T) {
	t.Parallel()

	sequences := [][]decklens.Event{
		{
			decklens.EventResponseChunk{Chunk: "answer before start marker"},
			decklens.EventComplete{},
		},
		{
			decklens.EventStart{},
			decklens.EventNodeComplete{Node: "late"},
			decklens.EventNodeStart{Node: "late", Name: "Late"},
			decklens.EventComplete{},
		},
		{
			decklens.EventCodeComplete{Code: "full"},
			decklens.EventCodeLine{Line: "straggler"},
		},
		{
			decklens.EventRetry{Count: 3},
			decklens.EventExecutionResult{Success: false, Stderr: ptr("fail")},
			decklens.EventError{Message: "gave up"},
		},
		{
			decklens.EventResponseComplete{Response: "only a final"},
		},
	}

	for _, seq := range sequences {
		p := decklens.NewProgress()
		apply(&p, seq...)
	}

	// Spot-check the out-of-order node case: node_start after node_complete
	// flips the step back to running without duplicating it.
	p := decklens.NewProgress()
	apply(&p,
		decklens.EventNodeComplete{Node: "late"},
		decklens.EventNodeStart{Node: "late", Name: "Late"},
	)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, decklens.StepRunning, p.Steps[0].Status)
	assert.Equal(t, "Late", p.Steps[0].Name)
}

func TestProgress_StepLookup(t *testing.T) {
	t.Parallel()
	p := decklens.NewProgress()
	p.Apply(decklens.EventNodeStart{Node: "fetch", Name: "Fetching"})

	require.NotNil(t, p.Step("fetch"))
	assert.Equal(t, "Fetching", p.Step("fetch").Name)
	assert.Nil(t, p.Step("missing"))
}
