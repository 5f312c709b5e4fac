package gemini_test

import (
	"errors"
	"io"
	"testing"

	"github.com/mbarreto/decklens"
	"github.com/mbarreto/decklens/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// mockChunks returns a genai-style streaming iterator from pre-built chunks.
func mockChunks(chunks []*genai.GenerateContentResponse) func(func(*genai.GenerateContentResponse, error) bool) {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

func textChunk(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func collectStreamEvents(t *testing.T, s decklens.Stream) []decklens.Event {
	t.Helper()
	var events []decklens.Event
	for {
		evt, err := s.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, evt)
	}
	return events
}

func TestStream_SynthesizesStandardSequence(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		textChunk("A carga do SIN "),
		textChunk("cresce 3% ao ano."),
	}

	s := gemini.NewStreamFromIter(mockChunks(chunks))
	events := collectStreamEvents(t, s)

	require.Len(t, events, 6)
	assert.IsType(t, decklens.EventStart{}, events[0])
	assert.IsType(t, decklens.EventResponseStart{}, events[1])
	assert.Equal(t, decklens.EventResponseChunk{Chunk: "A carga do SIN "}, events[2])
	assert.Equal(t, decklens.EventResponseChunk{Chunk: "cresce 3% ao ano."}, events[3])
	assert.Equal(t, decklens.EventResponseComplete{Response: "A carga do SIN cresce 3% ao ano."}, events[4])
	assert.IsType(t, decklens.EventComplete{}, events[5])
	assert.Equal(t, decklens.StreamStateComplete, s.State())
}

func TestStream_ProgressAccumulatesResponse(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		textChunk("part one "),
		textChunk("part two"),
	}

	s := gemini.NewStreamFromIter(mockChunks(chunks))
	collectStreamEvents(t, s)

	progress, err := s.Progress()
	require.NoError(t, err)
	assert.Equal(t, "part one part two", progress.Response)
	assert.False(t, progress.Streaming)
	assert.Empty(t, progress.Err)
}

func TestStream_SkipsThoughtParts(t *testing.T) {
	t.Parallel()
	chunks := []*genai.GenerateContentResponse{
		{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "pensando...", Thought: true},
					{Text: "resposta"},
				}},
			}},
		},
	}

	s := gemini.NewStreamFromIter(mockChunks(chunks))
	collectStreamEvents(t, s)

	progress, err := s.Progress()
	require.NoError(t, err)
	assert.Equal(t, "resposta", progress.Response)
}

func TestStream_EmptyIterator(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(mockChunks(nil))

	events := collectStreamEvents(t, s)

	// Still a well-formed turn: start and completion bracket an empty answer.
	require.Len(t, events, 4)
	assert.IsType(t, decklens.EventStart{}, events[0])
	assert.IsType(t, decklens.EventResponseStart{}, events[1])
	assert.Equal(t, decklens.EventResponseComplete{Response: ""}, events[2])
	assert.IsType(t, decklens.EventComplete{}, events[3])
}

func TestStream_IteratorError(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("quota exceeded")
	errIter := func(yield func(*genai.GenerateContentResponse, error) bool) {
		if !yield(textChunk("partial"), nil) {
			return
		}
		yield(nil, wantErr)
	}

	s := gemini.NewStreamFromIter(errIter)

	var streamErr error
	for {
		_, err := s.Next()
		if err != nil {
			streamErr = err
			break
		}
	}
	require.ErrorIs(t, streamErr, wantErr)
	assert.Equal(t, decklens.StreamStateError, s.State())

	// Partial progress survives the failure.
	progress, err := s.Progress()
	require.NoError(t, err)
	assert.Equal(t, "partial", progress.Response)
}

func TestStream_ProgressBeforeFirstNext(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(mockChunks(nil))

	_, err := s.Progress()
	assert.ErrorIs(t, err, decklens.ErrStreamNotReady)
}

func TestStream_NextAfterClose(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(mockChunks([]*genai.GenerateContentResponse{textChunk("x")}))

	_, err := s.Next()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Next()
	assert.ErrorIs(t, err, decklens.ErrStreamClosed)
	assert.Equal(t, decklens.StreamStateClosed, s.State())
}

func TestStream_EOFIsSticky(t *testing.T) {
	t.Parallel()
	s := gemini.NewStreamFromIter(mockChunks(nil))
	collectStreamEvents(t, s)

	_, err := s.Next()
	assert.ErrorIs(t, err, io.EOF)
	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
}
