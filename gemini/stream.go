package gemini

import (
	"fmt"
	"io"
	"iter"

	"github.com/mbarreto/decklens"
	"google.golang.org/genai"
)

// stream adapts the genai SDK's streaming iterator to [decklens.Stream].
// It synthesizes the standard event sequence from raw text chunks:
// start, response_start, one response_chunk per chunk with text, then
// response_complete and complete once the iterator is exhausted.
type stream struct {
	pull func() (*genai.GenerateContentResponse, error, bool)
	stop func()

	state    decklens.StreamState
	progress decklens.Progress
	err      error

	// pending holds synthesized events not yet handed out by Next.
	pending []decklens.Event
	started bool
	drained bool
}

// Interface compliance check.
var _ decklens.Stream = (*stream)(nil)

func newStream(iterFn iter.Seq2[*genai.GenerateContentResponse, error]) *stream {
	next, stop := iter.Pull2(iterFn)
	return &stream{
		pull:     next,
		stop:     stop,
		state:    decklens.StreamStateNew,
		progress: decklens.NewProgress(),
	}
}

func (s *stream) Next() (decklens.Event, error) {
	switch s.state {
	case decklens.StreamStateComplete:
		return nil, io.EOF
	case decklens.StreamStateError:
		return nil, s.err
	case decklens.StreamStateClosed:
		return nil, decklens.ErrStreamClosed
	}

	if len(s.pending) == 0 {
		if err := s.fill(); err != nil {
			return nil, err
		}
	}
	if len(s.pending) == 0 {
		s.state = decklens.StreamStateComplete
		s.stop()
		return nil, io.EOF
	}

	evt := s.pending[0]
	s.pending = s.pending[1:]
	s.progress.Apply(evt)
	return evt, nil
}

// fill pulls from the iterator until at least one event is synthesized or
// the iterator is exhausted.
func (s *stream) fill() error {
	if !s.started {
		s.started = true
		s.state = decklens.StreamStateStreaming
		s.pending = append(s.pending, decklens.EventStart{}, decklens.EventResponseStart{})
		return nil
	}
	for !s.drained && len(s.pending) == 0 {
		resp, err, ok := s.pull()
		if !ok {
			s.drained = true
			s.pending = append(s.pending,
				decklens.EventResponseComplete{Response: s.progress.Response},
				decklens.EventComplete{},
			)
			return nil
		}
		if err != nil {
			s.state = decklens.StreamStateError
			s.err = fmt.Errorf("gemini: %w", err)
			s.stop()
			return s.err
		}
		if text := chunkText(resp); text != "" {
			s.pending = append(s.pending, decklens.EventResponseChunk{Chunk: text})
		}
	}
	return nil
}

func (s *stream) State() decklens.StreamState {
	return s.state
}

func (s *stream) Progress() (decklens.Progress, error) {
	if s.state == decklens.StreamStateNew {
		return decklens.Progress{}, decklens.ErrStreamNotReady
	}
	return s.progress, nil
}

func (s *stream) Close() error {
	if s.state != decklens.StreamStateComplete && s.state != decklens.StreamStateError {
		s.state = decklens.StreamStateClosed
	}
	s.stop()
	return nil
}
