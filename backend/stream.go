package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mbarreto/decklens"
)

// dataPrefix marks an event-carrying line. Lines without it (comments,
// blank separators, unknown SSE fields) are ignored.
const dataPrefix = "data: "

// maxLineBytes bounds a single event line. Structured result payloads can
// run well past bufio.Scanner's 64KB default.
const maxLineBytes = 4 * 1024 * 1024

// stream implements [decklens.Stream] by parsing SSE lines from an HTTP
// response body. Each decoded event is folded into the turn Progress before
// Next returns it, so the assembled state is readable the moment the
// consumption loop ends.
type stream struct {
	body     io.ReadCloser
	scanner  *bufio.Scanner
	ctx      context.Context
	log      zerolog.Logger
	state    decklens.StreamState
	progress decklens.Progress
	err      error // terminal error, if any
}

// Interface compliance check.
var _ decklens.Stream = (*stream)(nil)

func newStream(ctx context.Context, body io.ReadCloser, log zerolog.Logger) *stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &stream{
		body:     body,
		scanner:  scanner,
		ctx:      ctx,
		log:      log,
		state:    decklens.StreamStateNew,
		progress: decklens.NewProgress(),
	}
}

// Next reads the next event from the stream. It returns io.EOF when the
// transport signals end-of-stream; no in-band sentinel is required, the
// transport-level close is authoritative. Individual lines that fail to
// decode are logged and skipped — one malformed event never aborts the
// stream.
func (s *stream) Next() (decklens.Event, error) {
	switch s.state {
	case decklens.StreamStateComplete:
		return nil, io.EOF
	case decklens.StreamStateError:
		return nil, s.err
	case decklens.StreamStateClosed:
		return nil, fmt.Errorf("backend: %w", decklens.ErrStreamClosed)
	}

	for s.scanner.Scan() {
		line := s.scanner.Text()
		if !strings.HasPrefix(line, dataPrefix) {
			// Blank separators and non-data fields fall out here.
			continue
		}

		s.state = decklens.StreamStateStreaming

		evt, err := decodeEvent(strings.TrimPrefix(line, dataPrefix))
		if err != nil {
			s.log.Warn().Err(err).Str("line", line).Msg("skipping malformed event line")
			continue
		}
		if evt == nil {
			// Unknown event type. Tolerated for forward compatibility.
			continue
		}

		s.progress.Apply(evt)
		return evt, nil
	}

	if err := s.scanner.Err(); err != nil {
		s.state = decklens.StreamStateError
		if s.ctx.Err() != nil {
			err = s.ctx.Err()
		}
		s.err = fmt.Errorf("backend: %w", err)
		return nil, s.err
	}

	s.state = decklens.StreamStateComplete
	return nil, io.EOF
}

// State returns the current stream state.
func (s *stream) State() decklens.StreamState {
	return s.state
}

// Progress returns the turn state assembled so far. Valid in every state
// except StreamStateNew.
func (s *stream) Progress() (decklens.Progress, error) {
	if s.state == decklens.StreamStateNew {
		return decklens.Progress{}, fmt.Errorf("backend: %w", decklens.ErrStreamNotReady)
	}
	return s.progress, nil
}

// Close closes the underlying HTTP response body, tearing the connection
// down if the stream is still live.
func (s *stream) Close() error {
	if s.state != decklens.StreamStateComplete && s.state != decklens.StreamStateError {
		s.state = decklens.StreamStateClosed
	}
	return s.body.Close()
}

// decodeEvent parses one JSON event payload into its semantic form.
// An unknown type decodes to (nil, nil).
func decodeEvent(data string) (decklens.Event, error) {
	var w wireEvent
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}

	switch w.Type {
	case "start":
		return decklens.EventStart{}, nil
	case "node_start":
		evt := decklens.EventNodeStart{Node: w.Node}
		if w.Info != nil {
			evt.Name = w.Info.Name
			evt.Icon = w.Info.Icon
			evt.Description = w.Info.Description
		}
		return evt, nil
	case "node_detail":
		return decklens.EventNodeDetail{Node: w.Node, Detail: w.Detail}, nil
	case "node_complete":
		return decklens.EventNodeComplete{Node: w.Node}, nil
	case "code_line":
		return decklens.EventCodeLine{Line: w.Line}, nil
	case "code_complete":
		return decklens.EventCodeComplete{Code: w.Code}, nil
	case "execution_result":
		evt := decklens.EventExecutionResult{Stdout: w.Stdout, Stderr: w.Stderr}
		if w.Success != nil {
			evt.Success = *w.Success
		}
		return evt, nil
	case "retry":
		return decklens.EventRetry{Count: w.RetryCount, MaxRetries: w.MaxRetries}, nil
	case "response_start":
		return decklens.EventResponseStart{}, nil
	case "response_chunk":
		return decklens.EventResponseChunk{Chunk: w.Chunk}, nil
	case "response_complete":
		return decklens.EventResponseComplete{Response: w.Response}, nil
	case "complete":
		evt := decklens.EventComplete{}
		if w.Result != nil {
			evt.Result = &decklens.Result{
				ToolName:          w.Result.ToolName,
				VisualizationType: w.Result.VisualizationType,
				Data:              decklens.Record(w.Result.Data),
			}
		}
		return evt, nil
	case "error":
		return decklens.EventError{Message: w.Message}, nil
	default:
		return nil, nil
	}
}
