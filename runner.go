package decklens

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Runner drives one query turn at a time against a Backend and archives the
// outcome into the session transcript. Concurrent turns on the same session
// are the caller's responsibility to prevent (e.g. by disabling input while
// a turn is streaming).
type Runner struct {
	backend Backend
}

// NewRunner creates a Runner for the given backend.
func NewRunner(backend Backend) *Runner {
	return &Runner{backend: backend}
}

// RunOption configures a single Run invocation.
type RunOption func(*runConfig)

type runConfig struct {
	onEvent func(Event)
	mode    AnalysisMode
}

// WithEventHandler sets a callback that receives each streaming event during
// the turn, in arrival order. If nil or not set, events are folded into the
// returned Progress and otherwise discarded.
func WithEventHandler(h func(Event)) RunOption {
	return func(c *runConfig) {
		c.onEvent = h
	}
}

// WithMode sets the analysis mode for this turn. Default is ModeSingle.
func WithMode(mode AnalysisMode) RunOption {
	return func(c *runConfig) {
		c.mode = mode
	}
}

// Run executes one query turn: it opens the stream, drains it in arrival
// order, and appends the query and its archived answer to session.Messages.
// The returned Progress is the authoritative final turn state and is valid
// even when an error is returned — partial state accumulated before a
// transport failure is preserved.
//
// Application-level failures (an error event in a healthy stream) are not
// returned as errors; they appear in Progress.Err. The returned error covers
// transport and protocol failures only.
func (r *Runner) Run(ctx context.Context, session *Session, text string, opts ...RunOption) (Progress, error) {
	cfg := runConfig{mode: ModeSingle}
	for _, opt := range opts {
		opt(&cfg)
	}

	if session.ID == "" {
		return NewProgress(), ErrNoSession
	}

	q := Query{SessionID: session.ID, Text: text, Mode: cfg.mode}
	if err := q.Validate(); err != nil {
		return NewProgress(), err
	}

	session.Messages = append(session.Messages, QueryMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Mode:      cfg.mode,
		Timestamp: time.Now(),
	})
	session.UpdatedAt = time.Now()

	stream, err := r.backend.Query(ctx, q)
	if err != nil {
		return NewProgress(), err
	}
	defer stream.Close()

	// Drain the stream, forwarding events to the handler if set. Events are
	// processed strictly FIFO; the stream itself folds each event into its
	// Progress before Next returns.
	var streamErr error
	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			streamErr = err
			break
		}
		if cfg.onEvent != nil {
			cfg.onEvent(evt)
		}
	}

	progress, progErr := stream.Progress()
	if progErr != nil {
		if streamErr != nil {
			return progress, streamErr
		}
		return progress, progErr
	}

	session.Messages = append(session.Messages, AnswerFromProgress(uuid.NewString(), progress, time.Now()))
	session.UpdatedAt = time.Now()

	return progress, streamErr
}
