// Package mock provides test doubles for decklens interfaces using function
// fields.
package mock

import (
	"context"
	"io"

	"github.com/mbarreto/decklens"
)

// Interface compliance checks.
var (
	_ decklens.Backend = (*Backend)(nil)
	_ decklens.Stream  = (*Stream)(nil)
)

// Backend is a test double for decklens.Backend.
// Set QueryFn before calling Query.
type Backend struct {
	QueryFn func(ctx context.Context, q decklens.Query) (decklens.Stream, error)
}

// Query delegates to QueryFn.
func (b *Backend) Query(ctx context.Context, q decklens.Query) (decklens.Stream, error) {
	return b.QueryFn(ctx, q)
}

// Stream is a test double for decklens.Stream.
// Set the function fields for the methods you need. NextFn and ProgressFn
// panic when nil to catch missing setup. CloseFn and StateFn are nil-safe
// (no-op and zero value) because test code commonly calls defer stream.Close()
// and these methods rarely need custom behavior.
type Stream struct {
	NextFn     func() (decklens.Event, error)
	StateFn    func() decklens.StreamState
	ProgressFn func() (decklens.Progress, error)
	CloseFn    func() error
}

// Next delegates to NextFn.
func (s *Stream) Next() (decklens.Event, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream) State() decklens.StreamState {
	if s.StateFn == nil {
		return decklens.StreamStateNew
	}
	return s.StateFn()
}

// Progress delegates to ProgressFn.
func (s *Stream) Progress() (decklens.Progress, error) {
	return s.ProgressFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// ScriptedStream returns a Stream that yields the given events in order,
// folds them into a Progress, and then reports the final state. It mirrors
// how transport streams behave, which keeps orchestration tests honest.
func ScriptedStream(events ...decklens.Event) *Stream {
	progress := decklens.NewProgress()
	i := 0
	s := &Stream{}
	s.NextFn = func() (decklens.Event, error) {
		if i >= len(events) {
			return nil, io.EOF
		}
		evt := events[i]
		i++
		progress.Apply(evt)
		return evt, nil
	}
	s.StateFn = func() decklens.StreamState {
		if i >= len(events) {
			return decklens.StreamStateComplete
		}
		if i == 0 {
			return decklens.StreamStateNew
		}
		return decklens.StreamStateStreaming
	}
	s.ProgressFn = func() (decklens.Progress, error) {
		return progress, nil
	}
	return s
}
