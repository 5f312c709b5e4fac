package decklens

import "context"

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving events.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned non-EOF error.
	StreamStateClosed                       // Close() called before terminal state.
)

// Stream is a forward-only, non-restartable sequence of events for one query
// turn. It uses a pull-based iterator pattern; cancellation flows through
// the context passed to Backend.Query(). Once consumed, an event is not
// replayable — callers re-invoke the backend for a new turn.
//
// Progress() returns the turn state assembled so far. It is readable
// immediately after the consumption loop ends, without any deferred
// visibility. Behavior by stream state:
//   - StreamStateComplete: final turn state, nil error.
//   - StreamStateError: partial turn state, nil error.
//   - StreamStateStreaming: partial turn state, nil error.
//   - StreamStateNew: zero-value state, non-nil error.
//   - StreamStateClosed: partial turn state, nil error.
type Stream interface {
	Next() (Event, error)
	State() StreamState
	Progress() (Progress, error)
	Close() error
}

// Backend is a strategy pattern interface for query transports.
type Backend interface {
	Query(ctx context.Context, q Query) (Stream, error)
}
