package decklens

// Event is a sealed interface representing one streaming event within a
// query turn. Events are purely semantic. Transport/protocol errors come
// from Next()'s error return, not from events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventStart begins a new query turn. All accumulated turn state resets.
type EventStart struct{}

func (EventStart) event() {}

// EventNodeStart signals that a named processing stage began.
type EventNodeStart struct {
	Node        string
	Name        string
	Icon        string
	Description string
}

func (EventNodeStart) event() {}

// EventNodeDetail carries human-readable detail for a running stage.
type EventNodeDetail struct {
	Node   string
	Detail string
}

func (EventNodeDetail) event() {}

// EventNodeComplete signals that a named stage finished.
type EventNodeComplete struct {
	Node string
}

func (EventNodeComplete) event() {}

// EventCodeLine carries one line of generated code.
type EventCodeLine struct {
	Line string
}

func (EventCodeLine) event() {}

// EventCodeComplete carries the full generated code. It overwrites any
// partial code accumulated from EventCodeLine.
type EventCodeComplete struct {
	Code string
}

func (EventCodeComplete) event() {}

// EventExecutionResult reports the outcome of running generated code.
// Stdout and Stderr are nil when the event does not carry them; a nil
// field must not clear a previously received value, since multi-part
// execution results may arrive across more than one event.
type EventExecutionResult struct {
	Success bool
	Stdout  *string
	Stderr  *string
}

func (EventExecutionResult) event() {}

// EventRetry reports a retry attempt. MaxRetries is nil when the backend
// does not restate the limit.
type EventRetry struct {
	Count      int
	MaxRetries *int
}

func (EventRetry) event() {}

// EventResponseStart signals that the natural-language answer begins.
type EventResponseStart struct{}

func (EventResponseStart) event() {}

// EventResponseChunk carries an incremental answer fragment. Chunks are
// pre-tokenized by the backend and concatenate with no separator.
type EventResponseChunk struct {
	Chunk string
}

func (EventResponseChunk) event() {}

// EventResponseComplete carries the full answer text. It overwrites any
// partial text accumulated from EventResponseChunk.
type EventResponseComplete struct {
	Response string
}

func (EventResponseComplete) event() {}

// EventComplete signals that the turn finished successfully. Result is the
// structured tool payload for the turn, when the backend produced one.
type EventComplete struct {
	Result *Result
}

func (EventComplete) event() {}

// EventError signals that the turn failed. This is an application-level
// condition inside an otherwise healthy stream, not a transport failure.
type EventError struct {
	Message string
}

func (EventError) event() {}

// Interface compliance checks.
var (
	_ Event = EventStart{}
	_ Event = EventNodeStart{}
	_ Event = EventNodeDetail{}
	_ Event = EventNodeComplete{}
	_ Event = EventCodeLine{}
	_ Event = EventCodeComplete{}
	_ Event = EventExecutionResult{}
	_ Event = EventRetry{}
	_ Event = EventResponseStart{}
	_ Event = EventResponseChunk{}
	_ Event = EventResponseComplete{}
	_ Event = EventComplete{}
	_ Event = EventError{}
)
