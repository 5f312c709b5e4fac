package decklens

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a query or session failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamNotReady indicates Progress() was called before Next().
	ErrStreamNotReady = errors.New("stream not ready: call Next() first")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrNoSession indicates a turn was attempted without a loaded deck session.
	ErrNoSession = errors.New("no session: load a deck first")
)
