package decklens

import "time"

// Deck is a named bundle of energy-planning model files the backend can load
// into a session.
type Deck struct {
	Name string
	Kind string // "newave" or "decomp"; empty when the backend omits it
}

// Session associates a loaded deck with a transcript of query turns. The ID
// is an opaque backend-side handle.
type Session struct {
	ID        string
	Decks     []string // one deck, or two in comparison mode
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}
