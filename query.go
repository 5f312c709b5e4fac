package decklens

import "fmt"

// AnalysisMode selects how the backend answers a query.
type AnalysisMode string

const (
	ModeSingle     AnalysisMode = "single"     // query one loaded deck
	ModeComparison AnalysisMode = "comparison" // query two decks side by side
	ModeLLM        AnalysisMode = "llm"        // free-form answer grounded on deck data
	ModeLLMOnly    AnalysisMode = "llm_only"   // free-form answer, no deck access
)

// Valid reports whether m is one of the known analysis modes.
func (m AnalysisMode) Valid() bool {
	switch m {
	case ModeSingle, ModeComparison, ModeLLM, ModeLLMOnly:
		return true
	}
	return false
}

// Query is one streaming request to a backend.
type Query struct {
	SessionID string
	Text      string
	Mode      AnalysisMode // empty = ModeSingle
}

// Validate checks universal constraints on Query. Backend implementations
// may apply additional transport-specific validation.
func (q Query) Validate() error {
	if q.SessionID == "" {
		return fmt.Errorf("session id is required: %w", ErrValidation)
	}
	if q.Text == "" {
		return fmt.Errorf("query text is required: %w", ErrValidation)
	}
	if q.Mode != "" && !q.Mode.Valid() {
		return fmt.Errorf("unknown analysis mode %q: %w", q.Mode, ErrValidation)
	}
	return nil
}
