// Package backend implements [decklens.Backend] for the deck-analysis HTTP
// API.
//
// Query opens a POST request whose response body is a server-sent-event
// stream and exposes it through the pull-based [decklens.Stream] interface.
// The package also wraps the auxiliary REST endpoints: deck upload and load,
// deck listing, session inspection and deletion, and documentation
// reindexing.
package backend

const (
	defaultBaseURL = "http://localhost:8000"

	queryStreamPath = "/query/stream"
	decksPath       = "/decks"
	deckUploadPath  = "/decks/upload"
	deckLoadPath    = "/decks/load"
	sessionsPath    = "/sessions/"
	reindexPath     = "/docs/reindex"
)

// queryRequest is the JSON body sent to the query-stream endpoint.
type queryRequest struct {
	SessionID    string `json:"session_id"`
	Query        string `json:"query"`
	AnalysisMode string `json:"analysis_mode"`
}

// wireEvent is the superset JSON shape of one streamed event. Type selects
// which fields are meaningful; everything else stays at its zero value.
type wireEvent struct {
	Type string `json:"type"`

	// node_start, node_detail, node_complete
	Node   string        `json:"node,omitempty"`
	Info   *wireNodeInfo `json:"info,omitempty"`
	Detail string        `json:"detail,omitempty"`

	// code_line, code_complete
	Line string `json:"line,omitempty"`
	Code string `json:"code,omitempty"`

	// execution_result
	Success *bool   `json:"success,omitempty"`
	Stdout  *string `json:"stdout,omitempty"`
	Stderr  *string `json:"stderr,omitempty"`

	// retry
	RetryCount int  `json:"retry_count,omitempty"`
	MaxRetries *int `json:"max_retries,omitempty"`

	// response_chunk, response_complete
	Chunk    string `json:"chunk,omitempty"`
	Response string `json:"response,omitempty"`

	// complete
	Result *wireResult `json:"result,omitempty"`

	// error
	Message string `json:"message,omitempty"`
}

type wireNodeInfo struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// wireResult is the structured tool payload attached to a complete event.
type wireResult struct {
	ToolName          string         `json:"tool_name"`
	VisualizationType string         `json:"visualization_type"`
	Data              map[string]any `json:"data"`
}

// loadDeckRequest is the JSON body for loading a deck by name.
type loadDeckRequest struct {
	DeckName string `json:"deck_name"`
}

type loadDeckResponse struct {
	SessionID string `json:"session_id"`
}

type listDecksResponse struct {
	Decks []deckDTO `json:"decks"`
}

type deckDTO struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// SessionInfo is the backend's view of a session, as returned by GetSession.
type SessionInfo struct {
	SessionID string   `json:"session_id"`
	Decks     []string `json:"decks"`
	CreatedAt string   `json:"created_at"`
}

// errorResponse is the JSON body returned on non-2xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}
