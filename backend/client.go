package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/mbarreto/decklens"
)

// Interface compliance check.
var _ decklens.Backend = (*Client)(nil)

// Client implements [decklens.Backend] for the deck-analysis HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the API base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client. The client must not impose a
// response deadline that would cut off long-lived query streams.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for stream diagnostics, chiefly skipped
// malformed event lines. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a new [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Query opens one streaming query turn and returns a [decklens.Stream] that
// yields events as the backend emits them. The stream stays open until the
// server closes the response body or ctx is cancelled.
func (c *Client) Query(ctx context.Context, q decklens.Query) (decklens.Stream, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}

	mode := q.Mode
	if mode == "" {
		mode = decklens.ModeSingle
	}

	body, err := json.Marshal(queryRequest{
		SessionID:    q.SessionID,
		Query:        q.Text,
		AnalysisMode: string(mode),
	})
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+queryStreamPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, parseHTTPError(resp)
	}

	return newStream(ctx, resp.Body, c.log), nil
}

// ListDecks returns the decks available for loading.
func (c *Client) ListDecks(ctx context.Context) ([]decklens.Deck, error) {
	var out listDecksResponse
	if err := c.doJSON(ctx, http.MethodGet, decksPath, nil, &out); err != nil {
		return nil, err
	}
	decks := make([]decklens.Deck, len(out.Decks))
	for i, d := range out.Decks {
		decks[i] = decklens.Deck{Name: d.Name, Kind: d.Kind}
	}
	return decks, nil
}

// LoadDeck asks the backend to load a deck by name and returns the session
// ID associated with it.
func (c *Client) LoadDeck(ctx context.Context, name string) (string, error) {
	var out loadDeckResponse
	if err := c.doJSON(ctx, http.MethodPost, deckLoadPath, loadDeckRequest{DeckName: name}, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

// UploadDeck uploads the given files as a new deck. Files are sent in a
// single multipart request; the part name for every file is "files" and the
// deck name travels as a form field.
func (c *Client) UploadDeck(ctx context.Context, name string, paths []string) error {
	if name == "" {
		return fmt.Errorf("backend: deck name is required: %w", decklens.ErrValidation)
	}
	if len(paths) == 0 {
		return fmt.Errorf("backend: no files to upload: %w", decklens.ErrValidation)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("deck_name", name); err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	for _, path := range paths {
		if err := writeFilePart(mw, path); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("backend: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+deckUploadPath, &buf)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(resp)
	}
	return nil
}

// GetSession fetches the backend's record of a session.
func (c *Client) GetSession(ctx context.Context, id string) (SessionInfo, error) {
	var out SessionInfo
	if err := c.doJSON(ctx, http.MethodGet, sessionsPath+id, nil, &out); err != nil {
		return SessionInfo{}, err
	}
	return out, nil
}

// DeleteSession releases a session and its loaded deck on the backend.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, sessionsPath+id, nil, nil)
}

// ReindexDocs asks the backend to rebuild its documentation index.
func (c *Client) ReindexDocs(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, reindexPath, nil, nil)
}

// doJSON performs a non-streaming request with an optional JSON body and
// decodes the JSON response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseHTTPError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

func writeFilePart(mw *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("backend: open %s: %w", path, err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("backend: read %s: %w", path, err)
	}
	return nil
}

// parseHTTPError surfaces the server-provided detail message for a non-2xx
// response, falling back to the raw body when it is not the expected JSON.
func parseHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: HTTP %d (failed to read body: %w)", resp.StatusCode, err)
	}
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Detail == "" {
		return fmt.Errorf("backend: HTTP %d: %s", resp.StatusCode, string(body))
	}
	return fmt.Errorf("backend: %s", apiErr.Detail)
}
