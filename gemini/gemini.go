// Package gemini provides a [decklens.Backend] that talks directly to the
// Google Gemini API. It serves llm_only analysis: no deck tooling runs, the
// model simply answers from its own knowledge, which makes it useful for
// development and offline work when the analysis backend is unavailable.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/mbarreto/decklens"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// systemPrompt frames the model as an energy-planning assistant so the
// direct mode stays on topic with the full backend.
const systemPrompt = "Você é um assistente especializado em planejamento " +
	"energético do setor elétrico brasileiro, com foco nos modelos NEWAVE e " +
	"DECOMP. Responda em português, de forma objetiva."

// Interface compliance check.
var _ decklens.Backend = (*Client)(nil)

// Client implements [decklens.Backend] for the Google Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	c := &Client{
		client: gc,
		model:  defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Query sends the question to the Gemini API and returns a stream that
// replays the model's answer as the standard event sequence. The declared
// analysis mode is ignored: a direct model call is always llm_only.
func (c *Client) Query(ctx context.Context, q decklens.Query) (decklens.Stream, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: q.Text}},
	}}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	iterFn := c.client.Models.GenerateContentStream(ctx, c.model, contents, config)
	return newStream(iterFn), nil
}

// chunkText concatenates the text parts of one streaming response chunk.
// Thought parts are skipped: only the answer itself reaches the transcript.
func chunkText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Thought || part.Text == "" {
				continue
			}
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
