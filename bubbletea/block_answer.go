package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

var _ MessageBlock = (*AnswerBlock)(nil)

// AnswerBlock renders the streamed natural-language answer with markdown
// formatting. Markdown rendering is width-sensitive and not cheap, so the
// rendered output is cached per width and invalidated on append.
type AnswerBlock struct {
	content strings.Builder

	renderedByWidth map[int]string
}

// NewAnswerBlock creates a new block for a streaming answer.
func NewAnswerBlock(styles Styles) *AnswerBlock {
	return &AnswerBlock{renderedByWidth: make(map[int]string)}
}

// Append adds an answer chunk from the stream.
func (b *AnswerBlock) Append(text string) {
	b.content.WriteString(text)
	clear(b.renderedByWidth)
}

// SetText replaces the accumulated text with the authoritative final answer.
func (b *AnswerBlock) SetText(text string) {
	b.content.Reset()
	b.content.WriteString(text)
	clear(b.renderedByWidth)
}

// Text returns the raw accumulated markdown.
func (b *AnswerBlock) Text() string {
	return b.content.String()
}

func (b *AnswerBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AnswerBlock) View(width int) string {
	raw := b.content.String()
	if raw == "" || width <= 0 {
		return ""
	}
	if cached, ok := b.renderedByWidth[width]; ok {
		return cached
	}
	rendered := renderMarkdown(raw, width)
	b.renderedByWidth[width] = rendered
	return rendered
}

// renderMarkdown renders markdown for terminal display. An unclosed code
// fence is closed only for rendering so partial streams display safely;
// renderer failures fall back to the raw text.
func renderMarkdown(raw string, width int) string {
	if strings.Count(raw, "```")%2 == 1 {
		raw += "\n```"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return raw
	}
	out, err := r.Render(raw)
	if err != nil {
		return raw
	}
	return strings.Trim(out, "\n")
}
