package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mbarreto/decklens"
	"github.com/mbarreto/decklens/view"
)

var _ MessageBlock = (*ResultBlock)(nil)

// ResultBlock renders a structured result payload through the view
// dispatch, so each visualization type gets its dedicated renderer.
type ResultBlock struct {
	result *decklens.Result
	styles Styles
}

// NewResultBlock creates a ResultBlock.
func NewResultBlock(result *decklens.Result, styles Styles) *ResultBlock {
	return &ResultBlock{result: result, styles: styles}
}

func (b *ResultBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ResultBlock) View(width int) string {
	return view.Render(b.result, b.styles.Result, width)
}
