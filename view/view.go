// Package view renders structured result payloads as styled terminal text.
// Each visualization the backend can request has a dedicated renderer; the
// dispatch mirrors [decklens.Route] so every payload lands somewhere.
//
// Payload shapes are owned by the backend and only loosely guaranteed, so
// renderers extract the fields they know with defaults and degrade to the
// generic table rather than failing.
package view

import (
	"github.com/mbarreto/decklens"
)

// Render produces the terminal rendering of a result payload at the given
// width. A nil result renders the placeholder.
func Render(res *decklens.Result, styles Styles, width int) string {
	if res == nil {
		return renderPlaceholder(styles, width)
	}
	switch decklens.Route(*res) {
	case decklens.ViewUsinasNaoSimuladas:
		return renderUsinasNaoSimuladas(*res, styles, width)
	case decklens.ViewGTMin:
		return renderGTMin(*res, styles, width)
	case decklens.ViewRestricaoEletrica:
		return renderRestricaoEletrica(*res, styles, width)
	case decklens.ViewComparison:
		return renderComparison(*res, styles, width)
	case decklens.ViewChartTable:
		return renderChartTable(*res, styles, width)
	case decklens.ViewTable, decklens.ViewGeneric:
		return renderTable(*res, styles, width)
	default:
		return renderPlaceholder(styles, width)
	}
}

func renderPlaceholder(styles Styles, width int) string {
	return styles.Muted.Width(width).Render("(sem dados para exibir)")
}
