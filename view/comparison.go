package view

import (
	"strings"

	"github.com/mbarreto/decklens"
)

// renderComparison renders a deck-versus-deck comparison table. Rows that
// declare a difference are highlighted; the deck labels come with the
// payload when the backend names them.
func renderComparison(res decklens.Result, styles Styles, width int) string {
	rows := res.Rows()
	if len(rows) == 0 {
		return renderPlaceholder(styles, width)
	}

	var b strings.Builder
	title := res.Data.Str("title")
	if title == "" {
		title = "Comparação"
	}
	b.WriteString(styles.Title.Render(title))
	if a, bb := res.Data.Str("deck_a"), res.Data.Str("deck_b"); a != "" && bb != "" {
		b.WriteString(styles.Muted.Render("  " + a + " × " + bb))
	}
	b.WriteString("\n")

	cols := columnsFor(res, rows)
	b.WriteString(layoutTable(cols, rows, styles, width))

	changed := 0
	for _, row := range rows {
		if row.Bool("changed") || row.Bool("diferente") {
			changed++
		}
	}
	if changed > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Success.Render(formatValue(changed) + " diferenças encontradas"))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
