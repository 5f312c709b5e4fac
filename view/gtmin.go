package view

import (
	"strings"

	"github.com/mbarreto/decklens"
)

// renderGTMin renders minimum thermal generation output: either the
// usina-by-period matrix or the change table, depending on what the tool
// produced. Both arrive as rows; the matrix additionally declares its
// period columns.
func renderGTMin(res decklens.Result, styles Styles, width int) string {
	rows := res.Rows()
	if len(rows) == 0 {
		return renderPlaceholder(styles, width)
	}

	title := res.Data.Str("title")
	if title == "" {
		title = "GTMIN"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(layoutTable(columnsFor(res, rows), rows, styles, width))
	if note := res.Data.Str("note"); note != "" {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(note))
	}
	return b.String()
}
