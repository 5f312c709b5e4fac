package view

import (
	"strings"

	"github.com/mbarreto/decklens"
)

// renderRestricaoEletrica renders electrical restriction records. Each
// restriction carries an identifying code and bounds per period; inactive
// restrictions are dimmed.
func renderRestricaoEletrica(res decklens.Result, styles Styles, width int) string {
	rows := res.Rows()
	if len(rows) == 0 {
		return renderPlaceholder(styles, width)
	}

	title := res.Data.Str("title")
	if title == "" {
		title = "Restrições Elétricas"
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	active := rows[:0:0]
	var inactiveCount int
	for _, row := range rows {
		if row.Has("ativa") && !row.Bool("ativa") {
			inactiveCount++
			continue
		}
		active = append(active, row)
	}

	if len(active) > 0 {
		b.WriteString(layoutTable(columnsFor(res, active), active, styles, width))
	} else {
		b.WriteString(styles.Muted.Render("(nenhuma restrição ativa)"))
	}
	if inactiveCount > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(strings.TrimSpace(
			formatValue(inactiveCount) + " restrições inativas omitidas")))
	}
	return b.String()
}
