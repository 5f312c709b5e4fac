package view

import (
	"strings"

	"github.com/mbarreto/decklens"
)

// renderUsinasNaoSimuladas renders non-simulated plant blocks. The payload
// shape differs from every other tool: plants arrive grouped per submarket
// under "blocos", each with the plant list and total capacity.
func renderUsinasNaoSimuladas(res decklens.Result, styles Styles, width int) string {
	blocos := res.Data.Recs("blocos")
	if len(blocos) == 0 {
		// Some backend versions flatten the payload to plain rows.
		return renderTable(res, styles, width)
	}

	var b strings.Builder
	title := res.Data.Str("title")
	if title == "" {
		title = "Usinas Não Simuladas"
	}
	b.WriteString(styles.Title.Render(title))

	for _, bloco := range blocos {
		b.WriteString("\n\n")
		header := bloco.Str("submercado")
		if header == "" {
			header = bloco.Str("nome")
		}
		b.WriteString(styles.Header.Render(header))
		if total := bloco.Float("total_mw"); total > 0 {
			b.WriteString(styles.Muted.Render("  total " + formatValue(total) + " MW"))
		}
		usinas := bloco.Recs("usinas")
		if len(usinas) == 0 {
			b.WriteString("\n")
			b.WriteString(styles.Muted.Render("(nenhuma usina)"))
			continue
		}
		b.WriteString("\n")
		b.WriteString(layoutTable(columnsForRecs(usinas), usinas, styles, width))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// columnsForRecs infers column order from the first record.
func columnsForRecs(rows []decklens.Record) []string {
	return columnsFor(decklens.Result{}, rows)
}
