package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mbarreto/decklens"
)

// maxTableRows bounds rendered tables; the backend can return thousands of
// rows and the transcript is not a data export.
const maxTableRows = 50

func renderTable(res decklens.Result, styles Styles, width int) string {
	rows := res.Rows()
	if len(rows) == 0 {
		return renderPlaceholder(styles, width)
	}
	var b strings.Builder
	if title := res.Data.Str("title"); title != "" {
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(layoutTable(columnsFor(res, rows), rows, styles, width))
	return b.String()
}

// columnsFor returns the declared column order, falling back to the sorted
// keys of the first row when the payload declares none.
func columnsFor(res decklens.Result, rows []decklens.Record) []string {
	if cols := res.Columns(); len(cols) > 0 {
		return cols
	}
	if len(rows) == 0 {
		return nil
	}
	cols := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// layoutTable renders rows as fixed-width columns sized to content. Columns
// that would overflow the terminal width are dropped from the right.
func layoutTable(cols []string, rows []decklens.Record, styles Styles, width int) string {
	if len(cols) == 0 {
		return ""
	}
	truncated := false
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
		truncated = true
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = ansi.StringWidth(c)
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			v := formatValue(row[c])
			cells[r][i] = v
			if w := ansi.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Drop rightmost columns that do not fit.
	visible := len(cols)
	total := 0
	for i, w := range widths {
		if i > 0 {
			total += 2
		}
		total += w
		if width > 0 && total > width && i > 0 {
			visible = i
			break
		}
	}

	var b strings.Builder
	for i := 0; i < visible; i++ {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(styles.Header.Render(pad(cols[i], widths[i])))
	}
	b.WriteString("\n")
	for _, row := range cells {
		for i := 0; i < visible; i++ {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(styles.Cell.Render(pad(row[i], widths[i])))
		}
		b.WriteString("\n")
	}
	if truncated {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("… exibindo %d linhas", maxTableRows)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func pad(s string, width int) string {
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// formatValue renders one cell. Floats print with two decimals unless they
// are integral, matching how the energy quantities (MWmed, %) read best.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case bool:
		if x {
			return "sim"
		}
		return "não"
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', 2, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
