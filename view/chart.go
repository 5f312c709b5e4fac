package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mbarreto/decklens"
)

// seriesLabelKeys and seriesValueKeys are the field names backends use for
// chart points, in preference order.
var (
	seriesLabelKeys = []string{"label", "periodo", "x", "data"}
	seriesValueKeys = []string{"value", "valor", "y"}
)

// renderChartTable renders the paired table-plus-line-chart shape used by
// the storage, inflow, load and interchange tools. The chart is a
// horizontal bar per period, scaled to the largest value.
func renderChartTable(res decklens.Result, styles Styles, width int) string {
	var sections []string
	if chart := renderBars(res.Series(), styles, width); chart != "" {
		sections = append(sections, chart)
	}
	if rows := res.Rows(); len(rows) > 0 {
		sections = append(sections, layoutTable(columnsFor(res, rows), rows, styles, width))
	}
	if len(sections) == 0 {
		return renderPlaceholder(styles, width)
	}
	var b strings.Builder
	if title := res.Data.Str("title"); title != "" {
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(sections, "\n\n"))
	return b.String()
}

func renderBars(series []decklens.Record, styles Styles, width int) string {
	if len(series) == 0 {
		return ""
	}

	type point struct {
		label string
		value float64
	}
	points := make([]point, 0, len(series))
	labelWidth := 0
	maxVal := 0.0
	for _, rec := range series {
		p := point{label: firstStr(rec, seriesLabelKeys), value: firstFloat(rec, seriesValueKeys)}
		points = append(points, p)
		if w := ansi.StringWidth(p.label); w > labelWidth {
			labelWidth = w
		}
		if p.value > maxVal {
			maxVal = p.value
		}
	}
	if maxVal <= 0 {
		return ""
	}

	barSpace := width - labelWidth - 12
	if barSpace < 10 {
		barSpace = 10
	}

	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteString("\n")
		}
		n := int(p.value / maxVal * float64(barSpace))
		if n < 1 && p.value > 0 {
			n = 1
		}
		b.WriteString(styles.Muted.Render(pad(p.label, labelWidth)))
		b.WriteString(" ")
		b.WriteString(styles.Bar.Render(strings.Repeat("█", n)))
		b.WriteString(" ")
		b.WriteString(formatValue(p.value))
	}
	return b.String()
}

func firstStr(rec decklens.Record, keys []string) string {
	for _, k := range keys {
		if s := rec.Str(k); s != "" {
			return s
		}
	}
	return ""
}

func firstFloat(rec decklens.Record, keys []string) float64 {
	for _, k := range keys {
		if rec.Has(k) {
			return rec.Float(k)
		}
	}
	return 0
}
