package view_test

import (
	"strings"
	"testing"

	"github.com/mbarreto/decklens"
	"github.com/mbarreto/decklens/view"
	"github.com/stretchr/testify/assert"
)

func testStyles() view.Styles {
	return view.NewStyles(decklens.DefaultTheme())
}

func rowsData(rows ...map[string]any) decklens.Record {
	list := make([]any, len(rows))
	for i, r := range rows {
		list[i] = r
	}
	return decklens.Record{"data": list}
}

func TestRender_NilResult(t *testing.T) {
	t.Parallel()
	got := view.Render(nil, testStyles(), 80)
	assert.Contains(t, got, "sem dados")
}

func TestRender_Table(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		ToolName:          "cvutool",
		VisualizationType: "table",
		Data: rowsData(
			map[string]any{"usina": "ANGRA 1", "cvu": 31.23},
			map[string]any{"usina": "ANGRA 2", "cvu": 20.12},
		),
	}

	got := view.Render(res, testStyles(), 80)

	assert.Contains(t, got, "usina")
	assert.Contains(t, got, "ANGRA 1")
	assert.Contains(t, got, "31.23")
}

func TestRender_TableDeclaredColumnOrder(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		VisualizationType: "table",
		Data: decklens.Record{
			"columns": []any{"cvu", "usina"},
			"data":    []any{map[string]any{"usina": "ANGRA 1", "cvu": 31.23}},
		},
	}

	got := view.Render(res, testStyles(), 80)

	header := strings.SplitN(got, "\n", 2)[0]
	assert.Less(t, strings.Index(header, "cvu"), strings.Index(header, "usina"))
}

func TestRender_TableTruncatesLongOutput(t *testing.T) {
	t.Parallel()
	rows := make([]map[string]any, 80)
	for i := range rows {
		rows[i] = map[string]any{"n": float64(i)}
	}
	res := &decklens.Result{VisualizationType: "table", Data: rowsData(rows...)}

	got := view.Render(res, testStyles(), 80)

	assert.Contains(t, got, "exibindo 50 linhas")
	assert.NotContains(t, got, "79")
}

func TestRender_EmptyPayloadIsPlaceholder(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{VisualizationType: "table", Data: decklens.Record{}}
	got := view.Render(res, testStyles(), 80)
	assert.Contains(t, got, "sem dados")
}

func TestRender_ChartTable(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		ToolName:          "earmtool",
		VisualizationType: "table_with_line_chart",
		Data: decklens.Record{
			"title": "EARM SE/CO",
			"chart_data": []any{
				map[string]any{"label": "jan/26", "value": 55.0},
				map[string]any{"label": "fev/26", "value": 110.0},
			},
			"table_data": []any{
				map[string]any{"periodo": "jan/26", "earm": 55.0},
			},
		},
	}

	got := view.Render(res, testStyles(), 80)

	assert.Contains(t, got, "EARM SE/CO")
	assert.Contains(t, got, "jan/26")
	assert.Contains(t, got, "█")
	assert.Contains(t, got, "earm")

	// The larger value draws the longer bar.
	var janBars, fevBars int
	for _, line := range strings.Split(got, "\n") {
		n := strings.Count(line, "█")
		if strings.Contains(line, "jan/26") && n > 0 {
			janBars = n
		}
		if strings.Contains(line, "fev/26") {
			fevBars = n
		}
	}
	assert.Greater(t, fevBars, janBars)
}

func TestRender_GTMin(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		VisualizationType: "gtmin_matrix",
		Data: rowsData(
			map[string]any{"usina": "TERMORIO", "jan": 120.0, "fev": 120.0},
		),
	}

	got := view.Render(res, testStyles(), 80)

	assert.Contains(t, got, "GTMIN")
	assert.Contains(t, got, "TERMORIO")
}

func TestRender_RestricaoEletrica(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		VisualizationType: "restricao_eletrica",
		Data: rowsData(
			map[string]any{"codigo": "RE-101", "limite": 4200.0, "ativa": true},
			map[string]any{"codigo": "RE-102", "limite": 0.0, "ativa": false},
		),
	}

	got := view.Render(res, testStyles(), 80)

	assert.Contains(t, got, "RE-101")
	assert.NotContains(t, got, "RE-102")
	assert.Contains(t, got, "1 restrições inativas omitidas")
}

func TestRender_Comparison(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		VisualizationType: "comparison_table",
		Data: decklens.Record{
			"deck_a": "pmo-jan",
			"deck_b": "pmo-fev",
			"data": []any{
				map[string]any{"campo": "carga SE", "a": 41000.0, "b": 42000.0, "changed": true},
				map[string]any{"campo": "carga S", "a": 12000.0, "b": 12000.0, "changed": false},
			},
		},
	}

	got := view.Render(res, testStyles(), 120)

	assert.Contains(t, got, "pmo-jan × pmo-fev")
	assert.Contains(t, got, "carga SE")
	assert.Contains(t, got, "1 diferenças encontradas")
}

func TestRender_UsinasNaoSimuladas(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		ToolName: "UsinasNaoSimuladasTool",
		Data: decklens.Record{
			"blocos": []any{
				map[string]any{
					"submercado": "SUDESTE",
					"total_mw":   1234.5,
					"usinas": []any{
						map[string]any{"nome": "PCH Alfa", "mw": 30.0},
					},
				},
			},
		},
	}

	got := view.Render(res, testStyles(), 80)

	assert.Contains(t, got, "SUDESTE")
	assert.Contains(t, got, "1234.50 MW")
	assert.Contains(t, got, "PCH Alfa")
}

func TestRender_UsinasNaoSimuladasFlattenedFallback(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		ToolName: "usinasnaosimuladastool",
		Data:     rowsData(map[string]any{"nome": "PCH Beta", "mw": 12.0}),
	}

	got := view.Render(res, testStyles(), 80)
	assert.Contains(t, got, "PCH Beta")
}

func TestFormatValues(t *testing.T) {
	t.Parallel()
	res := &decklens.Result{
		VisualizationType: "table",
		Data: rowsData(map[string]any{
			"inteiro": 42.0,
			"decimal": 3.14159,
			"flag":    true,
			"vazio":   nil,
		}),
	}

	got := view.Render(res, testStyles(), 120)

	assert.Contains(t, got, "42")
	assert.Contains(t, got, "3.14")
	assert.NotContains(t, got, "3.14159")
	assert.Contains(t, got, "sim")
	assert.Contains(t, got, "-")
}
