package decklens

import "strings"

// View identifies the presentation component for a result payload.
type View string

const (
	ViewUsinasNaoSimuladas View = "usinas_nao_simuladas"
	ViewGTMin              View = "gtmin"
	ViewRestricaoEletrica  View = "restricao_eletrica"
	ViewComparison         View = "comparison"
	ViewChartTable         View = "chart_table"
	ViewTable              View = "table"
	ViewGeneric            View = "generic"
	ViewPlaceholder        View = "placeholder"
)

// usinasNaoSimuladasTool produces a payload shape incompatible with the
// generic dispatch, so its name overrides visualization_type entirely.
const usinasNaoSimuladasTool = "usinasnaosimuladastool"

// chartTableTools are the tool names known to produce the paired
// table-plus-line-chart shape.
var chartTableTools = map[string]struct{}{
	"earmtool":        {},
	"enatool":         {},
	"cargatool":       {},
	"intercambiotool": {},
}

// Route selects exactly one view for a result payload. It is a total
// function: every (tool_name, visualization_type, data) triple resolves to a
// specific view or to the placeholder, never to an unhandled case.
//
// Precedence:
//  1. UsinasNaoSimuladasTool wins regardless of visualization_type
//     (case-insensitive match).
//  2. Dispatch on visualization_type.
//  3. Within an ambiguous visualization_type, disambiguate by tool_name;
//     unknown tools fall through to the generic renderer when data exists.
//  4. No rows and no series renders the neutral placeholder.
func Route(res Result) View {
	if strings.ToLower(res.ToolName) == usinasNaoSimuladasTool {
		return ViewUsinasNaoSimuladas
	}

	switch strings.ToLower(res.VisualizationType) {
	case "gtmin_matrix", "gtmin_changes_table":
		return ViewGTMin
	case "restricao_eletrica":
		return ViewRestricaoEletrica
	case "comparison_table":
		return ViewComparison
	case "table_with_line_chart":
		if _, ok := chartTableTools[strings.ToLower(res.ToolName)]; ok {
			return ViewChartTable
		}
		if !res.Empty() {
			return ViewGeneric
		}
		return ViewPlaceholder
	case "table":
		if !res.Empty() {
			return ViewTable
		}
		return ViewPlaceholder
	}

	if !res.Empty() {
		return ViewGeneric
	}
	return ViewPlaceholder
}
