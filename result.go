package decklens

// Result is a structured tool payload produced by the backend. The shape of
// Data is owned by the backend; this package reads ToolName and
// VisualizationType as plain strings and treats everything else as an open
// record. Views perform narrow field extraction with defaults and never
// assume full schema conformance.
type Result struct {
	ToolName          string
	VisualizationType string
	Data              Record
}

// Record is an open mapping of field name to scalar or nested value, as
// decoded from backend JSON. Accessors return zero values instead of
// panicking when a field is absent or has an unexpected type.
type Record map[string]any

// Str returns the string at key, or "".
func (r Record) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Float returns the numeric value at key, or 0. JSON numbers decode as
// float64; integers stored as such are converted.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Int returns the numeric value at key truncated to int, or 0.
func (r Record) Int(key string) int {
	return int(r.Float(key))
}

// Bool returns the boolean at key, or false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Rec returns the nested record at key, or nil.
func (r Record) Rec(key string) Record {
	m, _ := r[key].(map[string]any)
	return Record(m)
}

// Recs returns the list of nested records at key. Non-record elements are
// skipped.
func (r Record) Recs(key string) []Record {
	list, _ := r[key].([]any)
	if len(list) == 0 {
		return nil
	}
	out := make([]Record, 0, len(list))
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Strs returns the list of strings at key. Non-string elements are skipped.
func (r Record) Strs(key string) []string {
	list, _ := r[key].([]any)
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, el := range list {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether key is present, regardless of its type.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Rows returns the tabular portion of the payload. Backends emit it under
// "data" or "table_data" depending on the tool.
func (res Result) Rows() []Record {
	if res.Data == nil {
		return nil
	}
	if rows := res.Data.Recs("data"); len(rows) > 0 {
		return rows
	}
	return res.Data.Recs("table_data")
}

// Series returns the chart portion of the payload, emitted under
// "chart_data" or "series" depending on the tool.
func (res Result) Series() []Record {
	if res.Data == nil {
		return nil
	}
	if series := res.Data.Recs("chart_data"); len(series) > 0 {
		return series
	}
	return res.Data.Recs("series")
}

// Columns returns the declared column order when the payload carries one.
func (res Result) Columns() []string {
	if res.Data == nil {
		return nil
	}
	return res.Data.Strs("columns")
}

// Empty reports whether the payload carries no table rows and no chart
// series.
func (res Result) Empty() bool {
	return len(res.Rows()) == 0 && len(res.Series()) == 0
}
