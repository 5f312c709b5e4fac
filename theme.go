package decklens

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Query   int // analyst query accent
	Step    int // agent step headers
	Code    int // generated code text
	Error   int // error messages, failed executions
	Success int // completed steps, successful executions
	Muted   int // status bar, placeholders, step detail
	Accent  int // headings, table headers
	CodeBg  int // code block background
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Query:   4,
		Step:    3,
		Code:    6,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
		CodeBg:  0,
	}
}
