// Package output prepares backend execution output (stdout/stderr of
// generated code) for terminal display: ANSI and control characters are
// stripped and long output is truncated to a tail window.
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	// DefaultMaxLines and DefaultMaxBytes bound displayed execution output.
	DefaultMaxLines = 500
	DefaultMaxBytes = 16 * 1024
)

// Sanitize strips ANSI escape codes and control characters from execution
// output. Tabs and newlines are preserved; all other bytes <= 0x1F are
// removed. CRLF sequences normalize to LF. A lone CR simulates terminal
// carriage-return behavior: text after \r overwrites from the beginning of
// the line, which keeps progress-bar style output readable.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	// Keep \r temporarily to resolve carriage-return overwrites below.
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' || r > 0x1F {
			b.WriteRune(r)
		}
	}
	s = b.String()

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.ContainsRune(line, '\r') {
			lines[i] = resolveCarriageReturns(line)
		}
	}
	return strings.Join(lines, "\n")
}

// resolveCarriageReturns simulates terminal CR behavior within a single
// line. Each \r resets the write position to 0; subsequent characters
// overwrite. Trailing characters from earlier content remain when the new
// segment is shorter, matching what a terminal shows.
func resolveCarriageReturns(line string) string {
	segments := strings.Split(line, "\r")
	buf := []rune(segments[0])
	for _, seg := range segments[1:] {
		for j, r := range []rune(seg) {
			if j < len(buf) {
				buf[j] = r
			} else {
				buf = append(buf, r)
			}
		}
	}
	return string(buf)
}

// Tail keeps the last maxLines complete lines or maxBytes bytes of s,
// whichever limit is hit first, and reports whether anything was dropped.
// When a single line alone exceeds maxBytes, its tail is returned.
func Tail(s string, maxLines, maxBytes int) (string, bool) {
	if s == "" {
		return "", false
	}
	if len(s) <= maxBytes && strings.Count(s, "\n") < maxLines {
		return s, false
	}

	hadTrailingNewline := strings.HasSuffix(s, "\n")
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")

	var collected []string
	size := 0
	for i := len(lines) - 1; i >= 0 && len(collected) < maxLines; i-- {
		lineBytes := len(lines[i])
		if len(collected) > 0 {
			lineBytes++ // newline separator
		}
		if size+lineBytes > maxBytes {
			if len(collected) == 0 {
				// A single oversized line: keep its tail.
				tail := lines[i]
				if len(tail) > maxBytes {
					tail = tail[len(tail)-maxBytes:]
				}
				return tail, true
			}
			break
		}
		collected = append(collected, lines[i])
		size += lineBytes
	}

	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}

	out := strings.Join(collected, "\n")
	if hadTrailingNewline {
		out += "\n"
	}
	return out, len(collected) < len(lines) || len(out) < len(s)
}

// Clean is the display pipeline for one execution output field: sanitize,
// then truncate to the default tail window, appending a marker line when
// output was dropped.
func Clean(s string) string {
	s = Sanitize(s)
	tail, truncated := Tail(s, DefaultMaxLines, DefaultMaxBytes)
	if truncated {
		if !strings.HasSuffix(tail, "\n") {
			tail += "\n"
		}
		tail += fmt.Sprintf("… (output truncated to last %d lines / %d bytes)", DefaultMaxLines, DefaultMaxBytes)
	}
	return tail
}
