package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens s to width terminal cells, ending with an ellipsis when
// anything was cut. s must be plain text.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "…")
}

// FitLines keeps at most n lines of s, marking the cut with an ellipsis line.
func FitLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	lines = lines[:n]
	lines[n-1] = "…"
	return strings.Join(lines, "\n")
}
