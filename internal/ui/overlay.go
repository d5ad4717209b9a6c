// Package ui provides shared view helpers: modal compositing, the confirm
// dialog and text fitting.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/notecard/internal/styles"
)

// dimStyle is rebuilt per call so a theme switch takes effect immediately.
// Existing ANSI codes are stripped first because faint does not combine
// reliably with other colors.
func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.TextMuted)
}

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, ansi.StringWidth(line))
	}
	return maxWidth
}

// dimLine strips ANSI codes and applies dim styling.
func dimLine(s string) string {
	return dimStyle().Render(ansi.Strip(s))
}

// compositeRow overlays top onto bgLine at column startX. When dim is set
// the visible background is dimmed, otherwise it keeps its styling.
func compositeRow(bgLine, top string, startX, topWidth, totalWidth int, dim bool) string {
	var result strings.Builder

	base := bgLine
	render := func(s string) string { return s }
	if dim {
		base = ansi.Strip(bgLine)
		render = func(s string) string { return dimStyle().Render(s) }
	}
	bgWidth := ansi.StringWidth(base)

	if startX > 0 {
		leftSeg := ansi.Truncate(base, startX, "")
		leftWidth := ansi.StringWidth(leftSeg)
		result.WriteString(render(leftSeg))
		if leftWidth < startX {
			result.WriteString(strings.Repeat(" ", startX-leftWidth))
		}
	}

	result.WriteString(top)

	rightStartX := startX + topWidth
	if rightStartX < totalWidth && bgWidth > rightStartX {
		result.WriteString(render(ansi.Cut(base, rightStartX, bgWidth)))
	}

	return result.String()
}

// OverlayModal composites a modal on top of a dimmed background.
// The modal is centered, with dimmed background visible on all sides.
func OverlayModal(background, modal string, width, height int) string {
	bgLines := padLines(strings.Split(background, "\n"), height)
	modalLines := strings.Split(modal, "\n")

	modalWidth := maxLineWidth(modalLines)
	modalHeight := len(modalLines)
	startX := max(0, (width-modalWidth)/2)
	startY := max(0, (height-modalHeight)/2)

	result := make([]string, 0, height)
	for y := 0; y < height; y++ {
		row := y - startY
		if row >= 0 && row < modalHeight {
			result = append(result, compositeRow(bgLines[y], modalLines[row], startX, modalWidth, width, true))
		} else {
			result = append(result, dimLine(bgLines[y]))
		}
	}

	return strings.Join(result, "\n")
}

// OverlayBottomRight places box in the bottom-right corner of background,
// above the last reserve lines, without dimming anything. Used for toasts.
func OverlayBottomRight(background, box string, width, height, reserve int) string {
	bgLines := padLines(strings.Split(background, "\n"), height)
	boxLines := strings.Split(box, "\n")

	boxWidth := maxLineWidth(boxLines)
	startX := max(0, width-boxWidth-1)
	startY := max(0, height-reserve-len(boxLines))

	for i, line := range boxLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLines[y] = compositeRow(bgLines[y], line, startX, boxWidth, width, false)
	}
	return strings.Join(bgLines[:max(height, 0)], "\n")
}

func padLines(lines []string, height int) []string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}
