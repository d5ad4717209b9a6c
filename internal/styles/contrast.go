package styles

import (
	"math"
	"strconv"
	"strings"
)

// minToastContrast is the WCAG ratio toast text must keep against every
// toast background.
const minToastContrast = 3.0

// Luminance returns the relative luminance (0-1) of a #RRGGBB color.
func Luminance(hex string) float64 {
	r, g, b := parseHex(hex)
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG 2.0 contrast ratio between two colors (1 to 21).
func ContrastRatio(fg, bg string) float64 {
	l1, l2 := Luminance(fg), Luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// readableOn keeps fg if it reaches minRatio on every background, otherwise
// returns whichever of black and white does better on the worst one.
func readableOn(fg string, minRatio float64, bgs ...string) string {
	if worstContrast(fg, bgs) >= minRatio {
		return fg
	}
	if worstContrast("#000000", bgs) >= worstContrast("#FFFFFF", bgs) {
		return "#000000"
	}
	return "#FFFFFF"
}

func worstContrast(fg string, bgs []string) float64 {
	worst := math.Inf(1)
	for _, bg := range bgs {
		worst = min(worst, ContrastRatio(fg, bg))
	}
	return worst
}

// parseHex returns the channels of #RRGGBB[AA] scaled to 0-1. Invalid input is black.
func parseHex(hex string) (r, g, b float64) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) < 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return float64(v>>16&0xFF) / 255, float64(v>>8&0xFF) / 255, float64(v&0xFF) / 255
}
