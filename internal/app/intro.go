package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notecard/internal/styles"
)

const logoText = "Notecard"

// IntroModel animates the header logo on startup: letters slide in from the
// left, overshoot slightly, settle, and fade into the theme gradient.
type IntroModel struct {
	Active  bool
	Done    bool
	Letters []*IntroLetter
	elapsed time.Duration
}

type IntroLetter struct {
	Char     rune
	TargetX  float64
	CurrentX float64

	ReachedTarget bool
	OvershootMax  float64

	StartColor   RGB
	EndColor     RGB
	CurrentColor RGB

	Delay time.Duration
}

type RGB struct {
	R, G, B float64
}

func hexToRGB(hex string) RGB {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return RGB{float64(r), float64(g), float64(b)}
}

func (c RGB) toLipgloss() lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", int(c.R), int(c.G), int(c.B)))
}

func lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + t*(b.R-a.R),
		G: a.G + t*(b.G-a.G),
		B: a.B + t*(b.B-a.B),
	}
}

// NewIntroModel builds the animation toward the active theme's
// primary-to-secondary gradient.
func NewIntroModel() IntroModel {
	from := hexToRGB(string(styles.Primary))
	to := hexToRGB(string(styles.Secondary))

	startColors := []string{"#EF4444", "#3B82F6", "#10B981", "#8B5CF6", "#EC4899", "#06B6D4", "#F97316"}

	runes := []rune(logoText)
	letters := make([]*IntroLetter, len(runes))
	for i, char := range runes {
		start := hexToRGB(startColors[i%len(startColors)])
		letters[i] = &IntroLetter{
			Char:         char,
			CurrentX:     -20.0 - float64(i)*10.0,
			TargetX:      float64(i),
			OvershootMax: float64(i) + 0.5 + float64(i)*0.1,
			StartColor:   start,
			EndColor:     lerp(from, to, float64(i)/float64(len(runes)-1)),
			CurrentColor: start,
			Delay:        time.Duration(i) * 90 * time.Millisecond,
		}
	}
	return IntroModel{Active: true, Letters: letters}
}

// Update advances the animation by dt.
func (m *IntroModel) Update(dt time.Duration) {
	if !m.Active || m.Done {
		return
	}
	m.elapsed += dt

	allSettled := true
	for _, l := range m.Letters {
		if m.elapsed < l.Delay {
			allSettled = false
			continue
		}

		target, speed := l.TargetX, 5.0
		if !l.ReachedTarget {
			target, speed = l.OvershootMax, 30.0
			if l.CurrentX >= l.OvershootMax-0.1 {
				l.ReachedTarget = true
			}
		}

		dist := target - l.CurrentX
		move := dist * 6.0 * dt.Seconds()
		if math.Abs(move) > math.Abs(dist) {
			move = dist
		}
		if minMove := speed * dt.Seconds(); math.Abs(dist) > 0.1 && math.Abs(move) < minMove {
			move = math.Copysign(minMove, dist)
		}
		l.CurrentX += move

		colorStep := min(1, 3.0*dt.Seconds())
		l.CurrentColor = lerp(l.CurrentColor, l.EndColor, colorStep)

		settled := l.ReachedTarget &&
			math.Abs(l.TargetX-l.CurrentX) < 0.1 &&
			math.Abs(l.EndColor.R-l.CurrentColor.R) < 1.0 &&
			math.Abs(l.EndColor.G-l.CurrentColor.G) < 1.0 &&
			math.Abs(l.EndColor.B-l.CurrentColor.B) < 1.0
		if !settled {
			allSettled = false
		}
	}

	if allSettled {
		for _, l := range m.Letters {
			l.CurrentX = l.TargetX
			l.CurrentColor = l.EndColor
		}
		m.Done = true
	}
}

// View renders the logo at its current animation frame.
func (m IntroModel) View() string {
	if !m.Active || m.Done {
		return styles.Logo.Render(logoText)
	}

	buf := make([]string, len(m.Letters))
	for i := range buf {
		buf[i] = " "
	}
	for _, l := range m.Letters {
		x := int(math.Round(l.CurrentX))
		if x >= 0 && x < len(buf) {
			style := lipgloss.NewStyle().Foreground(l.CurrentColor.toLipgloss()).Bold(true)
			buf[x] = style.Render(string(l.Char))
		}
	}
	return strings.Join(buf, "")
}

// IntroTickMsg is sent to update the animation frame.
type IntroTickMsg time.Time

// IntroTick schedules the next frame (about 60fps).
func IntroTick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg {
		return IntroTickMsg(t)
	})
}
