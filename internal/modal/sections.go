package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/notecard/internal/styles"
)

// Section is one vertical block of a modal.
type Section interface {
	Render(contentWidth int, focusID string) RenderedSection
	Update(msg tea.Msg, focusID string) (action string, cmd tea.Cmd)
}

// enterConsumer is implemented by sections that use Enter themselves
// (multi-line editors) for the given focus id.
type enterConsumer interface {
	consumesEnter(focusID string) bool
}

// RenderedSection is the output of Section.Render.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// FocusableInfo describes a focusable element relative to its section.
type FocusableInfo struct {
	ID      string
	OffsetY int
	Height  int
}

// measureHeight counts rendered lines, ignoring one trailing newline.
func measureHeight(content string) int {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// --- Text ---

type textSection struct {
	text string
}

// Text renders wrapped static text.
func Text(s string) Section {
	return &textSection{text: s}
}

func (s *textSection) Render(contentWidth int, _ string) RenderedSection {
	return RenderedSection{Content: ansi.Wrap(s.text, contentWidth, "")}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// --- Spacer ---

type spacerSection struct{}

// Spacer renders one blank line.
func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(int, string) RenderedSection {
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// --- When ---

type whenSection struct {
	cond  func() bool
	inner Section
}

// When renders inner only while cond returns true.
func When(cond func() bool, inner Section) Section {
	return &whenSection{cond: cond, inner: inner}
}

func (s *whenSection) Render(contentWidth int, focusID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.inner.Render(contentWidth, focusID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.inner.Update(msg, focusID)
}

// --- Buttons ---

// ButtonDef is a button in a Buttons row.
type ButtonDef struct {
	Label  string
	ID     string
	danger bool
}

// ButtonOption configures a ButtonDef.
type ButtonOption func(*ButtonDef)

// BtnDanger styles the button as destructive.
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.danger = true }
}

// Btn defines a button whose ID is returned as the action on Enter.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons renders a horizontal row of buttons.
func Buttons(btns ...ButtonDef) Section {
	return &buttonsSection{buttons: btns}
}

func (s *buttonsSection) Render(_ int, focusID string) RenderedSection {
	parts := make([]string, 0, len(s.buttons)*2)
	focusables := make([]FocusableInfo, 0, len(s.buttons))
	for i, b := range s.buttons {
		style := styles.Button
		switch {
		case b.danger && b.ID == focusID:
			style = styles.ButtonDangerFocused
		case b.danger:
			style = styles.ButtonDanger
		case b.ID == focusID:
			style = styles.ButtonFocused
		}
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, style.Render(b.Label))
		focusables = append(focusables, FocusableInfo{ID: b.ID, Height: 1})
	}
	return RenderedSection{
		Content:    lipgloss.JoinHorizontal(lipgloss.Top, parts...),
		Focusables: focusables,
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || key.String() != "enter" {
		return "", nil
	}
	for _, b := range s.buttons {
		if b.ID == focusID {
			return b.ID, nil
		}
	}
	return "", nil
}

// --- Input ---

type inputSection struct {
	id    string
	label string
	input *textinput.Model
}

// Input wraps a single-line bubbles textinput.
func Input(id string, input *textinput.Model) Section {
	return &inputSection{id: id, input: input}
}

// InputWithLabel is Input with a label line above the field.
func InputWithLabel(id, label string, input *textinput.Model) Section {
	return &inputSection{id: id, label: label, input: input}
}

func (s *inputSection) Render(contentWidth int, focusID string) RenderedSection {
	if focusID == s.id {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
	s.input.Width = max(1, contentWidth-4)

	offset := 0
	var sb strings.Builder
	if s.label != "" {
		sb.WriteString(styles.InputLabel.Render(s.label))
		sb.WriteString("\n")
		offset = 1
	}
	sb.WriteString(inputBox(contentWidth, focusID == s.id).Render(s.input.View()))

	return RenderedSection{
		Content:    sb.String(),
		Focusables: []FocusableInfo{{ID: s.id, OffsetY: offset, Height: 3}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return "", nil
	}
	var cmd tea.Cmd
	*s.input, cmd = s.input.Update(msg)
	return "", cmd
}

// --- Textarea ---

type textareaSection struct {
	id     string
	label  string
	area   *textarea.Model
	height int
}

// Textarea wraps a multi-line bubbles textarea. Enter inserts a newline
// while it has focus.
func Textarea(id, label string, area *textarea.Model, height int) Section {
	return &textareaSection{id: id, label: label, area: area, height: max(1, height)}
}

func (s *textareaSection) consumesEnter(focusID string) bool {
	return focusID == s.id
}

func (s *textareaSection) Render(contentWidth int, focusID string) RenderedSection {
	if focusID == s.id {
		s.area.Focus()
	} else {
		s.area.Blur()
	}
	s.area.SetWidth(max(1, contentWidth-4))
	s.area.SetHeight(s.height)

	offset := 0
	var sb strings.Builder
	if s.label != "" {
		sb.WriteString(styles.InputLabel.Render(s.label))
		sb.WriteString("\n")
		offset = 1
	}
	sb.WriteString(inputBox(contentWidth, focusID == s.id).Render(s.area.View()))

	return RenderedSection{
		Content:    sb.String(),
		Focusables: []FocusableInfo{{ID: s.id, OffsetY: offset, Height: s.height + 2}},
	}
}

func (s *textareaSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	var cmd tea.Cmd
	*s.area, cmd = s.area.Update(msg)
	return "", cmd
}

func inputBox(contentWidth int, focused bool) lipgloss.Style {
	border := styles.BorderNormal
	if focused {
		border = styles.BorderActive
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(1, contentWidth-2))
}
