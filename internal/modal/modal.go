// Package modal renders declarative dialogs built from stacked sections and
// routes key input to the focused element.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Modal represents a declarative modal dialog.
type Modal struct {
	title         string
	variant       Variant
	width         int
	sections      []Section
	showHints     bool
	primaryAction string
	customFooter  string // Fixed footer rendered outside scroll viewport

	// State (managed internally)
	focusIdx     int      // Current focused element index in focusIDs
	focusIDs     []string // Ordered list of focusable IDs (built during Render)
	scrollOffset int      // Content scroll position in lines
	pendingFocus string   // applied on the next Render, once focusIDs are known

	// Focus-scroll tracking (cached during buildLayout)
	focusPositions map[string]focusablePos
	lastViewportH  int
}

// focusablePos records the absolute position of a focusable element within the full content.
type focusablePos struct {
	y      int
	height int
}

// New creates a new Modal with the given title and options.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		variant:   VariantDefault,
		width:     DefaultWidth,
		showHints: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection adds a section to the modal. Returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// Render renders the modal box sized for a screenW x screenH terminal.
func (m *Modal) Render(screenW, screenH int) string {
	return m.buildLayout(screenW, screenH)
}

// HandleKey processes keyboard input.
// Returns:
//   - action: the action ID if triggered ("cancel" for Esc, button ID or primary action for Enter)
//   - cmd: any tea.Cmd from bubbles models (cursor blink, etc.)
func (m *Modal) HandleKey(msg tea.KeyMsg) (action string, cmd tea.Cmd) {
	m.ensureFocusIDs()

	switch msg.String() {
	case "esc":
		return "cancel", nil

	case "tab":
		m.cycleFocus(1)
		return "", nil

	case "shift+tab":
		m.cycleFocus(-1)
		return "", nil

	case "enter":
		focusID := m.currentFocusID()
		if focusID == "" {
			return m.primaryAction, nil
		}
		if m.focusedConsumesEnter(focusID) {
			return m.routeToFocusedSection(msg)
		}
		action, cmd = m.routeToFocusedSection(msg)
		if action != "" {
			return action, cmd
		}
		if m.primaryAction != "" {
			return m.primaryAction, cmd
		}
		return focusID, cmd

	default:
		return m.routeToFocusedSection(msg)
	}
}

// Update forwards non-key messages (cursor blink and the like) to the
// focused section.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		_, cmd := m.HandleKey(key)
		return cmd
	}
	_, cmd := m.routeToFocusedSection(msg)
	return cmd
}

// ScrollBy adjusts the scroll offset by delta lines (positive = down, negative = up).
// Clamping to valid range happens in buildLayout.
func (m *Modal) ScrollBy(delta int) { m.scrollOffset += delta }

// SetFocus sets focus to a specific element by ID. If the modal has not
// been rendered yet the focus is applied on the first render.
func (m *Modal) SetFocus(id string) {
	for i, fid := range m.focusIDs {
		if fid == id {
			m.focusIdx = i
			m.pendingFocus = ""
			return
		}
	}
	m.pendingFocus = id
}

// FocusedID returns the currently focused element ID.
func (m *Modal) FocusedID() string {
	m.ensureFocusIDs()
	return m.currentFocusID()
}

// Reset resets the modal state (focus, scroll).
func (m *Modal) Reset() {
	m.focusIdx = 0
	m.scrollOffset = 0
	m.pendingFocus = ""
}

// ensureFocusIDs collects focusables without rendering the full layout, so
// keys pressed before the first View still find their target.
func (m *Modal) ensureFocusIDs() {
	if len(m.focusIDs) > 0 {
		return
	}
	width := max(1, m.width-ModalPadding)
	_, ids := m.renderSections(width)
	m.setFocusIDs(ids)
	// Second pass so the focused input actually holds focus.
	m.renderSections(width)
}

func (m *Modal) applyPendingFocus() {
	if m.pendingFocus == "" {
		return
	}
	for i, fid := range m.focusIDs {
		if fid == m.pendingFocus {
			m.focusIdx = i
			break
		}
	}
	m.pendingFocus = ""
}

// currentFocusID returns the ID of the currently focused element.
func (m *Modal) currentFocusID() string {
	if len(m.focusIDs) == 0 {
		return ""
	}
	if m.focusIdx < 0 || m.focusIdx >= len(m.focusIDs) {
		return m.focusIDs[0]
	}
	return m.focusIDs[m.focusIdx]
}

// cycleFocus moves focus by delta (1 for next, -1 for previous).
func (m *Modal) cycleFocus(delta int) {
	if len(m.focusIDs) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + delta + len(m.focusIDs)) % len(m.focusIDs)
	m.scrollToFocused()
}

// scrollToFocused adjusts scrollOffset so the focused element is visible in the viewport.
func (m *Modal) scrollToFocused() {
	id := m.currentFocusID()
	if id == "" || m.focusPositions == nil || m.lastViewportH <= 0 {
		return
	}
	pos, ok := m.focusPositions[id]
	if !ok {
		return
	}
	if pos.y < m.scrollOffset {
		m.scrollOffset = pos.y
	}
	if pos.y+pos.height > m.scrollOffset+m.lastViewportH {
		m.scrollOffset = pos.y + pos.height - m.lastViewportH
	}
}

func (m *Modal) focusedConsumesEnter(focusID string) bool {
	for _, s := range m.sections {
		if c, ok := s.(enterConsumer); ok && c.consumesEnter(focusID) {
			return true
		}
	}
	return false
}

// routeToFocusedSection routes a message to the focused section.
func (m *Modal) routeToFocusedSection(msg tea.Msg) (string, tea.Cmd) {
	focusID := m.currentFocusID()
	if focusID == "" {
		return "", nil
	}

	for _, section := range m.sections {
		action, cmd := section.Update(msg, focusID)
		if action != "" || cmd != nil {
			return action, cmd
		}
	}
	return "", nil
}
