package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecard/internal/styles"
)

// ListItem is one selectable row. Enter on it returns ID as the action.
type ListItem struct {
	ID    string
	Label string
}

// ListOption configures a List section.
type ListOption func(*listSection)

// listSection is a scrolling list that takes focus as a whole: tab moves past
// it, up/down (or j/k) move the selection.
type listSection struct {
	id         string
	items      []ListItem
	selected   *int
	maxVisible int
	offset     int
}

// List creates a list section. selected points at the caller's selection
// index and is updated in place; nil disables selection.
func List(id string, items []ListItem, selected *int, opts ...ListOption) Section {
	s := &listSection{id: id, items: items, selected: selected, maxVisible: 5}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible caps the rows shown at once.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

func (s *listSection) selectedIndex() int {
	if s.selected == nil {
		return -1
	}
	return *s.selected
}

func (s *listSection) Render(_ int, focusID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: styles.Muted.Render("(no items)")}
	}

	visible := min(s.maxVisible, len(s.items))
	sel := max(0, s.selectedIndex())
	switch {
	case sel < s.offset:
		s.offset = sel
	case sel >= s.offset+visible:
		s.offset = sel - visible + 1
	}
	s.offset = clamp(s.offset, 0, len(s.items)-visible)

	marker := "> "
	if focusID == s.id {
		marker = "▸ "
	}

	lines := make([]string, 0, visible+2)
	if s.offset > 0 {
		lines = append(lines, styles.Muted.Render("↑ more above"))
	}
	for i := s.offset; i < s.offset+visible; i++ {
		if i == s.selectedIndex() {
			lines = append(lines, styles.ListCursor.Render(marker)+styles.ListItemFocused.Render(s.items[i].Label))
		} else {
			lines = append(lines, "  "+styles.ListItemNormal.Render(s.items[i].Label))
		}
	}
	if s.offset+visible < len(s.items) {
		lines = append(lines, styles.Muted.Render("↓ more below"))
	}

	offsetY := 0
	if s.offset > 0 {
		offsetY = 1
	}
	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: []FocusableInfo{{ID: s.id, OffsetY: offsetY, Height: visible}},
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || focusID != s.id || s.selected == nil || len(s.items) == 0 {
		return "", nil
	}

	switch key.String() {
	case "up", "k":
		*s.selected = max(0, *s.selected-1)
	case "down", "j":
		*s.selected = min(len(s.items)-1, *s.selected+1)
	case "home", "g":
		*s.selected = 0
	case "end", "G":
		*s.selected = len(s.items) - 1
	case "enter":
		if i := *s.selected; i >= 0 && i < len(s.items) {
			return s.items[i].ID, nil
		}
	}
	return "", nil
}
