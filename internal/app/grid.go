package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/notecard/internal/keymap"
	"github.com/marcus/notecard/internal/mouse"
	"github.com/marcus/notecard/internal/notes"
	"github.com/marcus/notecard/internal/styles"
	"github.com/marcus/notecard/internal/ui"
)

const (
	cardGap          = 1
	cardExcerptLines = 3
	cardInnerLines   = 7 // title, excerpt, tags, created, modified
	cardHeight       = cardInnerLines + 2
	pinMarker        = "★ "

	regionCard = "card"
)

// columns returns how many cards of the configured width fit side by side.
func (m Model) columns() int {
	w := max(20, m.cfg.UI.CardWidth)
	return max(1, (m.width+cardGap)/(w+cardGap))
}

// renderGrid lays the visible notes out in rows, scrolled so the cursor's
// row is on screen.
func (m Model) renderGrid(width, height int) string {
	if len(m.visible) == 0 {
		return m.renderEmpty(width, height)
	}

	g := m.layout(width, height)

	var rows []string
	for r := g.firstRow; r < g.firstRow+g.rows; r++ {
		start := r * g.cols
		if start >= len(m.visible) {
			break
		}
		end := min(start+g.cols, len(m.visible))

		cards := make([]string, 0, 2*g.cols)
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, m.renderCard(m.visible[i], g.cardWidth, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

// gridLayout is the geometry of one grid frame.
type gridLayout struct {
	cols, rows int
	cardWidth  int
	firstRow   int
}

// layout scrolls so the cursor's row is the last visible one when it would
// otherwise be off screen.
func (m Model) layout(width, height int) gridLayout {
	cols := m.columns()
	rows := max(1, height/cardHeight)
	return gridLayout{
		cols:      cols,
		rows:      rows,
		cardWidth: (width - (cols-1)*cardGap) / cols,
		firstRow:  max(0, m.cursor/cols-rows+1),
	}
}

// registerCards records the on-screen rectangle of every visible card,
// keyed by its index in m.visible.
func (m Model) registerCards(hm *mouse.HitMap) {
	hm.Clear()
	if m.mode != viewGrid || len(m.visible) == 0 {
		return
	}
	g := m.layout(m.width, m.contentHeight())
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			i := (g.firstRow+r)*g.cols + c
			if i >= len(m.visible) {
				return
			}
			hm.AddRect(regionCard, c*(g.cardWidth+cardGap), headerHeight+r*cardHeight, g.cardWidth, cardHeight, i)
		}
	}
}

func (m Model) renderEmpty(width, height int) string {
	msg := "No notes match the current search or tag filter."
	if m.nb.Len() == 0 {
		key := "n"
		if keys := m.keymap.KeysFor(keymap.CmdNew, keymap.ContextGrid); len(keys) > 0 {
			key = keys[0]
		}
		msg = "No notes yet. Press " + key + " to create one."
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.Muted.Render(msg))
}

// renderCard draws one note. width is the full card width including border.
func (m Model) renderCard(n notes.Note, width int, selected bool) string {
	textWidth := max(1, width-4) // border + padding

	prefix := ""
	if n.Pinned {
		prefix = styles.PinBadge.Render(pinMarker)
	}
	title := prefix + styles.CardTitle.Render(ui.Truncate(n.Title, textWidth-lipgloss.Width(prefix)))

	dateFmt := m.cfg.UI.DateFormat
	lines := []string{
		title,
		styles.Body.Render(excerpt(n.Content, textWidth, cardExcerptLines)),
		renderTagChips(n.Tags, textWidth),
		styles.CardMeta.Render(ui.Truncate("Created: "+n.Created.Format(dateFmt), textWidth)),
		styles.CardMeta.Render(ui.Truncate("Modified: "+n.Modified.Format(dateFmt), textWidth)),
	}

	style := styles.Card
	switch {
	case m.deleting[n.ID]:
		style = styles.CardDeleting
	case selected:
		style = styles.CardSelected
	case n.Pinned:
		style = styles.CardPinned
	}
	return style.Width(width - 2).Height(cardInnerLines).Render(strings.Join(lines, "\n"))
}

// excerpt wraps content to width and keeps exactly n lines, ending with an
// ellipsis when text was cut.
func excerpt(content string, width, n int) string {
	content = strings.ReplaceAll(strings.TrimSpace(content), "\t", "    ")
	lines := strings.Split(ansi.Wrap(content, width, ""), "\n")
	if len(lines) > n {
		lines = lines[:n]
		lines[n-1] = ui.Truncate(lines[n-1]+"…", width)
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderTagChips renders as many tag chips as fit in width, then a "+N" marker.
func renderTagChips(tags []string, width int) string {
	if len(tags) == 0 {
		return styles.Muted.Render("no tags")
	}

	var b strings.Builder
	used := 0
	for i, t := range tags {
		chip := styles.TagChip.Render("#" + ui.Truncate(t, 16))
		w := lipgloss.Width(chip)
		sep := 0
		if i > 0 {
			sep = 1
		}
		if used+sep+w > width {
			more := styles.Muted.Render(fmt.Sprintf("+%d", len(tags)-i))
			if used+1+lipgloss.Width(more) <= width {
				b.WriteString(" " + more)
			}
			break
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(chip)
		used += sep + w
	}
	return b.String()
}
