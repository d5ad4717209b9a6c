package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notecard/internal/keymap"
	appmsg "github.com/marcus/notecard/internal/msg"
	"github.com/marcus/notecard/internal/notebook"
	"github.com/marcus/notecard/internal/query"
	"github.com/marcus/notecard/internal/styles"
	"github.com/marcus/notecard/internal/ui"
)

const (
	headerHeight       = 2 // title bar + search line
	footerHeight       = 1
	detailHeaderHeight = 3 // title, meta, blank
	minWidth           = 40
	minHeight          = 14
)

func (m Model) contentHeight() int {
	return max(0, m.height-headerHeight-footerHeight)
}

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render(msg))
	}

	contentHeight := m.contentHeight()
	var content string
	if m.mode == viewDetail {
		content = m.renderDetailView()
	} else {
		content = m.renderGrid(m.width, contentHeight)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	// MaxHeight truncates tall content so the header stays on screen.
	b.WriteString(lipgloss.NewStyle().Width(m.width).Height(contentHeight).MaxHeight(contentHeight).Render(content))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	bg := b.String()
	switch {
	case m.confirm != nil:
		bg = ui.OverlayModal(bg, m.confirm.Render(m.width, m.height), m.width, m.height)
	case m.editor != nil:
		bg = ui.OverlayModal(bg, m.editor.modal.Render(m.width, m.height), m.width, m.height)
	case m.tagPicker != nil:
		bg = ui.OverlayModal(bg, m.tagPicker.modal.Render(m.width, m.height), m.width, m.height)
	case m.showHelp:
		help := ui.FitLines(m.buildHelpContent(), m.height-4)
		bg = ui.OverlayModal(bg, styles.ModalBox.Render(help), m.width, m.height)
	}

	if m.toast.message != "" {
		bg = ui.OverlayBottomRight(bg, m.renderToast(), m.width, m.height, footerHeight)
	}
	return bg
}

// renderHeader renders the title bar and the search line.
func (m Model) renderHeader() string {
	total := m.nb.Len()
	count := pluralNotes(total)
	if len(m.visible) != total {
		count = fmt.Sprintf("%d of %s", len(m.visible), pluralNotes(total))
	}
	left := m.intro.View() + "  " + styles.Muted.Render(count)

	sortChip := styles.BarChip.Render("Sort: " + m.params.Sort.Label())
	tagChip := styles.BarChip.Render("Tag: " + tagLabel(m.params.Tag))
	if m.params.Tag != query.AllTags {
		tagChip = styles.BarChipActive.Render("Tag: " + tagLabel(m.params.Tag))
	}
	themeChip := styles.BarChip.Render(themeLabel(m.nb.Theme()))
	right := sortChip + " " + tagChip + " " + themeChip

	// Header has 1 cell of padding on each side.
	spacing := max(1, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	bar := styles.Header.Width(m.width).MaxWidth(m.width).
		Render(left + strings.Repeat(" ", spacing) + right)

	search := lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(" " + m.search.View())
	return bar + "\n" + search
}

func pluralNotes(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}

func themeLabel(t notebook.Theme) string {
	if t == notebook.ThemeLight {
		return "☀ Light"
	}
	return "☾ Dark"
}

// renderDetailView renders the note title, its metadata, and the scrollable body.
func (m Model) renderDetailView() string {
	n, ok := m.nb.Get(m.detailID)
	if !ok {
		return ""
	}

	title := styles.Title.Render(n.Title)
	if n.Pinned {
		title = styles.PinBadge.Render(pinMarker) + title
	}
	meta := renderTagChips(n.Tags, m.width/2) + "  " + styles.CardMeta.Render(
		"Created "+n.Created.Format(m.cfg.UI.DateFormat)+" · Modified "+n.Modified.Format(m.cfg.UI.DateFormat))

	clip := lipgloss.NewStyle().MaxWidth(m.width)
	return clip.Render(" "+title) + "\n" + clip.Render(" "+meta) + "\n\n" + m.detail.View()
}

func (m Model) renderToast() string {
	style := styles.ToastSuccess
	switch m.toast.kind {
	case appmsg.ToastWarning:
		style = styles.ToastWarning
	case appmsg.ToastError:
		style = styles.ToastError
	}
	return style.Render(ui.Truncate(m.toast.message, max(10, m.width/2)))
}

// renderFooter renders the bottom bar with key hints for the current context.
func (m Model) renderFooter() string {
	hints := renderHintLineTruncated(m.footerHints(), m.width-2)
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(" " + hints)
}

type footerHint struct {
	keys  string
	label string
}

type hintSpec struct {
	id    string
	label string
}

var footerSpecs = map[string][]hintSpec{
	keymap.ContextGrid: {
		{keymap.CmdNew, "new"},
		{keymap.CmdEdit, "edit"},
		{keymap.CmdDelete, "delete"},
		{keymap.CmdPin, "pin"},
		{keymap.CmdSearch, "search"},
		{keymap.CmdSort, "sort"},
		{keymap.CmdTagNext, "tag"},
		{keymap.CmdView, "view"},
		{keymap.CmdTheme, "theme"},
		{keymap.CmdHelp, "help"},
		{keymap.CmdQuit, "quit"},
	},
	keymap.ContextDetail: {
		{keymap.CmdBack, "back"},
		{keymap.CmdEdit, "edit"},
		{keymap.CmdPin, "pin"},
		{keymap.CmdYankContent, "copy"},
		{keymap.CmdScrollDown, "scroll"},
		{keymap.CmdHelp, "help"},
	},
	keymap.ContextSearch: {
		{keymap.CmdBack, "done"},
	},
	keymap.ContextEditor: {
		{keymap.CmdSave, "save"},
		{keymap.CmdNextField, "next field"},
		{keymap.CmdBack, "cancel"},
	},
}

func (m Model) footerHints() []footerHint {
	ctx := m.context()
	var hints []footerHint
	for _, spec := range footerSpecs[ctx] {
		keys := m.keymap.KeysFor(spec.id, ctx)
		if len(keys) == 0 {
			continue
		}
		hints = append(hints, footerHint{keys: keys[0], label: spec.label})
	}
	return hints
}

// renderHintLineTruncated renders hints but stops adding when maxWidth is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	separator := "  "
	for _, hint := range hints {
		if hint.keys == "" || hint.label == "" {
			continue
		}
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		candidate := part
		if result != "" {
			candidate = result + separator + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

// buildHelpContent creates the help modal content.
func (m Model) buildHelpContent() string {
	var b strings.Builder

	b.WriteString(styles.ModalTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title   string
		context string
	}{
		{"Notes", keymap.ContextGrid},
		{"Note view", keymap.ContextDetail},
		{"Editor", keymap.ContextEditor},
		{"Global", keymap.ContextGlobal},
	}
	for _, s := range sections {
		b.WriteString(styles.Title.Render(s.title))
		b.WriteString("\n")
		m.renderBindingSection(&b, s.context)
		b.WriteString("\n")
	}

	b.WriteString(styles.Muted.Render("Press ? or esc to close"))
	return b.String()
}

// renderBindingSection renders bindings for a context, one line per command.
func (m Model) renderBindingSection(b *strings.Builder, context string) {
	bindings := m.keymap.BindingsForContext(context)

	seen := make(map[string]bool)
	for _, binding := range bindings {
		if seen[binding.Command] {
			continue
		}
		seen[binding.Command] = true

		var keys []string
		for _, b2 := range bindings {
			if b2.Command == binding.Command {
				keys = append(keys, b2.Key)
			}
		}

		padded := fmt.Sprintf("%-11s", formatBindingKeys(keys))
		fmt.Fprintf(b, "  %s %s\n", styles.Muted.Render(padded), formatCommandName(binding.Command))
	}
}

// formatBindingKeys formats multiple keys into a display string.
func formatBindingKeys(keys []string) string {
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return strings.Join(keys, ", ")
}

// formatCommandName converts a command ID to a display name.
func formatCommandName(cmd string) string {
	return strings.ReplaceAll(cmd, "-", " ")
}
