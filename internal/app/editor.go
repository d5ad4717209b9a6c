package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecard/internal/markdown"
	"github.com/marcus/notecard/internal/modal"
	"github.com/marcus/notecard/internal/notes"
	"github.com/marcus/notecard/internal/query"
	"github.com/marcus/notecard/internal/ui"
)

// Modal action and field IDs.
const (
	actionSave   = "save"
	actionCancel = "cancel"

	fieldTitle   = "title"
	fieldContent = "content"
	fieldTags    = "tags"

	tagItemPrefix = "tag:"
)

// editor is the create/edit form. The modal sections hold pointers into it,
// so it is always used by pointer.
type editor struct {
	modal   *modal.Modal
	title   textinput.Model
	content textarea.Model
	tags    textinput.Model
	editID  int64 // 0 when creating
}

func newEditor(n *notes.Note) *editor {
	e := &editor{
		title:   textinput.New(),
		content: textarea.New(),
		tags:    textinput.New(),
	}
	e.title.Prompt = ""
	e.title.Placeholder = "Note title"
	e.title.CharLimit = 200

	e.content.Placeholder = "Write your note... Markdown is supported."
	e.content.ShowLineNumbers = false
	e.content.CharLimit = 0

	e.tags.Prompt = ""
	e.tags.Placeholder = "work, ideas, todo"

	heading := "Create New Note"
	if n != nil {
		heading = "Edit Note"
		e.editID = n.ID
		e.title.SetValue(n.Title)
		e.content.SetValue(n.Content)
		e.tags.SetValue(n.TagsString())
	}

	e.modal = modal.New(heading,
		modal.WithWidth(ui.ModalWidthLarge),
		modal.WithPrimaryAction(actionSave),
	).
		AddSection(modal.InputWithLabel(fieldTitle, "Title", &e.title)).
		AddSection(modal.Textarea(fieldContent, "Content", &e.content, 8)).
		AddSection(modal.InputWithLabel(fieldTags, "Tags (comma separated)", &e.tags)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Save ", actionSave),
			modal.Btn(" Cancel ", actionCancel),
		))
	return e
}

// openEditor shows the form, prefilled when n is non-nil.
func (m *Model) openEditor(n *notes.Note) tea.Cmd {
	m.editor = newEditor(n)
	return textinput.Blink
}

// tagPicker lists "All Tags" and every tag for direct selection.
type tagPicker struct {
	modal   *modal.Modal
	options []string
	idx     int
}

func newTagPicker(current string, tags []string) *tagPicker {
	p := &tagPicker{options: append([]string{query.AllTags}, tags...)}
	items := make([]modal.ListItem, len(p.options))
	for i, t := range p.options {
		items[i] = modal.ListItem{ID: tagItemPrefix + t, Label: tagLabel(t)}
		if t == current {
			p.idx = i
		}
	}
	p.modal = modal.New("Filter by Tag", modal.WithWidth(ui.ModalWidthSmall)).
		AddSection(modal.List("tag-list", items, &p.idx, modal.WithMaxVisible(10)))
	return p
}

// tagFor maps a list action back to its tag.
func (p *tagPicker) tagFor(action string) (string, bool) {
	return strings.CutPrefix(action, tagItemPrefix)
}

func tagLabel(t string) string {
	if t == query.AllTags {
		return "All Tags"
	}
	return "#" + t
}

func (m *Model) openTagPicker() {
	m.tagPicker = newTagPicker(m.params.Tag, m.tags)
}

// openDetail shows the selected note full screen.
func (m *Model) openDetail() {
	n, ok := m.selected()
	if !ok {
		return
	}
	m.detailID = n.ID
	m.mode = viewDetail
	m.renderDetail()
	m.detail.GotoTop()
}

// renderDetail sizes the viewport and fills it with the rendered note.
func (m *Model) renderDetail() {
	if m.detailID == 0 || m.width == 0 {
		return
	}
	n, ok := m.nb.Get(m.detailID)
	if !ok {
		return
	}

	m.detail.Width = m.width
	m.detail.Height = max(1, m.contentHeight()-detailHeaderHeight)

	width := max(20, m.width-4)
	body := markdown.Plain(n.Content, width)
	if m.cfg.UI.Markdown && m.md != nil {
		body = m.md.Render(n.Content, width)
	}
	m.detail.SetContent(body)
}
