package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecard/internal/keymap"
	"github.com/marcus/notecard/internal/modal"
	"github.com/marcus/notecard/internal/mouse"
	appmsg "github.com/marcus/notecard/internal/msg"
	"github.com/marcus/notecard/internal/notebook"
	"github.com/marcus/notecard/internal/notes"
	"github.com/marcus/notecard/internal/query"
	"github.com/marcus/notecard/internal/ui"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.renderDetail()
		return m, nil

	case IntroTickMsg:
		if m.intro.Active && !m.intro.Done {
			m.intro.Update(16 * time.Millisecond)
			if !m.intro.Done {
				return m, IntroTick()
			}
		}
		return m, nil

	case appmsg.ToastMsg:
		cmd := m.showToast(msg.Message, msg.Kind, msg.Duration)
		return m, cmd

	case appmsg.ToastExpiredMsg:
		// Only the newest toast's timer clears it.
		if msg.Seq == m.toast.seq {
			m.toast.message = ""
		}
		return m, nil

	case deleteDueMsg:
		delete(m.deleting, msg.ID)
		_, cmd := m.dispatch(notebook.Delete{ID: msg.ID})
		return m, cmd

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		m.logger.Info("config reloaded")
		cmd := m.showToast("Config reloaded", appmsg.ToastSuccess, 0)
		return m, tea.Batch(cmd, waitForConfig(m.configUpdates))
	}

	// Cursor blink and similar go to whichever input has focus.
	switch {
	case m.editor != nil:
		return m, m.editor.modal.Update(msg)
	case m.searching:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg routes a key to the open overlay or the focused context.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.confirm != nil:
		return m.handleConfirmKey(msg)
	case m.editor != nil:
		return m.handleEditorKey(msg)
	case m.tagPicker != nil:
		return m.handleTagPickerKey(msg)
	case m.showHelp:
		return m.handleHelpKey(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	case m.mode == viewDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleGridKey(msg)
	}
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, _ := m.keymap.Lookup(msg.String(), m.context())
	switch cmd {
	case keymap.CmdQuit:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		m.showHelp = false
	case keymap.CmdBack, keymap.CmdHelp:
		m.showHelp = false
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch cmd, _ := m.keymap.Lookup(msg.String(), keymap.ContextSearch); cmd {
	case keymap.CmdQuit:
		return m, m.quit()
	case keymap.CmdBack:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh(0)
	return m, cmd
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keymap.Lookup(msg.String(), keymap.ContextGrid)
	if !ok {
		return m, nil
	}

	cols := m.columns()
	switch cmd {
	case keymap.CmdQuit:
		return m, m.quit()
	case keymap.CmdHelp:
		m.showHelp = true
	case keymap.CmdBack:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refresh(0)
		}

	case keymap.CmdNew:
		c := m.openEditor(nil)
		return m, c
	case keymap.CmdEdit:
		if n, ok := m.selected(); ok {
			c := m.openEditor(&n)
			return m, c
		}
	case keymap.CmdView:
		m.openDetail()
	case keymap.CmdDelete:
		c := m.startDelete()
		return m, c
	case keymap.CmdPin:
		if n, ok := m.selected(); ok {
			_, c := m.dispatch(notebook.TogglePin{ID: n.ID})
			return m, c
		}
	case keymap.CmdClearAll:
		c := m.confirmClearAll()
		return m, c
	case keymap.CmdTheme:
		_, c := m.dispatch(notebook.ToggleTheme{})
		return m, c

	case keymap.CmdSearch:
		m.searching = true
		c := m.search.Focus()
		return m, c
	case keymap.CmdSort:
		m.params.Sort = m.params.Sort.Next()
		m.refresh(0)
	case keymap.CmdTagNext:
		m.cycleTag(1)
	case keymap.CmdTagPrev:
		m.cycleTag(-1)
	case keymap.CmdTagPick:
		m.openTagPicker()

	case keymap.CmdYankContent:
		if n, ok := m.selected(); ok {
			return m, copyToClipboard(m.clipboard, n.Content, "content")
		}
	case keymap.CmdYankTitle:
		if n, ok := m.selected(); ok {
			return m, copyToClipboard(m.clipboard, n.Title, "title")
		}

	case keymap.CmdUp:
		m.moveCursor(-cols)
	case keymap.CmdDown:
		m.moveCursor(cols)
	case keymap.CmdLeft:
		m.moveCursor(-1)
	case keymap.CmdRight:
		m.moveCursor(1)
	case keymap.CmdTop:
		m.cursor = 0
	case keymap.CmdBottom:
		m.cursor = clampCursor(len(m.visible)-1, len(m.visible))
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.visible) {
		return
	}
	m.cursor = next
}

// cycleTag steps the tag filter through "all" followed by every tag.
func (m *Model) cycleTag(delta int) {
	options := append([]string{query.AllTags}, m.tags...)
	i := 0
	for j, t := range options {
		if t == m.params.Tag {
			i = j
			break
		}
	}
	m.params.Tag = options[(i+delta+len(options))%len(options)]
	m.refresh(0)
}

// startDelete marks the selected card and fires the delete intent after
// the configured delay.
func (m *Model) startDelete() tea.Cmd {
	n, ok := m.selected()
	if !ok || m.deleting[n.ID] {
		return nil
	}
	if m.cfg.UI.DeleteDelay <= 0 {
		_, cmd := m.dispatch(notebook.Delete{ID: n.ID})
		return cmd
	}
	m.deleting[n.ID] = true
	return deleteAfter(n.ID, m.cfg.UI.DeleteDelay)
}

// confirmClearAll opens the confirmation dialog, or reports that there is
// nothing to clear.
func (m *Model) confirmClearAll() tea.Cmd {
	if m.nb.Len() == 0 {
		_, cmd := m.dispatch(notebook.ClearAll{})
		return cmd
	}
	d := ui.NewConfirmDialog("Clear All Notes",
		"Are you sure you want to delete all notes? This cannot be undone.")
	d.ConfirmLabel = " Clear All "
	d.Variant = modal.VariantDanger
	m.confirm = d.ToModal()
	return nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var action string
	var cmd tea.Cmd
	switch msg.String() {
	case "y":
		action = ui.ActionConfirm
	case "n":
		action = ui.ActionCancel
	case "ctrl+c":
		return m, m.quit()
	default:
		action, cmd = m.confirm.HandleKey(msg)
	}

	switch action {
	case ui.ActionConfirm:
		m.confirm = nil
		clear(m.deleting)
		_, c := m.dispatch(notebook.ClearAll{})
		return m, tea.Batch(cmd, c)
	case ui.ActionCancel:
		m.confirm = nil
	}
	return m, cmd
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch cmd, _ := m.keymap.Lookup(msg.String(), keymap.ContextEditor); cmd {
	case keymap.CmdSave:
		c := m.submitEditor()
		return m, c
	case keymap.CmdQuit:
		return m, m.quit()
	case keymap.CmdNextField:
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case keymap.CmdPrevField:
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	}

	action, cmd := m.editor.modal.HandleKey(msg)
	switch action {
	case actionSave:
		c := m.submitEditor()
		return m, tea.Batch(cmd, c)
	case actionCancel:
		m.editor = nil
	}
	return m, cmd
}

// submitEditor dispatches Create or Update. The editor stays open when the
// input is rejected so the user can fix it.
func (m *Model) submitEditor() tea.Cmd {
	e := m.editor
	var in notebook.Intent = notebook.Create{
		Title:   e.title.Value(),
		Content: e.content.Value(),
		Tags:    e.tags.Value(),
	}
	if e.editID != 0 {
		in = notebook.Update{
			ID:      e.editID,
			Title:   e.title.Value(),
			Content: e.content.Value(),
			Tags:    e.tags.Value(),
		}
	}

	res, cmd := m.dispatch(in)
	if res.OK() || errors.Is(res.Err, notes.ErrNotFound) {
		m.editor = nil
	}
	return cmd
}

func (m Model) handleTagPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}
	action, cmd := m.tagPicker.modal.HandleKey(msg)
	switch {
	case action == actionCancel:
		m.tagPicker = nil
	case action != "":
		if tag, ok := m.tagPicker.tagFor(action); ok {
			m.params.Tag = tag
			m.refresh(0)
		}
		m.tagPicker = nil
	}
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, _ := m.keymap.Lookup(msg.String(), keymap.ContextDetail)
	n, ok := m.nb.Get(m.detailID)
	if !ok {
		m.mode = viewGrid
		return m, nil
	}

	switch cmd {
	case keymap.CmdQuit:
		return m, m.quit()
	case keymap.CmdBack:
		m.mode = viewGrid
		return m, nil
	case keymap.CmdHelp:
		m.showHelp = true
		return m, nil
	case keymap.CmdEdit:
		c := m.openEditor(&n)
		return m, c
	case keymap.CmdPin:
		_, c := m.dispatch(notebook.TogglePin{ID: n.ID})
		return m, c
	case keymap.CmdYankContent:
		return m, copyToClipboard(m.clipboard, n.Content, "content")
	case keymap.CmdYankTitle:
		return m, copyToClipboard(m.clipboard, n.Title, "title")
	case keymap.CmdScrollDown:
		m.detail.ScrollDown(1)
		return m, nil
	case keymap.CmdScrollUp:
		m.detail.ScrollUp(1)
		return m, nil
	}

	var vcmd tea.Cmd
	m.detail, vcmd = m.detail.Update(msg)
	return m, vcmd
}

// handleMouse selects cards on click, opens them on double click and turns
// the wheel into row movement. Overlays and search swallow the mouse.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil || m.editor != nil || m.tagPicker != nil || m.showHelp {
		return m, nil
	}

	if m.mode == viewDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	m.registerCards(m.mouse.HitMap)
	action := m.mouse.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		i, ok := action.Region.Data.(int)
		if !ok || i >= len(m.visible) {
			return m, nil
		}
		m.searching = false
		m.search.Blur()
		m.cursor = i
		if action.Type == mouse.ActionDoubleClick {
			n := m.visible[i]
			c := m.openEditor(&n)
			return m, c
		}
	case mouse.ActionScrollUp:
		m.moveCursor(-m.columns())
	case mouse.ActionScrollDown:
		m.moveCursor(m.columns())
	}
	return m, nil
}
