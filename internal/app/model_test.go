package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/notecard/internal/blobstore"
	"github.com/marcus/notecard/internal/config"
	appmsg "github.com/marcus/notecard/internal/msg"
	"github.com/marcus/notecard/internal/notebook"
	"github.com/marcus/notecard/internal/query"
	"github.com/marcus/notecard/internal/styles"
)

type tickClock struct {
	t time.Time
}

func (c *tickClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type harness struct {
	t   *testing.T
	nb  *notebook.Notebook
	cfg *config.Config
	m   Model

	copied []string
}

func newHarness(t *testing.T, seed func(nb *notebook.Notebook)) *harness {
	t.Helper()
	t.Cleanup(func() { styles.ApplyTheme(styles.DefaultThemeName) })

	clock := &tickClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	store := blobstore.New(blobstore.NewMemory(), nil)
	nb := notebook.New(store, notebook.Options{Clock: clock.now})
	if seed != nil {
		seed(nb)
	}

	h := &harness{t: t, nb: nb, cfg: config.Default()}
	h.m = New(Options{
		Notebook: nb,
		Config:   h.cfg,
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// send delivers msgs, rendering after each one like the bubbletea runtime.
func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	h.t.Helper()
	var last tea.Cmd
	for _, msg := range msgs {
		next, cmd := h.m.Update(msg)
		h.m = next.(Model)
		_ = h.m.View()
		last = cmd
	}
	return last
}

func (h *harness) keys(keys ...string) tea.Cmd {
	h.t.Helper()
	var last tea.Cmd
	for _, k := range keys {
		last = h.send(keyMsg(k))
	}
	return last
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) wantToast(msg string, kind appmsg.ToastKind) {
	h.t.Helper()
	if h.m.toast.message != msg {
		h.t.Errorf("toast = %q, want %q", h.m.toast.message, msg)
	}
	if h.m.toast.kind != kind {
		h.t.Errorf("toast kind = %v, want %v", h.m.toast.kind, kind)
	}
}

func seedNotes(titles ...string) func(*notebook.Notebook) {
	return func(nb *notebook.Notebook) {
		for _, title := range titles {
			if _, err := nb.CreateNote(title, "content of "+title, "tag-"+strings.ToLower(title)); err != nil {
				panic(err)
			}
		}
	}
}

func TestCreateNote(t *testing.T) {
	h := newHarness(t, nil)

	h.keys("n")
	if h.m.editor == nil {
		t.Fatal("editor should open on n")
	}
	if h.m.editor.editID != 0 {
		t.Error("new note editor should have no edit target")
	}

	h.keys("Groceries", "tab", "milk and eggs", "tab", "home, errands", "ctrl+s")

	if h.m.editor != nil {
		t.Fatal("editor should close after a successful save")
	}
	if h.nb.Len() != 1 {
		t.Fatalf("notes = %d, want 1", h.nb.Len())
	}
	n := h.m.visible[0]
	if n.Title != "Groceries" || n.Content != "milk and eggs" {
		t.Errorf("created %+v", n)
	}
	if got := strings.Join(n.Tags, ","); got != "home,errands" {
		t.Errorf("tags = %q", got)
	}
	h.wantToast("Note created successfully", appmsg.ToastSuccess)
}

func TestCreateNote_EnterInTitleSaves(t *testing.T) {
	h := newHarness(t, nil)
	h.keys("n", "Only", "tab", "body", "shift+tab", "enter")

	if h.m.editor != nil {
		t.Fatal("enter in the title field should submit")
	}
	if h.nb.Len() != 1 {
		t.Errorf("notes = %d, want 1", h.nb.Len())
	}
}

func TestCreateNote_Validation(t *testing.T) {
	h := newHarness(t, nil)

	h.keys("n", "ctrl+s")
	if h.m.editor == nil {
		t.Fatal("editor should stay open on validation failure")
	}
	h.wantToast("Please enter a title", appmsg.ToastError)

	h.keys("   Title   ", "ctrl+s")
	h.wantToast("Please enter content", appmsg.ToastError)
	if h.nb.Len() != 0 {
		t.Errorf("rejected input must not create a note")
	}
}

func TestEditNote(t *testing.T) {
	h := newHarness(t, func(nb *notebook.Notebook) {
		if _, err := nb.CreateNote("Draft", "first", "a, b"); err != nil {
			t.Fatal(err)
		}
	})

	h.keys("e")
	e := h.m.editor
	if e == nil {
		t.Fatal("editor should open on e")
	}
	if e.title.Value() != "Draft" || e.content.Value() != "first" || e.tags.Value() != "a, b" {
		t.Errorf("prefill = %q / %q / %q", e.title.Value(), e.content.Value(), e.tags.Value())
	}

	h.keys(" v2", "ctrl+s")
	if h.m.editor != nil {
		t.Fatal("editor should close after update")
	}
	if got := h.m.visible[0].Title; got != "Draft v2" {
		t.Errorf("title = %q", got)
	}
	h.wantToast("Note updated successfully", appmsg.ToastSuccess)
}

func TestEditorCancel(t *testing.T) {
	h := newHarness(t, seedNotes("One"))
	h.keys("e", "changed", "esc")
	if h.m.editor != nil {
		t.Fatal("esc should close the editor")
	}
	if got := h.m.visible[0].Title; got != "One" {
		t.Errorf("cancel must not save, title = %q", got)
	}
}

func TestDeleteNote_Delayed(t *testing.T) {
	h := newHarness(t, seedNotes("Doomed"))
	id := h.m.visible[0].ID

	cmd := h.keys("d")
	if cmd == nil {
		t.Fatal("delete should schedule a command")
	}
	if !h.m.deleting[id] {
		t.Error("card should be marked as deleting")
	}
	if h.nb.Len() != 1 {
		t.Fatal("note must survive until the delay elapses")
	}

	h.send(deleteDueMsg{ID: id})
	if h.nb.Len() != 0 {
		t.Errorf("notes = %d, want 0", h.nb.Len())
	}
	if h.m.deleting[id] {
		t.Error("deleting mark should be cleared")
	}
	h.wantToast("Note deleted", appmsg.ToastWarning)
}

func TestDeleteNote_Immediate(t *testing.T) {
	h := newHarness(t, seedNotes("A", "B"))
	h.cfg.UI.DeleteDelay = 0

	h.keys("d")
	if h.nb.Len() != 1 {
		t.Fatalf("notes = %d, want 1", h.nb.Len())
	}
	if h.m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", h.m.cursor)
	}
}

func TestTogglePin_CursorFollowsNote(t *testing.T) {
	h := newHarness(t, seedNotes("Old", "New"))
	// Sorted by modified: New, Old.
	h.keys("l")
	target := h.m.visible[h.m.cursor]
	if target.Title != "Old" {
		t.Fatalf("cursor on %q, want Old", target.Title)
	}

	h.keys("p")
	if got := h.m.visible[h.m.cursor]; got.ID != target.ID || !got.Pinned {
		t.Errorf("cursor should stay on the pinned note, got %+v", got)
	}
	if h.m.cursor != 0 {
		t.Errorf("pinned note should sort first by modified, cursor = %d", h.m.cursor)
	}
	h.wantToast("Note pinned to top", appmsg.ToastSuccess)

	h.keys("p")
	h.wantToast("Note unpinned", appmsg.ToastSuccess)
}

func TestClearAll(t *testing.T) {
	h := newHarness(t, seedNotes("A", "B"))

	h.keys("C")
	if h.m.confirm == nil {
		t.Fatal("clear all should ask for confirmation")
	}
	h.keys("esc")
	if h.m.confirm != nil || h.nb.Len() != 2 {
		t.Fatal("cancel should keep the notes")
	}

	h.keys("C", "y")
	if h.nb.Len() != 0 {
		t.Errorf("notes = %d, want 0", h.nb.Len())
	}
	h.wantToast("All notes cleared", appmsg.ToastWarning)

	h.keys("C")
	if h.m.confirm != nil {
		t.Error("empty collection should skip the dialog")
	}
	h.wantToast("No notes to clear", appmsg.ToastWarning)
}

func TestClearAll_EnterDefaultsToCancel(t *testing.T) {
	h := newHarness(t, seedNotes("A"))
	h.keys("C", "enter")
	if h.nb.Len() != 1 {
		t.Error("enter on the default focus must not clear")
	}
	if h.m.confirm != nil {
		t.Error("dialog should close")
	}
}

func TestTagFilter_CycleAndResolve(t *testing.T) {
	h := newHarness(t, seedNotes("Work", "Home"))
	h.cfg.UI.DeleteDelay = 0

	h.keys("t")
	if h.m.params.Tag != "tag-home" {
		t.Fatalf("tag = %q, want tag-home", h.m.params.Tag)
	}
	if len(h.m.visible) != 1 || h.m.visible[0].Title != "Home" {
		t.Fatalf("visible = %v", h.m.visible)
	}

	h.keys("T")
	if h.m.params.Tag != query.AllTags {
		t.Fatalf("tag = %q, want all", h.m.params.Tag)
	}

	// Deleting the only note carrying the filtered tag falls back to all.
	h.keys("t", "d")
	if h.m.params.Tag != query.AllTags {
		t.Errorf("tag = %q, want all after its last note was deleted", h.m.params.Tag)
	}
	if len(h.m.visible) != 1 {
		t.Errorf("visible = %d, want 1", len(h.m.visible))
	}
}

func TestTagPicker(t *testing.T) {
	h := newHarness(t, seedNotes("Work", "Home"))

	h.keys("f")
	if h.m.tagPicker == nil {
		t.Fatal("tag picker should open")
	}
	h.keys("down", "down", "enter")
	if h.m.tagPicker != nil {
		t.Error("picker should close on selection")
	}
	if h.m.params.Tag != "tag-work" {
		t.Errorf("tag = %q, want tag-work", h.m.params.Tag)
	}
}

func TestSearch(t *testing.T) {
	h := newHarness(t, seedNotes("Alpha", "Beta"))

	h.keys("/")
	if !h.m.searching {
		t.Fatal("/ should focus search")
	}
	h.keys("ALPHA")
	if len(h.m.visible) != 1 || h.m.visible[0].Title != "Alpha" {
		t.Fatalf("visible = %v", h.m.visible)
	}
	// q is text while searching
	h.keys("q")
	if len(h.m.visible) != 0 {
		t.Errorf("visible = %d, want 0 for 'alphaq'", len(h.m.visible))
	}

	h.keys("enter")
	if h.m.searching {
		t.Error("enter should leave search")
	}
	h.keys("esc")
	if h.m.search.Value() != "" || len(h.m.visible) != 2 {
		t.Errorf("esc in grid should clear search, value %q visible %d", h.m.search.Value(), len(h.m.visible))
	}
}

func TestSortCycle(t *testing.T) {
	h := newHarness(t, seedNotes("A"))
	for _, want := range []query.SortKey{query.SortCreated, query.SortPinned, query.SortModified} {
		h.keys("s")
		if h.m.params.Sort != want {
			t.Errorf("sort = %q, want %q", h.m.params.Sort, want)
		}
	}
}

func TestToggleTheme(t *testing.T) {
	h := newHarness(t, nil)

	h.keys("L")
	if h.nb.Theme() != notebook.ThemeLight {
		t.Errorf("theme = %q", h.nb.Theme())
	}
	if styles.GetCurrentThemeName() != "light" {
		t.Errorf("styles theme = %q", styles.GetCurrentThemeName())
	}
	h.wantToast("Light theme", appmsg.ToastSuccess)

	h.keys("L")
	h.wantToast("Dark theme", appmsg.ToastSuccess)
}

func TestToastExpiry(t *testing.T) {
	h := newHarness(t, seedNotes("A"))
	h.keys("p")
	first := h.m.toast.seq
	h.keys("p")

	h.send(appmsg.ToastExpiredMsg{Seq: first})
	if h.m.toast.message == "" {
		t.Error("stale timer must not clear a newer toast")
	}
	h.send(appmsg.ToastExpiredMsg{Seq: h.m.toast.seq})
	if h.m.toast.message != "" {
		t.Error("current timer should clear the toast")
	}
}

func TestYank(t *testing.T) {
	h := newHarness(t, seedNotes("Copy"))

	cmd := h.keys("y")
	if cmd == nil {
		t.Fatal("y should return a copy command")
	}
	h.send(cmd())
	if len(h.copied) != 1 || h.copied[0] != "content of Copy" {
		t.Errorf("copied = %v", h.copied)
	}
	h.wantToast("Copied content", appmsg.ToastSuccess)

	h.send(h.keys("Y")())
	if h.copied[1] != "Copy" {
		t.Errorf("copied = %v", h.copied)
	}
}

func TestYank_Error(t *testing.T) {
	h := newHarness(t, seedNotes("Copy"))
	h.m.clipboard = func(string) error { return errors.New("no display") }

	h.send(h.keys("y")())
	h.wantToast("Copy failed: no display", appmsg.ToastError)
}

func TestDetailView(t *testing.T) {
	h := newHarness(t, seedNotes("Readme"))
	h.cfg.UI.Markdown = false

	h.keys("v")
	if h.m.mode != viewDetail {
		t.Fatal("v should open the detail view")
	}
	out := ansi.Strip(h.m.View())
	if !strings.Contains(out, "Readme") || !strings.Contains(out, "content of Readme") {
		t.Errorf("detail view missing note:\n%s", out)
	}

	h.keys("p")
	if n, _ := h.nb.Get(h.m.detailID); !n.Pinned {
		t.Error("p in detail should pin")
	}

	h.keys("q")
	if h.m.mode != viewGrid {
		t.Error("q should return to the grid")
	}
}

func TestView_Grid(t *testing.T) {
	h := newHarness(t, seedNotes("Groceries", "Ideas"))
	h.m.intro.Done = true

	out := ansi.Strip(h.m.View())
	for _, want := range []string{"Notecard", "2 notes", "Sort: Last Modified", "Tag: All Tags", "Groceries", "Ideas", "#tag-ideas", "Created: Mar 1, 2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestView_Empty(t *testing.T) {
	h := newHarness(t, nil)
	out := ansi.Strip(h.m.View())
	if !strings.Contains(out, "No notes yet. Press n to create one.") {
		t.Errorf("empty state missing:\n%s", out)
	}
}

func TestView_TooSmall(t *testing.T) {
	h := newHarness(t, nil)
	h.send(tea.WindowSizeMsg{Width: 20, Height: 5})
	if !strings.Contains(h.m.View(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestConfigReload(t *testing.T) {
	h := newHarness(t, nil)

	cfg := config.Default()
	cfg.Keymap.Overrides = map[string]string{"a": "new-note"}
	cfg.UI.ToastDuration = time.Second
	h.send(configReloadedMsg{cfg: cfg})

	if h.m.cfg != cfg {
		t.Fatal("config not applied")
	}
	h.wantToast("Config reloaded", appmsg.ToastSuccess)

	h.keys("a")
	if h.m.editor == nil {
		t.Error("override should bind a to new-note")
	}
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t, nil)
	h.keys("?")
	if !h.m.showHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(ansi.Strip(h.m.View()), "Keyboard Shortcuts") {
		t.Error("help not rendered")
	}
	h.keys("esc")
	if h.m.showHelp {
		t.Error("esc should close help")
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t, nil)
	cmd := h.keys("q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestExcerpt(t *testing.T) {
	got := excerpt("one two three four five six seven eight", 10, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("cut excerpt should end with ellipsis: %q", lines[1])
	}

	short := excerpt("hi", 10, 3)
	if short != "hi\n\n" {
		t.Errorf("short excerpt = %q", short)
	}
}

func TestRenderTagChips_Overflow(t *testing.T) {
	out := ansi.Strip(renderTagChips([]string{"alpha", "beta", "gamma", "delta"}, 20))
	if !strings.Contains(out, "#alpha") || !strings.Contains(out, "+") {
		t.Errorf("chips = %q", out)
	}
	if ansi.StringWidth(out) > 20 {
		t.Errorf("chips width %d exceeds 20", ansi.StringWidth(out))
	}
	if got := ansi.Strip(renderTagChips(nil, 20)); got != "no tags" {
		t.Errorf("empty chips = %q", got)
	}
}

func TestMouse_SelectAndOpen(t *testing.T) {
	h := newHarness(t, seedNotes("Old", "New"))
	click := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 45, Y: headerHeight + 2}

	h.send(click)
	if h.m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1 after clicking the second card", h.m.cursor)
	}
	if h.m.editor != nil {
		t.Fatal("single click must not open the editor")
	}

	h.send(click)
	if h.m.editor == nil || h.m.editor.editID != h.m.visible[1].ID {
		t.Error("double click should edit the clicked note")
	}
}

func TestMouse_MissAndWheel(t *testing.T) {
	h := newHarness(t, seedNotes("A", "B", "C", "D"))

	h.send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 5, Y: 0})
	if h.m.cursor != 0 {
		t.Errorf("header click moved cursor to %d", h.m.cursor)
	}

	h.send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown, X: 5, Y: 5})
	if h.m.cursor != 3 {
		t.Errorf("wheel down should move one row, cursor = %d", h.m.cursor)
	}
	h.send(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp, X: 5, Y: 5})
	if h.m.cursor != 0 {
		t.Errorf("wheel up should move back, cursor = %d", h.m.cursor)
	}
}
