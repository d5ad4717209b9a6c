// Package app is the terminal front end: a bubbletea model that renders the
// notebook as a card grid and turns key presses into notebook intents.
package app

import (
	"log/slog"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notecard/internal/config"
	"github.com/marcus/notecard/internal/keymap"
	"github.com/marcus/notecard/internal/markdown"
	"github.com/marcus/notecard/internal/modal"
	"github.com/marcus/notecard/internal/mouse"
	appmsg "github.com/marcus/notecard/internal/msg"
	"github.com/marcus/notecard/internal/notebook"
	"github.com/marcus/notecard/internal/notes"
	"github.com/marcus/notecard/internal/query"
	"github.com/marcus/notecard/internal/state"
	"github.com/marcus/notecard/internal/styles"
)

type viewMode int

const (
	viewGrid viewMode = iota
	viewDetail
)

// Options configure New. Only Notebook is required.
type Options struct {
	Notebook *notebook.Notebook
	Keymap   *keymap.Registry
	Config   *config.Config
	Logger   *slog.Logger
	Markdown *markdown.Renderer

	// ConfigUpdates delivers hot-reloaded configuration.
	ConfigUpdates <-chan *config.Config

	// Clipboard replaces clipboard.WriteAll.
	Clipboard func(string) error

	// SaveState persists sort, tag filter and selection via internal/state.
	SaveState bool
}

type toast struct {
	message string
	kind    appmsg.ToastKind
	seq     int
}

// Model is the root Bubble Tea model.
type Model struct {
	nb            *notebook.Notebook
	keymap        *keymap.Registry
	cfg           *config.Config
	logger        *slog.Logger
	md            *markdown.Renderer
	configUpdates <-chan *config.Config
	clipboard     func(string) error
	saveState     bool

	width, height int
	ready         bool
	mode          viewMode
	showHelp      bool

	// Query state
	search    textinput.Model
	searching bool
	params    query.Params
	visible   []notes.Note
	tags      []string
	cursor    int

	// Cards waiting out the delete animation
	deleting map[int64]bool

	// Overlays; at most one is open
	editor    *editor
	confirm   *modal.Modal
	tagPicker *tagPicker

	detail   viewport.Model
	detailID int64

	mouse *mouse.Handler

	toast toast
	intro IntroModel
}

// New creates the model and loads the first view.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.NewDefault(cfg.Keymap.Overrides)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title, content or tag"
	search.CharLimit = 200

	m := Model{
		nb:            opts.Notebook,
		keymap:        km,
		cfg:           cfg,
		logger:        logger,
		md:            opts.Markdown,
		configUpdates: opts.ConfigUpdates,
		clipboard:     clip,
		saveState:     opts.SaveState,
		search:        search,
		params:        query.Params{Sort: query.SortModified, Tag: query.AllTags},
		deleting:      make(map[int64]bool),
		detail:        viewport.New(0, 0),
		mouse:         mouse.NewHandler(),
	}

	var selected int64
	if m.saveState {
		st := state.Get()
		m.params.Sort = query.ParseSortKey(st.Sort)
		if st.TagFilter != "" {
			m.params.Tag = st.TagFilter
		}
		selected = st.SelectedID
	}

	m.applyTheme(m.nb.Theme())
	m.intro = NewIntroModel()
	m.reloadView(selected)
	return m
}

// Init starts the logo animation and the config watch loop.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{IntroTick()}
	if m.configUpdates != nil {
		cmds = append(cmds, waitForConfig(m.configUpdates))
	}
	return tea.Batch(cmds...)
}

// context returns the keymap context for the current focus.
func (m Model) context() string {
	switch {
	case m.editor != nil:
		return keymap.ContextEditor
	case m.searching:
		return keymap.ContextSearch
	case m.mode == viewDetail:
		return keymap.ContextDetail
	default:
		return keymap.ContextGrid
	}
}

// selected returns the note under the cursor.
func (m Model) selected() (notes.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return notes.Note{}, false
	}
	return m.visible[m.cursor], true
}

func (m Model) selectedID() int64 {
	if n, ok := m.selected(); ok {
		return n.ID
	}
	return 0
}

// reloadView re-reads tags, re-resolves the tag filter, and refreshes the
// visible notes. Called after every mutation.
func (m *Model) reloadView(focusID int64) {
	m.tags = m.nb.ListTags()
	m.params.Tag = query.ResolveTagFilter(m.params.Tag, m.tags)
	m.refresh(focusID)
}

// refresh recomputes the visible notes, keeping the cursor on focusID (or on
// the previously selected note) when it is still visible.
func (m *Model) refresh(focusID int64) {
	if focusID == 0 {
		focusID = m.selectedID()
	}
	m.params.Search = m.search.Value()
	m.visible = m.nb.ListView(m.params)

	if i := slices.IndexFunc(m.visible, func(n notes.Note) bool { return n.ID == focusID }); i >= 0 {
		m.cursor = i
	} else {
		m.cursor = clampCursor(m.cursor, len(m.visible))
	}
	m.persistView()
}

func clampCursor(c, n int) int {
	if n == 0 {
		return 0
	}
	return max(0, min(c, n-1))
}

func (m *Model) persistView() {
	if !m.saveState {
		return
	}
	if err := state.SetView(string(m.params.Sort), m.params.Tag); err != nil {
		m.logger.Warn("save view state", "error", err)
	}
}

// applyTheme switches the lipgloss palette and the markdown style.
func (m *Model) applyTheme(t notebook.Theme) {
	styles.ApplyThemeWithOverrides(string(t), m.cfg.UI.Colors)
	if m.md != nil {
		m.md.SetStyle(styles.GetMarkdownTheme())
	}
	m.renderDetail()
}

// applyConfig re-applies the settings that can change without a restart.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.keymap = keymap.NewDefault(cfg.Keymap.Overrides)
	m.applyTheme(m.nb.Theme())
}

// dispatch runs an intent and folds its result into the view.
func (m *Model) dispatch(in notebook.Intent) (notebook.Result, tea.Cmd) {
	res := m.nb.Dispatch(in)
	if res.Err != nil {
		m.logger.Debug("intent rejected", "intent", in, "error", res.Err)
	}

	if _, ok := in.(notebook.ToggleTheme); ok {
		m.applyTheme(res.Theme)
	}

	if res.Changed {
		var focus int64
		if res.Note != nil {
			focus = res.Note.ID
		}
		m.reloadView(focus)
		if m.mode == viewDetail {
			if _, ok := m.nb.Get(m.detailID); !ok {
				m.mode = viewGrid
			}
			m.renderDetail()
		}
	}

	if res.Message == "" {
		return res, nil
	}
	return res, m.showToast(res.Message, toastKind(res.Kind), 0)
}

func toastKind(k notebook.Kind) appmsg.ToastKind {
	switch k {
	case notebook.KindWarning:
		return appmsg.ToastWarning
	case notebook.KindError:
		return appmsg.ToastError
	default:
		return appmsg.ToastSuccess
	}
}

// showToast replaces the current toast and schedules its expiry.
func (m *Model) showToast(message string, kind appmsg.ToastKind, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = m.cfg.UI.ToastDuration
	}
	m.toast = toast{message: message, kind: kind, seq: m.toast.seq + 1}
	return appmsg.ExpireToast(m.toast.seq, d)
}

// quit stores the selection and stops the program.
func (m *Model) quit() tea.Cmd {
	if m.saveState {
		if err := state.SetSelectedID(m.selectedID()); err != nil {
			m.logger.Warn("save selection", "error", err)
		}
	}
	return tea.Quit
}
