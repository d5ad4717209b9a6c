// Package notebook is the operations surface the views talk to. It owns the
// repository and the theme preference and turns intents into results that
// carry the user-facing message.
package notebook

import (
	"errors"
	"log/slog"
	"time"

	"github.com/marcus/notecard/internal/blobstore"
	"github.com/marcus/notecard/internal/notes"
	"github.com/marcus/notecard/internal/query"
)

// Store is what the notebook persists to.
type Store interface {
	notes.BlobStore
	Clear(key string)
}

// Notebook binds a repository, the theme preference and the query pipeline.
type Notebook struct {
	store  Store
	repo   *notes.Repository
	logger *slog.Logger
	theme  Theme
}

// Options configure New.
type Options struct {
	Logger *slog.Logger
	Clock  func() time.Time
}

// New creates a notebook over store and loads the collection and theme.
func New(store Store, opts Options) *Notebook {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	nb := &Notebook{
		store:  store,
		logger: logger,
		repo: notes.NewRepository(store,
			notes.WithKey(blobstore.KeyNotes),
			notes.WithLogger(logger),
			notes.WithClock(opts.Clock)),
	}
	nb.Reload()
	return nb
}

// Reload re-reads notes and theme from the store.
func (nb *Notebook) Reload() {
	nb.repo.Load()
	v, _ := nb.store.Get(blobstore.KeyTheme)
	nb.theme = ParseTheme(v)
}

// CreateNote adds a note.
func (nb *Notebook) CreateNote(title, content, tags string) (notes.Note, error) {
	return nb.repo.Create(title, content, tags)
}

// UpdateNote edits a note.
func (nb *Notebook) UpdateNote(id int64, title, content, tags string) (notes.Note, error) {
	return nb.repo.Update(id, title, content, tags)
}

// DeleteNote removes a note, reporting whether it existed.
func (nb *Notebook) DeleteNote(id int64) bool {
	return nb.repo.Delete(id)
}

// TogglePin flips the pin flag of a note.
func (nb *Notebook) TogglePin(id int64) (notes.Note, error) {
	return nb.repo.TogglePin(id)
}

// ClearAll removes every note.
func (nb *Notebook) ClearAll() {
	nb.repo.ClearAll()
}

// ListView returns the visible notes for p.
func (nb *Notebook) ListView(p query.Params) []notes.Note {
	return query.Project(nb.repo.Notes(), p)
}

// ListTags returns the sorted distinct tags of all notes.
func (nb *Notebook) ListTags() []string {
	return query.DistinctTags(nb.repo.Notes())
}

// Get returns a copy of note id.
func (nb *Notebook) Get(id int64) (notes.Note, bool) {
	return nb.repo.Get(id)
}

// Len returns the total number of notes, ignoring any filter.
func (nb *Notebook) Len() int {
	return nb.repo.Len()
}

// Notes returns every note in storage order.
func (nb *Notebook) Notes() []notes.Note {
	return nb.repo.Notes()
}

// Theme returns the current theme.
func (nb *Notebook) Theme() Theme {
	return nb.theme
}

// SetTheme stores t.
func (nb *Notebook) SetTheme(t Theme) {
	nb.theme = ParseTheme(string(t))
	nb.store.Set(blobstore.KeyTheme, string(nb.theme))
}

// ToggleTheme switches and stores the theme, returning the new one.
func (nb *Notebook) ToggleTheme() Theme {
	nb.SetTheme(nb.theme.Toggle())
	return nb.theme
}

// Dispatch runs one intent synchronously.
func (nb *Notebook) Dispatch(in Intent) Result {
	switch in := in.(type) {
	case Create:
		n, err := nb.CreateNote(in.Title, in.Content, in.Tags)
		return nb.noteResult(n, err, "Note created successfully")
	case Update:
		n, err := nb.UpdateNote(in.ID, in.Title, in.Content, in.Tags)
		return nb.noteResult(n, err, "Note updated successfully")
	case Delete:
		n, ok := nb.repo.Get(in.ID)
		if !ok || !nb.DeleteNote(in.ID) {
			// Deleting an absent note is silent.
			return Result{Kind: KindWarning}
		}
		return Result{Note: &n, Kind: KindWarning, Message: "Note deleted", Changed: true}
	case TogglePin:
		n, err := nb.TogglePin(in.ID)
		msg := "Note unpinned"
		if err == nil && n.Pinned {
			msg = "Note pinned to top"
		}
		return nb.noteResult(n, err, msg)
	case ClearAll:
		if nb.Len() == 0 {
			return Result{Kind: KindWarning, Message: "No notes to clear"}
		}
		nb.ClearAll()
		return Result{Kind: KindWarning, Message: "All notes cleared", Changed: true}
	case ToggleTheme:
		t := nb.ToggleTheme()
		return Result{Theme: t, Kind: KindSuccess, Message: t.Label(), Changed: true}
	default:
		nb.logger.Error("notebook: unknown intent", "intent", in)
		return Result{Kind: KindError, Message: "Unknown action", Err: errors.New("unknown intent")}
	}
}

func (nb *Notebook) noteResult(n notes.Note, err error, success string) Result {
	if err == nil {
		return Result{Note: &n, Kind: KindSuccess, Message: success, Changed: true}
	}

	var verr *notes.ValidationError
	switch {
	case errors.As(err, &verr):
		return Result{Kind: KindError, Message: verr.UserMessage(), Err: err}
	case errors.Is(err, notes.ErrNotFound):
		return Result{Kind: KindError, Message: "Note not found", Err: err}
	default:
		nb.logger.Error("notebook: operation failed", "error", err)
		return Result{Kind: KindError, Message: err.Error(), Err: err}
	}
}
