package notes

import (
	"log/slog"
	"time"
)

// DefaultKey is the blob store key holding the serialized collection.
const DefaultKey = "notes"

// BlobStore is the persistence contract the repository needs. Implementations
// absorb their own failures: Get reports absent, Set becomes a no-op.
type BlobStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Repository owns the authoritative in-memory collection and persists a
// snapshot after every mutation. It is not safe for concurrent use; the
// caller processes one intent at a time.
type Repository struct {
	store  BlobStore
	key    string
	now    func() time.Time
	logger *slog.Logger

	notes  []Note
	lastID int64
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithKey overrides the blob store key.
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// NewRepository creates an empty repository. Call Load to hydrate it.
func NewRepository(store BlobStore, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		key:    DefaultKey,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load replaces the in-memory collection with the stored one. An absent or
// unreadable blob yields an empty collection; Load never fails.
func (r *Repository) Load() []Note {
	r.notes = nil
	r.lastID = 0

	blob, ok := r.store.Get(r.key)
	if ok && blob != "" {
		list, err := Decode(blob)
		if err != nil {
			r.logger.Warn("notes: stored collection unreadable, starting empty", "key", r.key, "error", err)
		} else {
			r.notes = list
		}
	}
	for _, n := range r.notes {
		r.lastID = max(r.lastID, n.ID)
	}
	r.logger.Debug("notes: loaded", "count", len(r.notes))
	return cloneAll(r.notes)
}

// Notes returns a copy of the collection in storage order.
func (r *Repository) Notes() []Note {
	return cloneAll(r.notes)
}

// Len returns the number of notes.
func (r *Repository) Len() int {
	return len(r.notes)
}

// Get returns a copy of the note with id.
func (r *Repository) Get(id int64) (Note, bool) {
	if i := r.index(id); i >= 0 {
		return r.notes[i].Clone(), true
	}
	return Note{}, false
}

// Create validates the input, inserts a new note at the front, and persists.
func (r *Repository) Create(title, content, tagsRaw string) (Note, error) {
	in, err := newInput(title, content, tagsRaw)
	if err != nil {
		return Note{}, err
	}

	now := r.stamp()
	n := Note{
		ID:       r.nextID(now),
		Title:    in.Title,
		Content:  in.Content,
		Tags:     in.Tags,
		Created:  now,
		Modified: now,
	}
	r.notes = append([]Note{n}, r.notes...)
	r.persist()
	return n.Clone(), nil
}

// Update replaces title, content and tags of an existing note and persists.
func (r *Repository) Update(id int64, title, content, tagsRaw string) (Note, error) {
	i := r.index(id)
	if i < 0 {
		return Note{}, &NotFoundError{ID: id}
	}
	in, err := newInput(title, content, tagsRaw)
	if err != nil {
		return Note{}, err
	}

	n := &r.notes[i]
	n.Title = in.Title
	n.Content = in.Content
	n.Tags = in.Tags
	n.Modified = r.stamp()
	r.persist()
	return n.Clone(), nil
}

// Delete removes the note with id and persists. Deleting an absent id is a
// no-op that does not touch the store; the result reports whether a note was removed.
func (r *Repository) Delete(id int64) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	r.notes = append(r.notes[:i:i], r.notes[i+1:]...)
	r.persist()
	return true
}

// TogglePin flips the pinned flag, bumps the modified time, and persists.
func (r *Repository) TogglePin(id int64) (Note, error) {
	i := r.index(id)
	if i < 0 {
		return Note{}, &NotFoundError{ID: id}
	}
	n := &r.notes[i]
	n.Pinned = !n.Pinned
	n.Modified = r.stamp()
	r.persist()
	return n.Clone(), nil
}

// ClearAll empties the collection and persists.
func (r *Repository) ClearAll() {
	r.notes = nil
	r.persist()
}

func (r *Repository) index(id int64) int {
	for i := range r.notes {
		if r.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// stamp returns now truncated to the millisecond precision the blob keeps.
func (r *Repository) stamp() time.Time {
	return time.UnixMilli(r.now().UnixMilli())
}

// nextID is time based but strictly greater than every id handed out or loaded.
func (r *Repository) nextID(now time.Time) int64 {
	id := max(now.UnixMilli(), r.lastID+1)
	r.lastID = id
	return id
}

func (r *Repository) persist() {
	blob, err := Encode(r.notes)
	if err != nil {
		r.logger.Error("notes: persist skipped", "error", err)
		return
	}
	r.store.Set(r.key, blob)
}
