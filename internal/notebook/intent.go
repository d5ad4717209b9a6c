package notebook

import "github.com/marcus/notecard/internal/notes"

// Intent is a user action the view emits. Dispatch runs exactly one intent
// to completion before returning.
type Intent interface {
	isIntent()
}

// Create adds a new note.
type Create struct {
	Title   string
	Content string
	Tags    string // comma separated
}

// Update replaces the editable fields of note ID.
type Update struct {
	ID      int64
	Title   string
	Content string
	Tags    string
}

// Delete removes note ID. Absent ids are ignored.
type Delete struct {
	ID int64
}

// TogglePin flips the pin flag of note ID.
type TogglePin struct {
	ID int64
}

// ClearAll removes every note. Confirmation is the caller's job.
type ClearAll struct{}

// ToggleTheme switches between light and dark.
type ToggleTheme struct{}

func (Create) isIntent()      {}
func (Update) isIntent()      {}
func (Delete) isIntent()      {}
func (TogglePin) isIntent()   {}
func (ClearAll) isIntent()    {}
func (ToggleTheme) isIntent() {}

// Kind classifies a Result for presentation.
type Kind int

const (
	KindSuccess Kind = iota
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "success"
	}
}

// Result is the outcome of a dispatched intent.
type Result struct {
	Note    *notes.Note // the affected note, when there is one
	Theme   Theme       // set by ToggleTheme
	Kind    Kind
	Message string
	Err     error
	Changed bool // the collection or theme was mutated
}

// OK reports whether the intent succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
