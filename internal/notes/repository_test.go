package notes

import (
	"errors"
	"testing"
	"time"
)

// fakeStore records every Set so tests can assert on persistence.
type fakeStore struct {
	data   map[string]string
	writes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (s *fakeStore) Get(key string) (string, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *fakeStore) Set(key, value string) {
	s.data[key] = value
	s.writes++
}

// fixedClock returns a clock that advances one millisecond per call.
func fixedClock(start int64) func() time.Time {
	ms := start
	return func() time.Time {
		t := time.UnixMilli(ms)
		ms++
		return t
	}
}

func newTestRepo(t *testing.T) (*Repository, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	r := NewRepository(store, WithClock(fixedClock(1_700_000_000_000)))
	r.Load()
	return r, store
}

func TestCreate(t *testing.T) {
	r, store := newTestRepo(t)

	n, err := r.Create("  Groceries ", " Milk, eggs ", "food, home")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if n.Title != "Groceries" || n.Content != "Milk, eggs" {
		t.Errorf("got %q/%q, want trimmed title and content", n.Title, n.Content)
	}
	if len(n.Tags) != 2 || n.Tags[0] != "food" || n.Tags[1] != "home" {
		t.Errorf("got tags %v, want [food home]", n.Tags)
	}
	if n.Pinned {
		t.Error("new note should not be pinned")
	}
	if !n.Created.Equal(n.Modified) {
		t.Errorf("created %v != modified %v", n.Created, n.Modified)
	}
	if store.writes != 1 {
		t.Errorf("got %d writes, want 1", store.writes)
	}
}

func TestCreate_InsertsAtFront(t *testing.T) {
	r, _ := newTestRepo(t)

	a, _ := r.Create("A", "a", "")
	b, _ := r.Create("B", "b", "")

	list := r.Notes()
	if len(list) != 2 {
		t.Fatalf("got %d notes, want 2", len(list))
	}
	if list[0].ID != b.ID || list[1].ID != a.ID {
		t.Errorf("storage order = [%d %d], want [%d %d]", list[0].ID, list[1].ID, b.ID, a.ID)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		field   string
	}{
		{"empty title", "", "x", "title"},
		{"blank title", "   ", "x", "title"},
		{"empty content", "x", "", "content"},
		{"both empty reports title", "", "", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := newTestRepo(t)

			_, err := r.Create(tt.title, tt.content, "")
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("got %v, want validation error", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("got field %v, want %q", verr, tt.field)
			}
			if r.Len() != 0 {
				t.Errorf("collection changed: %d notes", r.Len())
			}
			if store.writes != 0 {
				t.Errorf("got %d writes, want 0", store.writes)
			}
		})
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	store := newFakeStore()
	frozen := time.UnixMilli(1_700_000_000_000)
	r := NewRepository(store, WithClock(func() time.Time { return frozen }))
	r.Load()

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		n, err := r.Create("t", "c", "")
		if err != nil {
			t.Fatal(err)
		}
		if seen[n.ID] {
			t.Fatalf("duplicate id %d after %d creates", n.ID, i)
		}
		seen[n.ID] = true
	}
}

func TestCreate_IDAboveLoaded(t *testing.T) {
	store := newFakeStore()
	store.data[DefaultKey] = `[{"id":5000000000000,"title":"t","content":"c","tags":[],"created":1,"modified":1,"pinned":false}]`
	r := NewRepository(store, WithClock(fixedClock(1000)))
	r.Load()

	n, err := r.Create("x", "y", "")
	if err != nil {
		t.Fatal(err)
	}
	if n.ID <= 5000000000000 {
		t.Errorf("got id %d, want > loaded max", n.ID)
	}
}

func TestUpdate(t *testing.T) {
	r, store := newTestRepo(t)
	orig, _ := r.Create("Old", "old", "a")
	r.TogglePin(orig.ID)

	got, err := r.Update(orig.ID, "New", "new", "b, c")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Title != "New" || got.Content != "new" {
		t.Errorf("got %q/%q", got.Title, got.Content)
	}
	if got.TagsString() != "b, c" {
		t.Errorf("got tags %q, want 'b, c'", got.TagsString())
	}
	if !got.Created.Equal(orig.Created) {
		t.Error("created should not change")
	}
	if !got.Modified.After(orig.Modified) {
		t.Error("modified should advance")
	}
	if !got.Pinned {
		t.Error("pinned should be preserved")
	}
	if store.writes != 3 {
		t.Errorf("got %d writes, want 3", store.writes)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	r, store := newTestRepo(t)

	_, err := r.Update(42, "", "", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want not found before validation", err)
	}
	if store.writes != 0 {
		t.Errorf("got %d writes, want 0", store.writes)
	}
}

func TestUpdate_Validation(t *testing.T) {
	r, _ := newTestRepo(t)
	n, _ := r.Create("T", "C", "")

	if _, err := r.Update(n.ID, "T", "  ", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
	got, _ := r.Get(n.ID)
	if got.Content != "C" {
		t.Errorf("content changed to %q", got.Content)
	}
}

func TestDelete(t *testing.T) {
	r, store := newTestRepo(t)
	a, _ := r.Create("A", "a", "")
	b, _ := r.Create("B", "b", "")

	if !r.Delete(a.ID) {
		t.Error("Delete should report removal")
	}
	if _, ok := r.Get(a.ID); ok {
		t.Error("note should be gone")
	}
	if _, ok := r.Get(b.ID); !ok {
		t.Error("other note should remain")
	}
	if store.writes != 3 {
		t.Errorf("got %d writes, want 3", store.writes)
	}
}

func TestDelete_Absent(t *testing.T) {
	r, store := newTestRepo(t)
	r.Create("A", "a", "")
	before := store.data[DefaultKey]
	writes := store.writes

	if r.Delete(999) {
		t.Error("Delete of absent id should report false")
	}
	if store.writes != writes {
		t.Error("absent delete should not persist")
	}
	if store.data[DefaultKey] != before {
		t.Error("blob changed")
	}
}

func TestTogglePin(t *testing.T) {
	r, _ := newTestRepo(t)
	n, _ := r.Create("A", "a", "")

	pinned, err := r.TogglePin(n.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !pinned.Pinned {
		t.Error("should be pinned")
	}
	if !pinned.Modified.After(n.Modified) {
		t.Error("modified should advance")
	}

	unpinned, _ := r.TogglePin(n.ID)
	if unpinned.Pinned {
		t.Error("should be unpinned")
	}

	if _, err := r.TogglePin(12345); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestClearAll(t *testing.T) {
	r, store := newTestRepo(t)
	r.Create("A", "a", "")
	r.Create("B", "b", "")

	r.ClearAll()
	if r.Len() != 0 {
		t.Errorf("got %d notes, want 0", r.Len())
	}
	if store.data[DefaultKey] != "[]" {
		t.Errorf("got blob %q, want []", store.data[DefaultKey])
	}
}

func TestLoad_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		blob *string
	}{
		{"absent", nil},
		{"empty", ptr("")},
		{"malformed", ptr("{not json")},
		{"object", ptr(`{"id":1}`)},
		{"null", ptr("null")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			if tt.blob != nil {
				store.data[DefaultKey] = *tt.blob
			}
			r := NewRepository(store)
			if got := r.Load(); len(got) != 0 {
				t.Errorf("got %d notes, want 0", len(got))
			}
		})
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	r, store := newTestRepo(t)
	r.Create("A", "a", "x, y")
	b, _ := r.Create("B", "b", "")
	r.TogglePin(b.ID)
	want := r.Notes()

	r2 := NewRepository(store)
	got := r2.Load()
	if len(got) != len(want) {
		t.Fatalf("got %d notes, want %d", len(got), len(want))
	}
	for i := range want {
		if !equalNotes(got[i], want[i]) {
			t.Errorf("note %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNotes_ReturnsCopies(t *testing.T) {
	r, _ := newTestRepo(t)
	r.Create("A", "a", "x")

	list := r.Notes()
	list[0].Tags[0] = "mutated"
	list[0].Title = "mutated"

	n := r.Notes()[0]
	if n.Title != "A" || n.Tags[0] != "x" {
		t.Errorf("repository state aliased: %+v", n)
	}
}

func TestWithKey(t *testing.T) {
	store := newFakeStore()
	r := NewRepository(store, WithKey("custom"))
	r.Load()
	r.Create("A", "a", "")

	if _, ok := store.data["custom"]; !ok {
		t.Error("expected blob under custom key")
	}
	if _, ok := store.data[DefaultKey]; ok {
		t.Error("default key should be untouched")
	}
}

func ptr(s string) *string { return &s }

func equalNotes(a, b Note) bool {
	if a.ID != b.ID || a.Title != b.Title || a.Content != b.Content || a.Pinned != b.Pinned {
		return false
	}
	if !a.Created.Equal(b.Created) || !a.Modified.Equal(b.Modified) {
		return false
	}
	if len(a.Tags) != len(b.Tags) {
		return false
	}
	for i := range a.Tags {
		if a.Tags[i] != b.Tags[i] {
			return false
		}
	}
	return true
}
