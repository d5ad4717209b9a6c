package blobstore

import (
	"errors"
	"testing"
)

// countingBackend wraps Memory and counts writes; failGet/failSet inject errors.
type countingBackend struct {
	*Memory
	sets    int
	failGet bool
	failSet bool
}

func (c *countingBackend) Get(key string) (string, bool, error) {
	if c.failGet {
		return "", false, errors.New("disk on fire")
	}
	return c.Memory.Get(key)
}

func (c *countingBackend) Set(key, value string) error {
	if c.failSet {
		return errors.New("disk full")
	}
	c.sets++
	return c.Memory.Set(key, value)
}

func TestStore_GetSet(t *testing.T) {
	s := New(NewMemory(), nil)

	if _, ok := s.Get(KeyNotes); ok {
		t.Error("empty store should report absent")
	}
	s.Set(KeyNotes, "[]")
	v, ok := s.Get(KeyNotes)
	if !ok || v != "[]" {
		t.Errorf("got %q, %v; want \"[]\", true", v, ok)
	}
}

func TestStore_SkipsUnchangedWrites(t *testing.T) {
	b := &countingBackend{Memory: NewMemory()}
	s := New(b, nil)

	s.Set("k", "a")
	s.Set("k", "a")
	if b.sets != 1 {
		t.Errorf("got %d writes, want 1", b.sets)
	}
	s.Set("k", "b")
	if b.sets != 2 {
		t.Errorf("got %d writes, want 2", b.sets)
	}

	// A value read back counts as seen.
	b.Memory.Set("other", "x")
	s.Get("other")
	s.Set("other", "x")
	if b.sets != 2 {
		t.Errorf("got %d writes, want 2 after read", b.sets)
	}
}

func TestStore_AbsorbsErrors(t *testing.T) {
	b := &countingBackend{Memory: NewMemory(), failGet: true, failSet: true}
	s := New(b, nil)

	s.Set("k", "v")
	if _, ok := s.Get("k"); ok {
		t.Error("failed read should report absent")
	}

	// After a failed write the same value must be retried once the backend recovers.
	b.failSet = false
	b.failGet = false
	s.Set("k", "v")
	if v, ok := s.Get("k"); !ok || v != "v" {
		t.Errorf("got %q, %v after recovery", v, ok)
	}
}

func TestStore_Clear(t *testing.T) {
	b := &countingBackend{Memory: NewMemory()}
	s := New(b, nil)

	s.Set(KeyTheme, "light")
	s.Clear(KeyTheme)
	if _, ok := s.Get(KeyTheme); ok {
		t.Error("cleared key should be absent")
	}
	s.Set(KeyTheme, "light")
	if b.sets != 2 {
		t.Errorf("got %d writes, want 2 (clear resets dedupe)", b.sets)
	}
}
