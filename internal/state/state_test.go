package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitWithDir_Defaults(t *testing.T) {
	if err := InitWithDir(t.TempDir()); err != nil {
		t.Fatalf("InitWithDir failed: %v", err)
	}
	s := Get()
	if s.Sort != "modified" {
		t.Errorf("got sort %q, want modified", s.Sort)
	}
	if s.TagFilter != "all" {
		t.Errorf("got tag %q, want all", s.TagFilter)
	}
}

func TestSetView_Persists(t *testing.T) {
	dir := t.TempDir()
	if err := InitWithDir(dir); err != nil {
		t.Fatal(err)
	}
	if err := SetView("pinned", "work"); err != nil {
		t.Fatalf("SetView failed: %v", err)
	}
	if err := SetSelectedID(42); err != nil {
		t.Fatal(err)
	}

	if err := InitWithDir(dir); err != nil {
		t.Fatal(err)
	}
	s := Get()
	if s.Sort != "pinned" || s.TagFilter != "work" || s.SelectedID != 42 {
		t.Errorf("got %+v", s)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitWithDir(dir); err == nil {
		t.Error("expected error for corrupt state")
	}
	if Get().Sort != "modified" {
		t.Error("corrupt state should leave defaults")
	}
}
