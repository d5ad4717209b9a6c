package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()
	dir, err := OpenDir(filepath.Join(t.TempDir(), "blobs"))
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "notecard.db"), SQLiteOptions{})
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]Backend{
		"memory": NewMemory(),
		"dir":    dir,
		"sqlite": db,
	}
}

func TestBackends(t *testing.T) {
	for name, b := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := b.Get(KeyNotes); err != nil || ok {
				t.Fatalf("fresh backend: ok=%v err=%v", ok, err)
			}
			if err := b.Set(KeyNotes, `[{"id":1}]`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := b.Set(KeyNotes, `[]`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			v, ok, err := b.Get(KeyNotes)
			if err != nil || !ok || v != "[]" {
				t.Errorf("got %q ok=%v err=%v, want []", v, ok, err)
			}
			if err := b.Delete(KeyNotes); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := b.Delete(KeyNotes); err != nil {
				t.Errorf("second Delete should be a no-op: %v", err)
			}
			if _, ok, _ := b.Get(KeyNotes); ok {
				t.Error("deleted key still present")
			}
		})
	}
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "notecard.db")
	ctx := context.Background()

	db, err := OpenSQLite(ctx, path, SQLiteOptions{Driver: DriverModernc})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Set(KeyTheme, "light"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = OpenSQLite(ctx, path, SQLiteOptions{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if v, ok, err := db.Get(KeyTheme); err != nil || !ok || v != "light" {
		t.Errorf("got %q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLite_UnknownDriver(t *testing.T) {
	_, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "x.db"), SQLiteOptions{Driver: "postgres"})
	if err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestDir_RejectsBadKeys(t *testing.T) {
	d, err := OpenDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Set("../escape", "x"); err == nil {
		t.Error("expected error for path traversal key")
	}
}

func TestDir_NoTempFilesLeft(t *testing.T) {
	root := t.TempDir()
	d, _ := OpenDir(root)
	d.Set("notes", "[]")

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "notes.json" {
		t.Errorf("unexpected files: %v", entries)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, BackendMemory, "", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Set(KeyNotes, "[]")
	if v, ok := s.Get(KeyNotes); !ok || v != "[]" {
		t.Errorf("got %q, %v", v, ok)
	}

	if _, err := Open(ctx, "redis", "", "", nil); err == nil {
		t.Error("expected error for unknown backend")
	}
}
