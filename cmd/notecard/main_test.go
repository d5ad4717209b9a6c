package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testConfig writes a config that stores notes in a temp directory.
func testConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"storage": {"backend": "dir", "path": "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// addNote creates a note and returns its id as printed.
func addNote(t *testing.T, cfgPath, title, content, tags string) string {
	t.Helper()
	out, err := run(t, cfgPath, "add", "--title", title, "--content", content, "--tags", tags)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	_, id, ok := strings.Cut(strings.TrimSpace(out), ": ")
	if !ok {
		t.Fatalf("unexpected add output %q", out)
	}
	return id
}

func TestAddAndList(t *testing.T) {
	cfg := testConfig(t)
	addNote(t, cfg, "Groceries", "milk", "home")
	addNote(t, cfg, "Standup", "notes for monday", "work")

	out, err := run(t, cfg, "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "#work") {
		t.Errorf("list output:\n%s", out)
	}
	if strings.Index(out, "Standup") > strings.Index(out, "Groceries") {
		t.Error("newest note should be listed first")
	}

	out, err = run(t, cfg, "list", "--tag", "home", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var recs []map[string]any
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("json output: %v\n%s", err, out)
	}
	if len(recs) != 1 || recs[0]["title"] != "Groceries" {
		t.Errorf("filtered = %v", recs)
	}
}

func TestList_Empty(t *testing.T) {
	out, err := run(t, testConfig(t), "list", "--search", "nothing")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "No notes." {
		t.Errorf("out = %q", out)
	}
}

func TestAdd_Validation(t *testing.T) {
	cfg := testConfig(t)
	_, err := run(t, cfg, "add", "--title", "  ", "--content", "x")
	if err == nil || err.Error() != "Please enter a title" {
		t.Errorf("err = %v", err)
	}
	_, err = run(t, cfg, "add", "--title", "x")
	if err == nil || err.Error() != "Please enter content" {
		t.Errorf("err = %v", err)
	}
}

func TestPinAndRemove(t *testing.T) {
	cfg := testConfig(t)
	id := addNote(t, cfg, "Pin me", "body", "")

	out, err := run(t, cfg, "pin", id)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "Note pinned to top" {
		t.Errorf("pin output %q", out)
	}

	if _, err := run(t, cfg, "pin", "12"); err == nil {
		t.Error("pinning a missing note should fail")
	}
	if _, err := run(t, cfg, "pin", "abc"); err == nil {
		t.Error("non-numeric id should fail")
	}

	out, err = run(t, cfg, "rm", id)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "Note deleted" {
		t.Errorf("rm output %q", out)
	}
	if _, err := run(t, cfg, "rm", id); err == nil {
		t.Error("removing twice should report not found")
	}
}

func TestClear(t *testing.T) {
	cfg := testConfig(t)
	addNote(t, cfg, "A", "a", "")

	if _, err := run(t, cfg, "clear"); err == nil {
		t.Fatal("clear without --yes should refuse")
	}
	out, err := run(t, cfg, "clear", "--yes")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "All notes cleared" {
		t.Errorf("clear output %q", out)
	}
	out, _ = run(t, cfg, "clear")
	if strings.TrimSpace(out) != "No notes to clear" {
		t.Errorf("empty clear output %q", out)
	}
}

func TestExport(t *testing.T) {
	cfg := testConfig(t)
	addNote(t, cfg, "Readme", "# Heading", "docs")

	out, err := run(t, cfg, "export", "--format", "md")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "## Readme") {
		t.Errorf("markdown export:\n%s", out)
	}

	file := filepath.Join(t.TempDir(), "notes.html")
	if _, err := run(t, cfg, "export", "-f", "html", "-o", file); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<h1>Heading</h1>") {
		t.Errorf("html export:\n%s", data)
	}

	dir := filepath.Join(t.TempDir(), "out")
	out, err = run(t, cfg, "export", "--dir", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Exported 1 notes") {
		t.Errorf("dir export output %q", out)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "-Readme.md") {
		t.Errorf("dir export files = %v", entries)
	}

	if _, err := run(t, cfg, "export", "--format", "pdf"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestEphemeral(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "--ephemeral", "add", "--title", "t", "--content", "c"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, cfg, "list")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "No notes." {
		t.Errorf("ephemeral notes must not persist, got:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = old })

	out, err := run(t, filepath.Join(t.TempDir(), "missing.json"), "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "v9.9.9" {
		t.Errorf("version = %q", out)
	}
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"storage": {"backend": "tape"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, path, "list"); err == nil || !strings.Contains(err.Error(), "load config") {
		t.Errorf("err = %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	out, err := run(t, path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}

	if _, err := run(t, path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("written config is not JSON: %v", err)
	}
	if _, ok := raw["storage"]; !ok {
		t.Errorf("written config lacks storage section:\n%s", data)
	}

	if _, err := run(t, path, "config", "init"); err == nil {
		t.Error("expected init to refuse an existing file")
	}
	if _, err := run(t, path, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	// The written defaults load back cleanly.
	if _, err := run(t, path, "--ephemeral", "list"); err != nil {
		t.Errorf("list with generated config: %v", err)
	}
}
