package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenMissingFile(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "best.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := f.Get("vd_best"); got != 0 {
		t.Errorf("absent key = %v, want 0", got)
	}
}

func TestSetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "best.yaml")
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.Slot("vd_best").Save(23.5); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := f.Slot("vd_best:alice").Save(31.25); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.Slot("vd_best").Load(); got != 23.5 {
		t.Errorf("vd_best = %v, want 23.5", got)
	}
	if got := reopened.Get("vd_best:alice"); got != 31.25 {
		t.Errorf("vd_best:alice = %v, want 31.25", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the store file", len(entries))
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.yaml")
	if err := os.WriteFile(path, []byte("vd_best: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "store: parse") {
		t.Errorf("Open error = %v, want a parse error", err)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.Set("vd_best", 1); err != nil {
		t.Fatalf("Set on empty file: %v", err)
	}
}

func TestMemory(t *testing.T) {
	var m Memory
	if m.Load() != 0 {
		t.Fatal("fresh memory slot not empty")
	}
	_ = m.Save(12)
	if m.Load() != 12 {
		t.Errorf("Load = %v, want 12", m.Load())
	}
}
