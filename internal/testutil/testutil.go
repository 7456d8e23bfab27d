// Package testutil provides shared test helpers for setting up export and
// content trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/storage"
)

// TestTree creates a temporary directory with a storage.Provider over it.
func TestTree(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFile writes a file under dir, creating parent directories, and
// returns its absolute path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// Touch sets a file's modification time.
func Touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}
