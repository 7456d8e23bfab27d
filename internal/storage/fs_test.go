package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/apperr"
)

func newTestFS(t *testing.T) *FS {
	t.Helper()
	f, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNewFS_RejectsMissingRoot(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWriteAndRead(t *testing.T) {
	f := newTestFS(t)
	if err := f.Write("a/b/note.md", []byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := f.Read("a/b/note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Read = %q", data)
	}
}

func TestRead_Missing(t *testing.T) {
	f := newTestFS(t)
	if _, err := f.Read("absent.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	f := newTestFS(t)
	if err := f.Write("note.md", []byte("x")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(f.Root())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "note.md" {
		t.Errorf("root entries = %v", entries)
	}
}

func TestList(t *testing.T) {
	f := newTestFS(t)
	mtime := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	for _, name := range []string{"b.md", "a.md", "sub/c.md"} {
		if err := f.Write(name, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.Write("skip.txt", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(filepath.Join(f.Root(), "a.md"), mtime, mtime); err != nil {
		t.Fatal(err)
	}

	metas, err := f.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var paths []string
	for _, m := range metas {
		paths = append(paths, m.Path)
	}
	want := []string{"a.md", "b.md", "sub/c.md"}
	if len(paths) != len(want) {
		t.Fatalf("List = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
	if !metas[0].ModTime.Equal(mtime) {
		t.Errorf("ModTime = %v, want %v", metas[0].ModTime, mtime)
	}
}

func TestDirs(t *testing.T) {
	f := newTestFS(t)
	_ = f.Write("alpha/index.md", []byte("x"))
	_ = f.Write("beta/index.md", []byte("x"))
	_ = f.Write("loose.md", []byte("x"))

	dirs, err := f.Dirs("")
	if err != nil {
		t.Fatalf("Dirs: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("Dirs = %v", dirs)
	}
}

func TestMove_Directory(t *testing.T) {
	f := newTestFS(t)
	_ = f.Write("old/index.md", []byte("x"))
	_ = f.Write("old/attachments/img.png", []byte("y"))

	if err := f.Move("old", "new"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if f.Exists("old") {
		t.Error("old path still exists")
	}
	if !f.Exists("new/attachments/img.png") {
		t.Error("moved tree incomplete")
	}
}

func TestRemoveTree(t *testing.T) {
	f := newTestFS(t)
	_ = f.Write("gone/index.md", []byte("x"))

	if err := f.RemoveTree("gone"); err != nil {
		t.Fatalf("RemoveTree: %v", err)
	}
	if f.Exists("gone") {
		t.Error("tree still exists")
	}
	// Missing paths are fine.
	if err := f.RemoveTree("never-there"); err != nil {
		t.Errorf("RemoveTree missing: %v", err)
	}
	// The root itself is off limits.
	if err := f.RemoveTree(""); err == nil {
		t.Error("expected refusal to remove root")
	}
}

func TestSafePath_RejectsEscapes(t *testing.T) {
	f := newTestFS(t)
	for _, p := range []string{"../outside.md", "a/../../outside.md", "/etc/passwd"} {
		if _, err := f.Read(p); err == nil {
			t.Errorf("Read(%q) succeeded, want traversal error", p)
		}
		if f.Exists(p) {
			t.Errorf("Exists(%q) = true", p)
		}
	}
}
