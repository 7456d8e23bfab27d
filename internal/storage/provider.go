// Package storage defines the rooted file-system abstraction used for both
// the export tree and the published content tree.
package storage

import "time"

// FileInfo is a lightweight description of one file under a provider root.
type FileInfo struct {
	// Path is relative to the provider root.
	Path    string
	ModTime time.Time
}

// Provider is the interface for file operations rooted at a directory.
// All paths are relative to the root; escaping the root is an error.
type Provider interface {
	// List walks dir and returns metadata for every .md file under it.
	List(dir string) ([]FileInfo, error)
	// Dirs returns the names of the immediate subdirectories of dir.
	Dirs(dir string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool
	// Move renames oldPath to newPath; both may be files or directories.
	Move(oldPath, newPath string) error
	// RemoveTree deletes the file or directory tree at path if it exists.
	RemoveTree(path string) error
	// Root returns the absolute root directory.
	Root() string
}
