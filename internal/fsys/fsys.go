// Package fsys abstracts the filesystem operations the package loaders need,
// so tests can run against plain temp directories and callers can substitute
// read-only views.
package fsys

import (
	"fmt"
	"os"
)

// Filesystem is the read side of the filesystem used by package loading.
type Filesystem interface {
	// ReadFile returns the contents of the file at path.
	ReadFile(path string) ([]byte, error)
	// Exists reports whether path exists at all.
	Exists(path string) bool
	// ListDirectories returns the names of path's immediate subdirectories
	// in lexical order.
	ListDirectories(path string) ([]string, error)
}

// OS returns a Filesystem backed by the real filesystem.
func OS() Filesystem { return osFS{} }

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFS) ListDirectories(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", path, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}
