// Package loader provides settings plugin loading from a directory of
// JSON files.
//
// Each plugin id maps to a schema file "<id>.json" and an optional user
// overrides file "<id>.user.json". Plugin ids may contain a colon
// namespace separator (e.g. "notebar:notebook"), which is replaced with
// "__" on disk.
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
	// Glob returns the names of files matching pattern.
	Glob(pattern string) ([]string, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Glob returns the names of files matching pattern.
func (OSFS) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}
