package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree, calling the provided function for each file and directory
	// The function receives the file/directory and any error encountered
	// If the function returns an error, walking stops
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is the narrow set of filesystem operations markuid needs:
// discovery reads, plus the writes performed by a file transaction.
//
// Errors for missing paths wrap fs.ErrNotExist so callers can test them with
// errors.Is regardless of the implementation.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// ReadDir reads the directory entries at the given path.
	// This is a convenience method that returns a flat list of entries
	// without requiring Walk() for simple directory listing.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// WriteFile creates or truncates the file at path. The parent directory
	// must exist.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Rename moves oldPath to newPath, replacing newPath if it exists.
	Rename(oldPath, newPath string) error

	// Remove deletes a file or an empty directory.
	Remove(path string) error

	// MkdirAll creates path and any missing parents.
	MkdirAll(path string, perm fs.FileMode) error
}
