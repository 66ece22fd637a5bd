// Package fs applies file permission modes to a filesystem.
//
// The main types are:
//   - [FS]: interface for the filesystem operations mode handling needs
//   - [Real]: production implementation using the [os] package
//   - [Chaos]: testing implementation that injects random failures
//   - [Modes]: resolves mode values against the filesystem and applies them
//
// Example usage:
//
//	modes := fs.NewModes(fs.NewReal(), fs.ModesOptions{})
//
//	v, err := mode.Lift("go-w")
//	if err != nil {
//	    return err
//	}
//
//	change, err := modes.Chmod("config.json", v)
package fs

import (
	"os"
)

// FS defines the filesystem operations used to read and change modes.
//
// Implementations in this package include:
//   - [Real]: production use, wraps [os] package
//   - [Chaos]: testing use, injects random failures
//
// All methods mirror their [os] package equivalents but can be intercepted
// for testing with fault injection.
//
// Paths use OS semantics (like the os package and path/filepath), not the
// slash-separated paths used by the standard library io/fs package.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary. See [os.WriteFile].
	// perm is only used for new files and is subject to the umask.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// WriteFileAtomic writes data through a temp file and a rename, so
	// readers see either the old or the new content. The result has exactly
	// perm, regardless of umask or the mode of a replaced file.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries. See [os.ReadDir].
	// Entries are sorted by name.
	ReadDir(path string) ([]os.DirEntry, error)

	// Mkdir creates a single directory. See [os.Mkdir].
	Mkdir(path string, perm os.FileMode) error

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Chmod changes the mode of path, following symlinks. See [os.Chmod].
	Chmod(path string, mode os.FileMode) error

	// Stat returns file info. See [os.Stat].
	// Returns [os.ErrNotExist] if file doesn't exist.
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)
}
