package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

const (
	defaultFileBase mode.Number = 0o666
	defaultDirBase  mode.Number = 0o777
)

// ModesOptions configures [NewModes].
type ModesOptions struct {
	// Platform limits the modes that get applied, see [mode.Sanitize].
	// The zero value is [mode.PlatformPOSIX].
	Platform mode.Platform

	// Umask is the creation mask new entries start from. Nil means
	// [ProcessUmask].
	Umask *mode.Number
}

// Change records the mode of a path before and after an operation.
type Change struct {
	Path   string
	Before mode.Number
	After  mode.Number
	// Created is true when the path did not exist before.
	Created bool
}

// Changed reports whether the mode differs.
func (c Change) Changed() bool {
	return c.Created || c.Before != c.After
}

func (c Change) String() string {
	if c.Created {
		return fmt.Sprintf("%s: created with %s (%s)", c.Path, c.After.Octal(), c.After)
	}

	if !c.Changed() {
		return fmt.Sprintf("%s: retained as %s (%s)", c.Path, c.After.Octal(), c.After)
	}

	return fmt.Sprintf("%s: changed from %s (%s) to %s (%s)", c.Path, c.Before.Octal(), c.Before, c.After.Octal(), c.After)
}

// Modes resolves [mode.Value]s against paths on an [FS] and applies them.
//
// Relative values apply to the current mode of an existing path, and to
// the umask-reduced default (0666 for files, 0777 for directories) of a new
// one. Every result is sanitized for the configured platform and set with an
// explicit chmod, so the umask never changes what was asked for.
//
// Modes holds no mutable state and is safe for concurrent use.
type Modes struct {
	fs       FS
	platform mode.Platform
	umask    mode.Number
}

// NewModes creates a [Modes] on fsys. Panics if fsys is nil.
func NewModes(fsys FS, opts ModesOptions) *Modes {
	if fsys == nil {
		panic("fs is nil")
	}

	umask := ProcessUmask()
	if opts.Umask != nil {
		umask = *opts.Umask & mode.PermMask
	}

	return &Modes{fs: fsys, platform: opts.Platform, umask: umask}
}

// Platform returns the platform results are sanitized for.
func (m *Modes) Platform() mode.Platform { return m.platform }

// CreateBase returns the mode a new file or directory would get from the
// OS before any explicit mode is applied.
func (m *Modes) CreateBase(isDir bool) mode.Number {
	if isDir {
		return defaultDirBase &^ m.umask
	}

	return defaultFileBase &^ m.umask
}

// Resolve computes the sanitized mode v produces on a target with mode base.
func (m *Modes) Resolve(v mode.Value, base mode.Number, isDir bool) mode.Number {
	return mode.Sanitize(mode.Resolve(v, base, isDir), m.platform)
}

// Chmod applies v to path. Symlinks are followed.
func (m *Modes) Chmod(path string, v mode.Value) (Change, error) {
	change, _, err := m.chmod(path, v)

	return change, err
}

func (m *Modes) chmod(path string, v mode.Value) (Change, bool, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		return Change{}, false, fmt.Errorf("stat: %w", err)
	}

	before := mode.FromFileMode(info.Mode())
	after := m.Resolve(v, before, info.IsDir())

	if err := m.fs.Chmod(path, after.FileMode()); err != nil {
		return Change{}, false, fmt.Errorf("chmod: %w", err)
	}

	return Change{Path: path, Before: before, After: after}, info.IsDir(), nil
}

// ChmodAll applies v to path and, if it is a directory, to everything below
// it. Symlinks found while walking are skipped. Each directory is changed
// before it is read, like chmod -R.
//
// ChmodAll does not stop at the first failure: it returns the changes that
// succeeded and all errors joined.
func (m *Modes) ChmodAll(path string, v mode.Value) ([]Change, error) {
	var (
		changes []Change
		errs    []error
	)

	m.chmodTree(path, v, &changes, &errs)

	return changes, errors.Join(errs...)
}

func (m *Modes) chmodTree(path string, v mode.Value, changes *[]Change, errs *[]error) {
	change, isDir, err := m.chmod(path, v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", path, err))

		return
	}

	*changes = append(*changes, change)

	if !isDir {
		return
	}

	entries, err := m.fs.ReadDir(path)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: read dir: %w", path, err))

		return
	}

	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		m.chmodTree(filepath.Join(path, entry.Name()), v, changes, errs)
	}
}

// Mkdir creates the directory path with the mode v resolves to.
func (m *Modes) Mkdir(path string, v mode.Value) (Change, error) {
	after := m.Resolve(v, m.CreateBase(true), true)

	if err := m.fs.Mkdir(path, after.FileMode().Perm()); err != nil {
		return Change{}, fmt.Errorf("mkdir: %w", err)
	}

	if err := m.fs.Chmod(path, after.FileMode()); err != nil {
		return Change{}, fmt.Errorf("chmod: %w", err)
	}

	return Change{Path: path, After: after, Created: true}, nil
}

// MkdirAll creates path and any missing parents. Only path itself gets the
// mode v resolves to; parents get [Modes.CreateBase]. An existing directory
// is left unchanged, like mkdir -p.
func (m *Modes) MkdirAll(path string, v mode.Value) (Change, error) {
	info, err := m.fs.Stat(path)

	switch {
	case err == nil && info.IsDir():
		current := mode.FromFileMode(info.Mode())

		return Change{Path: path, Before: current, After: current}, nil
	case err == nil:
		return Change{}, fmt.Errorf("mkdir: %w", &os.PathError{Op: "mkdir", Path: path, Err: os.ErrExist})
	case !errors.Is(err, os.ErrNotExist):
		return Change{}, fmt.Errorf("stat: %w", err)
	}

	if parent := filepath.Dir(path); parent != path {
		if err := m.fs.MkdirAll(parent, m.CreateBase(true).FileMode()); err != nil {
			return Change{}, fmt.Errorf("mkdir parents: %w", err)
		}
	}

	return m.Mkdir(path, v)
}

// WriteFile writes data to path and sets the mode v resolves to. For an
// existing file, relative values apply to its current mode. When the new
// mode grants owner write to an existing file that lacks it, the mode is
// set before writing so the write can open the file.
func (m *Modes) WriteFile(path string, data []byte, v mode.Value) (Change, error) {
	change, err := m.fileChange(path, v)
	if err != nil {
		return Change{}, err
	}

	chmodFirst := !change.Created && change.Before&ownerWrite == 0 && change.After&ownerWrite != 0

	if chmodFirst {
		if err := m.fs.Chmod(path, change.After.FileMode()); err != nil {
			return Change{}, fmt.Errorf("chmod: %w", err)
		}
	}

	if err := m.fs.WriteFile(path, data, change.After.FileMode().Perm()); err != nil {
		return Change{}, fmt.Errorf("write: %w", err)
	}

	if !chmodFirst {
		if err := m.fs.Chmod(path, change.After.FileMode()); err != nil {
			return Change{}, fmt.Errorf("chmod: %w", err)
		}
	}

	return change, nil
}

const ownerWrite mode.Number = 0o200

// WriteFileAtomic is [Modes.WriteFile] through [FS.WriteFileAtomic].
func (m *Modes) WriteFileAtomic(path string, data []byte, v mode.Value) (Change, error) {
	change, err := m.fileChange(path, v)
	if err != nil {
		return Change{}, err
	}

	if err := m.fs.WriteFileAtomic(path, data, change.After.FileMode()); err != nil {
		return Change{}, fmt.Errorf("write: %w", err)
	}

	return change, nil
}

func (m *Modes) fileChange(path string, v mode.Value) (Change, error) {
	info, err := m.fs.Stat(path)

	switch {
	case err == nil && info.IsDir():
		return Change{}, fmt.Errorf("write: %w", &os.PathError{Op: "write", Path: path, Err: errIsDir})
	case err == nil:
		before := mode.FromFileMode(info.Mode())

		return Change{Path: path, Before: before, After: m.Resolve(v, before, false)}, nil
	case errors.Is(err, os.ErrNotExist):
		return Change{Path: path, After: m.Resolve(v, m.CreateBase(false), false), Created: true}, nil
	default:
		return Change{}, fmt.Errorf("stat: %w", err)
	}
}

var errIsDir = errors.New("is a directory")
