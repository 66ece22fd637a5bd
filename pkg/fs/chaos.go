package fs

import (
	iofs "io/fs"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
)

// ChaosConfig controls fault injection probabilities.
// Each rate is a float64 from 0.0 (never) to 1.0 (always).
type ChaosConfig struct {
	ReadFailRate    float64 // Fail ReadFile
	WriteFailRate   float64 // Fail WriteFile/WriteFileAtomic
	MkdirFailRate   float64 // Fail Mkdir/MkdirAll
	ChmodFailRate   float64 // Fail Chmod
	StatFailRate    float64 // Fail Stat/Exists
	ReadDirFailRate float64 // Fail ReadDir
}

// DefaultChaosConfig returns a config with reasonable fault rates for testing.
func DefaultChaosConfig() ChaosConfig {
	return ChaosConfig{
		ReadFailRate:    0.02,
		WriteFailRate:   0.02,
		MkdirFailRate:   0.02,
		ChmodFailRate:   0.02,
		StatFailRate:    0.01,
		ReadDirFailRate: 0.02,
	}
}

// PathState tracks the fault state of a path for consistent error injection.
type PathState int

const (
	// PathNormal means no persistent fault. Errors are transient.
	// This is the zero value, so untracked paths are normal.
	PathNormal PathState = iota
	// PathIOError is sticky: the path has a "bad sector" and always returns EIO.
	PathIOError
	// PathReadOnly is sticky for mutations: the filesystem returns EROFS.
	PathReadOnly
)

// ChaosMode controls how Chaos behaves.
type ChaosMode uint8

const (
	// ChaosModePassthrough behaves like the underlying FS and ignores sticky
	// path state without clearing it.
	ChaosModePassthrough ChaosMode = iota

	// ChaosModeInject enables fault-rate injection and sticky path state.
	ChaosModeInject
)

// Chaos wraps an [FS] and injects random failures for testing.
//
// Errors are state-aware: once a path gets EIO it stays broken, and once a
// mutation gets EROFS further mutations of that path fail the same way.
// ENOENT is never injected; missing-path errors come from the wrapped FS.
//
// All injected errors are *os.PathError wrapping a [syscall.Errno], so
// errors.Is works like it does for real filesystem errors.
//
// Use [Chaos.SetMode] to control behavior.
// Use [Chaos.Stats] to inspect how many faults were injected.
type Chaos struct {
	fs     FS
	config ChaosConfig
	mode   atomic.Uint32

	mu         sync.Mutex
	rng        *rand.Rand
	pathStates map[string]PathState

	readFails    atomic.Int64
	writeFails   atomic.Int64
	mkdirFails   atomic.Int64
	chmodFails   atomic.Int64
	statFails    atomic.Int64
	readDirFails atomic.Int64
}

// NewChaos creates a new Chaos filesystem wrapping the given [FS].
// The seed controls random fault injection for reproducibility.
// A new Chaos starts in [ChaosModeInject].
func NewChaos(fs FS, seed int64, config ChaosConfig) *Chaos {
	c := &Chaos{
		fs:         fs,
		rng:        rand.New(rand.NewSource(seed)),
		config:     config,
		pathStates: make(map[string]PathState),
	}
	c.SetMode(ChaosModeInject)

	return c
}

// SetMode updates Chaos behavior. Safe to call concurrently with filesystem
// operations. Switching modes never clears sticky path state.
func (c *Chaos) SetMode(m ChaosMode) { c.mode.Store(uint32(m)) }

// ChaosStats contains counts of injected faults.
type ChaosStats struct {
	ReadFails    int64
	WriteFails   int64
	MkdirFails   int64
	ChmodFails   int64
	StatFails    int64
	ReadDirFails int64
}

// Total returns the number of injected faults.
func (s ChaosStats) Total() int64 {
	return s.ReadFails + s.WriteFails + s.MkdirFails + s.ChmodFails + s.StatFails + s.ReadDirFails
}

// Stats returns the current fault injection counts.
func (c *Chaos) Stats() ChaosStats {
	return ChaosStats{
		ReadFails:    c.readFails.Load(),
		WriteFails:   c.writeFails.Load(),
		MkdirFails:   c.mkdirFails.Load(),
		ChmodFails:   c.chmodFails.Load(),
		StatFails:    c.statFails.Load(),
		ReadDirFails: c.readDirFails.Load(),
	}
}

// PathState returns the current fault state for a path.
func (c *Chaos) PathState(path string) PathState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pathStates[path]
}

// ResetAllPathStates clears all sticky fault states.
func (c *Chaos) ResetAllPathStates() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pathStates = make(map[string]PathState)
}

// inject decides whether op on path fails. It returns nil when the call
// should go through to the wrapped FS.
func (c *Chaos) inject(op, path string, rate float64, counter *atomic.Int64) error {
	if ChaosMode(c.mode.Load()) != ChaosModeInject {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.pathStates[path] {
	case PathIOError:
		counter.Add(1)

		return pathError(op, path, syscall.EIO)
	case PathReadOnly:
		if isWriteOp(op) {
			counter.Add(1)

			return pathError(op, path, syscall.EROFS)
		}
	}

	if c.rng.Float64() >= rate {
		return nil
	}

	valid := errnosFor(op)
	errno := valid[c.rng.Intn(len(valid))]

	switch errno {
	case syscall.EIO:
		c.pathStates[path] = PathIOError
	case syscall.EROFS:
		c.pathStates[path] = PathReadOnly
	}

	counter.Add(1)

	return pathError(op, path, errno)
}

// errnosFor lists errors the OS can plausibly return for op.
func errnosFor(op string) []syscall.Errno {
	switch op {
	case "write":
		return []syscall.Errno{syscall.EACCES, syscall.EIO, syscall.ENOSPC, syscall.EDQUOT, syscall.EROFS}
	case "mkdir":
		return []syscall.Errno{syscall.EACCES, syscall.EIO, syscall.ENOSPC, syscall.EROFS}
	case "chmod":
		return []syscall.Errno{syscall.EPERM, syscall.EIO, syscall.EROFS}
	case "read", "readdir":
		return []syscall.Errno{syscall.EIO, syscall.EINTR, syscall.EACCES}
	default:
		return []syscall.Errno{syscall.EACCES, syscall.EIO}
	}
}

func isWriteOp(op string) bool {
	switch op {
	case "write", "mkdir", "chmod":
		return true
	}

	return false
}

func pathError(op, path string, errno syscall.Errno) error {
	return &iofs.PathError{Op: op, Path: path, Err: errno}
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	if err := c.inject("read", path, c.config.ReadFailRate, &c.readFails); err != nil {
		return nil, err
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := c.inject("write", path, c.config.WriteFailRate, &c.writeFails); err != nil {
		return err
	}

	return c.fs.WriteFile(path, data, perm)
}

// WriteFileAtomic fails before anything is written, so an injected failure
// leaves the previous content in place like a real atomic write would.
func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := c.inject("write", path, c.config.WriteFailRate, &c.writeFails); err != nil {
		return err
	}

	return c.fs.WriteFileAtomic(path, data, perm)
}

func (c *Chaos) ReadDir(path string) ([]os.DirEntry, error) {
	if err := c.inject("readdir", path, c.config.ReadDirFailRate, &c.readDirFails); err != nil {
		return nil, err
	}

	return c.fs.ReadDir(path)
}

func (c *Chaos) Mkdir(path string, perm os.FileMode) error {
	if err := c.inject("mkdir", path, c.config.MkdirFailRate, &c.mkdirFails); err != nil {
		return err
	}

	return c.fs.Mkdir(path, perm)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	if err := c.inject("mkdir", path, c.config.MkdirFailRate, &c.mkdirFails); err != nil {
		return err
	}

	return c.fs.MkdirAll(path, perm)
}

func (c *Chaos) Chmod(path string, mode os.FileMode) error {
	if err := c.inject("chmod", path, c.config.ChmodFailRate, &c.chmodFails); err != nil {
		return err
	}

	return c.fs.Chmod(path, mode)
}

func (c *Chaos) Stat(path string) (os.FileInfo, error) {
	if err := c.inject("stat", path, c.config.StatFailRate, &c.statFails); err != nil {
		return nil, err
	}

	return c.fs.Stat(path)
}

func (c *Chaos) Exists(path string) (bool, error) {
	if err := c.inject("stat", path, c.config.StatFailRate, &c.statFails); err != nil {
		return false, err
	}

	return c.fs.Exists(path)
}

var _ FS = (*Chaos)(nil)
