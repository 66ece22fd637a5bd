package fs

import (
	"os"
	"runtime"
	"testing"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("needs POSIX permission bits")
	}
}

func statPerm(t *testing.T, path string) os.FileMode {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}

	return info.Mode().Perm()
}

func statMode(t *testing.T, path string) mode.Number {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}

	return mode.FromFileMode(info.Mode())
}

func lift(t *testing.T, v any) mode.Value {
	t.Helper()

	val, err := mode.Lift(v)
	if err != nil {
		t.Fatalf("Lift(%#v): %v", v, err)
	}

	return val
}

func newTestModes(fsys FS, umask mode.Number) *Modes {
	return NewModes(fsys, ModesOptions{Platform: mode.PlatformPOSIX, Umask: &umask})
}

func writeTestFile(t *testing.T, path string, perm os.FileMode) {
	t.Helper()

	if err := os.WriteFile(path, []byte("x"), perm); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func mkTestDir(t *testing.T, path string, perm os.FileMode) {
	t.Helper()

	if err := os.Mkdir(path, perm); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
