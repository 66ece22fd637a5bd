package cli_test

import (
	"os"
	"testing"

	"github.com/calvinalkan/fsmode/internal/cli"
	"github.com/calvinalkan/fsmode/pkg/fs"
	"github.com/calvinalkan/fsmode/pkg/mode"
)

func Test_Mkdir_Creates_Directory_With_Mode_When_Invoked(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	c := cli.NewCLI(t)

	out := c.MustRun("mkdir", "-v", "-m", "0700", "private")
	cli.AssertContains(t, out, "private: created with 0o700 (rwx------)")

	if got, want := c.Mode("private"), mode.Number(0o700); got != want {
		t.Errorf("mode=%s, want=%s", got.Octal(), want.Octal())
	}

	c.MustRun("mkdir", "-m", "u=rwx,g=rxs,o=", "shared")

	if got, want := c.Mode("shared"), mode.Number(0o2750); got != want {
		t.Errorf("mode=%s, want=%s", got.Octal(), want.Octal())
	}
}

func Test_Mkdir_Uses_Config_Dir_Mode_When_No_Mode_Flag(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	c := cli.NewCLI(t)

	if err := os.WriteFile(c.Path(".fsmode.json"), []byte(`{"dir_mode": "rwx--x---"}`), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	c.MustRun("mkdir", "d")

	if got, want := c.Mode("d"), mode.Number(0o710); got != want {
		t.Errorf("mode=%s, want=%s", got.Octal(), want.Octal())
	}
}

func Test_Mkdir_Fails_When_Directory_Exists(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	c := cli.NewCLI(t)
	c.MustRun("mkdir", "d")

	cli.AssertContains(t, c.MustFail("mkdir", "d"), "file exists")
	cli.AssertContains(t, c.MustFail("mkdir"), "path is required")
}

func Test_Mkdir_Creates_Parents_When_Parents_Flag_Set(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	c := cli.NewCLI(t)

	c.MustRun("mkdir", "-p", "-m", "0700", "a/b/c")

	if got, want := c.Mode("a/b/c"), mode.Number(0o700); got != want {
		t.Errorf("leaf mode=%s, want=%s", got.Octal(), want.Octal())
	}

	parent := mode.Number(0o777) &^ fs.ProcessUmask()
	if got := c.Mode("a/b"); got != parent {
		t.Errorf("parent mode=%s, want=%s", got.Octal(), parent.Octal())
	}

	out := c.MustRun("mkdir", "-p", "-v", "-m", "0755", "a/b/c")
	cli.AssertContains(t, out, "retained as 0o700")
}
