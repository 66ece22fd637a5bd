package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/fsmode/internal/cli"
)

func Test_Print_Config_Shows_Defaults_When_No_Config(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	out := c.MustRun("print-config")

	cli.AssertContains(t, out, `"file_mode": "0644"`)
	cli.AssertContains(t, out, `"dir_mode": "0755"`)
	cli.AssertContains(t, out, `"platform": "host"`)
	cli.AssertNotContains(t, out, "# Sources:")
}

func Test_Print_Config_Shows_Sources_When_Files_Loaded(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	xdg := filepath.Join(c.Dir, "xdg")
	c.Env["XDG_CONFIG_HOME"] = xdg

	if err := os.MkdirAll(filepath.Join(xdg, "fsmode"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := os.WriteFile(filepath.Join(xdg, "fsmode", "config.json"), []byte(`{"platform": "windows"}`), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := os.WriteFile(c.Path(".fsmode.json"), []byte("{\n  // private by default\n  \"file_mode\": \"u=rw,go=\",\n}"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	out := c.MustRun("print-config")

	cli.AssertContains(t, out, `"file_mode": "u=rw,go="`)
	cli.AssertContains(t, out, `"platform": "windows"`)
	cli.AssertContains(t, out, "#   global: "+filepath.Join(xdg, "fsmode", "config.json"))
	cli.AssertContains(t, out, "#   project: "+c.Path(".fsmode.json"))
}

func Test_Print_Config_Fails_When_Config_Invalid(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	if err := os.WriteFile(c.Path(".fsmode.json"), []byte(`{"file_mode": "u+z"}`), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	stderr := c.MustFail("print-config")
	cli.AssertContains(t, stderr, "invalid config file")
	cli.AssertContains(t, stderr, "file_mode")
}
