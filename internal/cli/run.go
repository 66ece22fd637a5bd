package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fsmode/internal/config"
	"github.com/calvinalkan/fsmode/pkg/fs"
)

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. When a signal arrives, the context passed to the
// running command is canceled.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globals := flag.NewFlagSet("fsmode", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{}) // discard pflag output

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	platform := globals.String("platform", "", "Sanitize modes for `platform` (posix, windows, host)")
	help := globals.BoolP("help", "h", false, "Show help")

	if len(args) > 0 {
		args = args[1:]
	}

	if err := globals.Parse(args); err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globals, nil)

		return 1
	}

	rest := globals.Args()

	if *help || len(rest) == 0 {
		printUsage(out, globals, nil)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:  *workDir,
		ConfigPath:       *configPath,
		PlatformOverride: *platform,
		Env:              env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	modes := fs.NewModes(fs.NewReal(), fs.ModesOptions{Platform: cfg.PlatformValue})
	commands := allCommands(&cfg, modes, in)

	name := rest[0]

	cmd := findCommand(commands, name)
	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", errUnknownCommand, name))
		fprintln(errOut)
		printUsage(errOut, globals, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return cmd.Run(ctx, NewIO(out, errOut), rest[1:])
}

var errUnknownCommand = errors.New("unknown command")

func allCommands(cfg *config.Config, modes *fs.Modes, in io.Reader) []*Command {
	return []*Command{
		ClassifyCmd(),
		NormalizeCmd(cfg),
		ExplainCmd(),
		ChmodCmd(cfg, modes),
		MkdirCmd(cfg, modes),
		WriteCmd(cfg, modes, in),
		PrintConfigCmd(cfg),
		ReplCmd(cfg, in),
	}
}

func findCommand(commands []*Command, name string) *Command {
	for _, c := range commands {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, `fsmode - parse, apply and sanitize file permission modes

Usage: fsmode [global flags] <command> [args]

Modes can be written as octal ("0755", "+0111"), symbolic ("u+x,go-w"),
ls-style ("rwxr-x---") or, with --json, as a number or object.`)
	fprintln(w)
	fprintln(w, "Global flags:")

	var buf strings.Builder
	globals.SetOutput(&buf)
	globals.PrintDefaults()
	globals.SetOutput(&strings.Builder{})
	_, _ = fmt.Fprint(w, buf.String())

	if commands == nil {
		commands = allCommands(&config.Config{}, nil, nil)
	}

	fprintln(w)
	fprintln(w, "Commands:")

	width := summaryWidth(commands)
	for _, c := range commands {
		fprintln(w, c.summary(width))
	}
}
