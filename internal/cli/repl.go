package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fsmode/internal/config"
	"github.com/calvinalkan/fsmode/pkg/mode"
)

// ReplCmd returns the repl command.
func ReplCmd(cfg *config.Config, in io.Reader) *Command {
	flags := flag.NewFlagSet("repl", flag.ContinueOnError)
	baseArg := flags.StringP("base", "b", "0644", "Starting base mode")

	return &Command{
		Flags: flags,
		Usage: "repl [--base MODE]",
		Short: "Evaluate mode expressions interactively",
		Long: `Evaluate mode expressions interactively. Each expression is applied
to the current base and printed; "apply" also makes the result the new base.
Type "help" inside the REPL for commands.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			base, err := mode.Normalize(*baseArg, mode.NormalizeOptions{})
			if err != nil {
				return fmt.Errorf("--base: %w", err)
			}

			r := &REPL{o: o, base: base, platform: cfg.PlatformValue}

			return r.Run(ctx, in)
		},
	}
}

// REPL is the interactive mode evaluator.
type REPL struct {
	o        *IO
	base     mode.Number
	isDir    bool
	platform mode.Platform
	liner    *liner.State
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".fsmode_history")
}

// Run reads lines until EOF, "exit" or ctx is canceled. Line editing and
// history are only used when reading from the terminal.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	if in == nil {
		return errNoInput
	}

	if in == os.Stdin {
		return r.runLiner(ctx)
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil || r.eval(scanner.Text()) {
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

func (r *REPL) runLiner(ctx context.Context) error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}

	defer r.saveHistory()

	r.o.Printf("fsmode repl (base=%s, platform=%s)\n", r.base.Octal(), r.platform)
	r.o.Println("Type 'help' for available commands.")

	for ctx.Err() == nil {
		line, err := r.liner.Prompt("fsmode> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				r.o.Println()

				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			r.liner.AppendHistory(line)
		}

		if r.eval(line) {
			return nil
		}
	}

	return ctx.Err()
}

// saveHistory persists command history to disk.
func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			_, _ = r.liner.WriteHistory(f)
			_ = f.Close()
		}
	}
}

var replCommands = []string{
	"apply", "base", "classify", "dir", "explain",
	"platform", "show", "help", "exit", "quit", "q",
}

// completer provides tab completion for commands.
func (r *REPL) completer(line string) []string {
	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range replCommands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

// eval runs one line. Returns true when the REPL should stop.
func (r *REPL) eval(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "exit", "quit", "q":
		return true
	case "help", "?":
		r.printHelp()
	case "show":
		r.show()
	case "base":
		r.cmdBase(rest)
	case "dir":
		r.cmdDir(rest)
	case "platform":
		r.cmdPlatform(rest)
	case "classify":
		r.o.Println(mode.Classify(rest))
	case "explain":
		if v, ok := r.lift(rest); ok {
			explain(r.o, v)
		}
	case "apply":
		if n, ok := r.resolve(rest); ok {
			r.base = n
			r.o.Println(formatNumber(n))
		}
	default:
		if n, ok := r.resolve(line); ok {
			r.o.Println(formatNumber(n))
		}
	}

	return false
}

func (r *REPL) lift(expr string) (mode.Value, bool) {
	if expr == "" {
		r.o.Println("error:", errValueRequired)

		return nil, false
	}

	v, err := mode.Lift(expr)
	if err != nil {
		r.o.Println("error:", err)

		return nil, false
	}

	return v, true
}

func (r *REPL) resolve(expr string) (mode.Number, bool) {
	v, ok := r.lift(expr)
	if !ok {
		return 0, false
	}

	return mode.Sanitize(mode.Resolve(v, r.base, r.isDir), r.platform), true
}

func (r *REPL) cmdBase(arg string) {
	if arg == "" {
		r.o.Println("base:", formatNumber(r.base))

		return
	}

	n, ok := r.resolve(arg)
	if !ok {
		return
	}

	r.base = n
	r.o.Println("base:", formatNumber(n))
}

func (r *REPL) cmdDir(arg string) {
	switch strings.ToLower(arg) {
	case "":
	case "on", "yes", "true":
		r.isDir = true
	case "off", "no", "false":
		r.isDir = false
	default:
		r.o.Println("error: dir takes on or off")

		return
	}

	r.o.Println("dir:", r.isDir)
}

func (r *REPL) cmdPlatform(arg string) {
	if arg != "" {
		p, err := mode.ParsePlatform(arg)
		if err != nil {
			r.o.Println("error:", err)

			return
		}

		r.platform = p
	}

	r.o.Println("platform:", r.platform)
}

func (r *REPL) show() {
	r.o.Println("base:", formatNumber(r.base))
	r.o.Println("dir:", r.isDir)
	r.o.Println("platform:", r.platform)
}

func (r *REPL) printHelp() {
	r.o.Println("Commands:")
	r.o.Println("  <mode>                 Print the mode <mode> produces on the base")
	r.o.Println("  apply <mode>           Same, and make the result the new base")
	r.o.Println("  base [mode]            Show or set the base")
	r.o.Println("  dir [on|off]           Show or set whether the target is a directory")
	r.o.Println("  platform [name]        Show or set the platform (posix, windows, host)")
	r.o.Println("  classify <value>       Print the notation of a value")
	r.o.Println("  explain <mode>         Show how a mode is parsed")
	r.o.Println("  show                   Show the current state")
	r.o.Println("  help                   Show this help")
	r.o.Println("  exit / quit / q        Exit")
	r.o.Println()
	r.o.Println(`Modes: octal ("0755", "+0111"), symbolic ("u+x,go-w"), ls-style ("rwxr-x---").`)
}
