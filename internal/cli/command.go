package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one fsmode subcommand.
//
// Usage starts with the command name, so "chmod [flags] <mode> <path>..."
// is found as "chmod". Long falls back to Short in --help output.
type Command struct {
	Flags *flag.FlagSet
	Usage string
	Short string
	Long  string

	// Examples are full argument lists shown after "fsmode" in --help,
	// e.g. "normalize --base 0644 u+x".
	Examples []string

	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// summary renders the command's row in the top-level command list, with
// Usage padded to width.
func (c *Command) summary(width int) string {
	return "  " + c.Usage + strings.Repeat(" ", max(width-len(c.Usage), 0)+2) + c.Short
}

func summaryWidth(commands []*Command) int {
	width := 0
	for _, c := range commands {
		width = max(width, len(c.Usage))
	}

	return width
}

func (c *Command) writeHelp(w io.Writer) {
	fprintln(w, "Usage: fsmode", c.Usage)
	fprintln(w)

	if c.Long != "" {
		fprintln(w, c.Long)
	} else {
		fprintln(w, c.Short)
	}

	if c.Flags.HasFlags() {
		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		c.Flags.SetOutput(io.Discard)

		fprintln(w)
		fprintln(w, "Flags:")
		_, _ = io.WriteString(w, buf.String())
	}

	if len(c.Examples) > 0 {
		fprintln(w)
		fprintln(w, "Examples:")

		for _, ex := range c.Examples {
			fprintln(w, "  fsmode", ex)
		}
	}
}

// Run parses args into Flags and calls Exec, returning the exit code.
// --help prints the full help to stdout. A flag error prints the usage
// line and a pointer to --help on stderr.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	if c.Flags == nil {
		c.Flags = flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	}

	c.Flags.SetOutput(io.Discard)

	err := c.Flags.Parse(args)

	switch {
	case errors.Is(err, flag.ErrHelp):
		var buf strings.Builder
		c.writeHelp(&buf)
		o.Printf("%s", buf.String())

		return 0
	case err != nil:
		o.ErrPrintln("error:", err)
		o.ErrPrintln("Usage: fsmode", c.Usage)
		o.ErrPrintln(fmt.Sprintf("Run \"fsmode %s --help\" for details.", c.Name()))

		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return o.Finish()
}
