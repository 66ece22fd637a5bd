package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

// ClassifyCmd returns the classify command.
func ClassifyCmd() *Command {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Decode value as JSON (numbers, objects)")

	return &Command{
		Flags: fs,
		Usage: "classify [--json] <value>",
		Short: "Print the notation a mode value is written in",
		Long: `Print the notation a mode value is written in: number, octal, stat,
symbolic, object or none. Never fails on a malformed value; "none" is an
answer, not an error.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			arg, err := singleArg(args)
			if err != nil {
				return err
			}

			raw, err := rawValue(arg, *asJSON)
			if err != nil {
				return err
			}

			o.Println(mode.Classify(raw))

			return nil
		},
	}
}
