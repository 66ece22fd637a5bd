package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fsmode/internal/config"
	"github.com/calvinalkan/fsmode/pkg/mode"
)

// NormalizeCmd returns the normalize command.
func NormalizeCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	baseArg := fs.StringP("base", "b", "", "Current mode relative values apply to (default 0)")
	isDir := fs.BoolP("dir", "d", false, "Target is a directory (affects X)")
	asJSON := fs.Bool("json", false, "Decode value as JSON (numbers, objects)")
	raw := fs.Bool("raw", false, "Skip platform sanitizing")

	return &Command{
		Flags: fs,
		Usage: "normalize [flags] <value>",
		Short: "Resolve a mode value to a number",
		Long: `Resolve a mode value to a number and print it in octal and ls form.

Relative values ("+0111", "u+x", objects without "=") apply to --base.
The result is sanitized for the configured platform unless --raw is set.`,
		Examples: []string{
			"normalize --base 0644 u+x",
			"normalize --dir a=rX",
			"normalize --json 493",
		},
		Exec: func(_ context.Context, o *IO, args []string) error {
			arg, err := singleArg(args)
			if err != nil {
				return err
			}

			value, err := rawValue(arg, *asJSON)
			if err != nil {
				return err
			}

			opts := mode.NormalizeOptions{IsDirectory: *isDir}

			if *baseArg != "" {
				base, err := mode.Normalize(*baseArg, mode.NormalizeOptions{IsDirectory: *isDir})
				if err != nil {
					return fmt.Errorf("--base: %w", err)
				}

				opts.Base = &base
			}

			n, err := mode.Normalize(value, opts)
			if err != nil {
				return err
			}

			if !*raw {
				n = mode.Sanitize(n, cfg.PlatformValue)
			}

			o.Println(formatNumber(n))

			return nil
		},
	}
}
