package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fsmode/internal/config"
	"github.com/calvinalkan/fsmode/pkg/fs"
	"github.com/calvinalkan/fsmode/pkg/mode"
)

var errNoInput = errors.New("no input to read")

// WriteCmd returns the write command.
func WriteCmd(cfg *config.Config, modes *fs.Modes, in io.Reader) *Command {
	flags := flag.NewFlagSet("write", flag.ContinueOnError)
	modeArg := flags.StringP("mode", "m", "", "Mode for the file (default: file_mode from config)")
	verbose := flags.BoolP("verbose", "v", false, "Report the resulting mode")

	return &Command{
		Flags: flags,
		Usage: "write [flags] <file>",
		Short: "Atomically write stdin to a file with a mode",
		Long: `Atomically write stdin to a file with a mode. An existing file is
replaced; relative modes apply to its current mode. A new file starts
from 0666 minus the umask.`,
		Examples: []string{
			"write -m 0600 token < token.txt",
		},
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errPathRequired
			}

			path, err := singleArg(args)
			if err != nil {
				return err
			}

			v := cfg.FileModeValue
			if *modeArg != "" {
				v, err = mode.Lift(*modeArg)
				if err != nil {
					return err
				}
			}

			if in == nil {
				return errNoInput
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			c, err := modes.WriteFileAtomic(resolvePath(cfg, path), data, v)
			if err != nil {
				return err
			}

			if *verbose {
				o.Println(relChange(cfg, c))
			}

			return nil
		},
	}
}
