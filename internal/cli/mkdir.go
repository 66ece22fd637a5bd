package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fsmode/internal/config"
	"github.com/calvinalkan/fsmode/pkg/fs"
	"github.com/calvinalkan/fsmode/pkg/mode"
)

// MkdirCmd returns the mkdir command.
func MkdirCmd(cfg *config.Config, modes *fs.Modes) *Command {
	flags := flag.NewFlagSet("mkdir", flag.ContinueOnError)
	parents := flags.BoolP("parents", "p", false, "Create missing parents, no error if existing")
	modeArg := flags.StringP("mode", "m", "", "Mode for new directories (default: dir_mode from config)")
	verbose := flags.BoolP("verbose", "v", false, "Report every directory processed")

	return &Command{
		Flags: flags,
		Usage: "mkdir [flags] <dir>...",
		Short: "Create directories with a mode",
		Long: `Create directories with a mode. Relative modes apply to the default a
new directory gets (0777 minus the umask). Parents created by -p get that
default; only the named directory gets the mode.`,
		Examples: []string{
			"mkdir -m 0700 private",
			"mkdir -p -m u=rwx,g=rxs,o= shared/team",
		},
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errPathRequired
			}

			v := cfg.DirModeValue
			if *modeArg != "" {
				var err error

				v, err = mode.Lift(*modeArg)
				if err != nil {
					return err
				}
			}

			for _, path := range args {
				if err := ctx.Err(); err != nil {
					return err
				}

				abs := resolvePath(cfg, path)

				var (
					c   fs.Change
					err error
				)

				if *parents {
					c, err = modes.MkdirAll(abs, v)
				} else {
					c, err = modes.Mkdir(abs, v)
				}

				if err != nil {
					return err
				}

				if *verbose {
					o.Println(relChange(cfg, c))
				}
			}

			return nil
		},
	}
}
