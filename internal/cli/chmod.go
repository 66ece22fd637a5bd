package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fsmode/internal/config"
	"github.com/calvinalkan/fsmode/pkg/fs"
)

var errPathRequired = errors.New("path is required")

// ChmodCmd returns the chmod command.
func ChmodCmd(cfg *config.Config, modes *fs.Modes) *Command {
	flags := flag.NewFlagSet("chmod", flag.ContinueOnError)
	recursive := flags.BoolP("recursive", "R", false, "Change directories and their contents")
	verbose := flags.BoolP("verbose", "v", false, "Report every path processed")
	changes := flags.BoolP("changes", "c", false, "Report only paths whose mode changed")
	asJSON := flags.Bool("json", false, "Decode mode as JSON (numbers, objects)")

	return &Command{
		Flags: flags,
		Usage: "chmod [flags] <mode> <path>...",
		Short: "Change file modes",
		Long: `Change file modes. Relative modes ("u+x", "+0111") apply to each
path's current mode. Results are sanitized for the configured platform.
Put "--" before a mode that starts with "-", e.g. "chmod -- -0022 file".

A path that cannot be changed is reported as a warning and the remaining
paths are still processed.`,
		Examples: []string{
			"chmod u+x build.sh",
			"chmod -R -c a=rX,u+w site/",
			"chmod --json '{\"group\":{\"write\":false}}' shared.txt",
		},
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errValueRequired
			}

			if len(args) == 1 {
				return errPathRequired
			}

			v, err := liftArg(args[0], *asJSON)
			if err != nil {
				return err
			}

			report := func(c fs.Change) {
				if *verbose || (*changes && c.Changed()) {
					o.Println(relChange(cfg, c))
				}
			}

			for _, path := range args[1:] {
				if err := ctx.Err(); err != nil {
					return err
				}

				abs := resolvePath(cfg, path)

				if *recursive {
					done, err := modes.ChmodAll(abs, v)
					for _, c := range done {
						report(c)
					}

					if err != nil {
						o.Skip(path, err)
					}

					continue
				}

				c, err := modes.Chmod(abs, v)
				if err != nil {
					o.Skip(path, err)

					continue
				}

				report(c)
			}

			return nil
		},
	}
}

func resolvePath(cfg *config.Config, path string) string {
	if filepath.IsAbs(path) || cfg.EffectiveCwd == "" {
		return path
	}

	return filepath.Join(cfg.EffectiveCwd, path)
}

// relChange shows paths below the working directory relative to it.
func relChange(cfg *config.Config, c fs.Change) fs.Change {
	if cfg.EffectiveCwd == "" {
		return c
	}

	rel, err := filepath.Rel(cfg.EffectiveCwd, c.Path)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		c.Path = rel
	}

	return c
}
