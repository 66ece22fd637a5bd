//go:build !unix

package fs

import "github.com/calvinalkan/fsmode/pkg/mode"

// ProcessUmask returns 0: there is no creation mask outside unix.
func ProcessUmask() mode.Number {
	return 0
}
