//go:build unix && !linux

package fs

import "github.com/calvinalkan/fsmode/pkg/mode"

// ProcessUmask returns the file mode creation mask of the running process.
func ProcessUmask() mode.Number {
	return swapUmask()
}
