//go:build unix

package fs

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

var umaskMu sync.Mutex

// swapUmask reads the mask the only way umask(2) allows: by setting it.
// The mask is briefly 0 and then restored. Calls are serialized, but a file
// created by another goroutine in that window is not masked.
func swapUmask() mode.Number {
	umaskMu.Lock()
	defer umaskMu.Unlock()

	old := unix.Umask(0)
	unix.Umask(old)

	return mode.Number(old) & mode.PermMask
}
