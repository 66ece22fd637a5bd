//go:build linux

package fs

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

const procStatus = "/proc/self/status"

// ProcessUmask returns the file mode creation mask of the running process.
// It reads the Umask line of /proc/self/status, which leaves the mask
// untouched, and falls back to swapping the mask on kernels older than 4.7
// or when /proc is not mounted.
func ProcessUmask() mode.Number {
	if m, err := procUmask(procStatus); err == nil {
		return m
	}

	return swapUmask()
}

var errNoUmaskLine = errors.New("no Umask line")

func procUmask(path string) (mode.Number, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	return parseStatusUmask(data)
}

// parseStatusUmask extracts the octal value of a "Umask:\t0022" line.
func parseStatusUmask(status []byte) (mode.Number, error) {
	sc := bufio.NewScanner(bytes.NewReader(status))

	for sc.Scan() {
		rest, ok := strings.CutPrefix(sc.Text(), "Umask:")
		if !ok {
			continue
		}

		n, err := strconv.ParseUint(strings.TrimSpace(rest), 8, 32)
		if err != nil {
			return 0, err
		}

		return mode.Number(n) & mode.PermMask, nil
	}

	if err := sc.Err(); err != nil {
		return 0, err
	}

	return 0, errNoUmaskLine
}
