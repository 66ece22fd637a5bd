package mode

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform describes how much of a [Number] the target filesystem can
// enforce.
type Platform uint8

const (
	// PlatformPOSIX enforces every permission and special bit.
	PlatformPOSIX Platform = iota
	// PlatformWindows only distinguishes writable from read-only.
	PlatformWindows
)

func (p Platform) String() string {
	if p == PlatformWindows {
		return "windows"
	}

	return "posix"
}

// ParsePlatform parses "posix" or "windows". "host" (and "") resolve to
// [HostPlatform].
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "host":
		return HostPlatform(), nil
	case "posix", "unix":
		return PlatformPOSIX, nil
	case "windows":
		return PlatformWindows, nil
	default:
		return 0, fmt.Errorf("unknown platform %q (want posix, windows or host)", s)
	}
}

// HostPlatform returns the platform class of the running program.
func HostPlatform() Platform {
	if runtime.GOOS == "windows" {
		return PlatformWindows
	}

	return PlatformPOSIX
}

// Sanitize reduces n to what p can represent.
//
// n is first clamped to [MaxNumber]. POSIX platforms get it back unchanged.
// On Windows, execute bits are meaningless and only the read-only attribute
// exists, so the result collapses to [ModeAllRW] when any write bit is set
// and to [ModeAllRO] otherwise.
func Sanitize(n Number, p Platform) Number {
	n = min(n, MaxNumber)

	if p != PlatformWindows {
		return n
	}

	n &^= execBits
	if n&writeBits != 0 {
		return ModeAllRW
	}

	return ModeAllRO
}

// SanitizeForPlatform is [Sanitize] for [HostPlatform].
func SanitizeForPlatform(n Number) Number {
	return Sanitize(n, HostPlatform())
}
