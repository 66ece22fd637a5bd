// Package mode parses, applies and sanitizes file permission modes.
//
// A mode can be written in five notations:
//   - a number: 0o755, 493
//   - an octal string: "0755", "+0111", "=0o644", `\755`
//   - a symbolic chmod expression: "u+rwx,go-w", "a=rX"
//   - an ls-style stat string: "rwxr-xr-x", "drwxr-x---"
//   - an [Object]: {"user": {"read": true, "write": true}}
//
// Every notation resolves to a [Number] through [Normalize]:
//
//	base := mode.Number(0o644)
//	m, err := mode.Normalize("u+x,go-r", mode.NormalizeOptions{Base: &base})
//	if err != nil {
//	    return err
//	}
//	os.Chmod(path, m.FileMode()) // 0o700
//
// The package performs no I/O and keeps no state. Every function is safe for
// concurrent use.
package mode

import (
	"fmt"
	"os"
)

// Number is a canonical numeric mode: 9 permission bits, 3 special bits
// (setuid, setgid, sticky) in chmod(1) positions, plus one extra bit that is
// carried but never interpreted.
//
// Values produced by this package are always within [0, MaxNumber].
type Number uint32

const (
	// MaxNumber is the upper bound of every [Number] produced by this package.
	MaxNumber Number = 0o17777

	// PermMask isolates the 9 read/write/execute bits.
	PermMask Number = 0o777

	// SpecialMask isolates setuid, setgid and sticky.
	SpecialMask Number = 0o7000

	ModeSetuid Number = 0o4000
	ModeSetgid Number = 0o2000
	ModeSticky Number = 0o1000

	// ModeAllRW and ModeAllRO are the only two modes a non-POSIX platform can
	// represent. See [Sanitize].
	ModeAllRW Number = 0o666
	ModeAllRO Number = 0o444

	execBits  Number = 0o111
	writeBits Number = 0o222
)

// Perm returns the 9 permission bits of n.
func (n Number) Perm() Number {
	return n & PermMask
}

// Octal renders n as a Go octal literal, e.g. "0o755".
func (n Number) Octal() string {
	return fmt.Sprintf("0o%o", uint32(n))
}

// String renders the permission bits of n in ls(1) form, e.g. "rwxr-xr-x".
//
// Special bits use the ls conventions: s/S for setuid and setgid, t/T for
// sticky, uppercase when the underlying execute bit is unset.
func (n Number) String() string {
	var buf [9]byte

	for _, e := range statTable {
		buf[e.index] = '-'
		if n&e.bit != 0 {
			buf[e.index] = e.char
		}
	}

	overlaySpecial(&buf, 2, n&ModeSetuid != 0, 's')
	overlaySpecial(&buf, 5, n&ModeSetgid != 0, 's')
	overlaySpecial(&buf, 8, n&ModeSticky != 0, 't')

	return string(buf[:])
}

func overlaySpecial(buf *[9]byte, idx int, set bool, char byte) {
	if !set {
		return
	}

	if buf[idx] == 'x' {
		buf[idx] = char
	} else {
		buf[idx] = char - ('a' - 'A')
	}
}

// FileMode converts n to an [os.FileMode].
//
// Go keeps setuid, setgid and sticky in high flag bits instead of the chmod(1)
// positions used by [Number]; this moves them. The carried extra bit is
// dropped.
func (n Number) FileMode() os.FileMode {
	fm := os.FileMode(n & PermMask)

	if n&ModeSetuid != 0 {
		fm |= os.ModeSetuid
	}

	if n&ModeSetgid != 0 {
		fm |= os.ModeSetgid
	}

	if n&ModeSticky != 0 {
		fm |= os.ModeSticky
	}

	return fm
}

// FromFileMode converts the permission and special bits of fm to a [Number].
// Type bits (directory, symlink, ...) are ignored.
func FromFileMode(fm os.FileMode) Number {
	n := Number(fm.Perm())

	if fm&os.ModeSetuid != 0 {
		n |= ModeSetuid
	}

	if fm&os.ModeSetgid != 0 {
		n |= ModeSetgid
	}

	if fm&os.ModeSticky != 0 {
		n |= ModeSticky
	}

	return n
}

// Octal is a mode written as octal text. See [IsOctal] for the grammar.
type Octal string

// Type identifies which notation a mode value is written in.
type Type uint8

const (
	// TypeNone means the value matches no notation.
	TypeNone Type = iota
	TypeNumber
	TypeOctal
	TypeStat
	TypeSymbolic
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeOctal:
		return "octal"
	case TypeStat:
		return "stat"
	case TypeSymbolic:
		return "symbolic"
	case TypeObject:
		return "object"
	default:
		return "none"
	}
}

// FileType is the optional file-type hint carried by a stat string or an
// [Object]. It is informational only and never changes the computed mode.
type FileType byte

const (
	FileTypeNone    FileType = 0
	FileTypeBlock   FileType = 'b'
	FileTypeChar    FileType = 'c'
	FileTypeDir     FileType = 'd'
	FileTypeDoor    FileType = 'D'
	FileTypeSymlink FileType = 'l'
	FileTypePipe    FileType = 'p'
	FileTypeRegular FileType = 'r'
	FileTypeSocket  FileType = 's'
)

// parseFileType maps a type character to a [FileType]. The ls(1) marker for
// regular files, '-', maps to [FileTypeRegular].
func parseFileType(c byte) (FileType, bool) {
	switch c {
	case '-', 'r':
		return FileTypeRegular, true
	case 'b', 'c', 'd', 'D', 'l', 'p', 's':
		return FileType(c), true
	default:
		return FileTypeNone, false
	}
}

func (f FileType) String() string {
	if f == FileTypeNone {
		return ""
	}

	return string(rune(f))
}
