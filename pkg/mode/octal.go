package mode

import (
	"strconv"
	"strings"
)

// OctalParts is a parsed octal string.
type OctalParts struct {
	// Op is the leading operator, or 0 when there was none.
	Op        Op
	Magnitude Number
}

// IsOctal reports whether s is an octal mode:
//
//	[+-=]? '\'? ('0o' | '0O')? [0-7]{1,4}
//
// Examples: "755", "0644", "+0111", "=0o755", `\0755`.
func IsOctal(s string) bool {
	_, _, ok := splitOctal(s)

	return ok
}

func splitOctal(s string) (Op, string, bool) {
	var op Op

	if s != "" && isOp(s[0]) {
		op = Op(s[0])
		s = s[1:]
	}

	s = strings.TrimPrefix(s, `\`)

	if len(s) > 2 && s[0] == '0' && (s[1] == 'o' || s[1] == 'O') {
		s = s[2:]
	}

	if len(s) < 1 || len(s) > 4 {
		return 0, "", false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '7' {
			return 0, "", false
		}
	}

	return op, s, true
}

// ParseOctal parses an octal mode. Surrounding whitespace is ignored.
func ParseOctal(s string) (OctalParts, error) {
	op, digits, ok := splitOctal(strings.TrimSpace(s))
	if !ok {
		return OctalParts{}, newError(ErrGrammar, s, ConvertError(s, TypeOctal.String()))
	}

	// At most 4 octal digits, so this cannot fail.
	n, _ := strconv.ParseUint(digits, 8, 16)

	return OctalParts{Op: op, Magnitude: Number(n)}, nil
}

// Apply combines p with base bit by bit: '+' sets the magnitude's bits, '-'
// clears them, and '=' or no operator replaces base entirely.
func (p OctalParts) Apply(base Number) Number {
	switch p.Op {
	case OpAdd:
		return (base | p.Magnitude) & MaxNumber
	case OpRemove:
		return (base &^ p.Magnitude) & MaxNumber
	default:
		return p.Magnitude
	}
}

// IsRelative reports whether p depends on the base mode.
func (p OctalParts) IsRelative() bool {
	return p.Op == OpAdd || p.Op == OpRemove
}
