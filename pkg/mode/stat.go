package mode

import "strings"

// statTable maps each position of a 9-character permission string to its bit.
var statTable = [9]struct {
	index int
	bit   Number
	char  byte
}{
	{0, 0o400, 'r'}, {1, 0o200, 'w'}, {2, 0o100, 'x'},
	{3, 0o040, 'r'}, {4, 0o020, 'w'}, {5, 0o010, 'x'},
	{6, 0o004, 'r'}, {7, 0o002, 'w'}, {8, 0o001, 'x'},
}

// IsStat reports whether s is an ls-style permission string: 9 characters
// of r/w/x or '-', optionally preceded by a type character (d l b c p s D -).
//
// Examples: "rwxr-xr-x", "-rw-r--r--", "drwx------".
func IsStat(s string) bool {
	_, ok := parseStat(s)

	return ok
}

// ParseStat parses an ls-style permission string into an absolute [Master]:
// every class is fully specified with '='. Surrounding whitespace is ignored.
func ParseStat(s string) (Master, error) {
	m, ok := parseStat(strings.TrimSpace(s))
	if !ok {
		return Master{}, newError(ErrGrammar, s, ConvertError(s, TypeStat.String()))
	}

	return m, nil
}

func parseStat(s string) (Master, bool) {
	fileType := FileTypeNone

	switch len(s) {
	case 9:
	case 10:
		// 'r' is a valid [FileType] but would be ambiguous here.
		if s[0] == 'r' {
			return Master{}, false
		}

		ft, ok := parseFileType(s[0])
		if !ok {
			return Master{}, false
		}

		fileType = ft
		s = s[1:]
	default:
		return Master{}, false
	}

	var perms [3]Permission

	for _, e := range statTable {
		var on bool

		switch s[e.index] {
		case e.char:
			on = true
		case '-':
		default:
			return Master{}, false
		}

		p := &perms[e.index/3]

		switch e.char {
		case 'r':
			p.Read = RWEntry{Op: OpSet, Operand: on}
		case 'w':
			p.Write = RWEntry{Op: OpSet, Operand: on}
		case 'x':
			p.Execute = XEntry{Op: OpSet, Operand: ExecNone}
			if on {
				p.Execute.Operand = ExecOn
			}
		}
	}

	return NewMaster(perms[User], perms[Group], perms[Others], fileType), true
}
