package mode

import "strings"

// Op is a permission operator.
type Op byte

const (
	OpAdd    Op = '+'
	OpRemove Op = '-'
	OpSet    Op = '='
)

func isOp(c byte) bool {
	return c == byte(OpAdd) || c == byte(OpRemove) || c == byte(OpSet)
}

// XOperand is the value an execute entry sets or compares against.
type XOperand byte

const (
	// ExecNone clears execute. Only produced by '=' clauses.
	ExecNone XOperand = '-'
	// ExecOn is plain execute, 'x'.
	ExecOn XOperand = 'x'
	// ExecConditional is 'X': execute only for directories or for targets
	// that already have an execute bit.
	ExecConditional XOperand = 'X'
	// ExecSpecial is 's': execute plus setuid (user) or setgid (group).
	ExecSpecial XOperand = 's'
)

// RWEntry is an on/off delta for read, write or the special bit. The zero
// value means "not mentioned".
type RWEntry struct {
	Op      Op
	Operand bool
}

// IsSet reports whether the entry was mentioned.
func (e RWEntry) IsSet() bool { return e.Op != 0 }

// XEntry is an execute delta. The zero value means "not mentioned".
type XEntry struct {
	Op      Op
	Operand XOperand
}

// IsSet reports whether the entry was mentioned.
func (e XEntry) IsSet() bool { return e.Op != 0 }

// Permission holds the deltas for one class.
//
// Special tracks 's' on its own, so a later execute group ("u+s,u+x" or
// "u=rws,u-x") keeps the setuid or setgid request.
type Permission struct {
	Read    RWEntry
	Write   RWEntry
	Execute XEntry
	Special RWEntry
}

// IsZero reports whether p has no entries.
func (p Permission) IsZero() bool {
	return !p.Read.IsSet() && !p.Write.IsSet() && !p.Execute.IsSet() && !p.Special.IsSet()
}

// Class is one of the three permission classes.
type Class uint8

const (
	User Class = iota
	Group
	Others
)

var classes = [...]Class{User, Group, Others}

func (c Class) String() string {
	switch c {
	case User:
		return "user"
	case Group:
		return "group"
	default:
		return "others"
	}
}

func (c Class) letter() byte {
	return "ugo"[c]
}

// shift is the bit offset of the class's rwx triplet.
func (c Class) shift() uint {
	return 6 - 3*uint(c)
}

// special is the bit set by 's' for the class. Others has none.
func (c Class) special() Number {
	switch c {
	case User:
		return ModeSetuid
	case Group:
		return ModeSetgid
	default:
		return 0
	}
}

// Master is the canonical parsed form every notation except plain numbers
// and octal strings resolves to.
//
// A Master is immutable. Its flags are derived from the entries once, in
// [NewMaster], and cannot be changed afterwards.
type Master struct {
	perms    [3]Permission
	fileType FileType

	updating bool
	special  bool
	typed    bool
	condExec bool
}

// NewMaster builds a [Master] from per-class deltas. A zero [Permission]
// leaves its class untouched.
func NewMaster(user, group, others Permission, fileType FileType) Master {
	m := Master{
		perms:    [3]Permission{user, group, others},
		fileType: fileType,
		typed:    fileType != FileTypeNone,
	}

	for _, p := range m.perms {
		for _, op := range [...]Op{p.Read.Op, p.Write.Op, p.Execute.Op, p.Special.Op} {
			if op == OpAdd || op == OpRemove {
				m.updating = true
			}
		}

		switch p.Execute.Operand {
		case ExecSpecial:
			m.special = true
		case ExecConditional:
			m.condExec = true
		}

		if p.Special.IsSet() && p.Special.Operand {
			m.special = true
		}
	}

	return m
}

// Class returns the deltas for c. ok is false when c is untouched.
func (m Master) Class(c Class) (Permission, bool) {
	p := m.perms[c]

	return p, !p.IsZero()
}

// FileType returns the file-type hint, or [FileTypeNone].
func (m Master) FileType() FileType { return m.fileType }

// Updating reports whether any entry uses a relative operator ('+' or '-').
// A Master that is not updating replaces every class it mentions.
func (m Master) Updating() bool { return m.updating }

// Special reports whether any class mentions 's'.
func (m Master) Special() bool { return m.special }

// Typed reports whether a file-type hint was present.
func (m Master) Typed() bool { return m.typed }

// ConditionalExec reports whether any class uses the 'X' execute operand.
// Applying such a Master needs to know whether the target is a directory.
func (m Master) ConditionalExec() bool { return m.condExec }

// IsZero reports whether m touches no class.
func (m Master) IsZero() bool {
	for _, p := range m.perms {
		if !p.IsZero() {
			return false
		}
	}

	return true
}

// String renders m as a symbolic expression, e.g. "u=rwx,go=rx" or
// "u+x,g-w". For a Master produced by one of the parsers the result parses
// back to an equivalent Master. Classes with equal deltas are merged. The
// file-type hint is not rendered.
func (m Master) String() string {
	var clauses []string

	for i := 0; i < len(classes); {
		p := m.perms[i]
		if p.IsZero() {
			i++

			continue
		}

		who := []byte{classes[i].letter()}

		j := i + 1
		for ; j < len(classes) && m.perms[j] == p; j++ {
			who = append(who, classes[j].letter())
		}

		if len(who) == len(classes) {
			who = []byte{'a'}
		}

		clauses = append(clauses, string(who)+p.String())
		i = j
	}

	return strings.Join(clauses, ",")
}

// String renders the operator groups of p, e.g. "=rw+x".
func (p Permission) String() string {
	var b strings.Builder

	for _, op := range [...]Op{OpSet, OpAdd, OpRemove} {
		var letters []byte

		mentioned := false

		if p.Read.Op == op {
			mentioned = true

			if p.Read.Operand {
				letters = append(letters, 'r')
			}
		}

		if p.Write.Op == op {
			mentioned = true

			if p.Write.Operand {
				letters = append(letters, 'w')
			}
		}

		if p.Execute.Op == op {
			mentioned = true

			if p.Execute.Operand != ExecNone {
				letters = append(letters, byte(p.Execute.Operand))
			}
		}

		if p.Special.Op == op {
			mentioned = true

			if p.Special.Operand && (p.Execute.Op != op || p.Execute.Operand != ExecSpecial) {
				letters = append(letters, 's')
			}
		}

		// A relative group with no letters is a no-op; '=' with none clears.
		if !mentioned || (op != OpSet && len(letters) == 0) {
			continue
		}

		b.WriteByte(byte(op))
		b.Write(letters)
	}

	return b.String()
}
