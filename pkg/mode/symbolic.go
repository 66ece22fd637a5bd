package mode

import "strings"

// IsSymbolic reports whether s is a symbolic chmod expression:
//
//	symbolic := clause (',' clause)*
//	clause   := [ugoa]* ([+-=] [rwxXs]*)+
//
// Examples: "u+x", "go-w", "a=rX", "u=rwx,g=rx,o=", "+x".
func IsSymbolic(s string) bool {
	_, ok := parseSymbolic(s)

	return ok
}

// ParseSymbolic parses a symbolic chmod expression into a [Master].
// Surrounding whitespace is ignored.
//
// Clauses are applied left to right. A clause without classes targets all
// three. A '=' group replaces the targeted classes entirely: letters it
// lists are set, the rest are recorded as explicitly cleared.
func ParseSymbolic(s string) (Master, error) {
	m, ok := parseSymbolic(strings.TrimSpace(s))
	if !ok {
		return Master{}, newError(ErrGrammar, s, ConvertError(s, TypeSymbolic.String()))
	}

	return m, nil
}

func parseSymbolic(s string) (Master, bool) {
	if s == "" {
		return Master{}, false
	}

	var perms [3]Permission

	for clause := range strings.SplitSeq(s, ",") {
		if !parseClause(clause, &perms) {
			return Master{}, false
		}
	}

	return NewMaster(perms[User], perms[Group], perms[Others], FileTypeNone), true
}

func parseClause(clause string, perms *[3]Permission) bool {
	targets, i := parseClasses(clause)

	// At least one operator group is required.
	if i == len(clause) {
		return false
	}

	for i < len(clause) {
		if !isOp(clause[i]) {
			return false
		}

		op := Op(clause[i])
		i++

		start := i
		for i < len(clause) && isPermChar(clause[i]) {
			i++
		}

		for _, c := range classes {
			if targets[c] {
				perms[c] = applyGroup(perms[c], op, clause[start:i])
			}
		}
	}

	return true
}

// parseClasses reads the leading class letters of a clause and returns the
// targeted classes and the offset of the first operator. No letters means all
// classes.
func parseClasses(clause string) ([3]bool, int) {
	var targets [3]bool

	i := 0
	for ; i < len(clause); i++ {
		switch clause[i] {
		case 'u':
			targets[User] = true
		case 'g':
			targets[Group] = true
		case 'o':
			targets[Others] = true
		case 'a':
			targets = [3]bool{true, true, true}
		default:
			if i == 0 {
				return [3]bool{true, true, true}, 0
			}

			return targets, i
		}
	}

	if i == 0 {
		targets = [3]bool{true, true, true}
	}

	return targets, i
}

func isPermChar(c byte) bool {
	switch c {
	case 'r', 'w', 'x', 'X', 's':
		return true
	default:
		return false
	}
}

// applyGroup folds one operator group into p.
func applyGroup(p Permission, op Op, letters string) Permission {
	if op == OpSet {
		p = Permission{
			Read:    RWEntry{Op: OpSet},
			Write:   RWEntry{Op: OpSet},
			Execute: XEntry{Op: OpSet, Operand: ExecNone},
		}
	}

	var exec XOperand

	for i := range len(letters) {
		switch c := letters[i]; c {
		case 'r':
			p.Read = RWEntry{Op: op, Operand: true}
		case 'w':
			p.Write = RWEntry{Op: op, Operand: true}
		case 's':
			p.Special = RWEntry{Op: op, Operand: true}

			// "-s" only drops the special bit; "+s" and "=s" also grant execute.
			if op != OpRemove && execRank(ExecSpecial) > execRank(exec) {
				exec = ExecSpecial
			}
		default:
			if execRank(XOperand(c)) > execRank(exec) {
				exec = XOperand(c)
			}
		}
	}

	// 's' already grants execute, so an 'x' or 'X' with the same operator
	// after it changes nothing.
	if exec != 0 && op != OpRemove && p.Special == (RWEntry{Op: op, Operand: true}) {
		exec = ExecSpecial
	}

	if exec != 0 {
		p.Execute = XEntry{Op: op, Operand: exec}
	}

	return p
}

// execRank orders execute operands within one group: "xs" is "s", "Xx" is "x".
func execRank(o XOperand) int {
	switch o {
	case ExecConditional:
		return 1
	case ExecOn:
		return 2
	case ExecSpecial:
		return 3
	default:
		return 0
	}
}
