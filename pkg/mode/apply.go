package mode

// Apply computes the mode that results from applying m to base.
//
// Classes m does not mention keep their bits from base. For a mentioned
// class:
//   - read and write follow their operator: '+' sets, '-' clears, '='
//     sets or clears as given. If either of them uses '=', an unmentioned
//     read or write bit is cleared.
//   - execute 'x' behaves like read and write.
//   - execute 'X' only grants when isDir is true or base has any execute
//     bit; otherwise the bit ends up unset.
//   - execute 's' also sets setuid (user) or setgid (group); '-s' clears only
//     that special bit. A '=' execute entry without 's' clears it.
//   - a special entry, when present, decides the special bit on its own, so
//     an execute group after 's' does not undo it.
//
// Sticky and the carried extra bit pass through from base.
func Apply(base Number, m Master, isDir bool) Number {
	base &= MaxNumber

	cond := isDir || base&execBits != 0
	perm := base & PermMask

	var setSpecial, clearSpecial Number

	for _, c := range classes {
		p, ok := m.Class(c)
		if !ok {
			continue
		}

		shift := c.shift()
		bits := (perm >> shift) & 0o7

		absolute := p.Read.Op == OpSet || p.Write.Op == OpSet
		bits = applyRW(bits, 0o4, p.Read, absolute)
		bits = applyRW(bits, 0o2, p.Write, absolute)

		var set, unset Number
		bits, set, unset = applyExec(bits, p.Execute, cond, c.special())

		if p.Special.IsSet() {
			set, unset = applySpecial(p.Special, c.special())
		}

		setSpecial |= set
		clearSpecial |= unset
		perm = perm&^(0o7<<shift) | bits<<shift
	}

	rest := base &^ PermMask
	rest = rest&^clearSpecial | setSpecial

	return (rest | perm) & MaxNumber
}

func applyRW(bits, bit Number, e RWEntry, absolute bool) Number {
	if !e.IsSet() {
		if absolute {
			return bits &^ bit
		}

		return bits
	}

	switch e.Op {
	case OpAdd:
		if e.Operand {
			bits |= bit
		}
	case OpRemove:
		if e.Operand {
			bits &^= bit
		}
	case OpSet:
		if e.Operand {
			bits |= bit
		} else {
			bits &^= bit
		}
	}

	return bits
}

// applyExec applies an execute entry to a class triplet and returns the
// special bits to set and to clear.
func applyExec(bits Number, e XEntry, cond bool, special Number) (Number, Number, Number) {
	const bit = 0o1

	if !e.IsSet() {
		return bits, 0, 0
	}

	grants := false

	switch e.Operand {
	case ExecOn, ExecSpecial:
		grants = true
	case ExecConditional:
		grants = cond
	}

	var set, unset Number

	switch e.Op {
	case OpAdd:
		if grants {
			bits |= bit
		}

		if e.Operand == ExecSpecial {
			set = special
		}
	case OpRemove:
		switch e.Operand {
		case ExecOn:
			bits &^= bit
		case ExecConditional:
			if cond {
				bits &^= bit
			}
		case ExecSpecial:
			unset = special
		}
	case OpSet:
		if grants {
			bits |= bit
		} else {
			bits &^= bit
		}

		if e.Operand == ExecSpecial {
			set = special
		} else {
			unset = special
		}
	}

	return bits, set, unset
}

// applySpecial returns the special bits to set and to clear for e.
func applySpecial(e RWEntry, special Number) (Number, Number) {
	switch {
	case e.Op == OpRemove && e.Operand:
		return 0, special
	case e.Op == OpSet && !e.Operand:
		return 0, special
	case e.Operand:
		return special, 0
	default:
		return 0, 0
	}
}
