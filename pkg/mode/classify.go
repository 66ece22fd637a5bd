package mode

import "strings"

// Classify reports which notation v is written in, or [TypeNone].
//
// Numbers must be integers within [0, MaxNumber]. Text is trimmed and tested
// against the octal, stat and symbolic grammars in that order; the first
// match wins. [Object], *Object and map[string]any are objects. A lifted
// [Value], or a non-nil pointer to one, reports its own type, so Classify
// agrees with [Lift].
func Classify(v any) Type {
	switch x := v.(type) {
	case nil:
		return TypeNone
	case Value:
		val, ok := derefValue(x)
		if !ok {
			return TypeNone
		}

		return val.Type()
	case string:
		return classifyText(x)
	case Octal:
		return classifyText(string(x))
	case Object, map[string]any:
		return TypeObject
	case *Object:
		if x == nil {
			return TypeNone
		}

		return TypeObject
	}

	if _, status := readNumber(v); status == exact {
		return TypeNumber
	}

	return TypeNone
}

func classifyText(s string) Type {
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return TypeNone
	case IsOctal(s):
		return TypeOctal
	case IsStat(s):
		return TypeStat
	case IsSymbolic(s):
		return TypeSymbolic
	default:
		return TypeNone
	}
}
