package mode

import (
	"fmt"
	"strings"
)

// Value is a mode value lifted out of its external notation. It is one of
// [NumberValue], [OctalValue], [StatValue], [SymbolicValue] or [ObjectValue].
type Value interface {
	Type() Type
	value()
}

// NumberValue is an absolute numeric mode.
type NumberValue struct{ Mode Number }

// OctalValue is a parsed octal string.
type OctalValue struct{ Parts OctalParts }

// StatValue is a parsed ls-style string.
type StatValue struct{ Master Master }

// SymbolicValue is a parsed chmod expression.
type SymbolicValue struct{ Master Master }

// ObjectValue is a parsed [Object].
type ObjectValue struct{ Master Master }

func (NumberValue) Type() Type   { return TypeNumber }
func (OctalValue) Type() Type    { return TypeOctal }
func (StatValue) Type() Type     { return TypeStat }
func (SymbolicValue) Type() Type { return TypeSymbolic }
func (ObjectValue) Type() Type   { return TypeObject }

func (NumberValue) value()   {}
func (OctalValue) value()    {}
func (StatValue) value()     {}
func (SymbolicValue) value() {}
func (ObjectValue) value()   {}

// Lift parses v once into a [Value].
//
// Numbers go through [NormalizeNumber], so values above [MaxNumber] are
// truncated rather than rejected. Text is classified and parsed with the
// matching grammar. A [Value] is returned unchanged.
func Lift(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		val, ok := derefValue(x)
		if !ok {
			return nil, newError(ErrUnclassified, v, NormalizeError(v, ""))
		}

		if nv, ok := val.(NumberValue); ok {
			nv.Mode &= MaxNumber

			return nv, nil
		}

		return val, nil
	case string:
		return liftText(v, x)
	case Octal:
		return liftText(v, string(x))
	case Object, *Object, map[string]any:
		m, err := ParseObject(x)
		if err != nil {
			return nil, newError(ErrGrammar, v, NormalizeError(v, TypeObject.String()))
		}

		return ObjectValue{Master: m}, nil
	}

	n, status := readNumber(v)

	switch status {
	case exact, truncated:
		return NumberValue{Mode: n}, nil
	case badNumber:
		return nil, newError(ErrRange, v, NormalizeError(v, TypeNumber.String()))
	default:
		return nil, newError(ErrUnclassified, v, NormalizeError(v, ""))
	}
}

func liftText(v any, s string) (Value, error) {
	s = strings.TrimSpace(s)

	switch classifyText(s) {
	case TypeOctal:
		p, err := ParseOctal(s)
		if err != nil {
			return nil, err
		}

		return OctalValue{Parts: p}, nil
	case TypeStat:
		m, err := ParseStat(s)
		if err != nil {
			return nil, err
		}

		return StatValue{Master: m}, nil
	case TypeSymbolic:
		m, err := ParseSymbolic(s)
		if err != nil {
			return nil, err
		}

		return SymbolicValue{Master: m}, nil
	default:
		return nil, newError(ErrGrammar, v, NormalizeError(v, ""))
	}
}

// derefValue turns the pointer forms of the variants into values. ok is
// false for a nil pointer.
func derefValue(v Value) (Value, bool) {
	switch x := v.(type) {
	case *NumberValue:
		if x == nil {
			return nil, false
		}

		return *x, true
	case *OctalValue:
		if x == nil {
			return nil, false
		}

		return *x, true
	case *StatValue:
		if x == nil {
			return nil, false
		}

		return *x, true
	case *SymbolicValue:
		if x == nil {
			return nil, false
		}

		return *x, true
	case *ObjectValue:
		if x == nil {
			return nil, false
		}

		return *x, true
	default:
		return v, true
	}
}

// Resolve computes the mode v produces on a target whose current mode is
// base. Numbers and plain octal strings ignore base. v must come from [Lift]
// or be one of the variants; a nil pointer variant panics.
func Resolve(v Value, base Number, isDir bool) Number {
	if d, ok := derefValue(v); ok {
		v = d
	}

	switch x := v.(type) {
	case NumberValue:
		return x.Mode & MaxNumber
	case OctalValue:
		return x.Parts.Apply(base)
	case StatValue:
		return Apply(base, x.Master, isDir)
	case SymbolicValue:
		return Apply(base, x.Master, isDir)
	case ObjectValue:
		return Apply(base, x.Master, isDir)
	default:
		panic(fmt.Sprintf("mode: unhandled value %T", v))
	}
}

// MasterOf returns the [Master] behind v, if v has one.
func MasterOf(v Value) (Master, bool) {
	if d, ok := derefValue(v); ok {
		v = d
	}

	switch x := v.(type) {
	case StatValue:
		return x.Master, true
	case SymbolicValue:
		return x.Master, true
	case ObjectValue:
		return x.Master, true
	default:
		return Master{}, false
	}
}

// NormalizeOptions configures [Normalize].
type NormalizeOptions struct {
	// Base is the current mode of the target. Relative notations apply
	// against it. Nil means 0.
	Base *Number

	// IsDirectory tells 'X' that the target is a directory.
	IsDirectory bool
}

// Normalize resolves a mode in any notation to a [Number].
//
// It is [Lift] followed by [Resolve]. On failure the error is an [*Error]
// wrapping [ErrRange], [ErrGrammar] or [ErrUnclassified].
func Normalize(v any, opts NormalizeOptions) (Number, error) {
	val, err := Lift(v)
	if err != nil {
		return 0, err
	}

	var base Number
	if opts.Base != nil {
		base = *opts.Base & MaxNumber
	}

	return Resolve(val, base, opts.IsDirectory), nil
}
