package mode

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

// Sentinel errors. Every error returned by this package is an [*Error]
// wrapping one of these, so callers can match with [errors.Is].
var (
	// ErrRange is returned for numbers that are negative, non-finite,
	// fractional, or not numbers at all.
	ErrRange = errors.New("mode out of range")
	// ErrGrammar is returned for text that matches none of the notations,
	// and for objects that do not decode into an [Object].
	ErrGrammar = errors.New("invalid mode syntax")
	// ErrUnclassified is returned for values of a type no notation accepts.
	ErrUnclassified = errors.New("unrecognized mode value")
)

// Error is a mode conversion failure.
type Error struct {
	// Kind is one of [ErrRange], [ErrGrammar] or [ErrUnclassified].
	Kind error
	// Value is the input that failed.
	Value any
	// Message is the rendered diagnostic, see [ConvertError] and [NormalizeError].
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, v any, msg string) *Error {
	return &Error{Kind: kind, Value: v, Message: msg}
}

// ConvertError renders "Cannot convert <value> to <target>".
func ConvertError(v any, target string) string {
	return "Cannot convert " + render(v) + " to " + target
}

// NormalizeError renders "Cannot normalize <target>: <value>", or
// "Cannot normalize: <value>" when target is empty.
func NormalizeError(v any, target string) string {
	if target == "" {
		return "Cannot normalize: " + render(v)
	}

	return "Cannot normalize " + target + ": " + render(v)
}

var dumper = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// render formats v for diagnostics: numbers as octal literals, text quoted,
// anything else as a structural dump.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(x)
	case Octal:
		return strconv.Quote(string(x))
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i := rv.Int(); i < 0 {
			return fmt.Sprintf("-0o%o", uint64(-i))
		}

		return fmt.Sprintf("0o%o", rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fmt.Sprintf("0o%o", rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}

		return render(int64(f))
	default:
		return dumper.Sprintf("%v", v)
	}
}
