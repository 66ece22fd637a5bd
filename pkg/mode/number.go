package mode

import (
	"math"
	"reflect"
)

type numStatus uint8

const (
	notNumeric numStatus = iota
	// badNumber is negative, NaN, infinite or fractional.
	badNumber
	// truncated is a valid integer above MaxNumber.
	truncated
	exact
)

// readNumber converts any integer or float kind to a [Number], masking
// values above [MaxNumber].
func readNumber(v any) (Number, numStatus) {
	if v == nil {
		return 0, notNumeric
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return 0, badNumber
		}

		return bound(uint64(i))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return bound(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
			return 0, badNumber
		}

		if f > float64(MaxNumber) {
			// fmod is exact, so this keeps the low bits of arbitrarily
			// large integral floats.
			return Number(math.Mod(f, float64(MaxNumber)+1)), truncated
		}

		return Number(f), exact
	default:
		return 0, notNumeric
	}
}

func bound(u uint64) (Number, numStatus) {
	if u > uint64(MaxNumber) {
		return Number(u & uint64(MaxNumber)), truncated
	}

	return Number(u), exact
}

// NormalizeNumber validates a numeric mode.
//
// Values within [0, MaxNumber] are returned unchanged. Larger values are
// truncated to their low 13 bits rather than rejected. Negative, non-finite
// and fractional numbers, and values that are not numbers, fail with
// [ErrRange].
func NormalizeNumber(v any) (Number, error) {
	n, status := readNumber(v)

	switch status {
	case exact, truncated:
		return n, nil
	default:
		return 0, newError(ErrRange, v, NormalizeError(v, TypeNumber.String()))
	}
}
