package mode_test

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

func Test_NormalizeNumber_Returns_Value_When_In_Range(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value any
		want  mode.Number
	}{
		{value: 0, want: 0},
		{value: 0o755, want: 0o755},
		{value: int64(0o17777), want: 0o17777},
		{value: uint16(0o644), want: 0o644},
		{value: float32(8), want: 0o10},
		{value: mode.Number(0o4755), want: 0o4755},
	}

	for _, tc := range cases {
		got, err := mode.NormalizeNumber(tc.value)
		if err != nil {
			t.Fatalf("NormalizeNumber(%#v): %v", tc.value, err)
		}

		if got != tc.want {
			t.Fatalf("NormalizeNumber(%#v)=%s, want=%s", tc.value, got.Octal(), tc.want.Octal())
		}
	}
}

func Test_NormalizeNumber_Truncates_When_Above_Max(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value any
		want  mode.Number
	}{
		{value: 100000, want: 100000 & 0o17777},
		{value: 0o20000, want: 0},
		{value: uint64(math.MaxUint64), want: mode.MaxNumber},
		{value: float64(0o20755), want: 0o755},
		{value: 1e20, want: mode.Number(math.Mod(1e20, 8192))},
	}

	for _, tc := range cases {
		got, err := mode.NormalizeNumber(tc.value)
		if err != nil {
			t.Fatalf("NormalizeNumber(%#v): %v", tc.value, err)
		}

		if got != tc.want {
			t.Fatalf("NormalizeNumber(%#v)=%s, want=%s", tc.value, got.Octal(), tc.want.Octal())
		}
	}
}

func Test_NormalizeNumber_Returns_ErrRange_When_Not_A_Valid_Number(t *testing.T) {
	t.Parallel()

	cases := []any{-1, int8(-128), math.NaN(), math.Inf(1), math.Inf(-1), 1.5, -0.5, "755", nil, true}

	for _, value := range cases {
		_, err := mode.NormalizeNumber(value)
		if !errors.Is(err, mode.ErrRange) {
			t.Fatalf("NormalizeNumber(%#v) err=%v, want=%v", value, err, mode.ErrRange)
		}
	}
}

func Test_Number_String_Renders_Ls_Form_When_Special_Bits_Set(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    mode.Number
		want string
	}{
		{n: 0, want: "---------"},
		{n: 0o755, want: "rwxr-xr-x"},
		{n: 0o644, want: "rw-r--r--"},
		{n: 0o4755, want: "rwsr-xr-x"},
		{n: 0o4644, want: "rwSr--r--"},
		{n: 0o2750, want: "rwxr-s---"},
		{n: 0o1777, want: "rwxrwxrwt"},
		{n: 0o1776, want: "rwxrwxrwT"},
		{n: 0o10644, want: "rw-r--r--"},
	}

	for _, tc := range cases {
		if got := tc.n.String(); got != tc.want {
			t.Errorf("Number(%s).String()=%q, want=%q", tc.n.Octal(), got, tc.want)
		}
	}
}

func Test_Number_FileMode_Moves_Special_Bits_When_Converting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n  mode.Number
		fm os.FileMode
	}{
		{n: 0o755, fm: 0o755},
		{n: 0o4755, fm: os.ModeSetuid | 0o755},
		{n: 0o2750, fm: os.ModeSetgid | 0o750},
		{n: 0o1777, fm: os.ModeSticky | 0o777},
		{n: 0o7000, fm: os.ModeSetuid | os.ModeSetgid | os.ModeSticky},
	}

	for _, tc := range cases {
		if got := tc.n.FileMode(); got != tc.fm {
			t.Errorf("Number(%s).FileMode()=%v, want=%v", tc.n.Octal(), got, tc.fm)
		}

		if got := mode.FromFileMode(tc.fm); got != tc.n {
			t.Errorf("FromFileMode(%v)=%s, want=%s", tc.fm, got.Octal(), tc.n.Octal())
		}
	}

	// The carried extra bit has no os.FileMode equivalent.
	if got := mode.Number(0o10644).FileMode(); got != 0o644 {
		t.Errorf("extra bit leaked into FileMode: %v", got)
	}

	// Type bits are not permissions.
	if got := mode.FromFileMode(os.ModeDir | 0o755); got != 0o755 {
		t.Errorf("FromFileMode(dir 0755)=%s, want=0o755", got.Octal())
	}
}
