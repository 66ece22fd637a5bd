package mode_test

import (
	"math"
	"testing"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

func Test_Classify_Returns_Type_When_Value_Matches_A_Notation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value any
		want  mode.Type
	}{
		{name: "octal literal int", value: 0o755, want: mode.TypeNumber},
		{name: "zero", value: 0, want: mode.TypeNumber},
		{name: "upper bound", value: 0o17777, want: mode.TypeNumber},
		{name: "uint8", value: uint8(7), want: mode.TypeNumber},
		{name: "integral float", value: float64(420), want: mode.TypeNumber},
		{name: "Number", value: mode.Number(0o644), want: mode.TypeNumber},
		{name: "above 13 bits", value: 8192, want: mode.TypeNone},
		{name: "negative", value: -1, want: mode.TypeNone},
		{name: "NaN", value: math.NaN(), want: mode.TypeNone},
		{name: "infinity", value: math.Inf(1), want: mode.TypeNone},
		{name: "fraction", value: 1.5, want: mode.TypeNone},
		{name: "nil", value: nil, want: mode.TypeNone},
		{name: "bool", value: true, want: mode.TypeNone},
		{name: "slice", value: []int{7}, want: mode.TypeNone},
		{name: "octal string", value: "0755", want: mode.TypeOctal},
		{name: "octal with operator", value: "-022", want: mode.TypeOctal},
		{name: "octal padded", value: "  644 ", want: mode.TypeOctal},
		{name: "Octal", value: mode.Octal("0o700"), want: mode.TypeOctal},
		{name: "symbolic", value: "u+rwx", want: mode.TypeSymbolic},
		{name: "symbolic multi clause", value: "u=rwx,go=rX", want: mode.TypeSymbolic},
		{name: "bare operator", value: "+", want: mode.TypeSymbolic},
		{name: "stat", value: "rwxr-xr-x", want: mode.TypeStat},
		{name: "stat with regular type", value: "-rw-r--r--", want: mode.TypeStat},
		{name: "stat with dir type", value: "drwx------", want: mode.TypeStat},
		{name: "stat all cleared", value: "---------", want: mode.TypeStat},
		{name: "empty", value: "", want: mode.TypeNone},
		{name: "blank", value: "   ", want: mode.TypeNone},
		{name: "garbage", value: "hello", want: mode.TypeNone},
		{name: "object", value: mode.Object{}, want: mode.TypeObject},
		{name: "object pointer", value: &mode.Object{}, want: mode.TypeObject},
		{name: "nil object pointer", value: (*mode.Object)(nil), want: mode.TypeNone},
		{name: "json object", value: map[string]any{"user": map[string]any{"read": true}}, want: mode.TypeObject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := mode.Classify(tc.value); got != tc.want {
				t.Fatalf("Classify(%#v)=%v, want=%v", tc.value, got, tc.want)
			}
		})
	}
}

func Test_Type_String_Names_Every_Type(t *testing.T) {
	t.Parallel()

	want := map[mode.Type]string{
		mode.TypeNone:     "none",
		mode.TypeNumber:   "number",
		mode.TypeOctal:    "octal",
		mode.TypeStat:     "stat",
		mode.TypeSymbolic: "symbolic",
		mode.TypeObject:   "object",
	}

	for typ, name := range want {
		if got := typ.String(); got != name {
			t.Errorf("Type(%d).String()=%q, want=%q", typ, got, name)
		}
	}
}
