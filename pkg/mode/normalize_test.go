package mode_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

func base(n mode.Number) *mode.Number { return &n }

func Test_Normalize_Returns_Number_When_Value_Valid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		value any
		opts  mode.NormalizeOptions
		want  mode.Number
	}{
		{name: "SymbolicOnBase", value: "u+x", opts: mode.NormalizeOptions{Base: base(0o644)}, want: 0o744},
		{name: "SymbolicWithoutBase", value: "u+x", want: 0o100},
		{name: "TruncatedNumber", value: 100000, want: 1696},
		{name: "Number", value: 0o640, opts: mode.NormalizeOptions{Base: base(0o777)}, want: 0o640},
		{name: "RelativeOctal", value: "+0111", opts: mode.NormalizeOptions{Base: base(0o644)}, want: 0o755},
		{name: "RemoveOctal", value: "-022", opts: mode.NormalizeOptions{Base: base(0o777)}, want: 0o755},
		{name: "AbsoluteOctal", value: "0755", opts: mode.NormalizeOptions{Base: base(0o600)}, want: 0o755},
		{name: "OctalType", value: mode.Octal("0o700"), want: 0o700},
		{name: "Stat", value: "rwxr-x---", opts: mode.NormalizeOptions{Base: base(0o777)}, want: 0o750},
		{name: "TypedStat", value: "drwxr-xr-x", want: 0o755},
		{name: "PaddedText", value: "  go-w\n", opts: mode.NormalizeOptions{Base: base(0o777)}, want: 0o755},
		{name: "ConditionalOnDirectory", value: "a=rX", opts: mode.NormalizeOptions{IsDirectory: true}, want: 0o555},
		{name: "ConditionalOnFile", value: "a=rX", want: 0o444},
		{
			name:  "DecodedObject",
			value: map[string]any{"user": map[string]any{"read": true, "write": true}, "group": map[string]any{"read": true}},
			opts:  mode.NormalizeOptions{Base: base(0o777)},
			want:  0o647,
		},
		{name: "LiftedValue", value: mode.NumberValue{Mode: 0o600}, want: 0o600},
		{name: "BaseAboveMax", value: "u+x", opts: mode.NormalizeOptions{Base: base(0o20644)}, want: 0o744},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := mode.Normalize(testCase.value, testCase.opts)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got, "got %s, want %s", got.Octal(), testCase.want.Octal())
		})
	}
}

func Test_Normalize_Returns_Error_When_Value_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		value   any
		wantErr error
		wantMsg string
	}{
		{name: "Nil", value: nil, wantErr: mode.ErrUnclassified, wantMsg: "Cannot normalize: <nil>"},
		{name: "Struct", value: struct{}{}, wantErr: mode.ErrUnclassified},
		{name: "Bool", value: true, wantErr: mode.ErrUnclassified},
		{name: "Negative", value: -1, wantErr: mode.ErrRange, wantMsg: "Cannot normalize number: -0o1"},
		{name: "Fraction", value: 0.5, wantErr: mode.ErrRange},
		{name: "Garbage", value: "nope", wantErr: mode.ErrGrammar, wantMsg: `Cannot normalize: "nope"`},
		{name: "Empty", value: "", wantErr: mode.ErrGrammar},
		{name: "BadOctal", value: "9999", wantErr: mode.ErrGrammar},
		{name: "UnknownObjectKey", value: map[string]any{"world": map[string]any{}}, wantErr: mode.ErrGrammar},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := mode.Normalize(testCase.value, mode.NormalizeOptions{})
			require.ErrorIs(t, err, testCase.wantErr)

			var modeErr *mode.Error
			require.True(t, errors.As(err, &modeErr), "err is %T", err)

			if testCase.wantMsg != "" {
				assert.Equal(t, testCase.wantMsg, err.Error())
			}
		})
	}
}

func Test_Lift_Returns_Variant_Matching_Classify(t *testing.T) {
	t.Parallel()

	values := []any{0o755, "0755", "rwxr-xr-x", "u+x", mode.Object{}, map[string]any{}}

	for _, v := range values {
		lifted, err := mode.Lift(v)
		require.NoError(t, err, "Lift(%#v)", v)
		assert.Equal(t, mode.Classify(v), lifted.Type(), "Lift(%#v)", v)
	}

	sym, err := mode.Lift("go-w")
	require.NoError(t, err)

	m, ok := mode.MasterOf(sym)
	require.True(t, ok)
	assert.Equal(t, "go-w", m.String())

	num, err := mode.Lift(0o600)
	require.NoError(t, err)

	_, ok = mode.MasterOf(num)
	assert.False(t, ok)
}

func Test_Resolve_Reuses_Lifted_Value_Across_Bases(t *testing.T) {
	t.Parallel()

	v, err := mode.Lift("u+x")
	require.NoError(t, err)

	for _, b := range []mode.Number{0, 0o600, 0o644, 0o4600} {
		assert.Equal(t, b|0o100, mode.Resolve(v, b, false))
	}
}

func Test_Lift_Accepts_Pointer_Variants_When_Non_Nil(t *testing.T) {
	t.Parallel()

	m, err := mode.ParseSymbolic("u+x")
	require.NoError(t, err)

	values := []struct {
		name  string
		value mode.Value
		want  mode.Number
	}{
		{name: "Number", value: &mode.NumberValue{Mode: 0o600}, want: 0o600},
		{name: "Symbolic", value: &mode.SymbolicValue{Master: m}, want: 0o744},
		{name: "Stat", value: &mode.StatValue{Master: m}, want: 0o744},
		{name: "Object", value: &mode.ObjectValue{Master: m}, want: 0o744},
	}

	for _, tc := range values {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := mode.Normalize(tc.value, mode.NormalizeOptions{Base: base(0o644)})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got, "got %s, want %s", got.Octal(), tc.want.Octal())
			assert.Equal(t, tc.value.Type(), mode.Classify(tc.value))
		})
	}
}

func Test_Lift_Returns_ErrUnclassified_When_Pointer_Variant_Nil(t *testing.T) {
	t.Parallel()

	var nilNumber *mode.NumberValue

	var nilSymbolic *mode.SymbolicValue

	for _, v := range []any{nilNumber, nilSymbolic} {
		_, err := mode.Lift(v)
		require.ErrorIs(t, err, mode.ErrUnclassified, "Lift(%#v)", v)

		_, err = mode.Normalize(v, mode.NormalizeOptions{})
		require.ErrorIs(t, err, mode.ErrUnclassified, "Normalize(%#v)", v)

		assert.Equal(t, mode.TypeNone, mode.Classify(v), "Classify(%#v)", v)
	}
}

func Test_Classify_Agrees_With_Lift_When_Value_Already_Lifted(t *testing.T) {
	t.Parallel()

	values := []mode.Value{
		mode.NumberValue{},
		mode.NumberValue{Mode: 0o755},
		mode.OctalValue{},
		mode.ObjectValue{},
	}

	for _, v := range values {
		lifted, err := mode.Lift(v)
		require.NoError(t, err, "Lift(%#v)", v)
		assert.Equal(t, v.Type(), mode.Classify(v), "Classify(%#v)", v)
		assert.Equal(t, lifted.Type(), mode.Classify(v), "Classify(%#v)", v)
	}

	lifted, err := mode.Lift(mode.NumberValue{Mode: 0o20755})
	require.NoError(t, err)
	assert.Equal(t, mode.Number(0o755), mode.Resolve(lifted, 0, false))
}

func Test_Normalize_Is_Safe_When_Called_Concurrently(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		value any
		want  mode.Number
	}{
		{value: "u+x", want: 0o744},
		{value: "=0600", want: 0o600},
		{value: "rwxr-x---", want: 0o750},
		{value: 0o755, want: 0o755},
		{value: mode.Object{Others: &mode.ClassObject{Write: ptr(true)}}, want: 0o642},
	}

	var wg sync.WaitGroup

	errs := make(chan error, 64*len(inputs))

	for range 64 {
		for _, in := range inputs {
			wg.Add(1)

			go func() {
				defer wg.Done()

				got, err := mode.Normalize(in.value, mode.NormalizeOptions{Base: base(0o644)})
				if err != nil {
					errs <- err

					return
				}

				if got != in.want {
					errs <- fmt.Errorf("Normalize(%#v)=%s, want=%s", in.value, got.Octal(), in.want.Octal())
				}
			}()
		}
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
