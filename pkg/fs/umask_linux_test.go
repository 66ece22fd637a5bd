//go:build linux

package fs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

func Test_ProcessUmask_Agrees_With_Swapped_Umask_On_Linux(t *testing.T) {
	got, err := procUmask(procStatus)
	if err != nil {
		t.Skipf("no usable %s: %v", procStatus, err)
	}

	if want := swapUmask(); got != want {
		t.Fatalf("procUmask=%s, swapUmask=%s", got.Octal(), want.Octal())
	}

	if got := ProcessUmask(); got != swapUmask() {
		t.Fatalf("ProcessUmask=%s, want=%s", got.Octal(), swapUmask().Octal())
	}
}

func Test_ParseStatusUmask_Reads_Octal_Umask_Line(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  string
		want    mode.Number
		wantErr error
	}{
		{name: "typical", status: "Name:\tfsmode\nUmask:\t0022\nState:\tR (running)\n", want: 0o022},
		{name: "strict", status: "Umask:\t0077\n", want: 0o077},
		{name: "extra bits masked", status: "Umask:\t7777\n", want: 0o777},
		{name: "missing line", status: "Name:\tfsmode\nState:\tS\n", wantErr: errNoUmaskLine},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseStatusUmask([]byte(tc.status))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err=%v, want=%v", err, tc.wantErr)
			}

			if got != tc.want {
				t.Fatalf("got=%s, want=%s", got.Octal(), tc.want.Octal())
			}
		})
	}

	if _, err := parseStatusUmask([]byte("Umask:\t09\n")); err == nil {
		t.Fatal("want error for non-octal umask")
	}
}

func Test_ProcUmask_Returns_Error_When_Status_Missing(t *testing.T) {
	t.Parallel()

	if _, err := procUmask(filepath.Join(t.TempDir(), "status")); err == nil {
		t.Fatal("want error for missing status file")
	}
}
