package cli

import (
	"fmt"
	"io"
	"strings"
)

// IO is a command's stdout and stderr.
//
// Paths a command could not change are collected with [IO.Skip] and
// reported on stderr twice: before the first line of stdout, and as a
// one-line summary from [IO.Finish]. Piping stdout through head or tail
// does not hide them.
type IO struct {
	out     io.Writer
	errOut  io.Writer
	skipped []skippedPath
	flushed bool
}

type skippedPath struct {
	path string
	err  error
}

func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Skip records that path was left unchanged because of err. The command
// keeps going, but exits 1.
func (o *IO) Skip(path string, err error) {
	o.skipped = append(o.skipped, skippedPath{path: path, err: err})
}

func (o *IO) Println(a ...any) {
	o.flushSkipped()
	_, _ = fmt.Fprintln(o.out, a...)
}

func (o *IO) Printf(format string, a ...any) {
	o.flushSkipped()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish writes the skip summary and returns the exit code: 1 if any path
// was skipped.
func (o *IO) Finish() int {
	o.flushSkipped()

	if len(o.skipped) == 0 {
		return 0
	}

	paths := make([]string, len(o.skipped))
	for i, s := range o.skipped {
		paths[i] = s.path
	}

	noun := "paths"
	if len(paths) == 1 {
		noun = "path"
	}

	o.ErrPrintln(fmt.Sprintf("warning: %d %s not changed: %s", len(paths), noun, strings.Join(paths, ", ")))

	return 1
}

func (o *IO) flushSkipped() {
	if o.flushed || len(o.skipped) == 0 {
		return
	}

	for _, s := range o.skipped {
		o.ErrPrintln(fmt.Sprintf("warning: cannot change %s: %v", s.path, s.err))
	}

	o.flushed = true
}
