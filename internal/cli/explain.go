package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

// ExplainCmd returns the explain command.
func ExplainCmd() *Command {
	fs := flag.NewFlagSet("explain", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Decode value as JSON (numbers, objects)")

	return &Command{
		Flags: fs,
		Usage: "explain [--json] <value>",
		Short: "Show how a mode value is parsed",
		Exec: func(_ context.Context, o *IO, args []string) error {
			arg, err := singleArg(args)
			if err != nil {
				return err
			}

			v, err := liftArg(arg, *asJSON)
			if err != nil {
				return err
			}

			explain(o, v)

			return nil
		},
	}
}

func explain(o *IO, v mode.Value) {
	o.Println("type:", v.Type())

	switch x := v.(type) {
	case mode.NumberValue:
		o.Println("mode:", formatNumber(x.Mode))
	case mode.OctalValue:
		op := "replace"

		switch x.Parts.Op {
		case mode.OpAdd:
			op = "add bits"
		case mode.OpRemove:
			op = "remove bits"
		}

		o.Println("operation:", op)
		o.Println("bits:", formatNumber(x.Parts.Magnitude))
	}

	m, ok := mode.MasterOf(v)
	if !ok {
		return
	}

	o.Println("symbolic:", m)

	for _, c := range []mode.Class{mode.User, mode.Group, mode.Others} {
		p, set := m.Class(c)
		if !set {
			o.Printf("  %-6s untouched\n", c)

			continue
		}

		o.Printf("  %-6s %s\n", c, p)
	}

	o.Println("updating:", m.Updating())
	o.Println("special:", m.Special())
	o.Println("conditional exec:", m.ConditionalExec())

	if m.Typed() {
		o.Println("file type:", fmt.Sprintf("%q", m.FileType().String()))
	}
}
