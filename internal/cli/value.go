package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/calvinalkan/fsmode/pkg/mode"
)

var (
	errValueRequired = errors.New("mode value is required")
	errTooManyArgs   = errors.New("too many arguments")
)

// rawValue turns a command-line argument into the input the mode package
// classifies. With asJSON the argument is decoded as a JSON document, so
// numbers and objects can be given; otherwise it is taken as text.
func rawValue(arg string, asJSON bool) (any, error) {
	if !asJSON {
		return arg, nil
	}

	var v any

	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON value: %w", err)
	}

	return v, nil
}

func liftArg(arg string, asJSON bool) (mode.Value, error) {
	raw, err := rawValue(arg, asJSON)
	if err != nil {
		return nil, err
	}

	return mode.Lift(raw)
}

func singleArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", errValueRequired
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: %v", errTooManyArgs, args[1:])
	}
}

// formatNumber renders n as "0o755 rwxr-xr-x".
func formatNumber(n mode.Number) string {
	return n.Octal() + " " + n.String()
}
