package launch

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// DeclaredArgument is a named launch argument. A nil Default makes the
// argument required.
type DeclaredArgument struct {
	Name        string
	Default     Substitution
	Description string
	Choices     []string
}

// Validate checks value against Choices. An empty Choices accepts anything.
func (a DeclaredArgument) Validate(value string) error {
	if len(a.Choices) == 0 {
		return nil
	}
	for _, c := range a.Choices {
		if c == value {
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidChoice, "argument %q got %q, expected one of [%s]",
		a.Name, value, strings.Join(a.Choices, ", "))
}

// resolve picks the override if present, otherwise performs the default.
func (a DeclaredArgument) resolve(ctx context.Context, lc *Context, overrides map[string]string) (string, error) {
	if v, ok := overrides[a.Name]; ok {
		return v, nil
	}
	if a.Default == nil {
		return "", errors.Wrapf(ErrMissingArgument, "argument %q", a.Name)
	}
	v, err := a.Default.Perform(ctx, lc)
	if err != nil {
		return "", errors.Wrapf(err, "default of argument %q", a.Name)
	}
	return v, nil
}
