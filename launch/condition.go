package launch

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Condition gates whether a node is part of the plan.
type Condition interface {
	Satisfied(ctx context.Context, lc *Context) (bool, error)
	String() string
}

// IfCondition holds when Expression evaluates to true.
type IfCondition struct {
	Expression Substitution
}

func (c IfCondition) Satisfied(ctx context.Context, lc *Context) (bool, error) {
	return evaluateExpression(ctx, lc, c.Expression)
}

func (c IfCondition) String() string { return "if " + c.Expression.String() }

// UnlessCondition holds when Expression evaluates to false.
type UnlessCondition struct {
	Expression Substitution
}

func (c UnlessCondition) Satisfied(ctx context.Context, lc *Context) (bool, error) {
	v, err := evaluateExpression(ctx, lc, c.Expression)
	return !v, err
}

func (c UnlessCondition) String() string { return "unless " + c.Expression.String() }

// ParseBool accepts true, false, 1 and 0 in any letter case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, errors.Wrapf(ErrInvalidCondition, "got %q", s)
}

func evaluateExpression(ctx context.Context, lc *Context, expr Substitution) (bool, error) {
	v, err := expr.Perform(ctx, lc)
	if err != nil {
		return false, err
	}
	return ParseBool(v)
}
