package launch

import "github.com/pkg/errors"

var (
	ErrMissingArgument    = errors.New("launch argument has no value and no default")
	ErrInvalidChoice      = errors.New("launch argument value is not one of the allowed choices")
	ErrInvalidCondition   = errors.New("condition expression must be one of true, false, 1, 0")
	ErrUnknownArgument    = errors.New("launch configuration is not set")
	ErrCommandFailed      = errors.New("command substitution failed")
	ErrInvalidDescription = errors.New("invalid launch description")
)
