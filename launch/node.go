package launch

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Output is where a process's stdout and stderr go.
type Output string

const (
	OutputLog    Output = "log"
	OutputScreen Output = "screen"
	OutputBoth   Output = "both"
)

func (o Output) valid() bool {
	switch o {
	case "", OutputLog, OutputScreen, OutputBoth:
		return true
	}
	return false
}

// ParamType controls how a resolved parameter string is typed.
type ParamType int

const (
	// ParamAuto decodes the value as a YAML scalar, so "true" is a bool and
	// "3" an int.
	ParamAuto ParamType = iota
	// ParamString keeps the value as the exact text produced.
	ParamString
)

type Parameter struct {
	Name  string
	Value Substitution
	Type  ParamType
}

func (p Parameter) resolve(ctx context.Context, lc *Context) (ResolvedParameter, error) {
	raw, err := p.Value.Perform(ctx, lc)
	if err != nil {
		return ResolvedParameter{}, errors.Wrapf(err, "parameter %q", p.Name)
	}
	if p.Type == ParamString {
		return ResolvedParameter{Name: p.Name, Value: raw}, nil
	}
	return ResolvedParameter{Name: p.Name, Value: coerceScalar(raw)}, nil
}

// coerceScalar falls back to the raw text for anything that is not a
// single YAML scalar.
func coerceScalar(raw string) interface{} {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &node); err != nil {
		return raw
	}
	if len(node.Content) != 1 || node.Content[0].Kind != yaml.ScalarNode {
		return raw
	}
	var v interface{}
	if err := node.Content[0].Decode(&v); err != nil || v == nil {
		return raw
	}
	return v
}

// Node describes one ROS executable to launch.
type Node struct {
	Package    string
	Executable string
	Name       string
	Namespace  string
	Output     Output
	Parameters []Parameter
	Arguments  []Substitution
	Condition  Condition
}

// Identity is the node name when set, otherwise the executable.
func (n Node) Identity() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Executable
}

func (n Node) validate() error {
	if n.Package == "" || n.Executable == "" {
		return errors.Wrapf(ErrInvalidDescription, "node %q needs both package and executable", n.Identity())
	}
	if !n.Output.valid() {
		return errors.Wrapf(ErrInvalidDescription, "node %q has unknown output %q", n.Identity(), n.Output)
	}
	return nil
}

func (n Node) resolve(ctx context.Context, lc *Context) (Process, error) {
	p := Process{
		Package:    n.Package,
		Executable: n.Executable,
		Name:       n.Name,
		Namespace:  n.Namespace,
		Output:     n.Output,
		Arguments:  []string{},
	}
	if p.Output == "" {
		p.Output = OutputLog
	}
	for _, param := range n.Parameters {
		rp, err := param.resolve(ctx, lc)
		if err != nil {
			return Process{}, err
		}
		p.Parameters = append(p.Parameters, rp)
	}
	for i, arg := range n.Arguments {
		v, err := arg.Perform(ctx, lc)
		if err != nil {
			return Process{}, errors.Wrapf(err, "argument %d", i)
		}
		p.Arguments = append(p.Arguments, v)
	}
	return p, nil
}
