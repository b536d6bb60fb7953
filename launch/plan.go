package launch

import (
	"context"
	"path"

	"github.com/pkg/errors"
)

type ResolvedArgument struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value" yaml:"value"`
	Declared bool   `json:"declared" yaml:"declared"`
}

type ResolvedParameter struct {
	Name  string      `json:"name" yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}

// Process is a node with every substitution performed.
type Process struct {
	Package    string              `json:"package" yaml:"package"`
	Executable string              `json:"executable" yaml:"executable"`
	Name       string              `json:"name,omitempty" yaml:"name,omitempty"`
	Namespace  string              `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Output     Output              `json:"output" yaml:"output"`
	Parameters []ResolvedParameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Arguments  []string            `json:"arguments" yaml:"arguments"`
}

func (p Process) Identity() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Executable
}

// FullyQualifiedName is the ROS graph name, e.g. /ns/rviz2.
func (p Process) FullyQualifiedName() string {
	return path.Join("/", p.Namespace, p.Identity())
}

func (p Process) Parameter(name string) (interface{}, bool) {
	for _, rp := range p.Parameters {
		if rp.Name == name {
			return rp.Value, true
		}
	}
	return nil, false
}

// Argv is the `ros2 run` invocation for the process. Parameters are not
// included; they are delivered through a parameter file or server.
func (p Process) Argv() []string {
	argv := append([]string{"ros2", "run", p.Package, p.Executable}, p.Arguments...)
	var remaps []string
	if p.Name != "" {
		remaps = append(remaps, "-r", "__node:="+p.Name)
	}
	if p.Namespace != "" {
		remaps = append(remaps, "-r", "__ns:="+path.Join("/", p.Namespace))
	}
	if len(remaps) > 0 {
		argv = append(argv, "--ros-args")
		argv = append(argv, remaps...)
	}
	return argv
}

// SkippedNode records a node whose condition did not hold.
type SkippedNode struct {
	Package    string `json:"package" yaml:"package"`
	Executable string `json:"executable" yaml:"executable"`
	Condition  string `json:"condition" yaml:"condition"`
}

// Plan is the evaluated form of a Description.
type Plan struct {
	Arguments []ResolvedArgument `json:"arguments" yaml:"arguments"`
	Processes []Process          `json:"processes" yaml:"processes"`
	Skipped   []SkippedNode      `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

func (p *Plan) Argument(name string) (string, bool) {
	for _, a := range p.Arguments {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ProcessesNamed returns every planned process with the given identity.
func (p *Plan) ProcessesNamed(identity string) []Process {
	var out []Process
	for _, proc := range p.Processes {
		if proc.Identity() == identity {
			out = append(out, proc)
		}
	}
	return out
}

// Evaluate resolves d against overrides. Declared arguments are resolved in
// order so a default may refer to an earlier argument.
func Evaluate(ctx context.Context, d *Description, overrides map[string]string, opts ...Option) (*Plan, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	lc := NewContext(opts...)
	logger := lc.Logger()

	for name, v := range overrides {
		if _, declared := d.Argument(name); !declared {
			logger.Warnw("argument is not declared by the launch description", "argument", name)
			lc.SetConfiguration(name, v)
		}
	}

	plan := &Plan{}
	for _, a := range d.Arguments {
		v, err := a.resolve(ctx, lc, overrides)
		if err != nil {
			return nil, err
		}
		if err := a.Validate(v); err != nil {
			return nil, err
		}
		lc.SetConfiguration(a.Name, v)
		plan.Arguments = append(plan.Arguments, ResolvedArgument{Name: a.Name, Value: v, Declared: true})
	}
	for _, name := range lc.configurationNames() {
		if _, declared := d.Argument(name); !declared {
			v, _ := lc.Configuration(name)
			plan.Arguments = append(plan.Arguments, ResolvedArgument{Name: name, Value: v})
		}
	}

	for _, n := range d.Nodes {
		if n.Condition != nil {
			ok, err := n.Condition.Satisfied(ctx, lc)
			if err != nil {
				return nil, errors.Wrapf(err, "condition of node %q", n.Identity())
			}
			if !ok {
				logger.Debugw("skipping node", "node", n.Identity(), "condition", n.Condition.String())
				plan.Skipped = append(plan.Skipped, SkippedNode{
					Package:    n.Package,
					Executable: n.Executable,
					Condition:  n.Condition.String(),
				})
				continue
			}
		}
		proc, err := n.resolve(ctx, lc)
		if err != nil {
			return nil, errors.Wrapf(err, "node %q", n.Identity())
		}
		logger.Debugw("planned node", "node", proc.FullyQualifiedName(), "package", proc.Package)
		plan.Processes = append(plan.Processes, proc)
	}
	return plan, nil
}
