// Package launchfile reads launch descriptions written in HCL.
//
// A launch file declares arguments and nodes:
//
//	argument "gui" {
//	  default = "false"
//	  choices = ["true", "false"]
//	}
//
//	node "robot_state_publisher" {
//	  package           = "robot_state_publisher"
//	  executable        = "robot_state_publisher"
//	  parameters        = { robot_description = command("xacro ${arg.model}") }
//	  string_parameters = ["robot_description"]
//	  unless            = arg.gui
//	}
//
// Expressions are not evaluated when the file is loaded. Each one becomes a
// launch.Substitution that is evaluated with the launch configurations in
// scope as arg.<name>, plus the functions command, package_share and env.
package launchfile

import (
	_ "embed"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"go.viam.com/rdk/logging"

	"github.com/brokenrobotz/viam-ros-display/launch"
)

//go:embed display.launch.hcl
var displayLaunch []byte

type fileRoot struct {
	Arguments []*argumentBlock `hcl:"argument,block"`
	Nodes     []*nodeBlock     `hcl:"node,block"`
}

type argumentBlock struct {
	Name        string         `hcl:"name,label"`
	Default     hcl.Expression `hcl:"default,optional"`
	Description string         `hcl:"description,optional"`
	Choices     []string       `hcl:"choices,optional"`
}

type nodeBlock struct {
	Label            string         `hcl:"label,label"`
	Package          string         `hcl:"package"`
	Executable       string         `hcl:"executable"`
	Name             string         `hcl:"name,optional"`
	Namespace        string         `hcl:"namespace,optional"`
	Output           string         `hcl:"output,optional"`
	Parameters       hcl.Expression `hcl:"parameters,optional"`
	StringParameters []string       `hcl:"string_parameters,optional"`
	Arguments        hcl.Expression `hcl:"arguments,optional"`
	Condition        hcl.Expression `hcl:"condition,optional"`
	Unless           hcl.Expression `hcl:"unless,optional"`
}

// Load reads and decodes the launch file at path.
func Load(path string, logger logging.Logger) (*launch.Description, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading launch file %s", path)
	}
	return Parse(src, path, logger)
}

// Display returns the built-in HCL rendition of the URDF display launch.
func Display(logger logging.Logger) (*launch.Description, error) {
	return Parse(displayLaunch, "display.launch.hcl", logger)
}

// Parse decodes launch file source. filename is only used in diagnostics.
func Parse(src []byte, filename string, logger logging.Logger) (*launch.Description, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrapf(diags, "parsing %s", filename)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, errors.Wrapf(diags, "decoding %s", filename)
	}

	d := &launch.Description{}
	for _, a := range root.Arguments {
		arg := launch.DeclaredArgument{
			Name:        a.Name,
			Description: a.Description,
			Choices:     a.Choices,
		}
		if !isAbsent(a.Default) {
			arg.Default = expression{expr: a.Default, src: src}
		}
		d.Arguments = append(d.Arguments, arg)
	}

	labels := make(map[string]struct{}, len(root.Nodes))
	for _, n := range root.Nodes {
		if _, dup := labels[n.Label]; dup {
			return nil, errors.Wrapf(launch.ErrInvalidDescription, "%s: node %q defined twice", filename, n.Label)
		}
		labels[n.Label] = struct{}{}

		node, err := translateNode(n, src)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: node %q", filename, n.Label)
		}
		d.Nodes = append(d.Nodes, node)
	}

	if err := d.Validate(); err != nil {
		return nil, errors.Wrap(err, filename)
	}
	logger.Debugw("loaded launch file", "file", filename, "arguments", len(d.Arguments), "nodes", len(d.Nodes))
	return d, nil
}

func translateNode(n *nodeBlock, src []byte) (launch.Node, error) {
	node := launch.Node{
		Package:    n.Package,
		Executable: n.Executable,
		Name:       n.Name,
		Namespace:  n.Namespace,
		Output:     launch.Output(n.Output),
	}

	hasIf, hasUnless := !isAbsent(n.Condition), !isAbsent(n.Unless)
	switch {
	case hasIf && hasUnless:
		return launch.Node{}, errors.Wrap(launch.ErrInvalidDescription, "condition and unless are mutually exclusive")
	case hasIf:
		node.Condition = launch.IfCondition{Expression: expression{expr: n.Condition, src: src}}
	case hasUnless:
		node.Condition = launch.UnlessCondition{Expression: expression{expr: n.Unless, src: src}}
	}

	if !isAbsent(n.Arguments) {
		items, diags := hcl.ExprList(n.Arguments)
		if diags.HasErrors() {
			return launch.Node{}, errors.Wrap(diags, "arguments")
		}
		for _, item := range items {
			node.Arguments = append(node.Arguments, expression{expr: item, src: src})
		}
	}

	stringTyped := make(map[string]bool, len(n.StringParameters))
	for _, name := range n.StringParameters {
		stringTyped[name] = true
	}
	if !isAbsent(n.Parameters) {
		pairs, diags := hcl.ExprMap(n.Parameters)
		if diags.HasErrors() {
			return launch.Node{}, errors.Wrap(diags, "parameters")
		}
		for _, pair := range pairs {
			key, diags := pair.Key.Value(nil)
			if diags.HasErrors() {
				return launch.Node{}, errors.Wrap(diags, "parameter names must be literal")
			}
			if key.Type() != cty.String || key.IsNull() {
				return launch.Node{}, errors.Errorf("parameter name at %s is not a string", pair.Key.Range())
			}
			name := key.AsString()
			param := launch.Parameter{Name: name, Value: expression{expr: pair.Value, src: src}}
			if stringTyped[name] {
				param.Type = launch.ParamString
				delete(stringTyped, name)
			}
			node.Parameters = append(node.Parameters, param)
		}
	}
	for name := range stringTyped {
		return launch.Node{}, errors.Wrapf(launch.ErrInvalidDescription, "string_parameters names unknown parameter %q", name)
	}
	return node, nil
}

// isAbsent reports whether an optional attribute was left out. gohcl fills
// missing expression fields with a static null.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}
