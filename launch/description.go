package launch

import "github.com/pkg/errors"

// Description is the declarative form of a launch: arguments first, then
// nodes in the order they are handed to the launcher.
type Description struct {
	Arguments []DeclaredArgument
	Nodes     []Node
}

func (d *Description) Validate() error {
	seen := make(map[string]struct{}, len(d.Arguments))
	for _, a := range d.Arguments {
		if a.Name == "" {
			return errors.Wrap(ErrInvalidDescription, "argument with empty name")
		}
		if _, dup := seen[a.Name]; dup {
			return errors.Wrapf(ErrInvalidDescription, "argument %q declared twice", a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	for _, n := range d.Nodes {
		if err := n.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Argument looks up a declared argument by name.
func (d *Description) Argument(name string) (DeclaredArgument, bool) {
	for _, a := range d.Arguments {
		if a.Name == name {
			return a, true
		}
	}
	return DeclaredArgument{}, false
}
