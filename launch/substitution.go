package launch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Substitution is a value that is only known once the launch is evaluated.
type Substitution interface {
	Perform(ctx context.Context, lc *Context) (string, error)
	String() string
}

// Text is a literal.
type Text string

func (t Text) Perform(context.Context, *Context) (string, error) { return string(t), nil }
func (t Text) String() string { return fmt.Sprintf("%q", string(t)) }

// LaunchConfiguration reads the value of a launch argument.
type LaunchConfiguration struct {
	Name string
}

// Arg is shorthand for LaunchConfiguration{Name: name}.
func Arg(name string) LaunchConfiguration {
	return LaunchConfiguration{Name: name}
}

func (l LaunchConfiguration) Perform(_ context.Context, lc *Context) (string, error) {
	v, ok := lc.Configuration(l.Name)
	if !ok {
		return "", errors.Wrapf(ErrUnknownArgument, "%q", l.Name)
	}
	return v, nil
}

func (l LaunchConfiguration) String() string { return "$(var " + l.Name + ")" }

// Concat joins the results of its parts with no separator.
type Concat []Substitution

func (c Concat) Perform(ctx context.Context, lc *Context) (string, error) {
	return performAll(ctx, lc, c)
}

func (c Concat) String() string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.String()
	}
	return strings.Join(parts, " + ")
}

// PathJoin joins its elements with the OS path separator.
type PathJoin []Substitution

func (p PathJoin) Perform(ctx context.Context, lc *Context) (string, error) {
	elems := make([]string, len(p))
	for i, s := range p {
		v, err := s.Perform(ctx, lc)
		if err != nil {
			return "", err
		}
		elems[i] = v
	}
	return filepath.Join(elems...), nil
}

func (p PathJoin) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return "join(" + strings.Join(parts, ", ") + ")"
}

// EnvironmentVariable reads an environment variable. Without a Default an
// unset variable is an error.
type EnvironmentVariable struct {
	Name    string
	Default Substitution
}

func (e EnvironmentVariable) Perform(ctx context.Context, lc *Context) (string, error) {
	if v, ok := lc.LookupEnv(e.Name); ok {
		return v, nil
	}
	if e.Default == nil {
		return "", errors.Errorf("environment variable %q is not set", e.Name)
	}
	return e.Default.Perform(ctx, lc)
}

func (e EnvironmentVariable) String() string { return "$(env " + e.Name + ")" }

// PackageShare resolves to the installed share directory of a package.
type PackageShare struct {
	Package string
}

func (p PackageShare) Perform(_ context.Context, lc *Context) (string, error) {
	if lc.Locator() == nil {
		return "", errors.Errorf("no package locator configured to find %q", p.Package)
	}
	return lc.Locator().PackageShare(p.Package)
}

func (p PackageShare) String() string { return "$(find-pkg-share " + p.Package + ")" }

func performAll(ctx context.Context, lc *Context, subs []Substitution) (string, error) {
	var sb strings.Builder
	for _, s := range subs {
		v, err := s.Perform(ctx, lc)
		if err != nil {
			return "", err
		}
		sb.WriteString(v)
	}
	return sb.String(), nil
}
