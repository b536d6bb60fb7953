package launchfile

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/brokenrobotz/viam-ros-display/launch"
)

// evalContext exposes launch configurations as arg.<name> and the launch
// substitutions as functions.
func evalContext(ctx context.Context, lc *launch.Context) *hcl.EvalContext {
	args := map[string]cty.Value{}
	for name, v := range lc.Configurations() {
		args[name] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"arg": cty.ObjectVal(args),
		},
		Functions: map[string]function.Function{
			"command":       commandFunc(ctx, lc),
			"package_share": packageShareFunc(ctx, lc),
			"env":           envFunc(ctx, lc),
		},
	}
}

func substitutionFunc(ctx context.Context, lc *launch.Context, sub launch.Substitution) (cty.Value, error) {
	v, err := sub.Perform(ctx, lc)
	if err != nil {
		return cty.NilVal, err
	}
	return cty.StringVal(v), nil
}

func commandFunc(ctx context.Context, lc *launch.Context) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "command", Type: cty.String}},
		Type:   function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			cmd := launch.Command{Parts: []launch.Substitution{launch.Text(args[0].AsString())}}
			return substitutionFunc(ctx, lc, cmd)
		},
	})
}

func packageShareFunc(ctx context.Context, lc *launch.Context) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "package", Type: cty.String}},
		Type:   function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return substitutionFunc(ctx, lc, launch.PackageShare{Package: args[0].AsString()})
		},
	})
}

// env(name) fails when name is unset; env(name, default) does not.
func envFunc(ctx context.Context, lc *launch.Context) function.Function {
	return function.New(&function.Spec{
		Params:   []function.Parameter{{Name: "name", Type: cty.String}},
		VarParam: &function.Parameter{Name: "default", Type: cty.String},
		Type:     function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			sub := launch.EnvironmentVariable{Name: args[0].AsString()}
			if len(args) > 1 {
				sub.Default = launch.Text(args[1].AsString())
			}
			return substitutionFunc(ctx, lc, sub)
		},
	})
}
