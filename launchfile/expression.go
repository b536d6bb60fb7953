package launchfile

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/brokenrobotz/viam-ros-display/launch"
)

// expression is an HCL expression used as a launch.Substitution.
type expression struct {
	expr hcl.Expression
	src  []byte
}

func (e expression) Perform(ctx context.Context, lc *launch.Context) (string, error) {
	val, diags := e.expr.Value(evalContext(ctx, lc))
	if diags.HasErrors() {
		return "", unwrapDiagnostics(diags)
	}
	if val.IsNull() {
		return "", errors.Errorf("%s: expression is null", e.expr.Range())
	}
	if !val.IsWhollyKnown() {
		return "", errors.Errorf("%s: expression value is unknown", e.expr.Range())
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", errors.Wrapf(err, "%s: expected a string, got %s", e.expr.Range(), val.Type().FriendlyName())
	}
	return str.AsString(), nil
}

func (e expression) String() string {
	r := e.expr.Range()
	if r.End.Byte > len(e.src) || r.Start.Byte >= r.End.Byte {
		return r.String()
	}
	return strings.TrimSpace(string(r.SliceBytes(e.src)))
}

// unwrapDiagnostics keeps the error returned by a launch function so callers
// can still match it with errors.Is.
func unwrapDiagnostics(diags hcl.Diagnostics) error {
	for _, d := range diags {
		if extra, ok := d.Extra.(hclsyntax.FunctionCallDiagExtra); ok && extra.FunctionCallError() != nil {
			return errors.Wrapf(extra.FunctionCallError(), "%s: in %s()", d.Subject, extra.CalledFunctionName())
		}
	}
	return diags
}
