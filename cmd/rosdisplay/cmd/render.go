package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/brokenrobotz/viam-ros-display/launch"
)

// Parameter values longer than this are summarised in table output.
const maxTableValue = 60

func writePlan(w io.Writer, plan *launch.Plan, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal JSON")
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(plan); err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		return encoder.Close()
	case "table":
		return writePlanTable(w, plan)
	}
	return errors.Errorf("unknown output format %q (want table, yaml or json)", format)
}

func writePlanTable(w io.Writer, plan *launch.Plan) error {
	args := tablewriter.NewWriter(w)
	args.Header("Argument", "Value")
	for _, a := range plan.Arguments {
		name := a.Name
		if !a.Declared {
			name += " (undeclared)"
		}
		args.Append(name, a.Value)
	}
	if err := args.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	procs := tablewriter.NewWriter(w)
	procs.Header("Node", "Package", "Output", "Command", "Parameters")
	for _, p := range plan.Processes {
		procs.Append(
			p.FullyQualifiedName(),
			p.Package,
			string(p.Output),
			strings.Join(p.Argv(), " "),
			summariseParameters(p.Parameters),
		)
	}
	if err := procs.Render(); err != nil {
		return err
	}

	for _, s := range plan.Skipped {
		fmt.Fprintf(w, "skipped %s/%s (%s)\n", s.Package, s.Executable, s.Condition)
	}
	return nil
}

func summariseParameters(params []launch.ResolvedParameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		v := fmt.Sprint(p.Value)
		if len(v) > maxTableValue || strings.Contains(v, "\n") {
			v = fmt.Sprintf("<%d bytes>", len(v))
		}
		parts = append(parts, p.Name+"="+v)
	}
	return strings.Join(parts, ", ")
}

func writeArguments(w io.Writer, desc *launch.Description) error {
	table := tablewriter.NewWriter(w)
	table.Header("Argument", "Default", "Choices", "Description")
	for _, a := range desc.Arguments {
		def := "(required)"
		if a.Default != nil {
			def = a.Default.String()
		}
		table.Append(a.Name, def, strings.Join(a.Choices, ", "), a.Description)
	}
	return table.Render()
}
