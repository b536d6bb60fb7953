package cmd

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/brokenrobotz/viam-ros-display/launch"
)

// parseLaunchArguments reads name:=value pairs, the ros2 launch syntax, on
// top of base. Later pairs win.
func parseLaunchArguments(args []string, base map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(base)+len(args))
	for k, v := range base {
		out[k] = v
	}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, ":=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.Errorf("launch argument %q must be of the form name:=value", arg)
		}
		out[strings.TrimSpace(name)] = value
	}
	return out, nil
}

// declaredCase maps keys from the config file, which viper lowercases, back
// to the spelling of the argument desc declares.
func declaredCase(base map[string]string, desc *launch.Description) map[string]string {
	out := make(map[string]string, len(base))
	for k, v := range base {
		name := k
		for _, a := range desc.Arguments {
			if strings.EqualFold(a.Name, k) {
				name = a.Name
				break
			}
		}
		out[name] = v
	}
	return out
}
