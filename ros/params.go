package ros

import (
	"fmt"
	"github.com/brokenrobotz/viam-ros-display/launch"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
	"path"
)

// ParamSetter is the parameter server surface of *goroslib.Node.
type ParamSetter interface {
	ParamSetBool(key string, val bool) error
	ParamSetInt(key string, val int) error
	ParamSetFloat64(key string, val float64) error
	ParamSetString(key string, val string) error
}

// ParamKey is the private parameter name of a process, /<ns>/<node>/<param>.
func ParamKey(p launch.Process, param string) string {
	return path.Join(p.FullyQualifiedName(), param)
}

// PublishParameters writes every resolved parameter of plan to the
// parameter server and returns the keys it set.
func PublishParameters(setter ParamSetter, plan *launch.Plan, logger logging.Logger) ([]string, error) {
	var keys []string
	for _, proc := range plan.Processes {
		for _, rp := range proc.Parameters {
			key := ParamKey(proc, rp.Name)
			if err := setParam(setter, key, rp.Value); err != nil {
				return keys, errors.Wrapf(err, "setting %s", key)
			}
			logger.Debugw("published parameter", "key", key)
			keys = append(keys, key)
		}
	}
	logger.Infow("published launch parameters", "count", len(keys))
	return keys, nil
}

func setParam(setter ParamSetter, key string, value interface{}) error {
	switch v := value.(type) {
	case string:
		return setter.ParamSetString(key, v)
	case bool:
		return setter.ParamSetBool(key, v)
	case int:
		return setter.ParamSetInt(key, v)
	case float64:
		return setter.ParamSetFloat64(key, v)
	default:
		return setter.ParamSetString(key, fmt.Sprint(v))
	}
}
