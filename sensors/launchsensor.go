package sensors

import (
	"context"
	"errors"
	"github.com/brokenrobotz/viam-ros-display/ament"
	"github.com/brokenrobotz/viam-ros-display/display"
	"github.com/brokenrobotz/viam-ros-display/launch"
	"github.com/brokenrobotz/viam-ros-display/launchfile"
	"github.com/brokenrobotz/viam-ros-display/ros"
	"github.com/brokenrobotz/viam-ros-display/viamrosnode"
	"go.viam.com/rdk/components/sensor"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"strings"
	"sync"
)

var LaunchModel = resource.NewModel("brokenrobotz", "ros", "launch")

var (
	newCommandRunner = func() launch.CommandRunner { return launch.ExecRunner{} }
	paramSetterFor   = func(primaryUri string) (ros.ParamSetter, error) {
		return viamrosnode.GetInstance(primaryUri)
	}
)

// LaunchSensor evaluates the display launch on every reconfigure and
// reports the resulting plan.
type LaunchSensor struct {
	resource.Named

	mu        sync.Mutex
	plan      *launch.Plan
	published []string
	logger    logging.Logger
}

func init() {
	resource.RegisterComponent(
		sensor.API,
		LaunchModel,
		resource.Registration[sensor.Sensor, *LaunchSensorConfig]{
			Constructor: NewLaunchSensor,
		},
	)
}

func NewLaunchSensor(
	ctx context.Context,
	deps resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
) (sensor.Sensor, error) {
	l := &LaunchSensor{
		Named:  conf.ResourceName().AsNamed(),
		logger: logger,
	}

	if err := l.Reconfigure(ctx, deps, conf); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *LaunchSensor) Reconfigure(
	ctx context.Context,
	_ resource.Dependencies,
	conf resource.Config,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	desc := display.Description()
	if launchFile := strings.TrimSpace(conf.Attributes.String("launch_file")); launchFile != "" {
		var err error
		desc, err = launchfile.Load(launchFile, l.logger)
		if err != nil {
			return err
		}
	}

	overrides := display.Overrides(
		conf.Attributes.Bool("gui", false),
		conf.Attributes.String("model"),
		conf.Attributes.String("rvizconfig"),
	)
	// an unset gui leaves the launch's own default in place
	if !conf.Attributes.Has("gui") {
		delete(overrides, display.ArgGUI)
	}
	plan, err := launch.Evaluate(ctx, desc, overrides,
		launch.WithRunner(newCommandRunner()),
		launch.WithLocator(ament.FromEnv(conf.Attributes.StringSlice("package_prefixes")...)),
		launch.WithLogger(l.logger),
	)
	if err != nil {
		return err
	}

	var published []string
	if primaryUri := strings.TrimSpace(conf.Attributes.String("primary_uri")); primaryUri != "" {
		setter, err := paramSetterFor(primaryUri)
		if err != nil {
			return err
		}
		published, err = ros.PublishParameters(setter, plan, l.logger)
		if err != nil {
			return err
		}
	}

	l.plan = plan
	l.published = published
	return nil
}

func (l *LaunchSensor) Readings(
	_ context.Context,
	_ map[string]interface{},
) (map[string]interface{}, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.plan == nil {
		return nil, errors.New("launch plan not prepared")
	}
	return planReadings(l.plan, l.published), nil
}

func planReadings(plan *launch.Plan, published []string) map[string]interface{} {
	args := map[string]interface{}{}
	for _, a := range plan.Arguments {
		args[a.Name] = a.Value
	}
	processes := make([]interface{}, 0, len(plan.Processes))
	for _, p := range plan.Processes {
		processes = append(processes, p.FullyQualifiedName())
	}
	skipped := make([]interface{}, 0, len(plan.Skipped))
	for _, s := range plan.Skipped {
		skipped = append(skipped, s.Executable)
	}
	publishedOut := make([]interface{}, 0, len(published))
	for _, k := range published {
		publishedOut = append(publishedOut, k)
	}

	out := map[string]interface{}{
		"arguments":            args,
		"processes":            processes,
		"skipped":              skipped,
		"published_parameters": publishedOut,
	}
	for _, p := range plan.ProcessesNamed(display.RobotStatePublisher) {
		if v, ok := p.Parameter(display.RobotDescriptionParam); ok {
			if s, ok := v.(string); ok {
				out["robot_description_bytes"] = len(s)
			}
		}
	}
	for _, p := range plan.ProcessesNamed(display.Rviz) {
		rvizArgs := make([]interface{}, 0, len(p.Arguments))
		for _, a := range p.Arguments {
			rvizArgs = append(rvizArgs, a)
		}
		out["rviz_arguments"] = rvizArgs
	}
	return out
}

func (l *LaunchSensor) Close(_ context.Context) error {
	return nil
}
