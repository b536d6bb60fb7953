// Package display declares the URDF display launch: a robot state
// publisher fed by xacro, a joint state publisher (headless or GUI), and
// rviz2 loaded with a display config.
package display

import "github.com/brokenrobotz/viam-ros-display/launch"

const (
	PackageName = "learning_urdf"

	DefaultModelFile      = "urdf/mbot_base.urdf"
	DefaultRvizConfigFile = "rviz/urdf.rviz"

	ArgGUI        = "gui"
	ArgModel      = "model"
	ArgRvizConfig = "rvizconfig"

	RobotDescriptionParam = "robot_description"
)

// Node identities as they appear in a plan.
const (
	RobotStatePublisher    = "robot_state_publisher"
	JointStatePublisher    = "joint_state_publisher"
	JointStatePublisherGUI = "joint_state_publisher_gui"
	Rviz                   = "rviz2"
)

// Description returns a fresh copy of the display launch. Defaults that
// point into the package share are only resolved when they are used.
func Description() *launch.Description {
	gui := launch.Arg(ArgGUI)
	return &launch.Description{
		Arguments: []launch.DeclaredArgument{
			{
				Name:        ArgGUI,
				Default:     launch.Text("false"),
				Choices:     []string{"true", "false"},
				Description: "Flag to enable joint_state_publisher_gui",
			},
			{
				Name:        ArgModel,
				Default:     launch.PathJoin{launch.PackageShare{Package: PackageName}, launch.Text(DefaultModelFile)},
				Description: "Absolute path to robot urdf file",
			},
			{
				Name:        ArgRvizConfig,
				Default:     launch.PathJoin{launch.PackageShare{Package: PackageName}, launch.Text(DefaultRvizConfigFile)},
				Description: "Absolute path to rviz config file",
			},
		},
		Nodes: []launch.Node{
			{
				Package:    JointStatePublisher,
				Executable: JointStatePublisher,
				Condition:  launch.UnlessCondition{Expression: gui},
			},
			{
				Package:    JointStatePublisherGUI,
				Executable: JointStatePublisherGUI,
				Condition:  launch.IfCondition{Expression: gui},
			},
			{
				Package:    RobotStatePublisher,
				Executable: RobotStatePublisher,
				Parameters: []launch.Parameter{{
					Name:  RobotDescriptionParam,
					Value: launch.Command{Parts: []launch.Substitution{launch.Text("xacro "), launch.Arg(ArgModel)}},
					Type:  launch.ParamString,
				}},
			},
			{
				Package:    Rviz,
				Executable: Rviz,
				Name:       Rviz,
				Output:     launch.OutputScreen,
				Arguments:  []launch.Substitution{launch.Text("-d"), launch.Arg(ArgRvizConfig)},
			},
		},
	}
}

// Overrides turns typed settings into launch argument overrides. Empty
// paths are left to their defaults.
func Overrides(gui bool, model, rvizConfig string) map[string]string {
	out := map[string]string{ArgGUI: "false"}
	if gui {
		out[ArgGUI] = "true"
	}
	if model != "" {
		out[ArgModel] = model
	}
	if rvizConfig != "" {
		out[ArgRvizConfig] = rvizConfig
	}
	return out
}
