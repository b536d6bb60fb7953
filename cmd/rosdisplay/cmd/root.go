package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.viam.com/rdk/logging"

	"github.com/brokenrobotz/viam-ros-display/ament"
	"github.com/brokenrobotz/viam-ros-display/display"
	"github.com/brokenrobotz/viam-ros-display/launch"
	"github.com/brokenrobotz/viam-ros-display/launchfile"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rosdisplay",
	Short: "Resolve the URDF display launch",
	Long: `rosdisplay evaluates the learning_urdf display launch (robot_state_publisher,
joint_state_publisher or its GUI variant, and rviz2) against launch arguments
given as name:=value, and prints or publishes the result.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels any running command substitution.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rosdisplay/config.yaml)")
	flags.StringP("file", "f", "", "HCL launch file (default is the built-in display launch)")
	flags.StringSlice("prefix", nil, "install prefixes searched after AMENT_PREFIX_PATH")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	for _, name := range []string{"file", "prefix", "log-level"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".rosdisplay"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("rosdisplay")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

func newLogger() (logging.Logger, error) {
	logger := logging.NewLogger("rosdisplay")
	level, err := logging.LevelFromString(viper.GetString("log-level"))
	if err != nil {
		return nil, errors.Wrap(err, "--log-level")
	}
	logger.SetLevel(level)
	return logger, nil
}

func loadDescription(logger logging.Logger) (*launch.Description, error) {
	if file := viper.GetString("file"); file != "" {
		return launchfile.Load(file, logger)
	}
	return display.Description(), nil
}

// evaluate resolves the selected launch against the config file's
// "arguments" map overlaid with name:=value command line arguments.
func evaluate(ctx context.Context, args []string, logger logging.Logger) (*launch.Plan, error) {
	desc, err := loadDescription(logger)
	if err != nil {
		return nil, err
	}
	overrides, err := parseLaunchArguments(args, declaredCase(viper.GetStringMapString("arguments"), desc))
	if err != nil {
		return nil, err
	}
	return launch.Evaluate(ctx, desc, overrides,
		launch.WithLocator(ament.FromEnv(viper.GetStringSlice("prefix")...)),
		launch.WithLogger(logger),
	)
}
