package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brokenrobotz/viam-ros-display/ros"
)

var publishCmd = &cobra.Command{
	Use:   "publish [name:=value ...]",
	Short: "Resolve the launch and push node parameters to a ROS master",
	Long: `Resolves the launch like "plan" and writes every node parameter, including
robot_description, to the parameter server of a ROS master as
/<namespace>/<node>/<parameter>.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().String("master", "", "ROS master host:port (default from config, then ROS_MASTER_URI)")
	if err := viper.BindPFlag("master", publishCmd.Flags().Lookup("master")); err != nil {
		panic(err)
	}
}

// masterAddress turns ROS_MASTER_URI style values into host:port.
func masterAddress() (string, error) {
	addr := viper.GetString("master")
	if addr == "" {
		addr = os.Getenv("ROS_MASTER_URI")
	}
	addr = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(addr), "http://"), "/")
	if addr == "" {
		return "", errors.New("no ROS master given: use --master or set ROS_MASTER_URI")
	}
	return addr, nil
}

func runPublish(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	master, err := masterAddress()
	if err != nil {
		return err
	}
	plan, err := evaluate(cmd.Context(), args, logger)
	if err != nil {
		return err
	}

	node, err := ros.NewNode(ros.NodeConf{MasterAddress: master, Name: "rosdisplay"})
	if err != nil {
		return err
	}
	defer node.Close()

	keys, err := ros.PublishParameters(node, plan, logger)
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(cmd.OutOrStdout(), k)
	}
	return nil
}
