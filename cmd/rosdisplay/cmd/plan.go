package cmd

import (
	"github.com/spf13/cobra"
)

var planOutput string

var planCmd = &cobra.Command{
	Use:   "plan [name:=value ...]",
	Short: "Resolve the launch and print the processes it would start",
	Long: `Evaluates every launch argument, condition and substitution (including the
xacro command that produces robot_description) and prints the resulting
processes. Nothing is started.`,
	Example: `  rosdisplay plan
  rosdisplay plan gui:=true
  rosdisplay plan model:=/path/to/robot.urdf.xacro -o yaml`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "table", "output format: table, yaml or json")
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	plan, err := evaluate(cmd.Context(), args, logger)
	if err != nil {
		return err
	}
	return writePlan(cmd.OutOrStdout(), plan, planOutput)
}
