package cmd

import (
	"github.com/spf13/cobra"
)

var argsCmd = &cobra.Command{
	Use:   "args",
	Short: "List the arguments the launch declares",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		desc, err := loadDescription(logger)
		if err != nil {
			return err
		}
		return writeArguments(cmd.OutOrStdout(), desc)
	},
}

func init() {
	rootCmd.AddCommand(argsCmd)
}
