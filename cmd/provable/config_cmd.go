package main

import (
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Merge the built-in defaults, the config file and the given flags, and
print the result as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := loggerFromFlags(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}
			return cfg.Dump(cmd.OutOrStdout())
		},
	}
	registerConfigFlags(cmd.Flags())
	return cmd
}
