package main

import (
	"github.com/spf13/cobra"

	"mutablerig/internal/sessionrun"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a session in the foreground",
		Long: "Loads the configured scene, activates the rig resolved at the start frame,\n" +
			"and serves IPC until interrupted or stopped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return sessionrun.Run(cmd.Context(), cfg, sessionrun.Options{
				LogLevel: logLevel,
			})
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	return cmd
}
