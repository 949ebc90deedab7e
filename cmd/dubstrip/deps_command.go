package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dubstrip/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that the external tools are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.Tools.FFprobe, cfg.Tools.FFmpeg))
			colorize := stdoutIsTerminal()
			out := cmd.OutOrStdout()

			missingRequired := false
			for _, status := range statuses {
				kind := statusOK
				message := status.Command
				if !status.Available {
					message = status.Detail
					if status.Optional {
						kind = statusWarn
					} else {
						kind = statusError
						missingRequired = true
					}
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}

			if missingRequired {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}
