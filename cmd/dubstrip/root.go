package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verboseFlag bool
	var logFormatFlag string

	ctx := newCommandContext(&configFlag, &verboseFlag, &logFormatFlag)

	rootCmd := &cobra.Command{
		Use:           "dubstrip",
		Short:         "Generate a review-first script that strips unwanted audio and subtitle languages",
		Long: `dubstrip inspects a media library with ffprobe and writes a shell script of
ffmpeg re-mux commands that keep only the audio and subtitle streams matching
a language allow-list. The script is never executed by dubstrip itself: review
it, mark it executable, and run it yourself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format override (console or json)")

	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))

	return rootCmd
}
