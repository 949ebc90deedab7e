package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dubstrip/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration",
	}
	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			rows := [][]string{
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.cache_dir", cfg.Paths.CacheDir},
				{"scan.extensions", strings.Join(cfg.Scan.Extensions, ", ")},
				{"scan.follow_symlinks", yesNo(cfg.Scan.FollowSymlinks)},
				{"filter.languages", strings.Join(cfg.Filter.Languages, ", ")},
				{"filter.keep_untagged", cfg.Filter.KeepUntagged},
				{"tools.ffprobe", cfg.Tools.FFprobe},
				{"tools.ffmpeg", cfg.Tools.FFmpeg},
				{"output.script_name", cfg.Output.ScriptName},
				{"output.suffix", cfg.Output.Suffix},
				{"output.shell", cfg.Output.Shell},
				{"output.overwrite_script", yesNo(cfg.Output.OverwriteScript)},
				{"logging.level", cfg.Logging.Level},
				{"logging.format", cfg.Logging.Format},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			var err error
			if len(args) > 0 {
				path, err = config.ExpandPath(args[0])
			} else {
				path, err = config.DefaultConfigPath()
			}
			if err != nil {
				return err
			}

			if !force {
				if _, _, exists, loadErr := config.Load(path); loadErr == nil && exists {
					return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
				}
			}

			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sample configuration written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}
