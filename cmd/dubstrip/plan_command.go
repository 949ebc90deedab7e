package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dubstrip/internal/config"
	"dubstrip/internal/ffprobe"
	"dubstrip/internal/filter"
	"dubstrip/internal/pipeline"
	"dubstrip/internal/scancache"
)

// errPartialFailure signals that the script was written but some files could
// not be planned; main maps it to exit code 2.
var errPartialFailure = errors.New("some files could not be planned")

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var languagesFlag string
	var scriptPath string
	var cached bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect media files and write the stream-stripping script",
		Long: `Plan enumerates media files under --input-path, inspects each one with
ffprobe, and writes one ffmpeg re-mux command per file to the script. Only
audio and subtitle streams matching the --languages allow-list survive; video
streams are always kept.

Examples:
  dubstrip plan -i ~/media -l jpn
  dubstrip plan -i ~/media -l jpn,eng,unknown -s ./strip-dubs.sh
  dubstrip plan -i show.mkv -l jpn --dry-run
  dubstrip plan -i ~/media -l jpn --cached`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("prepare directories: %w", err)
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			f, err := buildFilter(cfg, languagesFlag)
			if err != nil {
				return err
			}

			expandedInput, err := config.ExpandPath(inputPath)
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}

			if strings.TrimSpace(scriptPath) == "" {
				scriptPath = cfg.Output.ScriptName
			}
			expandedScript, err := config.ExpandPath(scriptPath)
			if err != nil {
				return fmt.Errorf("resolve script path: %w", err)
			}

			cache, err := scancache.Open(cfg.Paths.CacheDir, logger)
			if err != nil {
				if cached {
					return fmt.Errorf("open inspection cache: %w", err)
				}
				logger.Warn("inspection cache unavailable; probing every file", "error", err)
			} else {
				defer cache.Close()
			}

			summary, err := pipeline.Run(cmd.Context(), pipeline.Options{
				InputPath:       expandedInput,
				ScriptPath:      expandedScript,
				Filter:          f,
				Extensions:      cfg.Scan.Extensions,
				FollowSymlinks:  cfg.Scan.FollowSymlinks,
				FFprobeBinary:   cfg.Tools.FFprobe,
				FFmpegBinary:    cfg.Tools.FFmpeg,
				Suffix:          cfg.Output.Suffix,
				Shell:           cfg.Output.Shell,
				OverwriteScript: cfg.Output.OverwriteScript,
				Cache:           cache,
				UseCache:        cached,
				DryRun:          dryRun,
				Logger:          logger,
			})
			if err != nil {
				return err
			}

			renderPlanSummary(cmd, summary, dryRun)

			if summary.Failed() > 0 {
				return fmt.Errorf("%w: %d of %d files failed", errPartialFailure, summary.Failed(), len(summary.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input-path", "i", "", "Media file or directory to plan (required)")
	cmd.Flags().StringVarP(&languagesFlag, "languages", "l", "", "Comma-separated language allow-list, e.g. jpn,eng,unknown")
	cmd.Flags().StringVarP(&scriptPath, "script-path", "s", "", "Output script location (default from config)")
	cmd.Flags().BoolVar(&cached, "cached", false, "Reuse cached inspections for unchanged files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan and report without writing the script")
	_ = cmd.MarkFlagRequired("input-path")

	return cmd
}

// buildFilter assembles the language filter from the flag, falling back to
// the configured default list, and applies the untagged-stream policy.
func buildFilter(cfg *config.Config, languagesFlag string) (filter.Filter, error) {
	var f filter.Filter
	var err error

	if strings.TrimSpace(languagesFlag) != "" {
		f, err = filter.Parse(languagesFlag)
	} else if len(cfg.Filter.Languages) > 0 {
		f, err = filter.New(cfg.Filter.Languages)
	} else {
		return filter.Filter{}, fmt.Errorf("%w: no languages given; use --languages or set filter.languages in the config", filter.ErrConfig)
	}
	if err != nil {
		return filter.Filter{}, err
	}

	switch cfg.Filter.KeepUntagged {
	case "always":
		f = f.WithUntagged(true)
	case "never":
		f = f.WithUntagged(false)
	}
	return f, nil
}

func renderPlanSummary(cmd *cobra.Command, summary *pipeline.Summary, dryRun bool) {
	out := cmd.OutOrStdout()

	headers := []string{"File", "Kept", "Dropped", "Note"}
	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		if r.Err != nil {
			rows = append(rows, []string{r.Path, "-", "-", "error: " + r.Err.Error()})
			continue
		}
		kept := strconv.Itoa(len(r.Plan.KeptIndices()))
		dropped := strconv.Itoa(r.Plan.DroppedCount(ffprobe.KindAudio) + r.Plan.DroppedCount(ffprobe.KindSubtitle))
		note := ""
		if r.Plan.VideoOnly {
			note = "video-only output"
		}
		rows = append(rows, []string{r.Path, kept, dropped, note})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignLeft}))
	}

	fmt.Fprintf(out, "Languages kept: %s\n", strings.Join(summary.Languages, ", "))
	fmt.Fprintf(out, "Files planned:  %d (%d failed, %d video-only)\n", summary.Planned(), summary.Failed(), summary.VideoOnlyCount())
	fmt.Fprintf(out, "Streams dropped: %d audio, %d subtitle\n",
		summary.DroppedStreams(ffprobe.KindAudio), summary.DroppedStreams(ffprobe.KindSubtitle))

	switch {
	case dryRun:
		fmt.Fprintln(out, "Dry run: no script written.")
	case summary.ScriptWritten:
		fmt.Fprintf(out, "Script written to %s (review, then: chmod +x && run)\n", summary.ScriptPath)
	}
}
