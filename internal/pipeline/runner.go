package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"dubstrip/internal/ffprobe"
	"dubstrip/internal/filter"
	"dubstrip/internal/logging"
	"dubstrip/internal/plan"
	"dubstrip/internal/scan"
	"dubstrip/internal/scancache"
	"dubstrip/internal/script"
)

// Inspector yields the stream listing for one media file.
type Inspector func(ctx context.Context, path string) (ffprobe.Result, error)

// Options carries everything a planning run needs. The struct is assembled
// once from config plus flags and passed through explicitly.
type Options struct {
	InputPath  string
	ScriptPath string
	Filter     filter.Filter

	Extensions     []string
	FollowSymlinks bool
	FFprobeBinary  string
	FFmpegBinary   string
	Suffix         string
	Shell          string

	// OverwriteScript allows replacing an existing script file.
	OverwriteScript bool

	// Cache enables inspection reuse when non-nil; UseCache controls
	// whether lookups consult it. Fresh inspections always update it.
	Cache    *scancache.Store
	UseCache bool

	// DryRun plans everything but skips writing the script.
	DryRun bool

	Logger *slog.Logger

	// Inspect overrides the ffprobe invocation, for tests.
	Inspect Inspector
}

// Run executes a full planning batch. The returned summary is non-nil
// whenever the run got far enough to process files; err is non-nil only for
// fatal failures (bad input path, script write failure).
func Run(ctx context.Context, opts Options) (*Summary, error) {
	logger := logging.NewComponentLogger(opts.Logger, "pipeline")
	runID := uuid.NewString()
	logger = logger.With(logging.String(logging.FieldRunID, runID))

	inspect := opts.Inspect
	if inspect == nil {
		inspect = func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Inspect(ctx, opts.FFprobeBinary, path)
		}
	}

	files, err := scan.Find(opts.InputPath, scan.Options{
		Extensions:     opts.Extensions,
		FollowSymlinks: opts.FollowSymlinks,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("scan complete",
		logging.String(logging.FieldPath, opts.InputPath),
		logging.Int("file_count", len(files)))

	summary := &Summary{
		RunID:      runID,
		ScriptPath: opts.ScriptPath,
		Languages:  opts.Filter.Accepted(),
	}
	out := script.New(runID, summary.Languages)
	out.Shell = opts.Shell

	planOpts := plan.Options{FFmpegBinary: opts.FFmpegBinary, Suffix: opts.Suffix}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := inspectFile(ctx, inspect, opts, file, logger)
		if err != nil {
			logger.Error("inspection failed",
				logging.String(logging.FieldPath, file),
				logging.Error(err))
			summary.Results = append(summary.Results, FileResult{Path: file, Err: err})
			continue
		}

		p := plan.Build(file, result, opts.Filter, planOpts)
		if p.VideoOnly {
			logger.Warn("no audio or subtitle stream matches the allow-list; output will be video-only",
				logging.String(logging.FieldPath, file))
		}
		for _, d := range p.Decisions {
			if !d.Keep {
				logger.Debug("dropping stream",
					logging.String(logging.FieldPath, file),
					logging.Int(logging.FieldStreamIndex, d.Stream.Index),
					logging.String("kind", string(d.Stream.Kind())),
					logging.String("language", d.Tag))
			}
		}

		out.Append(p)
		summary.Results = append(summary.Results, FileResult{Path: file, Plan: p})
	}

	if !opts.DryRun {
		if err := out.WriteFile(opts.ScriptPath, opts.OverwriteScript); err != nil {
			return summary, err
		}
		summary.ScriptWritten = true
		logger.Info("script written",
			logging.String(logging.FieldPath, opts.ScriptPath),
			logging.Int("command_count", out.Len()))
	}

	return summary, nil
}

func inspectFile(ctx context.Context, inspect Inspector, opts Options, path string, logger *slog.Logger) (ffprobe.Result, error) {
	if opts.Cache != nil && opts.UseCache {
		payload, hit, err := opts.Cache.Lookup(ctx, path)
		if err != nil {
			return ffprobe.Result{}, fmt.Errorf("cache lookup %s: %w", path, err)
		}
		if hit {
			result, parseErr := ffprobe.Parse(payload)
			if parseErr == nil {
				logger.Debug("inspection served from cache", logging.String(logging.FieldPath, path))
				return result, nil
			}
			// A cached payload that no longer parses is treated as a miss.
			logger.Warn("discarding unreadable cache entry",
				logging.String(logging.FieldPath, path),
				logging.Error(parseErr))
		}
	}

	result, err := inspect(ctx, path)
	if err != nil {
		return ffprobe.Result{}, err
	}

	if opts.Cache != nil {
		if raw := result.RawJSON(); len(raw) > 0 {
			if err := opts.Cache.Store(ctx, path, raw); err != nil {
				logger.Warn("cache update failed",
					logging.String(logging.FieldPath, path),
					logging.Error(err))
			}
		}
	}
	return result, nil
}
