package plan

import (
	"strconv"
	"strings"

	"dubstrip/internal/ffprobe"
	"dubstrip/internal/filter"
	"dubstrip/internal/language"
)

// Options configures command generation.
type Options struct {
	// FFmpegBinary is the re-mux binary name written into the script.
	// Defaults to "ffmpeg".
	FFmpegBinary string
	// Suffix is inserted before the container extension of the output file.
	// Defaults to "cleaned".
	Suffix string
}

const (
	defaultFFmpegBinary = "ffmpeg"
	defaultSuffix       = "cleaned"
)

// Decision records the filter outcome for one stream.
type Decision struct {
	Stream ffprobe.Stream
	Tag    string
	Keep   bool
}

// Plan is the re-mux command for one media file.
type Plan struct {
	Input     string
	Output    string
	Decisions []Decision

	// VideoOnly is set when no audio or subtitle stream survived, so the
	// output will carry video (and attachments) only. The plan is still
	// valid; callers are expected to surface it loudly.
	VideoOnly bool

	binary string
}

// Build evaluates every stream of the inspection result against the filter
// and assembles the re-mux plan. Stream order from the container is
// preserved.
func Build(path string, result ffprobe.Result, f filter.Filter, opts Options) Plan {
	binary := strings.TrimSpace(opts.FFmpegBinary)
	if binary == "" {
		binary = defaultFFmpegBinary
	}
	suffix := strings.TrimSpace(opts.Suffix)
	if suffix == "" {
		suffix = defaultSuffix
	}

	p := Plan{
		Input:  path,
		Output: outputPath(path, suffix),
		binary: binary,
	}

	audioOrSubsKept := false
	for _, stream := range result.Streams {
		keep := f.Keep(stream)
		p.Decisions = append(p.Decisions, Decision{
			Stream: stream,
			Tag:    language.FromTags(stream.Tags),
			Keep:   keep,
		})
		if keep {
			switch stream.Kind() {
			case ffprobe.KindAudio, ffprobe.KindSubtitle:
				audioOrSubsKept = true
			}
		}
	}
	p.VideoOnly = !audioOrSubsKept

	return p
}

// KeptIndices returns the container indices of surviving streams in source
// order.
func (p Plan) KeptIndices() []int {
	indices := make([]int, 0, len(p.Decisions))
	for _, d := range p.Decisions {
		if d.Keep {
			indices = append(indices, d.Stream.Index)
		}
	}
	return indices
}

// DroppedCount returns how many streams of the given kind were dropped.
func (p Plan) DroppedCount(kind ffprobe.StreamKind) int {
	count := 0
	for _, d := range p.Decisions {
		if !d.Keep && d.Stream.Kind() == kind {
			count++
		}
	}
	return count
}

// Args returns the ffmpeg argument vector, binary included.
func (p Plan) Args() []string {
	args := []string{p.binary, "-i", p.Input}
	for _, index := range p.KeptIndices() {
		args = append(args, "-map", "0:"+strconv.Itoa(index))
	}
	args = append(args, "-c", "copy", "-map_metadata", "0", p.Output)
	return args
}

// ShellLine renders the command with POSIX shell quoting.
func (p Plan) ShellLine() string {
	args := p.Args()
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}
