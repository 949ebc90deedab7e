package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrInspection marks failures to run ffprobe or decode its output.
var ErrInspection = errors.New("inspection error")

// StreamKind classifies a container stream.
type StreamKind string

const (
	KindVideo    StreamKind = "video"
	KindAudio    StreamKind = "audio"
	KindSubtitle StreamKind = "subtitle"
	KindOther    StreamKind = "other"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int               `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	Channels  int               `json:"channels"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Tags      map[string]string `json:"tags"`

	Disposition map[string]int `json:"disposition"`
}

// IsDefault reports whether the container marks this stream as the default
// for its kind.
func (s Stream) IsDefault() bool {
	return s.Disposition["default"] == 1
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

// Kind maps the ffprobe codec_type to a StreamKind. Attachment and data
// streams report KindOther.
func (s Stream) Kind() StreamKind {
	switch strings.ToLower(strings.TrimSpace(s.CodecType)) {
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "subtitle":
		return KindSubtitle
	default:
		return KindOther
	}
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response. Failures to spawn the binary, a non-zero exit, or unparseable
// output all wrap ErrInspection.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, fmt.Errorf("%w: empty path", ErrInspection)
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		if detail != "" {
			return Result{}, fmt.Errorf("%w: ffprobe %s: %v: %s", ErrInspection, path, err, detail)
		}
		return Result{}, fmt.Errorf("%w: ffprobe %s: %v", ErrInspection, path, err)
	}

	result, err := Parse(output)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrInspection, path, err)
	}
	return result, nil
}

// Parse decodes raw ffprobe JSON output. Exported so callers holding cached
// payloads, and tests, can decode without a real ffprobe binary.
func Parse(data []byte) (Result, error) {
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	var result Result
	if err := decoder.Decode(&result); err != nil {
		return Result{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if result.Streams == nil {
		return Result{}, errors.New("parse ffprobe output: missing streams array")
	}
	result.raw = append([]byte(nil), data...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload the result was decoded from.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// StreamCount returns the number of streams of the requested kind.
func (r Result) StreamCount(kind StreamKind) int {
	count := 0
	for _, stream := range r.Streams {
		if stream.Kind() == kind {
			count++
		}
	}
	return count
}
