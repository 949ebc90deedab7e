package pipeline

import (
	"dubstrip/internal/ffprobe"
	"dubstrip/internal/plan"
)

// FileResult records the outcome for one media file: either a plan or the
// error that excluded it from the script.
type FileResult struct {
	Path string
	Plan plan.Plan
	Err  error
}

// Summary aggregates the outcome of a planning run.
type Summary struct {
	RunID         string
	Languages     []string
	ScriptPath    string
	ScriptWritten bool
	Results       []FileResult
}

// Planned returns how many files produced a command.
func (s *Summary) Planned() int {
	count := 0
	for _, r := range s.Results {
		if r.Err == nil {
			count++
		}
	}
	return count
}

// Failed returns how many files could not be planned.
func (s *Summary) Failed() int {
	return len(s.Results) - s.Planned()
}

// DroppedStreams totals the dropped streams of the given kind across all
// planned files.
func (s *Summary) DroppedStreams(kind ffprobe.StreamKind) int {
	total := 0
	for _, r := range s.Results {
		if r.Err == nil {
			total += r.Plan.DroppedCount(kind)
		}
	}
	return total
}

// VideoOnlyCount returns how many planned files end up with no audio or
// subtitle streams at all.
func (s *Summary) VideoOnlyCount() int {
	count := 0
	for _, r := range s.Results {
		if r.Err == nil && r.Plan.VideoOnly {
			count++
		}
	}
	return count
}

// Errors returns the per-file failures in processing order.
func (s *Summary) Errors() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
