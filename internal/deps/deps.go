// Package deps reports the availability of the external binaries dubstrip
// relies on.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency dubstrip relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the dependency list for the configured tool binaries.
// ffprobe is mandatory for inspection; ffmpeg is only needed when the user
// eventually runs the generated script.
func Requirements(ffprobeBinary, ffmpegBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "ffprobe",
			Command:     ffprobeBinary,
			Description: "Inspects media files for stream metadata",
		},
		{
			Name:        "ffmpeg",
			Command:     ffmpegBinary,
			Description: "Executes the generated re-mux script",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		} else {
			status.Available = true
			status.Command = resolved
		}
		results = append(results, status)
	}
	return results
}
