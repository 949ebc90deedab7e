package script

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dubstrip/internal/plan"
)

// ErrWrite marks failures to persist the generated script.
var ErrWrite = errors.New("write error")

// scriptMode deliberately omits the executable bits; the user opts in with
// chmod after reviewing the commands.
const scriptMode = 0o644

const defaultShell = "/bin/bash"

type entry struct {
	input string
	line  string
}

// Script collects one re-mux command per planned media file.
type Script struct {
	RunID       string
	Languages   []string
	Shell       string
	GeneratedAt time.Time

	entries []entry
}

// New creates an empty script tagged with the run identifier and the
// language allow-list it was generated for.
func New(runID string, languages []string) *Script {
	return &Script{
		RunID:       runID,
		Languages:   append([]string(nil), languages...),
		Shell:       defaultShell,
		GeneratedAt: time.Now(),
	}
}

// Append adds the plan's command to the script.
func (s *Script) Append(p plan.Plan) {
	s.entries = append(s.entries, entry{input: p.Input, line: p.ShellLine()})
}

// Len returns the number of accumulated commands.
func (s *Script) Len() int {
	return len(s.entries)
}

// Render produces the full script text: shebang, a provenance header, then
// one echo + command block per file.
func (s *Script) Render() string {
	var b strings.Builder

	shell := strings.TrimSpace(s.Shell)
	if shell == "" {
		shell = defaultShell
	}
	b.WriteString("#!")
	b.WriteString(shell)
	b.WriteString("\n#\n")
	fmt.Fprintf(&b, "# Generated by dubstrip on %s\n", s.GeneratedAt.UTC().Format(time.RFC3339))
	if s.RunID != "" {
		fmt.Fprintf(&b, "# Run ID: %s\n", s.RunID)
	}
	if len(s.Languages) > 0 {
		fmt.Fprintf(&b, "# Keeping languages: %s\n", strings.Join(s.Languages, ", "))
	}
	b.WriteString("# Review before running. This file is written non-executable on purpose.\n\n")

	for _, e := range s.entries {
		fmt.Fprintf(&b, "echo %s\n", quoteForEcho("Processing "+e.input+"..."))
		b.WriteString(e.line)
		b.WriteString("\n\n")
	}

	return b.String()
}

// WriteFile persists the rendered script at path with non-executable
// permissions. With overwrite set, any previous script is replaced so stale
// executable bits cannot survive; without it, an existing file is an error.
// Failures wrap ErrWrite.
func (s *Script) WriteFile(path string, overwrite bool) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("%w: empty script path", ErrWrite)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create script directory: %v", ErrWrite, err)
		}
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s already exists", ErrWrite, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: stat %s: %v", ErrWrite, path, err)
		}
	}

	// Remove first: os.WriteFile keeps the mode of an existing file.
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: replace %s: %v", ErrWrite, path, err)
	}

	if err := os.WriteFile(path, []byte(s.Render()), scriptMode); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

func quoteForEcho(message string) string {
	return `"` + strings.ReplaceAll(message, `"`, `\"`) + `"`
}
