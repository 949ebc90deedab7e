package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInputPath marks a missing or unusable input path.
var ErrInputPath = errors.New("input path error")

// DefaultExtensions lists the container formats scanned when the
// configuration does not override them.
var DefaultExtensions = []string{"mkv", "mp4", "avi"}

// Options controls directory enumeration.
type Options struct {
	// Extensions restricts which files count as media. Empty means
	// DefaultExtensions.
	Extensions []string
	// FollowSymlinks descends into symlinked directories. Cycles are
	// detected via resolved paths and skipped.
	FollowSymlinks bool
}

// Find returns the media files reachable from path, sorted for a
// deterministic processing order. A file path must carry one of the accepted
// extensions; a directory is walked recursively.
func Find(path string, opts Options) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInputPath)
	}

	accepted := normalizeExtensions(opts.Extensions)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputPath, path, err)
	}

	if !info.IsDir() {
		if !hasAcceptedExtension(path, accepted) {
			return nil, fmt.Errorf("%w: %s: not a recognized media container (want %s)", ErrInputPath, path, strings.Join(sortedKeys(accepted), ", "))
		}
		return []string{path}, nil
	}

	w := walker{
		accepted: accepted,
		follow:   opts.FollowSymlinks,
		visited:  map[string]struct{}{},
	}
	if err := w.walk(path); err != nil {
		return nil, fmt.Errorf("%w: walk %s: %v", ErrInputPath, path, err)
	}

	sort.Strings(w.files)
	return w.files, nil
}

type walker struct {
	accepted map[string]struct{}
	follow   bool
	visited  map[string]struct{}
	files    []string
}

func (w *walker) walk(dir string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if _, seen := w.visited[resolved]; seen {
		return nil
	}
	w.visited[resolved] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		kind := entry.Type()
		if kind&fs.ModeSymlink != 0 {
			if !w.follow {
				continue
			}
			info, err := os.Stat(full)
			if err != nil {
				return err
			}
			if info.IsDir() {
				if err := w.walk(full); err != nil {
					return err
				}
				continue
			}
			kind = info.Mode().Type()
		}

		if kind.IsDir() {
			if err := w.walk(full); err != nil {
				return err
			}
			continue
		}
		if hasAcceptedExtension(full, w.accepted) {
			w.files = append(w.files, full)
		}
	}
	return nil
}

func normalizeExtensions(extensions []string) map[string]struct{} {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	accepted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if ext != "" {
			accepted[ext] = struct{}{}
		}
	}
	return accepted
}

func hasAcceptedExtension(path string, accepted map[string]struct{}) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return false
	}
	_, ok := accepted[ext]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
