package plan

import (
	"path/filepath"
	"strings"
)

// outputPath derives the re-mux destination from the input path by inserting
// the suffix before the container extension: movie.mkv -> movie.cleaned.mkv.
// Files without an extension get the suffix appended. The result must never
// equal the input, so the source is never overwritten in place.
func outputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)

	out := stem + "." + suffix + ext
	if out == input {
		out += ".remux" + ext
	}
	return out
}
