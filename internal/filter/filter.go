package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"dubstrip/internal/ffprobe"
	"dubstrip/internal/language"
)

// ErrConfig marks a malformed language allow-list.
var ErrConfig = errors.New("filter config error")

// Filter holds the accepted language tags and the policy for untagged streams.
// The zero value accepts nothing, which keeps only video.
type Filter struct {
	accepted     map[string]struct{}
	keepUntagged bool
}

// Parse builds a Filter from a comma-separated allow-list. Entries are
// trimmed, lowercased, and deduplicated. The markers "unknown" and "und"
// enable keeping streams without a language tag. An empty list or blank
// entries inside the list fail with ErrConfig.
func Parse(list string) (Filter, error) {
	if strings.TrimSpace(list) == "" {
		return Filter{}, fmt.Errorf("%w: languages list is empty", ErrConfig)
	}
	return New(strings.Split(list, ","))
}

// New builds a Filter from individual allow-list entries.
func New(tags []string) (Filter, error) {
	f := Filter{accepted: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		trimmed := strings.ToLower(strings.TrimSpace(tag))
		if trimmed == "" {
			return Filter{}, fmt.Errorf("%w: blank entry in languages list", ErrConfig)
		}
		if strings.ContainsAny(trimmed, " \t") {
			return Filter{}, fmt.Errorf("%w: invalid language tag %q", ErrConfig, trimmed)
		}
		if trimmed == "unknown" || trimmed == language.Untagged {
			f.keepUntagged = true
			continue
		}
		f.accepted[trimmed] = struct{}{}
	}
	return f, nil
}

// WithUntagged returns a copy of the filter with the untagged-stream policy
// forced, overriding whatever the allow-list implied.
func (f Filter) WithUntagged(keep bool) Filter {
	clone := f
	clone.keepUntagged = keep
	return clone
}

// Keep reports whether the stream survives the re-mux. Video, attachment,
// and data streams are always kept so the output container stays intact.
func (f Filter) Keep(stream ffprobe.Stream) bool {
	switch stream.Kind() {
	case ffprobe.KindAudio, ffprobe.KindSubtitle:
	default:
		return true
	}

	tag := language.FromTags(stream.Tags)
	if tag == language.Untagged {
		return f.keepUntagged
	}
	_, ok := f.accepted[tag]
	return ok
}

// KeepsUntagged reports whether streams without a language tag are kept.
func (f Filter) KeepsUntagged() bool {
	return f.keepUntagged
}

// Accepted returns the accepted tags in sorted order, with the unknown
// marker appended when the untagged policy is active.
func (f Filter) Accepted() []string {
	tags := make([]string, 0, len(f.accepted)+1)
	for tag := range f.accepted {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	if f.keepUntagged {
		tags = append(tags, "unknown")
	}
	return tags
}
