package filter

import (
	"errors"
	"strings"
	"testing"

	"dubstrip/internal/ffprobe"
)

func audioStream(index int, lang string) ffprobe.Stream {
	s := ffprobe.Stream{Index: index, CodecType: "audio"}
	if lang != "" {
		s.Tags = map[string]string{"language": lang}
	}
	return s
}

func subtitleStream(index int, lang string) ffprobe.Stream {
	s := ffprobe.Stream{Index: index, CodecType: "subtitle"}
	if lang != "" {
		s.Tags = map[string]string{"language": lang}
	}
	return s
}

func TestParseRejectsMalformedLists(t *testing.T) {
	tests := []string{"", "   ", "jpn,,eng", "jpn, ,eng", "jp n"}
	for _, list := range tests {
		t.Run(list, func(t *testing.T) {
			if _, err := Parse(list); !errors.Is(err, ErrConfig) {
				t.Errorf("Parse(%q) error = %v, want ErrConfig", list, err)
			}
		})
	}
}

func TestVideoAlwaysKept(t *testing.T) {
	video := ffprobe.Stream{Index: 0, CodecType: "video", Tags: map[string]string{"language": "fre"}}
	filters := []Filter{{}}
	if f, err := Parse("jpn"); err == nil {
		filters = append(filters, f)
	}
	if f, err := Parse("unknown"); err == nil {
		filters = append(filters, f)
	}
	for _, f := range filters {
		if !f.Keep(video) {
			t.Errorf("video stream dropped by filter %v", f.Accepted())
		}
	}
}

func TestAttachmentAndDataStreamsKept(t *testing.T) {
	f, err := Parse("jpn")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, codecType := range []string{"attachment", "data"} {
		stream := ffprobe.Stream{Index: 5, CodecType: codecType}
		if !f.Keep(stream) {
			t.Errorf("%s stream should always be kept", codecType)
		}
	}
}

func TestAudioSubtitleMatching(t *testing.T) {
	tests := []struct {
		name   string
		list   string
		stream ffprobe.Stream
		keep   bool
	}{
		{"matching audio", "jpn", audioStream(1, "jpn"), true},
		{"non-matching audio", "jpn", audioStream(1, "eng"), false},
		{"case-insensitive tag", "jpn", audioStream(1, "JPN"), true},
		{"case-insensitive list", "JPN", audioStream(1, "jpn"), true},
		{"matching subtitle", "eng", subtitleStream(2, "eng"), true},
		{"non-matching subtitle", "eng", subtitleStream(2, "ger"), false},
		// No alias resolution: "ja" and "jpn" stay distinct tags.
		{"iso alias not resolved", "jpn", audioStream(1, "ja"), false},
		{"untagged dropped by default", "jpn", audioStream(1, ""), false},
		{"und dropped by default", "jpn", audioStream(1, "und"), false},
		{"untagged kept with unknown marker", "jpn,unknown", audioStream(1, ""), true},
		{"und kept with unknown marker", "jpn,unknown", audioStream(1, "und"), true},
		{"und marker spelling", "jpn,und", audioStream(1, ""), true},
		{"unknown marker alone", "unknown", audioStream(1, "eng"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.list)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.list, err)
			}
			if got := f.Keep(tt.stream); got != tt.keep {
				t.Errorf("Keep = %v, want %v", got, tt.keep)
			}
		})
	}
}

func TestZeroFilterKeepsOnlyVideo(t *testing.T) {
	var f Filter
	if !f.Keep(ffprobe.Stream{CodecType: "video"}) {
		t.Error("zero filter should keep video")
	}
	if f.Keep(audioStream(1, "jpn")) {
		t.Error("zero filter should drop tagged audio")
	}
	if f.Keep(audioStream(1, "")) {
		t.Error("zero filter should drop untagged audio")
	}
}

func TestWithUntaggedOverride(t *testing.T) {
	f, err := Parse("jpn")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Keep(audioStream(1, "")) {
		t.Fatal("untagged should be dropped before override")
	}
	if !f.WithUntagged(true).Keep(audioStream(1, "")) {
		t.Error("untagged should be kept after override")
	}
	g, err := Parse("jpn,unknown")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.WithUntagged(false).Keep(audioStream(1, "")) {
		t.Error("untagged should be dropped after negative override")
	}
}

func TestAcceptedSortedWithMarker(t *testing.T) {
	f, err := Parse("jpn,eng,unknown,jpn")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := strings.Join(f.Accepted(), ",")
	if got != "eng,jpn,unknown" {
		t.Errorf("Accepted = %q, want eng,jpn,unknown", got)
	}
}
