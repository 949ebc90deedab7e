package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

// Untagged is the canonical marker for streams without a usable language tag.
// It matches the "und" value ffprobe reports for undetermined languages.
const Untagged = "und"

// tagKeys lists the metadata keys checked for a language value, in order.
var tagKeys = []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}

// FromTags extracts the language from stream metadata tags. The value is
// lowercased and trimmed; missing, empty, or "und" values map to Untagged.
func FromTags(tags map[string]string) string {
	for _, key := range tagKeys {
		value, ok := tags[key]
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.ReplaceAll(value, "\x00", ""))
		if value != "" {
			return Canonical(value)
		}
	}
	return Untagged
}

// Canonical lowercases a tag and folds the spellings of "no language" into
// Untagged. Anything else passes through verbatim.
func Canonical(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch tag {
	case "", Untagged, "unknown", "undefined":
		return Untagged
	default:
		return tag
	}
}

// displayNames covers the codes that show up regularly in personal libraries.
var displayNames = map[string]string{
	"en": "English", "eng": "English",
	"es": "Spanish", "spa": "Spanish",
	"fr": "French", "fra": "French", "fre": "French",
	"de": "German", "deu": "German", "ger": "German",
	"it": "Italian", "ita": "Italian",
	"pt": "Portuguese", "por": "Portuguese",
	"ja": "Japanese", "jpn": "Japanese", "jap": "Japanese",
	"ko": "Korean", "kor": "Korean",
	"zh": "Chinese", "zho": "Chinese", "chi": "Chinese",
	"ru": "Russian", "rus": "Russian",
	"nl": "Dutch", "nld": "Dutch", "dut": "Dutch",
	"pl": "Polish", "pol": "Polish",
	"sv": "Swedish", "swe": "Swedish",
	"da": "Danish", "dan": "Danish",
	"no": "Norwegian", "nor": "Norwegian",
	"fi": "Finnish", "fin": "Finnish",
	"cs": "Czech", "ces": "Czech", "cze": "Czech",
	"hu": "Hungarian", "hun": "Hungarian",
	"ar": "Arabic", "ara": "Arabic",
	"hi": "Hindi", "hin": "Hindi",
	"th": "Thai", "tha": "Thai",
}

var titleCaser = cases.Title(xlang.Und)

// Display returns a human-readable name for a tag. Unrecognized tags are
// title-cased as-is so they still read cleanly in tables.
func Display(tag string) string {
	tag = Canonical(tag)
	if tag == Untagged {
		return "Unknown"
	}
	if name, ok := displayNames[tag]; ok {
		return name
	}
	return titleCaser.String(tag)
}
