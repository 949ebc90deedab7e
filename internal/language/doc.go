// Package language extracts and presents the language metadata attached to
// container streams.
//
// Tags are treated as opaque lowercase tokens: "jpn" and "ja" are distinct,
// and no ISO-639 alias resolution happens on the filtering path. Display
// names exist purely for console output.
package language
