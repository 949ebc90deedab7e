// Package ffprobe executes the ffprobe binary and decodes its JSON stream
// listing into typed records.
//
// The decode is strict about shape: output that does not contain a streams
// array fails with ErrInspection instead of yielding an empty result, so a
// broken ffprobe install cannot silently plan a file as stream-less.
package ffprobe
