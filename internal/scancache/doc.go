// Package scancache persists raw ffprobe inspection payloads between runs so
// a re-plan over a large library does not probe every file again.
//
// Entries are keyed by absolute path and fingerprinted with file size and
// modification time; a fingerprint mismatch is a cache miss. A lock file
// beside the database guards against concurrent runs sharing the cache.
package scancache
