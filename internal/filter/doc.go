// Package filter decides, per container stream, whether a stream survives the
// re-mux based on the user's language allow-list.
//
// Video streams (and attachments/data streams) always survive; only audio and
// subtitle streams are subject to the allow-list. Matching is case-insensitive
// and literal.
package filter
