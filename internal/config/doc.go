// Package config loads, normalizes, and validates dubstrip's TOML
// configuration.
//
// Configuration only supplies defaults; the CLI flags for a run always win.
// The merged result is passed explicitly to every component instead of being
// read as ambient state.
package config
