// Package script accumulates planned re-mux commands and writes them to a
// shell script for manual review.
//
// The script is written without the executable bit so it stays inert until
// the user deliberately marks it runnable. Nothing in this package ever
// executes a command.
package script
