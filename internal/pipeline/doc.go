// Package pipeline runs a planning batch end to end: enumerate media files,
// inspect each one, filter its streams, and accumulate re-mux commands into
// the generated script.
//
// Files are processed one at a time in sorted order. A failure on one file is
// recorded and the batch continues; only an unusable input path or a script
// write failure aborts the run.
package pipeline
