// Package plan turns an inspected media file plus a language filter into the
// ffmpeg re-mux invocation that keeps exactly the surviving streams.
//
// Plans are deterministic: the same inspection result and filter always
// produce byte-identical command lines. The generated output path is
// guaranteed to differ from the input path so the source file is never
// overwritten in place.
package plan
