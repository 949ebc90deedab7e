// Package scan enumerates candidate media files from a file or directory
// input path, filtered by container extension.
package scan
