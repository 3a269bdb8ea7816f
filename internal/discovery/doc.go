// Package discovery resolves mock file glob patterns to a sorted,
// de-duplicated list of file paths.
//
// Patterns containing "**" are matched recursively via doublestar; simple
// segment globs use filepath.Glob. Relative patterns resolve against the
// working directory.
package discovery
