// Package discovery finds the markup files a run should process.
//
// Each command-line path is either a file, taken as is, or a directory that
// is walked recursively. Files under a directory are kept when their path
// relative to that directory matches an include pattern and no exclude
// pattern. Patterns use doublestar syntax ("**/*.xaml", "obj/**").
//
// The finder is filesystem-agnostic through filesystem.FileSystemProvider,
// so tests run against the in-memory implementation.
package discovery
