// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// Discovery walks a Directory to find markup files; the file transaction uses
// the write half of FileSystemProvider (WriteFile, Rename, Remove, MkdirAll) to
// swap rewritten content into place. Keeping both behind one interface lets the
// runner and the transaction be tested without touching disk.
//
// Key interfaces:
//   - FileSystemProvider: Opens directories and performs file reads and writes
//   - Directory: Represents a directory that can be traversed
//   - File: Represents an individual file with metadata and content
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: Concurrency-safe in-memory implementation for testing
package filesystem
