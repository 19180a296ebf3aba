package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// pathKeyLength is the number of hex digits kept for path keys.
const pathKeyLength = 12

// Calculator is an interface for computing content checksums and stable
// path keys.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// PathKey returns a short digest of a file path. Two files with the same
	// base name in different directories get different keys, so their
	// temporary and backup files never collide in a shared directory.
	PathKey(path string) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
// Using value semantics (pass by value) eliminates heap allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
// Returns by value to avoid heap allocation (SHA256 is a zero-size type).
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// PathKey hashes the cleaned, slash-separated form of path.
// Callers pass absolute paths when keys must be unique across a run.
func (c SHA256) PathKey(path string) string {
	normalized := filepath.ToSlash(filepath.Clean(path))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])[:pathKeyLength]
}

var _ Calculator = SHA256{}
