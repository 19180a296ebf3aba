package markuid

import (
	"errors"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	result, err := r.Run(ctx, requests, markuid.OperationCheck)
//	if errors.Is(err, markuid.ErrCheckFailed) {
//	    // Report diagnostics from result
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage indicates the command line was used incorrectly.
	ErrUsage = errors.New("usage error")

	// ErrCheckFailed indicates that at least one file has missing or duplicate identifiers.
	ErrCheckFailed = errors.New("identifier check failed")

	// ErrProcessingFailed indicates that at least one file could not be processed.
	ErrProcessingFailed = errors.New("processing failed")

	// ErrNoFiles indicates that no markup files matched the given paths.
	ErrNoFiles = errors.New("no markup files found")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage), errors.Is(err, ErrNoFiles):
		return ExitUsageError
	case errors.Is(err, ErrProcessingFailed):
		return ExitProcessingFailed
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckFailed
	}

	return ExitGeneralError
}
