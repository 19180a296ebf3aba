package markuid

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", fmt.Errorf("workers must be positive: %w", ErrInvalidConfig), ExitConfigError},
		{"usage", fmt.Errorf("missing path: %w", ErrUsage), ExitUsageError},
		{"no files", fmt.Errorf("nothing under src: %w", ErrNoFiles), ExitUsageError},
		{"check", fmt.Errorf("2 file(s) invalid: %w", ErrCheckFailed), ExitCheckFailed},
		{"processing", fmt.Errorf("1 file(s) failed: %w", ErrProcessingFailed), ExitProcessingFailed},
		{"processing wins over check", errors.Join(ErrCheckFailed, ErrProcessingFailed), ExitProcessingFailed},
		{"unknown", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
