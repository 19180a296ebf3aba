package transaction

import (
	"errors"
	"fmt"
)

// ErrSourceChanged indicates the original file no longer has the content the
// rewrite was computed from.
var ErrSourceChanged = errors.New("source file changed since it was read")

// Step names a stage of a replacement.
type Step string

const (
	StepPrepare     Step = "prepare"      // create intermediate directory, stat original
	StepWriteTemp   Step = "write-temp"   // write new content to the temporary file
	StepClearBackup Step = "clear-backup" // delete a stale backup from an earlier run
	StepVerify      Step = "verify"       // compare on-disk content with the scanned checksum
	StepBackup      Step = "backup"       // rename original to backup
	StepSwap        Step = "swap"         // rename temporary file to original
	StepRestore     Step = "restore"      // rename backup back after a failed swap
	StepCleanup     Step = "cleanup"      // delete temporary and backup files
)

// Error reports a failed replacement.
type Error struct {
	Path string // Original file being replaced
	Step Step
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("replace %s: %s: %v", e.Path, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// OriginalIntact reports whether the original file still holds its old
// content after the failure. A cleanup failure means the new content is
// already in place; a restore failure leaves the old content in the backup.
func (e *Error) OriginalIntact() bool {
	return e.Step != StepCleanup && e.Step != StepRestore
}
