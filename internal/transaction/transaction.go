package transaction

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/markuid/internal/checksum"
	"github.com/vvka-141/markuid/internal/files/filesystem"
)

const (
	tempSuffix   = ".tmp"
	backupSuffix = ".bak"

	dirPerm         fs.FileMode = 0755
	defaultFilePerm fs.FileMode = 0644
)

// Request describes one replacement.
type Request struct {
	// Path is the original file.
	Path string

	// Content is the new file content.
	Content string

	// IntermediateDir holds temporary and backup files. It is created on demand.
	IntermediateDir string

	// ExpectedChecksum is the raw checksum of the content the rewrite was
	// computed from. Empty skips the stale-source check.
	ExpectedChecksum string
}

// Transaction performs replacements against a filesystem.
// It is stateless and safe for concurrent use on distinct paths.
type Transaction struct {
	fs   filesystem.FileSystemProvider
	calc checksum.Calculator
}

// New creates a Transaction.
// Panics if fsys or calc is nil (programming error).
func New(fsys filesystem.FileSystemProvider, calc checksum.Calculator) *Transaction {
	if fsys == nil {
		panic("filesystem provider cannot be nil")
	}
	if calc == nil {
		panic("checksum calculator cannot be nil")
	}
	return &Transaction{fs: fsys, calc: calc}
}

// ArtifactPaths returns the temporary and backup file names used for path.
func (t *Transaction) ArtifactPaths(path, intermediateDir string) (tmp, bak string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	base := filepath.Base(path) + "." + t.calc.PathKey(abs)
	return filepath.Join(intermediateDir, base+tempSuffix), filepath.Join(intermediateDir, base+backupSuffix)
}

// Replace runs the full replacement for req.
func (t *Transaction) Replace(req Request) error {
	fail := func(step Step, err error) error {
		return &Error{Path: req.Path, Step: step, Err: err}
	}

	if req.IntermediateDir == "" {
		return fail(StepPrepare, errors.New("intermediate directory is required"))
	}
	if err := t.fs.MkdirAll(req.IntermediateDir, dirPerm); err != nil {
		return fail(StepPrepare, fmt.Errorf("create intermediate directory: %w", err))
	}

	perm := defaultFilePerm
	info, err := t.fs.Stat(req.Path)
	if err != nil {
		return fail(StepPrepare, err)
	}
	if p := info.Mode().Perm(); p != 0 {
		perm = p
	}

	tmp, bak := t.ArtifactPaths(req.Path, req.IntermediateDir)

	if err := t.fs.WriteFile(tmp, []byte(req.Content), perm); err != nil {
		t.discard(tmp)
		return fail(StepWriteTemp, err)
	}

	if err := t.fs.Remove(bak); err != nil && !errors.Is(err, fs.ErrNotExist) {
		t.discard(tmp)
		return fail(StepClearBackup, err)
	}

	if req.ExpectedChecksum != "" {
		if err := t.verify(req.Path, req.ExpectedChecksum); err != nil {
			t.discard(tmp)
			return fail(StepVerify, err)
		}
	}

	if err := t.fs.Rename(req.Path, bak); err != nil {
		t.discard(tmp)
		return fail(StepBackup, err)
	}

	if err := t.fs.Rename(tmp, req.Path); err != nil {
		if restoreErr := t.fs.Rename(bak, req.Path); restoreErr != nil {
			return fail(StepRestore, errors.Join(err, fmt.Errorf("backup left at %s: %w", bak, restoreErr)))
		}
		t.discard(tmp)
		return fail(StepSwap, err)
	}

	var cleanupErrs []error
	if err := t.fs.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		cleanupErrs = append(cleanupErrs, err)
	}
	if err := t.fs.Remove(bak); err != nil && !errors.Is(err, fs.ErrNotExist) {
		cleanupErrs = append(cleanupErrs, err)
	}
	if len(cleanupErrs) > 0 {
		return fail(StepCleanup, errors.Join(cleanupErrs...))
	}
	return nil
}

func (t *Transaction) verify(path, expected string) error {
	current, err := t.fs.ReadFile(path)
	if err != nil {
		return err
	}
	if got := t.calc.CalculateRaw(current); got != expected {
		return fmt.Errorf("%w: checksum %s, expected %s", ErrSourceChanged, short(got), short(expected))
	}
	return nil
}

// discard removes a leftover temporary file, ignoring errors.
func (t *Transaction) discard(path string) {
	_ = t.fs.Remove(path)
}

func short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
