package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/markuid/internal/checksum"
	"github.com/vvka-141/markuid/internal/files/filesystem"
	"github.com/vvka-141/markuid/internal/transaction"
	"github.com/vvka-141/markuid/internal/uid"
	"github.com/vvka-141/markuid/pkg/markuid"
)

// Runner processes batches of files with a shared engine.
// A Runner is safe for concurrent use; each Run call is independent.
type Runner struct {
	engine          *uid.Engine
	fsProvider      filesystem.FileSystemProvider
	calculator      checksum.Calculator
	tx              *transaction.Transaction
	logger          markuid.Logger
	workers         int
	intermediateDir string
	dryRun          bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the number of files processed concurrently. Values below
// one are ignored.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n >= 1 {
			r.workers = n
		}
	}
}

// WithIntermediateDir sets the directory used for temporary and backup files
// when a request does not name its own.
func WithIntermediateDir(dir string) Option {
	return func(r *Runner) {
		if dir != "" {
			r.intermediateDir = dir
		}
	}
}

// WithDryRun makes update and remove report what would change without
// touching any file.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithChecksum replaces the checksum calculator.
func WithChecksum(calc checksum.Calculator) Option {
	return func(r *Runner) {
		if calc != nil {
			r.calculator = calc
		}
	}
}

// New creates a Runner.
// Panics if engine, fsProvider or logger is nil (programming error).
func New(engine *uid.Engine, fsProvider filesystem.FileSystemProvider, logger markuid.Logger, opts ...Option) *Runner {
	if engine == nil {
		panic("engine cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	r := &Runner{
		engine:          engine,
		fsProvider:      fsProvider,
		calculator:      checksum.New(),
		logger:          logger,
		workers:         markuid.DefaultWorkers,
		intermediateDir: markuid.DefaultIntermediateDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tx = transaction.New(fsProvider, r.calculator)
	return r
}

// Run applies op to every request. The returned error is nil when all files
// were handled and, for check, all were valid. Otherwise it wraps
// markuid.ErrProcessingFailed or markuid.ErrCheckFailed; the RunResult is
// complete in every case.
func (r *Runner) Run(ctx context.Context, requests []markuid.FileRequest, op markuid.Operation) (markuid.RunResult, error) {
	if !op.IsValid() {
		return markuid.RunResult{}, fmt.Errorf("unsupported operation %s: %w", op, markuid.ErrUsage)
	}

	result := markuid.RunResult{
		RunID:     uuid.New(),
		Operation: op,
		Results:   make([]markuid.FileResult, len(requests)),
	}
	r.logger.Verbose("run %s: %s %d file(s) with %d worker(s)", result.RunID, op, len(requests), r.workers)

	var g errgroup.Group
	g.SetLimit(r.workers)
	checkedDirs := make(map[string]struct{})
	newDirs := make(map[string]struct{})

	for i, req := range requests {
		i, req := i, req
		if err := ctx.Err(); err != nil {
			result.Results[i] = markuid.FileResult{
				Path:      req.Path,
				Operation: op,
				Err:       err,
				ErrorKind: markuid.ErrorKindCanceled,
			}
			continue
		}

		dir := r.dirFor(req)
		if op.Mutates() && !r.dryRun {
			if _, seen := checkedDirs[dir]; !seen {
				checkedDirs[dir] = struct{}{}
				if !r.exists(dir) {
					newDirs[dir] = struct{}{}
				}
			}
		}

		g.Go(func() error {
			result.Results[i] = r.processFile(req.Path, dir, op)
			return nil
		})
	}
	_ = g.Wait()

	r.cleanup(newDirs)
	return result, r.summarize(&result)
}

func (r *Runner) dirFor(req markuid.FileRequest) string {
	if req.IntermediateDir != "" {
		return req.IntermediateDir
	}
	return r.intermediateDir
}

// exists reports whether path is present. Errors other than not-exist count as
// present so the directory is never treated as one this run created.
func (r *Runner) exists(path string) bool {
	_, err := r.fsProvider.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (r *Runner) processFile(path, dir string, op markuid.Operation) (res markuid.FileResult) {
	res = markuid.FileResult{Path: path, Operation: op}

	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("panic while processing %s: %v", path, p)
			res.ErrorKind = markuid.ErrorKindInternal
			r.logger.Error("%v", res.Err)
		}
	}()

	content, err := r.fsProvider.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		res.ErrorKind = markuid.ErrorKindIO
		r.logger.Error("%v", res.Err)
		return res
	}
	res.Checksum = r.calculator.CalculateRaw(content)

	out, err := r.engine.Process(path, string(content), op)
	if err != nil {
		res.Err = err
		res.ErrorKind = uid.KindOf(err)
		r.logger.Error("%v", err)
		return res
	}
	res.Valid = out.Valid
	res.Diagnostics = out.Diagnostics

	if !out.Changed {
		r.logger.Verbose("%s: %s, no change (%d diagnostic(s))", path, op, len(out.Diagnostics))
		return res
	}

	if r.dryRun {
		res.Changed = true
		r.logger.Info("%s: would %s", path, op)
		return res
	}

	err = r.tx.Replace(transaction.Request{
		Path:             path,
		Content:          out.Content,
		IntermediateDir:  dir,
		ExpectedChecksum: res.Checksum,
	})
	if err != nil {
		res.Err = err
		res.ErrorKind = markuid.ErrorKindTransaction
		r.logger.Error("%v", err)
		var txErr *transaction.Error
		if errors.As(err, &txErr) && !txErr.OriginalIntact() {
			r.reportDamage(path, dir, txErr)
			res.Changed = txErr.Step == transaction.StepCleanup
		}
		return res
	}

	res.Changed = true
	r.logger.Verbose("%s: %s applied", path, op)
	return res
}

// reportDamage tells the user where the content went when a replacement
// failed after the original was moved.
func (r *Runner) reportDamage(path, dir string, txErr *transaction.Error) {
	if txErr.Step == transaction.StepCleanup {
		r.logger.Error("%s: new content is in place; leftover files may remain in %s", path, dir)
		return
	}
	_, bak := r.tx.ArtifactPaths(path, dir)
	r.logger.Error("%s: previous content is kept in %s", path, bak)
}

// cleanup removes intermediate directories that this run created and left
// empty. Directories that existed before the run and parents are left alone.
func (r *Runner) cleanup(dirs map[string]struct{}) {
	sorted := make([]string, 0, len(dirs))
	for dir := range dirs {
		sorted = append(sorted, dir)
	}
	sort.Strings(sorted)

	for _, dir := range sorted {
		entries, err := r.fsProvider.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := r.fsProvider.Remove(dir); err != nil {
			r.logger.Verbose("could not remove intermediate directory %s: %v", filepath.Clean(dir), err)
		}
	}
}

func (r *Runner) summarize(result *markuid.RunResult) error {
	for _, res := range result.Results {
		if res.Failed() {
			result.Failed++
		} else {
			result.Processed++
		}
	}

	r.logger.Verbose("run %s: %d processed, %d failed, %d changed", result.RunID, result.Processed, result.Failed, result.ChangedFiles())

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be processed: %w", result.Failed, len(result.Results), markuid.ErrProcessingFailed)
	}
	if result.Operation == markuid.OperationCheck {
		if n := result.InvalidFiles(); n > 0 {
			return fmt.Errorf("%d of %d file(s) have missing or duplicate identifiers: %w", n, len(result.Results), markuid.ErrCheckFailed)
		}
	}
	return nil
}
