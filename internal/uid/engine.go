package uid

import (
	"errors"
	"fmt"

	"github.com/vvka-141/markuid/pkg/markuid"
)

// Outcome is the result of processing one document.
type Outcome struct {
	// Valid is true when every site was Valid before the operation.
	Valid bool

	// Diagnostics lists Absent and Duplicate sites found by the validator.
	Diagnostics []markuid.Diagnostic

	// Content is the new text. It equals the input when Changed is false.
	Content string

	// Changed is true when the file must be replaced on disk.
	Changed bool
}

// Engine runs the scan, validate, resolve and rewrite stages for one file at a
// time. It holds only configuration and is safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine creates an engine after validating opts.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Process applies op to content. Check stops after validation; Update
// resolves and rewrites only when something is invalid; Remove deletes every
// identifier attribute. Errors are *MalformedDocumentError or
// *RewriteSynchronizationError carrying path.
func (e *Engine) Process(path, content string, op markuid.Operation) (Outcome, error) {
	if !op.IsValid() {
		return Outcome{}, fmt.Errorf("unsupported operation %s: %w", op, markuid.ErrUsage)
	}

	doc, err := Scan(content, e.opts)
	if err != nil {
		return Outcome{}, withFile(err, path)
	}

	out := Outcome{Content: content}
	out.Valid = Validate(doc)
	out.Diagnostics = Diagnostics(path, doc)

	switch op {
	case markuid.OperationUpdate:
		if out.Valid {
			return out, nil
		}
		Resolve(doc)
		out.Content, out.Changed, err = Rewrite(content, doc, ModeUpdate)
	case markuid.OperationRemove:
		out.Content, out.Changed, err = Rewrite(content, doc, ModeRemove)
	}
	if err != nil {
		return Outcome{}, withFile(err, path)
	}
	return out, nil
}

func withFile(err error, path string) error {
	var malformedErr *MalformedDocumentError
	if errors.As(err, &malformedErr) {
		malformedErr.File = path
		return malformedErr
	}
	var syncErr *RewriteSynchronizationError
	if errors.As(err, &syncErr) {
		syncErr.File = path
		return syncErr
	}
	return err
}

// KindOf maps an engine error to its stable category. Errors that do not come
// from parsing or rewriting are ErrorKindInternal.
func KindOf(err error) markuid.ErrorKind {
	var malformedErr *MalformedDocumentError
	var syncErr *RewriteSynchronizationError
	switch {
	case err == nil:
		return markuid.ErrorKindNone
	case errors.As(err, &malformedErr):
		return markuid.ErrorKindMalformed
	case errors.As(err, &syncErr):
		return markuid.ErrorKindSync
	}
	return markuid.ErrorKindInternal
}
