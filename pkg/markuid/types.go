package markuid

import (
	"fmt"

	"github.com/google/uuid"
)

// Operation selects what the engine does with each file.
type Operation int

const (
	OperationCheck  Operation = iota // Report missing and duplicate identifiers
	OperationUpdate                  // Add missing identifiers and repair duplicates
	OperationRemove                  // Strip every identifier attribute
)

// String returns a human-readable string representation of the Operation.
func (o Operation) String() string {
	switch o {
	case OperationCheck:
		return "check"
	case OperationUpdate:
		return "update"
	case OperationRemove:
		return "remove"
	default:
		return fmt.Sprintf("Unknown(%d)", o)
	}
}

// IsValid returns true if the Operation is a valid, defined value.
func (o Operation) IsValid() bool {
	return o >= OperationCheck && o <= OperationRemove
}

// Mutates reports whether the operation may rewrite files.
func (o Operation) Mutates() bool {
	return o == OperationUpdate || o == OperationRemove
}

// FileRequest names one file to process.
type FileRequest struct {
	// Path is the markup file to inspect and, for mutating operations, replace.
	Path string

	// IntermediateDir overrides the directory used for temporary and backup
	// files of this request. Empty means the runner's default.
	IntermediateDir string
}

// DiagnosticKind classifies a non-valid identifier site.
type DiagnosticKind string

const (
	DiagnosticAbsent    DiagnosticKind = "absent"
	DiagnosticDuplicate DiagnosticKind = "duplicate"
)

// Diagnostic reports one element whose identifier is missing or duplicated.
type Diagnostic struct {
	File    string         `json:"file"`
	Element string         `json:"element"`
	Line    int            `json:"line"`
	Column  int            `json:"column"`
	Kind    DiagnosticKind `json:"kind"`
	Value   string         `json:"value,omitempty"` // Colliding value, duplicates only
}

// String formats the diagnostic the way compilers report locations.
func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagnosticDuplicate:
		return fmt.Sprintf("%s(%d,%d): element <%s> has duplicate identifier %q", d.File, d.Line, d.Column, d.Element, d.Value)
	default:
		return fmt.Sprintf("%s(%d,%d): element <%s> has no identifier", d.File, d.Line, d.Column, d.Element)
	}
}

// ErrorKind is a stable category for per-file failures.
type ErrorKind string

const (
	ErrorKindNone        ErrorKind = ""
	ErrorKindMalformed   ErrorKind = "malformed-document"
	ErrorKindSync        ErrorKind = "rewrite-synchronization"
	ErrorKindTransaction ErrorKind = "transaction"
	ErrorKindIO          ErrorKind = "io"
	ErrorKindCanceled    ErrorKind = "canceled"
	ErrorKindInternal    ErrorKind = "internal"
)

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path      string
	Operation Operation

	// Valid is true when every eligible element carried a unique identifier
	// before the operation ran.
	Valid bool

	// Changed is true when new content was produced (and, unless dry-run,
	// swapped into place).
	Changed bool

	// Diagnostics lists non-valid sites. Populated for every operation.
	Diagnostics []Diagnostic

	// Checksum is the SHA-256 of the content that was read.
	Checksum string

	Err       error
	ErrorKind ErrorKind
}

// Failed reports whether processing the file failed.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// RunResult aggregates per-file results for one invocation.
type RunResult struct {
	RunID     uuid.UUID
	Operation Operation
	Results   []FileResult

	// Processed counts files that were handled without error.
	Processed int

	// Failed counts files whose processing returned an error.
	Failed int
}

// InvalidFiles returns the number of files that had at least one diagnostic.
func (r RunResult) InvalidFiles() int {
	n := 0
	for _, res := range r.Results {
		if !res.Failed() && !res.Valid {
			n++
		}
	}
	return n
}

// ChangedFiles returns the number of files that were rewritten.
func (r RunResult) ChangedFiles() int {
	n := 0
	for _, res := range r.Results {
		if res.Changed {
			n++
		}
	}
	return n
}
