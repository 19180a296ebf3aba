// Package report renders the outcome of a run for people and for tools.
//
// The human report lists each file that is invalid, changed or failed,
// followed by a short summary. Styling uses lipgloss and is switched off when
// the output is not a terminal. The JSON report carries the run identifier,
// summary counters and every per-file result.
package report
