package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/markuid/pkg/markuid"
)

// Options controls how a run is reported.
type Options struct {
	// JSON selects machine-readable output.
	JSON bool

	// DryRun phrases changes as "would update" and marks the JSON report.
	DryRun bool

	// Color enables lipgloss styling of the human report.
	Color bool
}

// Write renders result to w.
func Write(w io.Writer, result markuid.RunResult, opts Options) error {
	if opts.JSON {
		return writeJSON(w, result, opts.DryRun)
	}
	writeHuman(w, result, opts.DryRun, NewStyles(opts.Color))
	return nil
}

type jsonSummary struct {
	Files       int `json:"files"`
	Processed   int `json:"processed"`
	Failed      int `json:"failed"`
	Invalid     int `json:"invalid"`
	Changed     int `json:"changed"`
	Diagnostics int `json:"diagnostics"`
}

type jsonFile struct {
	Path        string               `json:"path"`
	Valid       bool                 `json:"valid"`
	Changed     bool                 `json:"changed"`
	Checksum    string               `json:"checksum,omitempty"`
	Diagnostics []markuid.Diagnostic `json:"diagnostics,omitempty"`
	Error       string               `json:"error,omitempty"`
	ErrorKind   markuid.ErrorKind    `json:"error_kind,omitempty"`
}

type jsonReport struct {
	RunID     string      `json:"run_id"`
	Operation string      `json:"operation"`
	DryRun    bool        `json:"dry_run,omitempty"`
	Summary   jsonSummary `json:"summary"`
	Files     []jsonFile  `json:"files"`
}

func writeJSON(w io.Writer, result markuid.RunResult, dryRun bool) error {
	report := jsonReport{
		RunID:     result.RunID.String(),
		Operation: result.Operation.String(),
		DryRun:    dryRun,
		Summary: jsonSummary{
			Files:     len(result.Results),
			Processed: result.Processed,
			Failed:    result.Failed,
			Invalid:   result.InvalidFiles(),
			Changed:   result.ChangedFiles(),
		},
		Files: make([]jsonFile, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		f := jsonFile{
			Path:        res.Path,
			Valid:       res.Valid,
			Changed:     res.Changed,
			Checksum:    res.Checksum,
			Diagnostics: res.Diagnostics,
			ErrorKind:   res.ErrorKind,
		}
		if res.Err != nil {
			f.Error = res.Err.Error()
		}
		report.Summary.Diagnostics += len(res.Diagnostics)
		report.Files = append(report.Files, f)
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

func writeHuman(w io.Writer, result markuid.RunResult, dryRun bool, s Styles) {
	diagnostics := 0
	for _, res := range result.Results {
		diagnostics += len(res.Diagnostics)

		switch {
		case res.Failed():
			fmt.Fprintf(w, "%s %s\n", s.Error.Render(SymbolCross), s.Path.Render(res.Path))
			for _, line := range strings.Split(res.Err.Error(), "\n") {
				if line != "" {
					fmt.Fprintf(w, "    %s\n", s.Error.Render(line))
				}
			}
		case res.Changed:
			fmt.Fprintf(w, "%s %s %s\n", s.Success.Render(SymbolCheck), s.Path.Render(res.Path), s.Muted.Render("("+changedVerb(result.Operation, dryRun)+")"))
		case result.Operation == markuid.OperationCheck && !res.Valid:
			fmt.Fprintf(w, "%s %s\n", s.Warning.Render(SymbolCross), s.Path.Render(res.Path))
		}

		if result.Operation != markuid.OperationCheck {
			continue
		}
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "    %s %s %s\n", SymbolBullet, s.Location.Render(fmt.Sprintf("%d:%d", d.Line, d.Column)), describe(d))
		}
	}

	total := len(result.Results)
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Title.Render(summaryTitle(result.Operation, dryRun)))

	switch result.Operation {
	case markuid.OperationCheck:
		invalid := result.InvalidFiles()
		if invalid == 0 && result.Failed == 0 {
			fmt.Fprintf(w, "%s %d file(s) checked, all identifiers present and unique\n", s.Success.Render(SymbolCheck), total)
		} else if invalid > 0 {
			fmt.Fprintf(w, "%s %d of %d file(s) have missing or duplicate identifiers (%d diagnostic(s))\n",
				s.Warning.Render(SymbolCross), invalid, total, diagnostics)
		}
	default:
		fmt.Fprintf(w, "%s %s %d of %d file(s)\n", s.Success.Render(SymbolCheck), capitalize(changedVerb(result.Operation, dryRun)), result.ChangedFiles(), total)
	}

	if result.Failed > 0 {
		fmt.Fprintf(w, "%s %d file(s) could not be processed\n", s.Error.Render(SymbolCross), result.Failed)
	}
}

func describe(d markuid.Diagnostic) string {
	if d.Kind == markuid.DiagnosticDuplicate {
		return fmt.Sprintf("<%s> duplicate identifier %q", d.Element, d.Value)
	}
	return fmt.Sprintf("<%s> missing identifier", d.Element)
}

func changedVerb(op markuid.Operation, dryRun bool) string {
	switch {
	case op == markuid.OperationRemove && dryRun:
		return "would remove identifiers from"
	case op == markuid.OperationRemove:
		return "removed identifiers from"
	case dryRun:
		return "would update"
	}
	return "updated"
}

func summaryTitle(op markuid.Operation, dryRun bool) string {
	title := "Summary (" + op.String()
	if dryRun {
		title += ", dry run"
	}
	return title + ")"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
