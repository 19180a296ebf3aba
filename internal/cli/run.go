package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/markuid/internal/files/discovery"
	"github.com/vvka-141/markuid/internal/files/filesystem"
	"github.com/vvka-141/markuid/internal/logging"
	"github.com/vvka-141/markuid/internal/report"
	"github.com/vvka-141/markuid/internal/runner"
	"github.com/vvka-141/markuid/internal/uid"
	"github.com/vvka-141/markuid/pkg/markuid"
)

// addOperationFlags registers the flags every operation accepts. Mutating
// operations also get --dry-run.
func addOperationFlags(cmd *cobra.Command, flags *operationFlags, mutating bool) {
	cmd.Flags().StringVar(&flags.configDir, "config", "",
		"Directory containing markuid.yaml; also the project root (default: current directory)")
	cmd.Flags().StringVar(&flags.intermediateDir, "intermediate-dir", "",
		"Directory for temporary and backup files (default: obj/markuid under the project root)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0,
		fmt.Sprintf("Number of files processed concurrently (default: %d)", markuid.DefaultWorkers))
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output results as JSON")
	if mutating {
		cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report what would change without writing files")
	}
}

// executeOperation discovers the files named by paths, runs op over them and
// writes the report to stdout. Logs go to stderr.
func executeOperation(ctx context.Context, op markuid.Operation, paths []string, flags operationFlags, verbose bool, stdout, stderr io.Writer) error {
	logger := logging.NewConsoleLoggerWithWriter(stderr, verbose)

	if len(paths) == 0 {
		paths = []string{"."}
	}

	s, err := resolveSettings(flags, lookupEnv, logger)
	if err != nil {
		return err
	}
	cfg := s.Config

	engine, err := uid.NewEngine(cfg.Options())
	if err != nil {
		return err
	}

	finder, err := discovery.NewFinder(cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}
	files, err := finder.Find(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%s: %w", strings.Join(paths, ", "), markuid.ErrNoFiles)
	}
	logger.Verbose("found %d file(s)", len(files))

	requests := make([]markuid.FileRequest, len(files))
	for i, f := range files {
		requests[i] = markuid.FileRequest{Path: f}
	}

	r := runner.New(engine, filesystem.NewOSFileSystem(), logger,
		runner.WithWorkers(cfg.Workers),
		runner.WithIntermediateDir(s.IntermediateDir),
		runner.WithDryRun(flags.dryRun),
	)

	result, runErr := r.Run(ctx, requests, op)
	if result.Results == nil && runErr != nil {
		return runErr
	}

	opts := report.Options{
		JSON:   flags.json,
		DryRun: flags.dryRun,
		Color:  !flags.json && report.ColorEnabled(stdout),
	}
	if err := report.Write(stdout, result, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return runErr
}

// runOperation adapts executeOperation to a cobra RunE.
func runOperation(cmd *cobra.Command, args []string, op markuid.Operation, flags operationFlags) error {
	return executeOperation(cmd.Context(), op, args, flags, getVerboseFlag(cmd), cmd.OutOrStdout(), cmd.ErrOrStderr())
}
