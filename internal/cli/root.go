package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "markuid",
	Short: "Keep XAML element identifiers present and unique",
	Long: `markuid maintains the x:Uid identifiers that localization tools use to
address elements in XAML files.

  check   report elements whose identifier is missing or duplicated
  update  add missing identifiers and repair duplicates in place
  remove  strip every identifier attribute

Files are edited at the byte level: everything except the identifier
attributes (and a namespace declaration, when one has to be added) is kept
exactly as written. Each file is replaced atomically through a temporary
file and a backup in the intermediate directory.

Paths may be files or directories. Directories are searched with the include
and exclude globs from markuid.yaml (default: **/*.xaml, skipping bin/ and obj/).

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags, no files found)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  20 - Check found missing or duplicate identifiers
  21 - At least one file could not be processed`,
	SilenceUsage: true,
}

// Execute runs the root command. An interrupt stops scheduling further files;
// files already being processed are finished.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for markuid")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
