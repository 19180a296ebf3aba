package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/markuid/pkg/markuid"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report missing and duplicate identifiers",
	Long: `Report every element whose identifier is missing or shared with another
element of the same file. Files are never modified.

Each finding is listed with its line and column. The exit code is 20 when
at least one file needs an update.

Examples:
  # Check every XAML file under the current directory
  markuid check

  # Check two folders and a single file
  markuid check ./Views ./Controls ./App.xaml

  # Machine-readable output for CI
  markuid check ./src --json`,
	Args: OptionalPaths,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, args, markuid.OperationCheck, checkFlags)
	},
}

var checkFlags operationFlags

func init() {
	rootCmd.AddCommand(checkCmd)
	addOperationFlags(checkCmd, &checkFlags, false)
}
