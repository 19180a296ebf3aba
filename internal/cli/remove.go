package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/markuid/pkg/markuid"
)

var removeCmd = &cobra.Command{
	Use:   "remove [paths...]",
	Short: "Strip every identifier attribute",
	Long: `Delete every identifier attribute together with the space in front of it.
The namespace declaration is left in place.

Examples:
  # Remove identifiers from one file
  markuid remove ./Views/MainWindow.xaml

  # Preview which files would change
  markuid remove ./src --dry-run`,
	Args: OptionalPaths,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, args, markuid.OperationRemove, removeFlags)
	},
}

var removeFlags operationFlags

func init() {
	rootCmd.AddCommand(removeCmd)
	addOperationFlags(removeCmd, &removeFlags, true)
}
