package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/markuid/pkg/markuid"
)

var updateCmd = &cobra.Command{
	Use:   "update [paths...]",
	Short: "Add missing identifiers and repair duplicates",
	Long: `Give every element a unique identifier.

Elements without an identifier get one derived from their x:Name (or Name)
when that value is free, otherwise from the element name and the next free
number ("Button_3"). Of several elements sharing a value, the first keeps it
and the others are renumbered. Valid identifiers are never changed, and a
file that is already valid is not touched at all.

Examples:
  # Update every XAML file under the current directory
  markuid update

  # Preview the files that would change
  markuid update ./Views --dry-run

  # Use a project configuration from another directory
  markuid update ./src --config ./build`,
	Args: OptionalPaths,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(cmd, args, markuid.OperationUpdate, updateFlags)
	},
}

var updateFlags operationFlags

func init() {
	rootCmd.AddCommand(updateCmd)
	addOperationFlags(updateCmd, &updateFlags, true)
}
