package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/markuid/pkg/markuid"
)

// OptionalPaths accepts any number of file or directory arguments but rejects
// empty ones, which usually come from an unset shell variable.
func OptionalPaths(cmd *cobra.Command, args []string) error {
	for i, arg := range args {
		if arg == "" {
			return fmt.Errorf(`argument %d is empty: %w

Usage: %s

Example:
  %s ./src/Views`, i+1, markuid.ErrUsage, cmd.UseLine(), cmd.CommandPath())
		}
	}
	return nil
}
