package reportlib

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NoArgs rejects any non-empty positional argument.
func NoArgs(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if len(arg) > 0 {
			return fmt.Errorf("%q does not take any arguments, got %q", cmd.CommandPath(), args)
		}
	}
	return nil
}
