package cli

import (
	"fmt"

	"github.com/boulderlog/boulderlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGradesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grades",
		Short: "List French grades and gym color grades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGrades())
			return nil
		},
	}
}
