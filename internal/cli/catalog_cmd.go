package cli

import (
	"fmt"

	"github.com/boulderlog/boulderlog/internal/cli/formatter"
	"github.com/boulderlog/boulderlog/internal/service"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "problems",
		Short: "List every problem climbed across sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			order, err := service.ParseCatalogOrder(sortFlag)
			if err != nil {
				return err
			}

			sessions, err := app.Sessions.List(ctx)
			if err != nil {
				return err
			}
			if err := app.Catalog.ImportSessions(ctx, sessions); err != nil {
				return err
			}

			problems := app.Catalog.List(ctx, order)
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No problems found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Problems", formatter.FormatCatalog(problems)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", "date", "Sort by date, difficulty or project")

	return cmd
}
