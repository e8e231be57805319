package cli

import (
	"fmt"

	"github.com/boulderlog/boulderlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProblemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Add problems to the active session",
	}
	cmd.AddCommand(newProblemAddCmd(app))
	return cmd
}

func newProblemAddCmd(app *App) *cobra.Command {
	var frenchGrade, colorGrade, sessionFlag string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a problem with a French grade, a gym color, or both",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessionID, err := resolveSessionID(ctx, app, sessionFlag)
			if err != nil {
				return err
			}

			p, err := app.Sessions.AddProblem(ctx, sessionID, args[0], frenchGrade, colorGrade)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s (%s) %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(p.Name),
				p.GradeLabel(),
				formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&frenchGrade, "french", "f", "", "French grade, e.g. 6a+")
	cmd.Flags().StringVarP(&colorGrade, "color", "c", "", "Gym color grade, e.g. Napakka")
	cmd.Flags().StringVar(&sessionFlag, "session", "", "Session ID (default: the active session)")

	return cmd
}
