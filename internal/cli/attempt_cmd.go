package cli

import (
	"fmt"

	"github.com/boulderlog/boulderlog/internal/cli/formatter"
	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/spf13/cobra"
)

func newAttemptCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attempt",
		Short: "Log attempts on problems of the active session",
	}
	cmd.AddCommand(newAttemptLogCmd(app))
	return cmd
}

func newAttemptLogCmd(app *App) *cobra.Command {
	typ := domain.AttemptTypeAttempt
	var notes, sessionFlag string
	var force bool

	cmd := &cobra.Command{
		Use:   "log PROBLEM",
		Short: "Log an attempt, flash or send on a problem (by name or id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessionID, err := resolveSessionID(ctx, app, sessionFlag)
			if err != nil {
				return err
			}
			sess, err := app.Sessions.Get(ctx, sessionID)
			if err != nil {
				return err
			}
			target, err := resolveProblem(sess, args[0])
			if err != nil {
				return err
			}
			if !force && !target.CanLog(typ) {
				return fmt.Errorf("%w: cannot log a %s on %q (%s); use --force to log anyway",
					domain.ErrValidation, typ, target.Name, target.Status())
			}

			p, err := app.Sessions.AddAttempt(ctx, sessionID, target.ID, typ, notes)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged %s on %s: %d attempts %s\n",
				formatter.StyleGreen.Render("✔"),
				typ,
				formatter.Bold(p.Name),
				len(p.Attempts),
				formatter.ProblemStatusPill(p.Status()))
			return nil
		},
	}

	cmd.Flags().VarP(attemptTypeFlag(&typ), "type", "t", "Attempt type: attempt, flash or send")
	cmd.Flags().StringVar(&notes, "notes", "", "Attempt notes")
	cmd.Flags().StringVar(&sessionFlag, "session", "", "Session ID (default: the active session)")
	cmd.Flags().BoolVar(&force, "force", false, "Log even when the problem is already completed")

	return cmd
}
