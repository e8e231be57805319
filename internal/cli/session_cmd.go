package cli

import (
	"fmt"

	"github.com/boulderlog/boulderlog/internal/cli/formatter"
	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start, end and review climbing sessions",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionEndCmd(app),
		newSessionShowCmd(app),
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
		newSessionCheckCmd(app),
		newSessionRepairCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *App) *cobra.Command {
	data := domain.DefaultPreSessionData()
	var interactive bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Fill in the pre-session check-in and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if interactive || (cmd.Flags().NFlag() == 0 && app.interactive()) {
				fields := &preSessionFields{data: data}
				if err := preSessionForm(fields).Run(); err != nil {
					return err
				}
				data = fields.result()
			}

			sess, err := app.Sessions.StartSession(ctx, data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Started session %s\n",
				formatter.StyleGreen.Render("✔"), formatter.TruncID(sess.ID))
			return nil
		},
	}

	bindPreSessionFlags(cmd.Flags(), &data)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the check-in with a form")

	return cmd
}

func newSessionEndCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "end [ID]",
		Short: "End the active session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}

			sess, err := app.Sessions.EndSession(ctx, id, notes)
			if err != nil {
				return err
			}

			st := sess.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Ended session %s after %s: %d problems, %d flashes, %d sends\n",
				formatter.StyleGreen.Render("✔"),
				formatter.TruncID(sess.ID),
				formatter.FormatMinutes(*sess.Duration),
				st.UniqueProblems, st.Flashes, st.Sends)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Post-session notes")

	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a session with its problems (default: the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			sess, err := app.Sessions.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Session", formatter.FormatSessionDetail(sess, app.now())))
			return nil
		},
	}
}

func newSessionListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
				return nil
			}
			if limit > 0 && len(sessions) > limit {
				sessions = sessions[:limit]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Sessions", formatter.FormatSessionList(sessions, app.now())))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many sessions")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a session with its problems and attempts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := app.Sessions.ResolveID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newSessionCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check [ID]",
		Short: "Compare a session's embedded problem list with its problem rows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			drift, err := app.Sessions.CheckSnapshot(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(drift) == 0 {
				fmt.Fprintf(out, "%s Session %s is consistent\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(id))
				return nil
			}
			fmt.Fprintf(out, "%s Session %s has %d inconsistencies:\n", formatter.StyleYellow.Render("!"), formatter.TruncID(id), len(drift))
			for _, d := range drift {
				fmt.Fprintf(out, "  %s\n", d)
			}
			fmt.Fprintln(out, formatter.Dim("Run 'boulderlog session repair' to rebuild it."))
			return nil
		},
	}
}

func newSessionRepairCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "repair [ID]",
		Short: "Rebuild a session's embedded problem list from its rows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}
			sess, err := app.Sessions.RepairSnapshot(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Rebuilt session %s with %d problems\n",
				formatter.StyleGreen.Render("✔"), formatter.TruncID(sess.ID), len(sess.Problems))
			return nil
		},
	}
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
