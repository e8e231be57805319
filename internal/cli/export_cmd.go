package cli

import (
	"fmt"
	"os"

	"github.com/boulderlog/boulderlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string
	var push bool

	cmd := &cobra.Command{
		Use:   "export [ID]",
		Short: "Export a session as comma separated text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, argOrEmpty(args))
			if err != nil {
				return err
			}

			text, err := app.Sessions.Export(ctx, id)
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			} else {
				if err := os.WriteFile(outPath, []byte(text+"\n"), 0o644); err != nil {
					return fmt.Errorf("writing export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s Wrote %s\n", formatter.StyleGreen.Render("✔"), outPath)
			}

			if push {
				if err := app.Sessions.Push(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s Pushed session %s\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(id))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&push, "push", false, "Also send the session to the configured spreadsheet")

	return cmd
}
