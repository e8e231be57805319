package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/live"
	"github.com/boulderlog/boulderlog/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and runtime hooks used by CLI commands.
type App struct {
	Sessions service.SessionService
	Catalog  service.CatalogService

	// Hub delivers store change notifications to the live session view.
	// Nil disables live refresh.
	Hub *live.Hub

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Now is the clock used for display. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "boulderlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "boulderlog",
		Short:         "Bouldering session logger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSessionCmd(app),
		newProblemCmd(app),
		newAttemptCmd(app),
		newExportCmd(app),
		newGradesCmd(),
		newCatalogCmd(app),
		newWatchCmd(app),
	)

	return root
}

// FriendlyError rewrites domain errors into messages that tell the user what
// to do next. Other errors pass through unchanged.
func FriendlyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrActiveSessionExists):
		return fmt.Errorf("%w (finish it with 'boulderlog session end')", err)
	case errors.Is(err, domain.ErrSessionNotActive):
		return fmt.Errorf("%w (start one with 'boulderlog session start')", err)
	default:
		return err
	}
}
