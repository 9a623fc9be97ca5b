package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/hub"
	"github.com/alexanderramin/capstonehub/internal/render"
	"github.com/spf13/cobra"
)

// App holds what the CLI commands need: the hub, the HTML renderer and a
// few process-level hooks.
type App struct {
	Hub      *hub.Hub
	Renderer *render.Renderer
	Logger   *slog.Logger

	// IsInteractive reports whether prompts may be shown. When nil or false
	// commands only read flags.
	IsInteractive func() bool
	// Now is the clock used for relative due dates; defaults to time.Now.
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

// NewRootCmd creates the top-level "capstonehub" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "capstonehub",
		Short:         "Browse and edit the Capstone Hub collections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWhoamiCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newListCmd(app),
		newRenderCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
		newOptionsCmd(app),
		newDashboardCmd(app),
		newServeCmd(app),
	)

	return root
}

func sectionNames() []string {
	names := make([]string, len(domain.Sections))
	for i, s := range domain.Sections {
		names[i] = string(s)
	}
	return names
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
