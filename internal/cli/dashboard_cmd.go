package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/capstonehub/internal/cli/formatter"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/store"
	"github.com/alexanderramin/capstonehub/internal/web"
	"github.com/spf13/cobra"
)

const dashboardProgressWidth = 20

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Load every section and show counts and the deliverable timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Loading collections...")
			}
			session := app.Hub.Auth.Resolve(ctx)
			loadErr := app.Hub.LoadAll(ctx)
			stop()

			rows := make([][]string, 0, len(domain.Sections))
			for _, sec := range domain.Sections {
				snap := app.Hub.Snapshot(sec)
				state := formatter.StyleGreen.Render("loaded")
				if snap.State == store.LoadFailed {
					state = formatter.StyleRed.Render("failed")
				}
				rows = append(rows, []string{sec.Label(), strconv.Itoa(len(snap.Items)), state})
			}

			var b strings.Builder
			b.WriteString(formatSession(session) + "\n\n")
			b.WriteString(formatter.RenderTable([]string{"SECTION", "COUNT", "STATE"}, rows))

			deliverables := app.Hub.Deliverables.Snapshot().Items
			if len(deliverables) > 0 {
				statuses := make([]string, len(deliverables))
				for i, d := range deliverables {
					statuses[i] = d.Status
				}
				ratio := formatter.CompletionRatio(statuses, string(domain.StatusCompleted))
				b.WriteString("\n" + formatter.Bold("Completed ") + formatter.RenderProgress(ratio, dashboardProgressWidth) + "\n\n")
				now := app.now()
				b.WriteString(formatter.RenderTree(formatter.TimelineTree(deliverables, func(date string) string {
					return formatter.DueLabel(date, now)
				})))
			}

			fmt.Fprintln(out, formatter.RenderBox("Capstone Hub", strings.TrimRight(b.String(), "\n")))
			return loadErr
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard on a local address",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := web.NewServer(app.Hub, app.Renderer, app.Logger)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving dashboard on http://%s\n", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	return cmd
}
