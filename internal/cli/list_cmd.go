package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/capstonehub/internal/cli/formatter"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/filter"
	"github.com/alexanderramin/capstonehub/internal/hub"
	"github.com/alexanderramin/capstonehub/internal/render"
	"github.com/alexanderramin/capstonehub/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// filterFlags binds one string flag per selection name used by any section.
type filterFlags map[string]*string

func addFilterFlags(fs *pflag.FlagSet) filterFlags {
	ff := filterFlags{}
	for _, sec := range domain.Sections {
		for _, name := range filter.Params(sec) {
			if _, ok := ff[name]; ok {
				continue
			}
			ff[name] = fs.String(name, "", fmt.Sprintf("Filter by %s (\"all\" or blank shows everything)", name))
		}
	}
	return ff
}

func (ff filterFlags) selections(sec domain.Section) map[string]string {
	out := map[string]string{}
	for _, name := range filter.Params(sec) {
		if v, ok := ff[name]; ok {
			out[name] = *v
		}
	}
	return out
}

// load refreshes sec and returns the filtered snapshot. A failed refresh
// still returns the snapshot so the failed state can be shown.
func load(ctx context.Context, app *App, sec domain.Section, selections map[string]string) (hub.Snapshot, error) {
	err := app.Hub.List(ctx, sec)
	if errors.Is(err, store.ErrStale) {
		err = nil
	}
	return app.Hub.View(sec, selections), err
}

func newListCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:       "list <section>",
		Short:     "List a section's records as cards or a table",
		Args:      cobra.ExactArgs(1),
		ValidArgs: sectionNames(),
	}
	ff := addFilterFlags(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "cards", "Output format: cards or table")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sec, err := domain.ParseSection(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		session := app.Hub.Auth.Resolve(ctx)
		snap, loadErr := load(ctx, app, sec, ff.selections(sec))

		out := cmd.OutOrStdout()
		switch format {
		case "cards":
			fmt.Fprint(out, formatter.FormatCollection(render.BuildCollection(sec, snap.Items, session, snap.State)))
		case "table":
			fmt.Fprint(out, recordTable(sec, snap, session))
		default:
			return fmt.Errorf("unknown format %q (valid: cards, table)", format)
		}
		return loadErr
	}
	return cmd
}

func recordTable(sec domain.Section, snap hub.Snapshot, session domain.Session) string {
	if snap.State == store.LoadFailed && len(snap.Items) == 0 {
		return formatter.FormatState(render.FailedState(sec)) + "\n"
	}
	cards := render.Cards(sec, snap.Items, session)
	if len(cards) == 0 {
		return formatter.FormatState(render.EmptyState(sec)) + "\n"
	}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		detail := ""
		if len(c.Fields) > 0 {
			detail = c.Fields[0].Value
		}
		rows = append(rows, []string{strconv.Itoa(c.ID), c.Title, formatter.Badge(c.Badge, c.BadgeClass), detail})
	}
	return formatter.RenderTable([]string{"ID", "TITLE", "BADGE", "DETAIL"}, rows)
}

func newRenderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "render <section>",
		Short:     "Write a section's dashboard HTML fragment to stdout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: sectionNames(),
	}
	ff := addFilterFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		sec, err := domain.ParseSection(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		session := app.Hub.Auth.Resolve(ctx)
		snap, loadErr := load(ctx, app, sec, ff.selections(sec))
		if err := app.Renderer.Render(cmd.OutOrStdout(), sec, snap.Items, session, snap.State); err != nil {
			return err
		}
		return loadErr
	}
	return cmd
}
