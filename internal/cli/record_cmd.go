package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/capstonehub/internal/cli/formatter"
	"github.com/alexanderramin/capstonehub/internal/dialog"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/hub"
	"github.com/alexanderramin/capstonehub/internal/store"
	"github.com/spf13/cobra"
)

// parseSets turns repeated --set field=value flags into a map.
func parseSets(sets []string) (map[string]string, error) {
	out := make(map[string]string, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --set %q (want field=value)", s)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

// fillDialog applies values to d, prompting with a form when interactive and
// no values were given on the command line.
func fillDialog(app *App, d hub.Dialog, values map[string]string) error {
	form := d.Form()
	for name := range values {
		if _, ok := form.Field(name); !ok {
			return fmt.Errorf("unknown field %q for %s (valid: %s)", name, form.Section, strings.Join(fieldNames(form), ", "))
		}
	}

	if len(values) == 0 && app.interactive() {
		v := d.View()
		f, edited := draftForm(v.Title, form, v.Draft)
		if err := f.Run(); err != nil {
			return err
		}
		values = make(map[string]string, len(edited))
		for name, p := range edited {
			values[name] = *p
		}
	}

	for _, name := range slices.Sorted(maps.Keys(values)) {
		if err := d.Set(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

func fieldNames(f dialog.Form) []string {
	out := make([]string, len(f.Fields))
	for i, fd := range f.Fields {
		out[i] = fd.Name
	}
	return out
}

// submitDialog saves d and reports the outcome the way the dialog shows it.
func submitDialog(ctx context.Context, out io.Writer, sec domain.Section, d hub.Dialog, verb string) error {
	rec, err := d.Submit(ctx)
	if err != nil {
		v := d.View()
		if v.Error != "" {
			fmt.Fprintln(out, formatter.StyleRed.Render(v.Error))
		}
		for _, name := range slices.Sorted(maps.Keys(v.FieldErrors)) {
			fmt.Fprintf(out, "%s %s\n", formatter.StyleRed.Render("✖"), v.FieldErrors[name])
		}
		return err
	}
	fmt.Fprintf(out, "%s %s #%d\n", verb, sec.Noun(), rec.RecordID())
	return nil
}

func newAddCmd(app *App) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:       "add <section>",
		Short:     "Create a record (prompts for fields when run interactively)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: sectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := domain.ParseSection(args[0])
			if err != nil {
				return err
			}
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			d := app.Hub.NewDialog(ctx, sec, nil)
			if err := d.OpenAdd(); err != nil {
				return err
			}
			if err := fillDialog(app, d, values); err != nil {
				return err
			}
			return submitDialog(ctx, cmd.OutOrStdout(), sec, d, "Created")
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as field=value (repeatable)")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:       "edit <section> <id>",
		Short:     "Update a record (prompts with current values when run interactively)",
		Args:      cobra.ExactArgs(2),
		ValidArgs: sectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := domain.ParseSection(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.Hub.List(ctx, sec); err != nil && !errors.Is(err, store.ErrStale) {
				return err
			}
			d, err := app.Hub.OpenEdit(ctx, sec, id, nil)
			if err != nil {
				return err
			}
			if err := fillDialog(app, d, values); err != nil {
				return err
			}
			return submitDialog(ctx, cmd.OutOrStdout(), sec, d, "Updated")
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as field=value (repeatable)")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "delete <section> <id>",
		Short:     "Delete a record after confirmation",
		Args:      cobra.ExactArgs(2),
		ValidArgs: sectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := domain.ParseSection(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			confirm, err := deleteConfirmer(app, yes)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.Hub.List(ctx, sec); err != nil && !errors.Is(err, store.ErrStale) {
				return err
			}
			removed, err := app.Hub.Remove(ctx, sec, id, confirm)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !removed {
				fmt.Fprintln(out, formatter.Dim("Cancelled"))
				return nil
			}
			fmt.Fprintf(out, "Deleted %s #%d\n", sec.Noun(), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func deleteConfirmer(app *App, yes bool) (store.Confirmer, error) {
	if yes {
		return store.Confirmed, nil
	}
	if !app.interactive() {
		return nil, errors.New("refusing to delete without confirmation (use --yes)")
	}
	return store.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		var ok bool
		if err := confirmForm(prompt, &ok).Run(); err != nil {
			return false, err
		}
		return ok, nil
	}), nil
}
