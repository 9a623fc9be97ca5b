package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/capstonehub/internal/cli/formatter"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/spf13/cobra"
)

func newOptionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Manage the department and automation potential choices",
	}

	cmd.AddCommand(
		newOptionsListCmd(app),
		newOptionsAddCmd(app),
		newOptionsRemoveCmd(app),
		newOptionsReplaceCmd(app),
		newOptionsResetCmd(app),
	)
	return cmd
}

func newOptionsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show both option lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.Hub.Options.Get(cmd.Context())
			if err != nil {
				return err
			}
			printOptionSets(cmd.OutOrStdout(), sets)
			return nil
		},
	}
}

func newOptionsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category> <value>",
		Short: "Add a choice (category: departments or automation)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := domain.ParseOptionCategory(args[0])
			if err != nil {
				return err
			}
			sets, err := app.Hub.Options.Add(cmd.Context(), cat, args[1])
			if err != nil {
				return err
			}
			printOptionSets(cmd.OutOrStdout(), sets)
			return nil
		},
	}
}

func newOptionsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <category> <value>",
		Short: "Remove a choice; the last one cannot be removed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := domain.ParseOptionCategory(args[0])
			if err != nil {
				return err
			}
			sets, err := app.Hub.Options.Remove(cmd.Context(), cat, args[1])
			if err != nil {
				return err
			}
			printOptionSets(cmd.OutOrStdout(), sets)
			return nil
		},
	}
}

func newOptionsReplaceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "replace <category> <value>...",
		Short: "Replace a whole option list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := domain.ParseOptionCategory(args[0])
			if err != nil {
				return err
			}
			sets, err := app.Hub.Options.Replace(cmd.Context(), cat, args[1:])
			if err != nil {
				return err
			}
			printOptionSets(cmd.OutOrStdout(), sets)
			return nil
		},
	}
}

func newOptionsResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore both lists to their defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.Hub.Options.Reset(cmd.Context())
			if err != nil {
				return err
			}
			printOptionSets(cmd.OutOrStdout(), sets)
			return nil
		},
	}
}

func printOptionSets(w io.Writer, sets domain.OptionSets) {
	var rows [][]string
	for _, cat := range domain.OptionCategories {
		for i, v := range sets.Values(cat) {
			label := ""
			if i == 0 {
				label = string(cat)
			}
			rows = append(rows, []string{label, v})
		}
	}
	fmt.Fprint(w, formatter.RenderTable([]string{"CATEGORY", "OPTION"}, rows))
}
