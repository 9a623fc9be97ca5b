package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/capstonehub/internal/cli/formatter"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the role the server grants this session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Hub.Auth.Resolve(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), formatSession(s))
			return nil
		},
	}
}

func newLoginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" && app.interactive() {
				if err := passwordForm(&password).Run(); err != nil {
					return err
				}
			}
			if password == "" {
				return errors.New("password is required (use --password)")
			}
			s, err := app.Hub.Auth.Login(cmd.Context(), password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatSession(s))
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the server session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Hub.Auth.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), formatSession(s))
			return err
		},
	}
}

func formatSession(s domain.Session) string {
	var perms []string
	p := s.Permissions
	for _, g := range []struct {
		ok   bool
		name string
	}{
		{p.CanEdit, "edit"},
		{p.CanDelete, "delete"},
		{p.CanExport, "export"},
		{p.CanManageIntegrations, "manage-integrations"},
		{p.CanViewAnalytics, "view-analytics"},
	} {
		if g.ok {
			perms = append(perms, g.name)
		}
	}
	if len(perms) == 0 {
		perms = []string{"none"}
	}
	return fmt.Sprintf("%s  %s", formatter.RoleBadge(s), formatter.Dim(strings.Join(perms, ", ")))
}
