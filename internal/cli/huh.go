package cli

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/capstonehub/internal/cli/formatter"
	"github.com/alexanderramin/capstonehub/internal/dialog"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// hubHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func hubHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// draftForm builds a huh form for a dialog's fields seeded from draft. The
// returned map receives the edited values when the form completes.
func draftForm(title string, form dialog.Form, draft domain.Draft) (*huh.Form, map[string]*string) {
	values := make(map[string]*string, len(form.Fields))
	fields := make([]huh.Field, 0, len(form.Fields))

	for _, f := range form.Fields {
		v := draft[f.Name]
		values[f.Name] = &v
		label := f.Label
		if f.Required {
			label += " *"
		}

		switch f.Kind {
		case dialog.KindSelect:
			opts := f.Options
			if v != "" && !slices.Contains(opts, v) {
				opts = append([]string{v}, opts...)
			}
			if !f.Required {
				opts = append([]string{""}, opts...)
			}
			fields = append(fields, huh.NewSelect[string]().
				Title(label).
				Options(huh.NewOptions(opts...)...).
				Value(values[f.Name]))
		case dialog.KindTextarea:
			fields = append(fields, huh.NewText().
				Title(label).
				Value(values[f.Name]))
		default:
			fields = append(fields, huh.NewInput().
				Title(label).
				Value(values[f.Name]).
				Validate(inputValidator(f)))
		}
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).WithTheme(hubHuhTheme()).WithShowHelp(false), values
}

func inputValidator(f dialog.Field) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if f.Required {
				return errors.New("required")
			}
			return nil
		}
		if f.Kind == dialog.KindNumber {
			if _, err := strconv.Atoi(s); err != nil {
				return errors.New("enter a whole number")
			}
		}
		return nil
	}
}

// passwordForm prompts for the admin password without echoing it.
func passwordForm(result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(result),
		),
	).WithTheme(hubHuhTheme()).WithShowHelp(false)
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(hubHuhTheme()).WithShowHelp(false)
}
