package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BadgeStyle picks a color for a badge class produced by the card builder,
// such as "status-completed" or "priority-high".
func BadgeStyle(class string) lipgloss.Style {
	_, value, _ := strings.Cut(class, "-")
	switch value {
	case "completed", "active", "high":
		return StyleGreen
	case "in-progress", "medium", "primary":
		return StyleYellow
	case "overdue", "error", "low":
		return StyleRed
	case "not-started", "inactive":
		return StyleDim
	default:
		return StylePurple
	}
}

// Badge renders text as a bracketed pill in the badge class color.
func Badge(text, class string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return BadgeStyle(class).Render(fmt.Sprintf("● %s", text))
}

// RoleBadge renders the current session role.
func RoleBadge(s domain.Session) string {
	if s.IsAdmin() {
		return StyleGreen.Render("● ADMIN")
	}
	return StyleDim.Render("○ VIEWER")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
