package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capstonehub/internal/render"
	"github.com/charmbracelet/lipgloss"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorDim).
	Padding(0, 1).
	Width(60)

// FormatCard renders one card as a bordered block. Controls are listed as
// the commands that perform them.
func FormatCard(c render.Card) string {
	var b strings.Builder
	b.WriteString(Bold(c.Title))
	if badge := Badge(c.Badge, c.BadgeClass); badge != "" {
		b.WriteString("  " + badge)
	}
	b.WriteString("\n")
	for _, f := range c.Fields {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(f.Label+":"), f.Value))
	}
	if c.HasControls() {
		var actions []string
		if c.CanEdit {
			actions = append(actions, fmt.Sprintf("edit %s %d", c.Section, c.ID))
		}
		if c.CanDelete {
			actions = append(actions, fmt.Sprintf("delete %s %d", c.Section, c.ID))
		}
		b.WriteString(StyleBlue.Render(strings.Join(actions, "  ·  ")))
	}
	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// FormatState renders an empty or failed block.
func FormatState(s render.State) string {
	title := StyleYellow.Render(s.Title)
	if s.Failed {
		title = StyleRed.Render("✖ " + s.Title)
	}
	return title + "\n" + Dim(s.Text)
}

// FormatCollection renders a section's collection the way the dashboard
// lays it out: the failed block first, then cards or per-pane groups, then
// the empty block.
func FormatCollection(c render.Collection) string {
	var parts []string
	if c.Failed != nil {
		parts = append(parts, FormatState(*c.Failed))
	}
	if len(c.Panes) > 0 {
		for _, p := range c.Panes {
			parts = append(parts, Header(string(p.ToolType)+" Tools"))
			if p.Empty != nil {
				parts = append(parts, FormatState(*p.Empty))
				continue
			}
			parts = append(parts, formatCards(p.Cards))
		}
		return strings.Join(parts, "\n\n") + "\n"
	}
	if len(c.Cards) > 0 {
		parts = append(parts, formatCards(c.Cards))
	}
	if c.Empty != nil {
		parts = append(parts, FormatState(*c.Empty))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func formatCards(cards []render.Card) string {
	blocks := make([]string, len(cards))
	for i, c := range cards {
		blocks[i] = FormatCard(c)
	}
	return strings.Join(blocks, "\n")
}
