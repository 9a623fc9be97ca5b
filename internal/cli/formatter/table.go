package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxCellWidth caps a column so long descriptions do not wrap the terminal.
const maxCellWidth = 48

// RenderTable renders a simple aligned table with a header separator line.
// Cells wider than maxCellWidth are truncated. Width is measured on visible
// cells so styled values line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, cols)
		for i := 0; i < cols && i < len(row); i++ {
			cells[r][i] = Truncate(row[i], maxCellWidth)
		}
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	const colGap = 2
	var b strings.Builder
	writeRow := func(row []string, style func(string) string) {
		for i, cell := range row {
			b.WriteString(style(cell))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range cells {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
