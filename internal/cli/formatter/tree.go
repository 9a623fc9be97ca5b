package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	ID     int // record id; 0 means don't display
	Level  int
	IsLast bool
	Status string
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Completed items get a green ✔
// prefix and in-progress items an amber ▶ prefix. Detail badges are
// right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.ID > 0 {
			title = StyleDim.Render(fmt.Sprintf("#%d ", item.ID)) + title
		}
		statusPrefix := ""
		switch domain.DeliverableStatus(item.Status) {
		case domain.StatusCompleted:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case domain.StatusInProgress:
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		case domain.StatusOverdue:
			statusPrefix = StyleRed.Render("! ")
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := maxContentWidth - lipgloss.Width(li.content)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}

// TimelineTree groups deliverables under their phase in timeline order.
// Deliverables with an unknown phase are listed last under "Other".
func TimelineTree(items []domain.Deliverable, dueLabel func(string) string) []TreeItem {
	byPhase := map[string][]domain.Deliverable{}
	for _, d := range items {
		byPhase[d.Phase] = append(byPhase[d.Phase], d)
	}

	var out []TreeItem
	addGroup := func(label string, group []domain.Deliverable) {
		if len(group) == 0 {
			return
		}
		out = append(out, TreeItem{Title: Bold(label)})
		for i, d := range group {
			item := TreeItem{
				Title:  domain.CoalesceStr(d.Title, "Untitled deliverable"),
				ID:     d.ID,
				Level:  1,
				IsLast: i == len(group)-1,
				Status: d.Status,
			}
			if dueLabel != nil && d.DueDate != "" {
				item.Detail = dueLabel(d.DueDate)
			}
			out = append(out, item)
		}
	}

	for _, p := range domain.Phases {
		addGroup(domain.PhaseLabels[p], byPhase[string(p)])
		delete(byPhase, string(p))
	}
	var other []domain.Deliverable
	for _, d := range items {
		if _, ok := byPhase[d.Phase]; ok {
			other = append(other, d)
		}
	}
	addGroup("Other", other)
	return out
}
