package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDueLabel(t *testing.T) {
	now := time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, DueLabel("2026-02-10", now), "In 3d")
	assert.Contains(t, DueLabel("", now), "--")
	assert.Contains(t, DueLabel("end of term", now), "end of term")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "unchanged", Truncate("unchanged", 0))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"SECTION", "COUNT"}, [][]string{
		{"Deliverables", "3"},
		{"Research", "12"},
	})
	assert.Contains(t, out, "SECTION")
	assert.Contains(t, out, "Deliverables")
	assert.Contains(t, out, "12")
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRoleBadge(t *testing.T) {
	assert.Contains(t, RoleBadge(domain.Session{Role: domain.RoleAdmin}), "ADMIN")
	assert.Contains(t, RoleBadge(domain.ViewerSession()), "VIEWER")
}

func TestBadgeStyle_FallsBackForUnknownClass(t *testing.T) {
	assert.Equal(t, StyleGreen, BadgeStyle("status-completed"))
	assert.Equal(t, StyleRed, BadgeStyle("status-overdue"))
	assert.Equal(t, StylePurple, BadgeStyle("category-generative"))
	assert.Empty(t, Badge("  ", "status-completed"))
}
