package render

import (
	"fmt"

	"github.com/alexanderramin/capstonehub/internal/domain"
)

type fieldSpec struct {
	label    string
	field    string
	fallback string
	// optional fields are omitted when blank instead of showing a fallback.
	optional bool
	suffix   string
}

type entityConfig struct {
	container     string
	icon          string
	emptyTitle    string
	emptyText     string
	cardClass     string
	titleField    string
	titleFallback string
	badgeField    string
	badgeFallback string
	// badgeClass is the fixed badge class; statusBadge adds a normalized
	// "status-<value>" class as well.
	badgeClass  string
	statusBadge bool
	fields      []fieldSpec
}

func configFor(sec domain.Section) entityConfig {
	switch sec {
	case domain.SectionDeliverables:
		return entityConfig{
			container:     "deliverables-timeline",
			icon:          "tasks",
			emptyTitle:    "No deliverables yet",
			emptyText:     "Add your first deliverable to get started with timeline tracking",
			cardClass:     "deliverable",
			titleField:    "title",
			titleFallback: "Untitled",
			badgeField:    "status",
			badgeFallback: "Not started",
			badgeClass:    "status-badge",
			statusBadge:   true,
			fields: []fieldSpec{
				{label: "Phase", field: "phase", fallback: "Unassigned"},
				{label: "Due Date", field: "due_date", fallback: "No date"},
				{label: "Description", field: "description", optional: true},
			},
		}
	case domain.SectionProcesses:
		return entityConfig{
			container:     "processes-grid",
			icon:          "sitemap",
			emptyTitle:    "No business processes yet",
			emptyText:     "Add your first process to begin evaluation and optimization",
			cardClass:     "process",
			titleField:    "name",
			titleFallback: "Untitled Process",
			badgeField:    "automation_potential",
			badgeFallback: "Not Set",
			badgeClass:    "process-badge",
			fields: []fieldSpec{
				{label: "Department", field: "department", fallback: "Not specified"},
				{label: "Description", field: "description", fallback: "No description provided"},
				{label: "Current State", field: "current_state", fallback: "Not documented"},
				{label: "Pain Points", field: "pain_points", optional: true},
				{label: "AI Recommendations", field: "ai_recommendations", optional: true},
				{label: "Priority Score", field: "priority_score", optional: true, suffix: "/10"},
			},
		}
	case domain.SectionAITechnologies:
		return entityConfig{
			container:     "ai-tech-grid",
			icon:          "robot",
			emptyTitle:    "No AI technologies yet",
			emptyText:     "Add your first AI technology to start building your comprehensive catalog",
			cardClass:     "tech",
			titleField:    "name",
			titleFallback: "Untitled",
			badgeField:    "category",
			badgeFallback: "Uncategorized",
			badgeClass:    "tech-badge",
			fields: []fieldSpec{
				{label: "Provider", field: "provider", fallback: "Not specified"},
				{label: "Maturity", field: "maturity_level", fallback: "Unknown"},
				{label: "Description", field: "description", fallback: "No description"},
				{label: "Use Case", field: "use_case", optional: true},
			},
		}
	case domain.SectionSoftwareTools:
		return entityConfig{
			container:     "software-tools",
			icon:          "tools",
			emptyTitle:    "No software tools yet",
			emptyText:     "Add your first software tool",
			cardClass:     "tool",
			titleField:    "name",
			titleFallback: "Untitled Tool",
			badgeField:    "category",
			badgeFallback: "Uncategorized",
			badgeClass:    "tool-badge",
			fields: []fieldSpec{
				{label: "Description", field: "description", fallback: "No description"},
			},
		}
	case domain.SectionResearch:
		return entityConfig{
			container:     "research-content",
			icon:          "search",
			emptyTitle:    "No research items yet",
			emptyText:     "Add your first research item to begin comprehensive documentation and tracking",
			cardClass:     "research",
			titleField:    "title",
			titleFallback: "Untitled",
			badgeField:    "research_type",
			badgeFallback: "General",
			badgeClass:    "research-badge",
			fields: []fieldSpec{
				{label: "Method", field: "research_method", fallback: "Not specified"},
				{label: "Description", field: "description", fallback: "No description"},
				{label: "Source", field: "source", optional: true},
				{label: "Key Findings", field: "key_findings", optional: true},
			},
		}
	case domain.SectionIntegrations:
		return entityConfig{
			container:     "integration-logs",
			icon:          "plug",
			emptyTitle:    "No integration activity yet",
			emptyText:     "Configure your first integration to see activity logs",
			cardClass:     "integration",
			titleField:    "name",
			titleFallback: "Untitled Integration",
			badgeField:    "status",
			badgeFallback: "Inactive",
			badgeClass:    "status-badge",
			statusBadge:   true,
			fields: []fieldSpec{
				{label: "Platform", field: "platform", fallback: "Not specified"},
				{label: "Type", field: "integration_type", fallback: "Unknown"},
				{label: "Description", field: "description", fallback: "No description"},
				{label: "Endpoint", field: "api_endpoint", optional: true},
			},
		}
	}
	panic(fmt.Sprintf("render: unhandled section %q", string(sec)))
}

// pane is one software tool column.
type pane struct {
	toolType   domain.ToolType
	container  string
	emptyTitle string
	emptyText  string
}

var toolPanes = []pane{
	{domain.ToolCore, "core-tools", "No core tools yet", "Add essential software tools"},
	{domain.ToolOptional, "optional-tools", "No optional tools yet", "Add tools for evaluation"},
	{domain.ToolIntegration, "integration-tools", "No integration tools yet", "Add integration solutions"},
}
