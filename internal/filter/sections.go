package filter

import (
	"fmt"

	"github.com/alexanderramin/capstonehub/internal/domain"
)

// Params names the selection inputs accepted for each section, in the order
// they are offered.
func Params(sec domain.Section) []string {
	switch sec {
	case domain.SectionDeliverables:
		return []string{"phase", "status"}
	case domain.SectionProcesses:
		return []string{"search", "department", "automation_potential"}
	case domain.SectionAITechnologies:
		return []string{"category"}
	case domain.SectionSoftwareTools:
		return []string{"tool_type"}
	case domain.SectionResearch:
		return []string{"research_type"}
	case domain.SectionIntegrations:
		return []string{"platform", "status"}
	}
	panic(fmt.Sprintf("filter: unhandled section %q", string(sec)))
}

// ForSection builds the criteria for sec from named selections. Unknown
// names are ignored.
func ForSection(sec domain.Section, values map[string]string) Criteria {
	switch sec {
	case domain.SectionDeliverables:
		return Deliverables(values["phase"], values["status"])
	case domain.SectionProcesses:
		return Processes(values["search"], values["department"], values["automation_potential"])
	case domain.SectionAITechnologies:
		return AITechnologies(values["category"])
	case domain.SectionSoftwareTools:
		return Tab("tool_type", values["tool_type"])
	case domain.SectionResearch:
		return Research(values["research_type"])
	case domain.SectionIntegrations:
		return Integrations(values["platform"], values["status"])
	}
	panic(fmt.Sprintf("filter: unhandled section %q", string(sec)))
}

func Deliverables(phase, status string) Criteria {
	return Criteria{Match: map[string]string{"phase": phase, "status": status}}
}

func Processes(search, department, automation string) Criteria {
	return Criteria{
		Search:       search,
		SearchFields: []string{"name", "description", "pain_points"},
		Match: map[string]string{
			"department":           department,
			"automation_potential": automation,
		},
	}
}

func AITechnologies(category string) Criteria {
	return Tab("category", category)
}

func Research(researchType string) Criteria {
	return Tab("research_type", researchType)
}

func Integrations(platform, status string) Criteria {
	return Criteria{Match: map[string]string{"platform": platform, "status": status}}
}

// Tab selects the records whose field equals value.
func Tab(field, value string) Criteria {
	return Criteria{Match: map[string]string{field: value}}
}

// ToolPanes splits software tools into the Core, Optional and Integration
// panes.
func ToolPanes(tools []domain.SoftwareTool) map[domain.ToolType][]domain.SoftwareTool {
	keys := make([]string, len(domain.ToolTypes))
	for i, tt := range domain.ToolTypes {
		keys[i] = string(tt)
	}
	groups := Partition(tools, "tool_type", keys)
	out := make(map[domain.ToolType][]domain.SoftwareTool, len(groups))
	for k, v := range groups {
		out[domain.ToolType(k)] = v
	}
	return out
}
