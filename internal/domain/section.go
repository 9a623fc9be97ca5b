package domain

import (
	"fmt"
	"strings"
)

// Section identifies one of the six record collections shown by the hub.
type Section string

const (
	SectionDeliverables   Section = "deliverables"
	SectionProcesses      Section = "processes"
	SectionAITechnologies Section = "ai-technologies"
	SectionSoftwareTools  Section = "software-tools"
	SectionResearch       Section = "research"
	SectionIntegrations   Section = "integrations"
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionDeliverables,
	SectionProcesses,
	SectionAITechnologies,
	SectionSoftwareTools,
	SectionResearch,
	SectionIntegrations,
}

var sectionAliases = map[string]Section{
	"deliverable":        SectionDeliverables,
	"process":            SectionProcesses,
	"business-processes": SectionProcesses,
	"ai":                 SectionAITechnologies,
	"ai-technology":      SectionAITechnologies,
	"tools":              SectionSoftwareTools,
	"software-tool":      SectionSoftwareTools,
	"research-items":     SectionResearch,
	"integration":        SectionIntegrations,
}

// ParseSection resolves a section name or a common alias.
func ParseSection(s string) (Section, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, sec := range Sections {
		if string(sec) == key {
			return sec, nil
		}
	}
	if sec, ok := sectionAliases[key]; ok {
		return sec, nil
	}
	return "", fmt.Errorf("unknown section %q (valid: %s)", s, strings.Join(stringsOf(Sections), ", "))
}

// APIPath returns the collection endpoint for the section.
func (s Section) APIPath() string {
	switch s {
	case SectionDeliverables:
		return "/api/deliverables"
	case SectionProcesses:
		return "/api/business-processes"
	case SectionAITechnologies:
		return "/api/ai-technologies"
	case SectionSoftwareTools:
		return "/api/software-tools"
	case SectionResearch:
		return "/api/research-items"
	case SectionIntegrations:
		return "/api/integrations"
	}
	panic(fmt.Sprintf("domain: unhandled section %q", string(s)))
}

// Label returns the human-readable section title.
func (s Section) Label() string {
	switch s {
	case SectionDeliverables:
		return "Deliverables"
	case SectionProcesses:
		return "Business Processes"
	case SectionAITechnologies:
		return "AI Technologies"
	case SectionSoftwareTools:
		return "Software Tools"
	case SectionResearch:
		return "Research"
	case SectionIntegrations:
		return "Integrations"
	}
	panic(fmt.Sprintf("domain: unhandled section %q", string(s)))
}

// Noun returns the singular noun used in dialog titles and notices.
func (s Section) Noun() string {
	switch s {
	case SectionDeliverables:
		return "deliverable"
	case SectionProcesses:
		return "business process"
	case SectionAITechnologies:
		return "AI technology"
	case SectionSoftwareTools:
		return "software tool"
	case SectionResearch:
		return "research item"
	case SectionIntegrations:
		return "integration"
	}
	panic(fmt.Sprintf("domain: unhandled section %q", string(s)))
}
