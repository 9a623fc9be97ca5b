package dialog

import (
	"fmt"

	"github.com/alexanderramin/capstonehub/internal/domain"
)

// FieldKind selects the input used for a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindURL      FieldKind = "url"
)

// Field describes one form input.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Options  []string
	Required bool
	Default  string
}

// Form is the ordered input set for a section's add and edit dialogs.
type Form struct {
	Section domain.Section
	Fields  []Field
}

// Field returns the field named name.
func (f Form) Field(name string) (Field, bool) {
	for _, fd := range f.Fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// Choices carries the user-configurable option sets.
type Choices struct {
	Departments         []string
	AutomationPotential []string
}

// FormFor returns the form for sec.
func FormFor(sec domain.Section, choices Choices) Form {
	f := Form{Section: sec}
	switch sec {
	case domain.SectionDeliverables:
		f.Fields = []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "description", Label: "Description", Kind: KindTextarea},
			{Name: "phase", Label: "Phase", Kind: KindSelect, Options: stringsOf(domain.Phases), Required: true},
			{Name: "due_date", Label: "Due Date", Kind: KindDate},
			{Name: "status", Label: "Status", Kind: KindSelect, Options: stringsOf(domain.DeliverableStatuses), Default: string(domain.StatusNotStarted)},
		}
	case domain.SectionProcesses:
		f.Fields = []Field{
			{Name: "name", Label: "Process Name", Kind: KindText, Required: true},
			{Name: "department", Label: "Department", Kind: KindSelect, Options: choices.Departments, Required: true},
			{Name: "description", Label: "Description", Kind: KindTextarea},
			{Name: "automation_potential", Label: "Automation Potential", Kind: KindSelect, Options: choices.AutomationPotential},
			{Name: "current_state", Label: "Current State", Kind: KindTextarea},
			{Name: "pain_points", Label: "Pain Points", Kind: KindTextarea},
			{Name: "ai_recommendations", Label: "AI Recommendations", Kind: KindTextarea},
			{Name: "priority_score", Label: "Priority Score (0-10)", Kind: KindNumber},
		}
	case domain.SectionAITechnologies:
		f.Fields = []Field{
			{Name: "name", Label: "Technology Name", Kind: KindText, Required: true},
			{Name: "category", Label: "Category", Kind: KindSelect, Options: stringsOf(domain.AICategories), Required: true},
			{Name: "provider", Label: "Provider", Kind: KindText},
			{Name: "description", Label: "Description", Kind: KindTextarea},
			{Name: "use_case", Label: "Use Case", Kind: KindTextarea},
			{Name: "maturity_level", Label: "Maturity Level", Kind: KindText},
		}
	case domain.SectionSoftwareTools:
		f.Fields = []Field{
			{Name: "name", Label: "Tool Name", Kind: KindText, Required: true},
			{Name: "category", Label: "Category", Kind: KindSelect, Options: domain.ToolCategories, Required: true},
			{Name: "tool_type", Label: "Tool Type", Kind: KindSelect, Options: stringsOf(domain.ToolTypes), Required: true, Default: string(domain.ToolCore)},
			{Name: "description", Label: "Description", Kind: KindTextarea},
		}
	case domain.SectionResearch:
		f.Fields = []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "research_type", Label: "Research Type", Kind: KindSelect, Options: stringsOf(domain.ResearchTypes), Required: true},
			{Name: "research_method", Label: "Research Method", Kind: KindSelect, Options: domain.ResearchMethods},
			{Name: "description", Label: "Description", Kind: KindTextarea},
			{Name: "source", Label: "Source", Kind: KindText},
			{Name: "key_findings", Label: "Key Findings", Kind: KindTextarea},
		}
	case domain.SectionIntegrations:
		f.Fields = []Field{
			{Name: "name", Label: "Integration Name", Kind: KindText, Required: true},
			{Name: "platform", Label: "Platform", Kind: KindSelect, Options: domain.IntegrationPlatforms, Required: true},
			{Name: "integration_type", Label: "Integration Type", Kind: KindSelect, Options: domain.IntegrationTypes},
			{Name: "status", Label: "Status", Kind: KindSelect, Options: domain.IntegrationStatuses, Default: "Inactive"},
			{Name: "description", Label: "Description", Kind: KindTextarea},
			{Name: "api_endpoint", Label: "API Endpoint", Kind: KindURL},
		}
	default:
		panic(fmt.Sprintf("dialog: unhandled section %q", string(sec)))
	}
	return f
}

func stringsOf[S ~string](vals []S) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
