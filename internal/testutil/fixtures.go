package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/capstonehub/internal/domain"
)

var fixtureCounter atomic.Int64

// Deliverable options
type DeliverableOption func(*domain.Deliverable)

func WithPhase(p domain.Phase) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.Phase = string(p)
	}
}

func WithStatus(s domain.DeliverableStatus) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.Status = string(s)
	}
}

func WithDueDate(date string) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.DueDate = date
	}
}

func WithID(id int) DeliverableOption {
	return func(d *domain.Deliverable) {
		d.ID = id
	}
}

// NewTestDeliverable returns an unsaved deliverable with sensible defaults.
func NewTestDeliverable(title string, opts ...DeliverableOption) domain.Deliverable {
	d := domain.Deliverable{
		Title:       title,
		Description: fmt.Sprintf("%s description", title),
		Phase:       string(domain.PhaseFoundation),
		Status:      string(domain.StatusNotStarted),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewTestProcess(name, department, automation string) domain.BusinessProcess {
	score := int(fixtureCounter.Add(1) % 11)
	return domain.BusinessProcess{
		Name:                name,
		Department:          department,
		AutomationPotential: automation,
		Description:         fmt.Sprintf("%s in %s", name, department),
		PainPoints:          "manual re-entry",
		PriorityScore:       &score,
	}
}

func NewTestAITechnology(name string, category domain.AICategory) domain.AITechnology {
	return domain.AITechnology{Name: name, Category: string(category), Provider: "Acme"}
}

func NewTestTool(name string, toolType domain.ToolType) domain.SoftwareTool {
	return domain.SoftwareTool{Name: name, ToolType: string(toolType), Category: "Automation"}
}

func NewTestResearch(title string, rt domain.ResearchType) domain.ResearchItem {
	return domain.ResearchItem{Title: title, ResearchType: string(rt), ResearchMethod: "Interview"}
}

func NewTestIntegration(name, platform, status string) domain.Integration {
	return domain.Integration{Name: name, Platform: platform, Status: status, IntegrationType: "API"}
}
