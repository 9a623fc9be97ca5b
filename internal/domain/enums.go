package domain

type Phase string

const (
	PhaseFoundation     Phase = "Foundation"
	PhaseResearch       Phase = "Research"
	PhaseImplementation Phase = "Implementation"
	PhaseEvaluation     Phase = "Evaluation"
	PhaseFinal          Phase = "Final"
)

// Phases lists deliverable phases in timeline order.
var Phases = []Phase{PhaseFoundation, PhaseResearch, PhaseImplementation, PhaseEvaluation, PhaseFinal}

// PhaseLabels maps a phase value to its long display label.
var PhaseLabels = map[Phase]string{
	PhaseFoundation:     "Foundation & Planning",
	PhaseResearch:       "Research & Analysis",
	PhaseImplementation: "Implementation",
	PhaseEvaluation:     "Evaluation & Testing",
	PhaseFinal:          "Final Report & Presentation",
}

type DeliverableStatus string

const (
	StatusNotStarted DeliverableStatus = "Not Started"
	StatusInProgress DeliverableStatus = "In Progress"
	StatusCompleted  DeliverableStatus = "Completed"
	StatusOverdue    DeliverableStatus = "Overdue"
)

var DeliverableStatuses = []DeliverableStatus{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOverdue}

type ToolType string

const (
	ToolCore        ToolType = "Core"
	ToolOptional    ToolType = "Optional"
	ToolIntegration ToolType = "Integration"
)

// ToolTypes is the fixed pane order for software tools.
var ToolTypes = []ToolType{ToolCore, ToolOptional, ToolIntegration}

type ResearchType string

const (
	ResearchPrimary   ResearchType = "Primary"
	ResearchSecondary ResearchType = "Secondary"
)

var ResearchTypes = []ResearchType{ResearchPrimary, ResearchSecondary}

// ResearchMethods seeds the research method choices.
var ResearchMethods = []string{"Interview", "Survey", "Observation", "Literature Review", "Case Study", "Document Analysis"}

type AICategory string

const (
	AIGenerative AICategory = "Generative"
	AIAgentic    AICategory = "Agentic"
	AIEmbedded   AICategory = "Embedded"
	AIPredictive AICategory = "Predictive"
)

var AICategories = []AICategory{AIGenerative, AIAgentic, AIEmbedded, AIPredictive}

// ToolCategories seeds the software tool category choices.
var ToolCategories = []string{"Project Management", "Documentation", "Analytics", "Communication", "Automation", "Development"}

// IntegrationPlatforms seeds the integration platform choices.
var IntegrationPlatforms = []string{"Notion", "Microsoft", "Google", "Podio", "QuickBooks", "Slack"}

// IntegrationTypes seeds the integration type choices.
var IntegrationTypes = []string{"API", "Webhook", "Export/Import", "Native"}

// IntegrationStatuses seeds the integration status choices.
var IntegrationStatuses = []string{"Active", "Inactive", "In Progress", "Error"}

func stringsOf[S ~string](vals []S) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
