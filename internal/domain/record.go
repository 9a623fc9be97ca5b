package domain

// Record is implemented by every entity kind the hub tracks. RecordID is
// assigned by the server; zero means "not yet persisted". Only the id is
// omitted when empty: the server keeps a field's old value when its key is
// missing, so a cleared field must still be sent.
type Record interface {
	RecordID() int
	// Field returns the raw string value of a JSON-named field, or "" when
	// the field is unset or unknown.
	Field(name string) string
}

type Deliverable struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Phase       string `json:"phase"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

func (d Deliverable) RecordID() int { return d.ID }

func (d Deliverable) Field(name string) string {
	switch name {
	case "title":
		return d.Title
	case "description":
		return d.Description
	case "phase":
		return d.Phase
	case "due_date":
		return d.DueDate
	case "status":
		return d.Status
	}
	return ""
}

type BusinessProcess struct {
	ID                  int    `json:"id,omitempty"`
	Name                string `json:"name"`
	Department          string `json:"department"`
	Description         string `json:"description"`
	AutomationPotential string `json:"automation_potential"`
	CurrentState        string `json:"current_state"`
	PainPoints          string `json:"pain_points"`
	AIRecommendations   string `json:"ai_recommendations"`
	PriorityScore       *int   `json:"priority_score"`
}

func (p BusinessProcess) RecordID() int { return p.ID }

func (p BusinessProcess) Field(name string) string {
	switch name {
	case "name":
		return p.Name
	case "department":
		return p.Department
	case "description":
		return p.Description
	case "automation_potential":
		return p.AutomationPotential
	case "current_state":
		return p.CurrentState
	case "pain_points":
		return p.PainPoints
	case "ai_recommendations":
		return p.AIRecommendations
	case "priority_score":
		return intPtrString(p.PriorityScore)
	}
	return ""
}

type AITechnology struct {
	ID            int    `json:"id,omitempty"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Provider      string `json:"provider"`
	Description   string `json:"description"`
	UseCase       string `json:"use_case"`
	MaturityLevel string `json:"maturity_level"`
}

func (a AITechnology) RecordID() int { return a.ID }

func (a AITechnology) Field(name string) string {
	switch name {
	case "name":
		return a.Name
	case "category":
		return a.Category
	case "provider":
		return a.Provider
	case "description":
		return a.Description
	case "use_case":
		return a.UseCase
	case "maturity_level":
		return a.MaturityLevel
	}
	return ""
}

type SoftwareTool struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	ToolType    string `json:"tool_type"`
	Description string `json:"description"`
}

func (s SoftwareTool) RecordID() int { return s.ID }

func (s SoftwareTool) Field(name string) string {
	switch name {
	case "name":
		return s.Name
	case "category":
		return s.Category
	case "tool_type":
		return s.ToolType
	case "description":
		return s.Description
	}
	return ""
}

type ResearchItem struct {
	ID             int    `json:"id,omitempty"`
	Title          string `json:"title"`
	ResearchType   string `json:"research_type"`
	ResearchMethod string `json:"research_method"`
	Description    string `json:"description"`
	Source         string `json:"source"`
	KeyFindings    string `json:"key_findings"`
}

func (r ResearchItem) RecordID() int { return r.ID }

func (r ResearchItem) Field(name string) string {
	switch name {
	case "title":
		return r.Title
	case "research_type":
		return r.ResearchType
	case "research_method":
		return r.ResearchMethod
	case "description":
		return r.Description
	case "source":
		return r.Source
	case "key_findings":
		return r.KeyFindings
	}
	return ""
}

type Integration struct {
	ID              int    `json:"id,omitempty"`
	Name            string `json:"name"`
	Platform        string `json:"platform"`
	IntegrationType string `json:"integration_type"`
	Status          string `json:"status"`
	Description     string `json:"description"`
	APIEndpoint     string `json:"api_endpoint"`
}

func (i Integration) RecordID() int { return i.ID }

func (i Integration) Field(name string) string {
	switch name {
	case "name":
		return i.Name
	case "platform":
		return i.Platform
	case "integration_type":
		return i.IntegrationType
	case "status":
		return i.Status
	case "description":
		return i.Description
	case "api_endpoint":
		return i.APIEndpoint
	}
	return ""
}
