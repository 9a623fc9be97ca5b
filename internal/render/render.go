// Package render turns cached collections into HTML fragments and pages.
// All record text goes through html/template's contextual escaping; controls
// carry data-action attributes handled by one delegated listener in hub.js.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/filter"
	"github.com/alexanderramin/capstonehub/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the dashboard's script and stylesheet.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Records widens a typed slice for Render.
func Records[T domain.Record](items []T) []domain.Record {
	out := make([]domain.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

// Pane is one software tool group.
type Pane struct {
	Container string
	ToolType  domain.ToolType
	Cards     []Card
	Empty     *State
}

// Collection is the view model of one section's container.
type Collection struct {
	Section   domain.Section
	Container string
	State     store.LoadState
	Cards     []Card
	Panes     []Pane
	Empty     *State
	Failed    *State
}

// BuildCollection decides what a section container shows: the failed block
// when the last load failed, one empty block when there is nothing to show,
// otherwise cards. Software tools are split into three panes, each with its
// own empty block.
func BuildCollection(sec domain.Section, items []domain.Record, session domain.Session, state store.LoadState) Collection {
	c := Collection{
		Section:   sec,
		Container: configFor(sec).container,
		State:     state,
	}
	if state == store.LoadFailed {
		f := FailedState(sec)
		c.Failed = &f
	}

	if sec == domain.SectionSoftwareTools && (c.Failed == nil || len(items) > 0) {
		keys := make([]string, len(toolPanes))
		for i, p := range toolPanes {
			keys[i] = string(p.toolType)
		}
		groups := filter.Partition(items, "tool_type", keys)
		for _, p := range toolPanes {
			pv := Pane{
				Container: p.container,
				ToolType:  p.toolType,
				Cards:     Cards(sec, groups[string(p.toolType)], session),
			}
			if len(pv.Cards) == 0 {
				pv.Empty = &State{Icon: "tools", Title: p.emptyTitle, Text: p.emptyText}
			}
			c.Panes = append(c.Panes, pv)
		}
		return c
	}

	c.Cards = Cards(sec, items, session)
	if len(c.Cards) == 0 && c.Failed == nil {
		e := EmptyState(sec)
		c.Empty = &e
	}
	return c
}

// Render writes the container fragment for sec, replacing whatever it held.
func (r *Renderer) Render(w io.Writer, sec domain.Section, items []domain.Record, session domain.Session, state store.LoadState) error {
	return r.tmpl.ExecuteTemplate(w, "collection", BuildCollection(sec, items, session, state))
}

// NavItem is one section link with its cached count.
type NavItem struct {
	Section domain.Section
	Label   string
	Count   int
	Active  bool
	Failed  bool
}

// FilterView is one filter control. A control without Options is a free
// text search.
type FilterView struct {
	Name    string
	Label   string
	Value   string
	Options []string
}

// FormField is one input of an add or edit form.
type FormField struct {
	Name     string
	Label    string
	Kind     string
	Value    string
	Options  []string
	Required bool
	Error    string
}

// FormView is an open add or edit dialog.
type FormView struct {
	Section domain.Section
	Title   string
	Action  string
	Fields  []FormField
	Error   string
}

// Page is the data for a full dashboard page.
type Page struct {
	Title      string
	Noun       string
	Section    domain.Section
	Session    domain.Session
	Nav        []NavItem
	Notice     string
	Filters    []FilterView
	Form       *FormView
	Collection Collection
}

// SectionPage writes a full section page.
func (r *Renderer) SectionPage(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "section", p)
}

// HomePage writes the overview page.
func (r *Renderer) HomePage(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Overview"
	}
	return r.tmpl.ExecuteTemplate(w, "home", p)
}
