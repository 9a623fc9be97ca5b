package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/alexanderramin/capstonehub/internal/dialog"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/filter"
	"github.com/alexanderramin/capstonehub/internal/hub"
	"github.com/alexanderramin/capstonehub/internal/render"
	"github.com/alexanderramin/capstonehub/internal/store"
)

func (s *Server) nav(active domain.Section) []render.NavItem {
	items := make([]render.NavItem, 0, len(domain.Sections))
	for _, sec := range domain.Sections {
		snap := s.hub.Snapshot(sec)
		items = append(items, render.NavItem{
			Section: sec,
			Label:   sec.Label(),
			Count:   len(snap.Items),
			Active:  sec == active,
			Failed:  snap.State == store.LoadFailed,
		})
	}
	return items
}

// sectionPage builds the page for sec with the filters from r's query.
func (s *Server) sectionPage(ctx context.Context, sec domain.Section, session domain.Session, done string, r *http.Request) render.Page {
	selections := map[string]string{}
	q := r.URL.Query()
	for _, name := range filter.Params(sec) {
		selections[name] = q.Get(name)
	}
	view := s.hub.View(sec, selections)

	return render.Page{
		Title:      sec.Label(),
		Noun:       sec.Noun(),
		Section:    sec,
		Session:    session,
		Nav:        s.nav(sec),
		Notice:     notices[done],
		Filters:    filterViews(sec, s.hub.Choices(ctx), selections),
		Collection: render.BuildCollection(sec, view.Items, session, view.State),
	}
}

// filterViews offers the same choices as the add form for each filter.
// Parameters without a matching select field become search boxes.
func filterViews(sec domain.Section, choices dialog.Choices, selections map[string]string) []render.FilterView {
	form := dialog.FormFor(sec, choices)
	var out []render.FilterView
	for _, name := range filter.Params(sec) {
		fv := render.FilterView{Name: name, Label: sec.Label(), Value: selections[name]}
		if f, ok := form.Field(name); ok && f.Kind == dialog.KindSelect {
			fv.Label = f.Label
			fv.Options = f.Options
		}
		out = append(out, fv)
	}
	return out
}

func formView(sec domain.Section, d hub.Dialog) *render.FormView {
	v := d.View()
	action := "/s/" + string(sec)
	if v.Mode == dialog.ModeEdit {
		action += "/" + strconv.Itoa(v.EditID)
	}
	fv := &render.FormView{
		Section: sec,
		Title:   v.Title,
		Action:  action,
		Error:   v.Error,
	}
	if msg, ok := v.FieldErrors[""]; ok && fv.Error == "" {
		fv.Error = msg
	}
	for _, f := range d.Form().Fields {
		fv.Fields = append(fv.Fields, render.FormField{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     string(f.Kind),
			Value:    v.Draft[f.Name],
			Options:  f.Options,
			Required: f.Required,
			Error:    v.FieldErrors[f.Name],
		})
	}
	return fv
}
