// Package hub is the application context: one instance per process owns the
// six collection stores, the role resolver and the option sets, and routes
// section-level operations to the right typed store.
package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/capstonehub/internal/auth"
	"github.com/alexanderramin/capstonehub/internal/dialog"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/filter"
	"github.com/alexanderramin/capstonehub/internal/repository"
	"github.com/alexanderramin/capstonehub/internal/service"
	"github.com/alexanderramin/capstonehub/internal/store"
	"golang.org/x/sync/errgroup"
)

// ErrRecordNotCached is returned when an id is not in the section's cache.
var ErrRecordNotCached = errors.New("record not loaded")

// Transport is what the stores and the resolver send requests through.
type Transport interface {
	Do(ctx context.Context, method, path string, body, out any) (int, error)
}

// Deps wires a Hub.
type Deps struct {
	Transport Transport
	AuthPath  string
	Options   service.OptionService
	// Hints, when set, receives the last resolved role.
	Hints    repository.KVRepo
	Reporter store.Reporter
	Logger   *slog.Logger
}

type Hub struct {
	Auth    *auth.Resolver
	Options service.OptionService

	Deliverables   *store.Store[domain.Deliverable]
	Processes      *store.Store[domain.BusinessProcess]
	AITechnologies *store.Store[domain.AITechnology]
	SoftwareTools  *store.Store[domain.SoftwareTool]
	Research       *store.Store[domain.ResearchItem]
	Integrations   *store.Store[domain.Integration]
}

// New builds a Hub. Nothing is fetched until Resolve or LoadAll is called.
func New(d Deps) *Hub {
	authOpts := []auth.Option{auth.WithLogger(d.Logger)}
	if d.Hints != nil {
		authOpts = append(authOpts, auth.WithHints(d.Hints))
	}
	storeOpts := []store.Option{store.WithReporter(d.Reporter)}

	return &Hub{
		Auth:    auth.NewResolver(d.Transport, d.AuthPath, authOpts...),
		Options: d.Options,

		Deliverables:   store.New[domain.Deliverable](d.Transport, domain.SectionDeliverables, storeOpts...),
		Processes:      store.New[domain.BusinessProcess](d.Transport, domain.SectionProcesses, storeOpts...),
		AITechnologies: store.New[domain.AITechnology](d.Transport, domain.SectionAITechnologies, storeOpts...),
		SoftwareTools:  store.New[domain.SoftwareTool](d.Transport, domain.SectionSoftwareTools, storeOpts...),
		Research:       store.New[domain.ResearchItem](d.Transport, domain.SectionResearch, storeOpts...),
		Integrations:   store.New[domain.Integration](d.Transport, domain.SectionIntegrations, storeOpts...),
	}
}

// LoadAll lists every collection concurrently. Each store settles on its
// own; one failure never cancels the others. The returned error joins the
// failures, and each store's state records its own outcome.
func (h *Hub) LoadAll(ctx context.Context) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	for _, sec := range domain.Sections {
		ops := h.ops(sec)
		g.Go(func() error {
			if err := ops.list(ctx); err != nil && !errors.Is(err, store.ErrStale) {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// List refreshes one section.
func (h *Hub) List(ctx context.Context, sec domain.Section) error {
	return h.ops(sec).list(ctx)
}

// Snapshot is one section's cache, widened to domain.Record.
type Snapshot struct {
	Section domain.Section
	Items   []domain.Record
	State   store.LoadState
	Err     error
}

// Snapshot returns the cached records of sec.
func (h *Hub) Snapshot(sec domain.Section) Snapshot {
	return h.ops(sec).snapshot()
}

// View returns the cached records of sec narrowed by the named selections.
func (h *Hub) View(sec domain.Section, selections map[string]string) Snapshot {
	snap := h.ops(sec).snapshot()
	snap.Items = filter.Apply(snap.Items, filter.ForSection(sec, selections))
	return snap
}

// Get returns the cached record of sec with id.
func (h *Hub) Get(sec domain.Section, id int) (domain.Record, bool) {
	return h.ops(sec).get(id)
}

// Remove deletes a record of sec after confirm agrees.
func (h *Hub) Remove(ctx context.Context, sec domain.Section, id int, confirm store.Confirmer) (bool, error) {
	return h.ops(sec).remove(ctx, id, confirm)
}

// Choices returns the current option sets as dialog choices. Storage
// failures fall back to the defaults.
func (h *Hub) Choices(ctx context.Context) dialog.Choices {
	sets := domain.DefaultOptionSets()
	if h.Options != nil {
		if stored, err := h.Options.Get(ctx); err == nil {
			sets = stored
		}
	}
	return dialog.Choices{
		Departments:         sets.Departments,
		AutomationPotential: sets.AutomationPotential,
	}
}

// NewDialog creates a closed dialog for sec. onSuccess, if non-nil, runs
// after each acknowledged save.
func (h *Hub) NewDialog(ctx context.Context, sec domain.Section, onSuccess func(domain.Record)) Dialog {
	return h.ops(sec).dialog(dialog.FormFor(sec, h.Choices(ctx)), onSuccess)
}

// OpenEdit creates a dialog for sec seeded from the cached record id.
func (h *Hub) OpenEdit(ctx context.Context, sec domain.Section, id int, onSuccess func(domain.Record)) (Dialog, error) {
	d := h.NewDialog(ctx, sec, onSuccess)
	if err := d.OpenEditByID(id); err != nil {
		return nil, err
	}
	return d, nil
}

func (h *Hub) ops(sec domain.Section) sectionOps {
	switch sec {
	case domain.SectionDeliverables:
		return typedOps[domain.Deliverable]{h.Deliverables}
	case domain.SectionProcesses:
		return typedOps[domain.BusinessProcess]{h.Processes}
	case domain.SectionAITechnologies:
		return typedOps[domain.AITechnology]{h.AITechnologies}
	case domain.SectionSoftwareTools:
		return typedOps[domain.SoftwareTool]{h.SoftwareTools}
	case domain.SectionResearch:
		return typedOps[domain.ResearchItem]{h.Research}
	case domain.SectionIntegrations:
		return typedOps[domain.Integration]{h.Integrations}
	}
	panic(fmt.Sprintf("hub: unhandled section %q", string(sec)))
}
