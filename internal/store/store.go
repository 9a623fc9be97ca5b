package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/hubclient"
)

var (
	// ErrStale is returned by List when a newer List or an applied mutation
	// superseded the response. The cache keeps the newer state.
	ErrStale = errors.New("stale list response discarded")

	// ErrDraftHasID is returned by Create when the draft already carries an id.
	ErrDraftHasID = errors.New("draft must not carry an id")
)

// Transport is the subset of hubclient.Client a store needs.
type Transport interface {
	Do(ctx context.Context, method, path string, body, out any) (int, error)
}

// Option customizes a store.
type Option func(*options)

type options struct {
	reporter Reporter
}

// WithReporter sets where load failures are reported.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// Store is the client-side cache of one remote collection. The cache only
// changes when the server acknowledges a read or a write.
type Store[T domain.Record] struct {
	section   domain.Section
	path      string
	transport Transport
	reporter  Reporter

	mu      sync.Mutex
	items   []T
	state   LoadState
	lastErr error
	// gen advances on every List issued and every mutation applied; a List
	// response is applied only if gen still equals the value it started with.
	gen uint64
}

// New creates an empty store for section.
func New[T domain.Record](t Transport, section domain.Section, opts ...Option) *Store[T] {
	o := options{reporter: noopReporter{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		section:   section,
		path:      section.APIPath(),
		transport: t,
		reporter:  o.reporter,
	}
}

func (s *Store[T]) Section() domain.Section { return s.section }

// List fetches the whole collection and replaces the cache. On failure the
// cache is left as it was and the state becomes LoadFailed.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	s.gen++
	token := s.gen
	s.mu.Unlock()

	var items []T
	_, err := s.transport.Do(ctx, http.MethodGet, s.path, nil, &items)
	if err == nil {
		err = checkIDs(items)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen {
		return nil, ErrStale
	}
	if err != nil {
		s.state = LoadFailed
		s.lastErr = err
		s.reporter.LoadFailed(ctx, s.section, err)
		return nil, fmt.Errorf("listing %s: %w", s.section, err)
	}
	if items == nil {
		items = []T{}
	}
	s.items = items
	s.state = Loaded
	s.lastErr = nil
	return append([]T(nil), items...), nil
}

// Create posts draft and appends the server's record, keyed by the id in
// the response.
func (s *Store[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	if draft.RecordID() != 0 {
		return zero, ErrDraftHasID
	}
	var created T
	if _, err := s.transport.Do(ctx, http.MethodPost, s.path, draft, &created); err != nil {
		return zero, fmt.Errorf("creating %s: %w", s.section.Noun(), err)
	}
	if created.RecordID() == 0 {
		return zero, fmt.Errorf("creating %s: %w: response has no id", s.section.Noun(), hubclient.ErrInvalidResponse)
	}

	s.mu.Lock()
	s.upsert(created)
	s.mu.Unlock()
	return created, nil
}

// Update puts patch to the record's endpoint and replaces the cached entry
// with the server's representation.
func (s *Store[T]) Update(ctx context.Context, id int, patch T) (T, error) {
	var zero T
	var updated T
	if _, err := s.transport.Do(ctx, http.MethodPut, s.itemPath(id), patch, &updated); err != nil {
		return zero, fmt.Errorf("updating %s %d: %w", s.section.Noun(), id, err)
	}
	if updated.RecordID() != id {
		return zero, fmt.Errorf("updating %s %d: %w: response id %d", s.section.Noun(), id, hubclient.ErrInvalidResponse, updated.RecordID())
	}

	s.mu.Lock()
	s.upsert(updated)
	s.mu.Unlock()
	return updated, nil
}

// Remove asks confirm first; a declined confirmation returns false without
// contacting the server. The cached entry is dropped only on 200 or 204.
func (s *Store[T]) Remove(ctx context.Context, id int, confirm Confirmer) (bool, error) {
	if confirm != nil {
		ok, err := confirm.Confirm(ctx, fmt.Sprintf("Delete this %s?", s.section.Noun()))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	status, err := s.transport.Do(ctx, http.MethodDelete, s.itemPath(id), nil, nil)
	if err != nil {
		return false, fmt.Errorf("deleting %s %d: %w", s.section.Noun(), id, err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return false, fmt.Errorf("deleting %s %d: %w: status %d", s.section.Noun(), id, hubclient.ErrUnexpectedStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.RecordID() == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	s.gen++
	return true, nil
}

// Get returns the cached record with id.
func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the cache and its load state.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot[T]{
		Items: append([]T(nil), s.items...),
		State: s.state,
		Err:   s.lastErr,
	}
}

// upsert replaces the entry with the same id or appends. Callers hold mu.
func (s *Store[T]) upsert(rec T) {
	s.gen++
	for i, item := range s.items {
		if item.RecordID() == rec.RecordID() {
			s.items[i] = rec
			return
		}
	}
	s.items = append(s.items, rec)
}

func (s *Store[T]) itemPath(id int) string {
	return s.path + "/" + strconv.Itoa(id)
}

func checkIDs[T domain.Record](items []T) error {
	for i, item := range items {
		if item.RecordID() <= 0 {
			return fmt.Errorf("%w: item %d has no id", hubclient.ErrInvalidResponse, i)
		}
	}
	return nil
}
