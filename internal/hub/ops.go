package hub

import (
	"context"
	"fmt"

	"github.com/alexanderramin/capstonehub/internal/dialog"
	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/render"
	"github.com/alexanderramin/capstonehub/internal/store"
)

type sectionOps interface {
	list(ctx context.Context) error
	snapshot() Snapshot
	get(id int) (domain.Record, bool)
	remove(ctx context.Context, id int, confirm store.Confirmer) (bool, error)
	dialog(form dialog.Form, onSuccess func(domain.Record)) Dialog
}

type typedOps[T domain.Record] struct {
	s *store.Store[T]
}

func (o typedOps[T]) list(ctx context.Context) error {
	_, err := o.s.List(ctx)
	return err
}

func (o typedOps[T]) snapshot() Snapshot {
	snap := o.s.Snapshot()
	return Snapshot{
		Section: o.s.Section(),
		Items:   render.Records(snap.Items),
		State:   snap.State,
		Err:     snap.Err,
	}
}

func (o typedOps[T]) get(id int) (domain.Record, bool) {
	rec, ok := o.s.Get(id)
	if !ok {
		return nil, false
	}
	return rec, true
}

func (o typedOps[T]) remove(ctx context.Context, id int, confirm store.Confirmer) (bool, error) {
	return o.s.Remove(ctx, id, confirm)
}

func (o typedOps[T]) dialog(form dialog.Form, onSuccess func(domain.Record)) Dialog {
	var cb func(T)
	if onSuccess != nil {
		cb = func(rec T) { onSuccess(rec) }
	}
	return &typedDialog[T]{c: dialog.NewController[T](form, o.s, cb), s: o.s}
}

// Dialog is a section dialog with the record type erased.
type Dialog interface {
	Form() dialog.Form
	OpenAdd() error
	OpenEditByID(id int) error
	Set(field, value string) error
	Submit(ctx context.Context) (domain.Record, error)
	Cancel()
	View() dialog.View
}

type typedDialog[T domain.Record] struct {
	c *dialog.Controller[T]
	s *store.Store[T]
}

func (d *typedDialog[T]) Form() dialog.Form { return d.c.Form() }

func (d *typedDialog[T]) OpenAdd() error { return d.c.OpenAdd() }

func (d *typedDialog[T]) OpenEditByID(id int) error {
	rec, ok := d.s.Get(id)
	if !ok {
		return fmt.Errorf("%s %d: %w", d.s.Section().Noun(), id, ErrRecordNotCached)
	}
	return d.c.OpenEdit(rec)
}

func (d *typedDialog[T]) Set(field, value string) error { return d.c.Set(field, value) }

func (d *typedDialog[T]) Submit(ctx context.Context) (domain.Record, error) {
	rec, err := d.c.Submit(ctx)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *typedDialog[T]) Cancel() { d.c.Cancel() }

func (d *typedDialog[T]) View() dialog.View { return d.c.View() }
