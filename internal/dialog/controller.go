// Package dialog drives the add and edit dialogs: a small state machine
// around a draft that is only discarded on success or cancel.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/alexanderramin/capstonehub/internal/domain"
	"github.com/alexanderramin/capstonehub/internal/hubclient"
)

var (
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a save is already in progress")

	// ErrClosed is returned when the dialog is not open.
	ErrClosed = errors.New("dialog is not open")

	// ErrInvalid is returned when the draft fails client-side checks.
	ErrInvalid = errors.New("form has errors")
)

// Notices shown for save failures.
const (
	NoticeUnauthorized = "Admin access required"
	NoticeRetry        = "Could not save, please retry"
)

type State int

const (
	Closed State = iota
	Open
	Validating
	Submitting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// Saver persists records. *store.Store satisfies it.
type Saver[T domain.Record] interface {
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id int, patch T) (T, error)
}

// View is a snapshot of the dialog for display.
type View struct {
	State       State
	Mode        Mode
	EditID      int
	Title       string
	Draft       domain.Draft
	Error       string
	FieldErrors map[string]string
}

// Controller owns one dialog instance. Its in-flight guard is per instance.
type Controller[T domain.Record] struct {
	form      Form
	saver     Saver[T]
	onSuccess func(T)

	mu          sync.Mutex
	state       State
	mode        Mode
	editID      int
	draft       domain.Draft
	errMsg      string
	fieldErrors map[string]string
	// session changes on every open and cancel so a submission that
	// finishes after a cancel cannot reopen the dialog.
	session uint64
}

// NewController creates a closed dialog for form that saves through saver.
// onSuccess, if non-nil, runs after every acknowledged save.
func NewController[T domain.Record](form Form, saver Saver[T], onSuccess func(T)) *Controller[T] {
	return &Controller[T]{form: form, saver: saver, onSuccess: onSuccess}
}

// Form returns the dialog's field set.
func (c *Controller[T]) Form() Form { return c.form }

// OpenAdd opens the dialog with an empty draft seeded from field defaults.
func (c *Controller[T]) OpenAdd() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy() {
		return ErrBusy
	}
	d := domain.Draft{}
	for _, f := range c.form.Fields {
		d[f.Name] = f.Default
	}
	c.open(ModeAdd, 0, d)
	return nil
}

// OpenEdit opens the dialog seeded from rec.
func (c *Controller[T]) OpenEdit(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy() {
		return ErrBusy
	}
	c.open(ModeEdit, rec.RecordID(), domain.DraftOf(rec))
	return nil
}

func (c *Controller[T]) open(mode Mode, id int, d domain.Draft) {
	c.session++
	c.state = Open
	c.mode = mode
	c.editID = id
	c.draft = d
	c.errMsg = ""
	c.fieldErrors = nil
}

// Set changes one draft value.
func (c *Controller[T]) Set(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.state == Closed:
		return ErrClosed
	case c.busy():
		return ErrBusy
	}
	c.draft[field] = value
	delete(c.fieldErrors, field)
	return nil
}

// Cancel closes the dialog and discards the draft.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session++
	c.state = Closed
	c.draft = nil
	c.errMsg = ""
	c.fieldErrors = nil
}

// Submit validates the draft and saves it. On success the dialog closes and
// onSuccess runs; on failure it stays open with the draft intact and the
// error available from View.
func (c *Controller[T]) Submit(ctx context.Context) (T, error) {
	var zero T

	c.mu.Lock()
	switch {
	case c.busy():
		c.mu.Unlock()
		return zero, ErrBusy
	case c.state == Closed:
		c.mu.Unlock()
		return zero, ErrClosed
	}
	c.state = Validating
	rec, fieldErrs := c.validate()
	if len(fieldErrs) > 0 {
		c.state = Open
		c.errMsg = ""
		c.fieldErrors = fieldErrs
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: %s", ErrInvalid, joinFields(fieldErrs))
	}
	c.state = Submitting
	c.errMsg = ""
	c.fieldErrors = nil
	mode, id, session := c.mode, c.editID, c.session
	c.mu.Unlock()

	var saved T
	var err error
	if mode == ModeEdit {
		saved, err = c.saver.Update(ctx, id, rec)
	} else {
		saved, err = c.saver.Create(ctx, rec)
	}

	c.mu.Lock()
	if session != c.session {
		// Cancelled while in flight; the store already applied any success.
		c.mu.Unlock()
		return saved, err
	}
	if err != nil {
		c.state = Open
		c.errMsg = describe(err)
		c.mu.Unlock()
		return zero, err
	}
	c.state = Closed
	c.draft = nil
	c.mu.Unlock()

	if c.onSuccess != nil {
		c.onSuccess(saved)
	}
	return saved, nil
}

// View returns a copy of the dialog state.
func (c *Controller[T]) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{
		State:  c.state,
		Mode:   c.mode,
		EditID: c.editID,
		Title:  c.title(),
		Error:  c.errMsg,
	}
	if c.draft != nil {
		v.Draft = c.draft.Clone()
	}
	if len(c.fieldErrors) > 0 {
		v.FieldErrors = make(map[string]string, len(c.fieldErrors))
		for k, msg := range c.fieldErrors {
			v.FieldErrors[k] = msg
		}
	}
	return v
}

func (c *Controller[T]) title() string {
	if c.mode == ModeEdit {
		return "Edit " + c.form.Section.Noun()
	}
	return "Add " + c.form.Section.Noun()
}

func (c *Controller[T]) busy() bool {
	return c.state == Validating || c.state == Submitting
}

// validate checks required fields and binds the draft. Callers hold mu.
func (c *Controller[T]) validate() (T, map[string]string) {
	var zero T
	errs := map[string]string{}
	for _, f := range c.form.Fields {
		if f.Required && strings.TrimSpace(c.draft[f.Name]) == "" {
			errs[f.Name] = f.Label + " is required"
		}
	}
	if len(errs) > 0 {
		return zero, errs
	}

	rec, err := domain.BindDraft[T](c.draft)
	if err != nil {
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			return zero, map[string]string{fe.Field: fe.Message}
		}
		return zero, map[string]string{"": err.Error()}
	}
	if v, ok := any(rec).(domain.Validator); ok {
		if err := v.Validate(); err != nil {
			var fe *domain.FieldError
			if errors.As(err, &fe) {
				return zero, map[string]string{fe.Field: fe.Message}
			}
			return zero, map[string]string{"": err.Error()}
		}
	}
	return rec, nil
}

// describe maps a save error to the notice shown in the dialog.
func describe(err error) string {
	switch {
	case errors.Is(err, hubclient.ErrUnauthorized):
		return NoticeUnauthorized
	case errors.Is(err, hubclient.ErrValidation):
		if msg := hubclient.ServerMessage(err); msg != "" {
			return msg
		}
		return "The server rejected this form"
	default:
		return NoticeRetry
	}
}

func joinFields(errs map[string]string) string {
	msgs := make([]string, 0, len(errs))
	for _, f := range slices.Sorted(maps.Keys(errs)) {
		msgs = append(msgs, errs[f])
	}
	return strings.Join(msgs, "; ")
}
