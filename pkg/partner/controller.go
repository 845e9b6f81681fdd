package partner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	Fields     Fields
	Industries []string
	Submitting bool
}

// Controller owns the proposal fields and the industry selection and runs the
// submission lifecycle. It is safe for concurrent use; the lock is never held
// while a request is outstanding, so edits made during a submission are
// accepted.
type Controller struct {
	mu        sync.Mutex
	fields    Fields
	selection Selection
	inFlight  bool

	submitter Submitter
	notifier  Notifier
	logger    *slog.Logger
	listeners []ChangeListener
}

// New constructs a Controller with all fields empty and nothing selected.
func New(options ...Option) *Controller {
	c := &Controller{
		fields:   NewFields(),
		notifier: nopNotifier{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// SetField replaces the value of one field. No format checks are applied.
func (c *Controller) SetField(name FieldName, value string) error {
	if _, ok := LookupField(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.mu.Lock()
	c.fields[name] = value
	c.mu.Unlock()

	c.emit()
	return nil
}

// Field returns the current value of name.
func (c *Controller) Field(name FieldName) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields.Get(name)
}

// ToggleIndustry removes name from the selection when present and appends it
// otherwise.
func (c *Controller) ToggleIndustry(name string) error {
	if !IsIndustry(name) {
		return fmt.Errorf("%w: %q", ErrUnknownIndustry, name)
	}
	c.mu.Lock()
	selected := c.selection.Toggle(name)
	c.mu.Unlock()

	c.logger.Debug("industry toggled",
		slog.String("industry", name),
		slog.Bool("selected", selected),
	)
	c.emit()
	return nil
}

// IsSelected reports whether name is part of the selection.
func (c *Controller) IsSelected(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Contains(name)
}

// Industries returns the selection in insertion order.
func (c *Controller) Industries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Names()
}

// Submitting reports whether a submission is outstanding. Front ends use it
// to disable their submit action.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Validate checks the submit gate without side effects. It returns a
// *ValidationError listing every unmet requirement.
func (c *Controller) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

// Reset clears every field and the selection.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
	c.emit()
}

// Submit validates the form and, when it passes, sends exactly one request.
//
// A failed gate notifies KindValidation and returns a *ValidationError
// without touching state. A failed request notifies KindFailure and keeps
// state so the user can retry. A successful request notifies KindSuccess and
// then clears the form. A call made while another submission is outstanding
// returns ErrSubmitInFlight.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if err := c.validateLocked(); err != nil {
		c.mu.Unlock()
		c.logger.Debug("proposal rejected", slog.String("error", err.Error()))
		c.notifier.Notify(ctx, KindValidation, MessageValidation)
		return err
	}
	payload := BuildPayload(c.fields, c.selection.Names())
	c.inFlight = true
	c.mu.Unlock()
	c.emit()

	err := c.send(ctx, payload)
	if err != nil {
		c.logger.Error("error submitting partnership proposal",
			slog.String("error", err.Error()),
			slog.String("company", payload.CompanyName),
		)
		c.notifier.Notify(ctx, KindFailure, MessageFailure)
	} else {
		c.logger.Info("partnership proposal submitted",
			slog.String("company", payload.CompanyName),
			slog.Any("industries", payload.Industries),
		)
		c.notifier.Notify(ctx, KindSuccess, MessageSuccess)
	}

	c.mu.Lock()
	c.inFlight = false
	if err == nil {
		c.resetLocked()
	}
	c.mu.Unlock()
	c.emit()

	if err != nil {
		return fmt.Errorf("partner: submit proposal: %w", err)
	}
	return nil
}

func (c *Controller) send(ctx context.Context, payload Payload) error {
	if c.submitter == nil {
		return ErrNoSubmitter
	}
	return c.submitter.Submit(ctx, payload)
}

func (c *Controller) validateLocked() error {
	var missing []Requirement
	if c.fields.Get(FieldContactName) == "" {
		missing = append(missing, RequireName)
	}
	if c.fields.Get(FieldEmail) == "" {
		missing = append(missing, RequireEmail)
	}
	if c.fields.Get(FieldCompanyName) == "" {
		missing = append(missing, RequireCompany)
	}
	if c.selection.Len() == 0 {
		missing = append(missing, RequireIndustry)
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (c *Controller) resetLocked() {
	c.fields = NewFields()
	c.selection.Clear()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Fields:     c.fields.Clone(),
		Industries: c.selection.Names(),
		Submitting: c.inFlight,
	}
}

func (c *Controller) emit() {
	if len(c.listeners) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, fn := range c.listeners {
		fn(snap)
	}
}
