// Package dropdown implements the industry multi-select control: its
// open/closed state, chip removal, and dismissal on presses outside its
// bounds.
package dropdown

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

var (
	// ErrClosed is returned when an option row is clicked while the list is
	// not shown.
	ErrClosed = errors.New("dropdown: option list is closed")
	// ErrUnknownOption is returned for names outside the option list.
	ErrUnknownOption = errors.New("dropdown: unknown option")
	// ErrNotSelected is returned when removing a chip that is not shown.
	ErrNotSelected = errors.New("dropdown: option is not selected")
)

// State is the visibility of the option list.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Owner holds the selection the dropdown presents. The dropdown reads it and
// mutates it only through ToggleIndustry.
type Owner interface {
	ToggleIndustry(name string) error
	Industries() []string
}

// Option configures a Dropdown.
type Option func(*Dropdown)

// WithObserver enables outside-press dismissal. Without an observer the
// dropdown only closes through its own surface. A nil *Bus counts as no
// observer.
func WithObserver(observer InteractionObserver) Option {
	return func(d *Dropdown) {
		if bus, ok := observer.(*Bus); ok && bus == nil {
			return
		}
		d.observer = observer
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dropdown) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithStateListener registers a callback fired after every visibility change.
func WithStateListener(fn func(State)) Option {
	return func(d *Dropdown) {
		d.onState = fn
	}
}

// Element ids are shared with the rendered markup so a front end can map a
// hit back to its element.
const (
	RootID    = "industries"
	SurfaceID = "industries.surface"
	ListID    = "industries.options"
)

// ChipID is the element id of the chip for name.
func ChipID(name string) string { return "industries.chip." + name }

// RowID is the element id of the option row for name.
func RowID(name string) string { return "industries.option." + name }

// Dropdown presents a fixed option list against an Owner's selection.
//
// Its element tree is:
//
//	root
//	├── surface            (click toggles visibility)
//	│   └── chip.<name>    (click removes <name>, never reaches surface)
//	└── options
//	    └── option.<name>  (click toggles <name>)
type Dropdown struct {
	mu     sync.Mutex
	state  State
	closed bool

	owner    Owner
	options  []string
	observer InteractionObserver
	detach   func()
	logger   *slog.Logger
	onState  func(State)

	root    *Element
	surface *Element
	list    *Element
	chips   map[string]*Element
	rows    map[string]*Element
}

// New builds a closed dropdown over options and attaches its outside-press
// listener when an observer is configured.
func New(owner Owner, options []string, opts ...Option) (*Dropdown, error) {
	if owner == nil {
		return nil, errors.New("dropdown: owner is required")
	}
	d := &Dropdown{
		owner:   owner,
		options: append([]string(nil), options...),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		chips:   make(map[string]*Element, len(options)),
		rows:    make(map[string]*Element, len(options)),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(d)
	}

	d.root = NewElement(RootID, nil)
	d.surface = NewElement(SurfaceID, d.root)
	d.list = NewElement(ListID, d.root)
	d.surface.OnClick(func(*Event) error {
		d.toggle()
		return nil
	})

	for _, name := range d.options {
		name := name
		chip := NewElement(ChipID(name), d.surface)
		chip.OnClick(func(ev *Event) error {
			ev.StopPropagation()
			return d.owner.ToggleIndustry(name)
		})
		d.chips[name] = chip

		row := NewElement(RowID(name), d.list)
		row.OnClick(func(*Event) error {
			return d.owner.ToggleIndustry(name)
		})
		d.rows[name] = row
	}

	if d.observer != nil {
		d.detach = d.observer.OnPointerDown(d.handlePointerDown)
	}
	return d, nil
}

// State returns the current visibility.
func (d *Dropdown) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// IsOpen reports whether the option list is shown.
func (d *Dropdown) IsOpen() bool {
	return d.State() == Open
}

// Options returns the option names in presentation order.
func (d *Dropdown) Options() []string {
	return append([]string(nil), d.options...)
}

// Selected returns the owner's selection, which is also the chip order.
func (d *Dropdown) Selected() []string {
	return d.owner.Industries()
}

// ToggleOpen is a click on the surface.
func (d *Dropdown) ToggleOpen() {
	// The surface handler never fails.
	_, _ = Dispatch(d.surface)
}

// SelectOption is a click on the option row for name. Visibility is left
// alone so several options can be picked in one go.
func (d *Dropdown) SelectOption(name string) error {
	row, ok := d.rows[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	if !d.IsOpen() {
		return ErrClosed
	}
	_, err := Dispatch(row)
	return err
}

// RemoveChip is a click on the dismiss control of the chip for name.
func (d *Dropdown) RemoveChip(name string) error {
	chip, ok := d.chips[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	if !contains(d.owner.Industries(), name) {
		return fmt.Errorf("%w: %q", ErrNotSelected, name)
	}
	_, err := Dispatch(chip)
	return err
}

// Click dispatches a click on an arbitrary element of the tree. Front ends
// that hit-test their own layout use it instead of the named operations.
func (d *Dropdown) Click(target *Element) error {
	if !d.root.Contains(target) {
		return nil
	}
	if d.list.Contains(target) && target != d.list && !d.IsOpen() {
		return ErrClosed
	}
	if chip := d.chipName(target); chip != "" && !contains(d.owner.Industries(), chip) {
		return fmt.Errorf("%w: %q", ErrNotSelected, chip)
	}
	_, err := Dispatch(target)
	return err
}

// Close detaches the outside-press listener. It is safe to call repeatedly.
func (d *Dropdown) Close() error {
	d.mu.Lock()
	detach := d.detach
	d.detach = nil
	d.closed = true
	d.mu.Unlock()

	if detach != nil {
		detach()
	}
	return nil
}

// Root returns the bounding element.
func (d *Dropdown) Root() *Element { return d.root }

// Surface returns the clickable selector area.
func (d *Dropdown) Surface() *Element { return d.surface }

// List returns the option list container.
func (d *Dropdown) List() *Element { return d.list }

// Chip returns the dismiss control for name.
func (d *Dropdown) Chip(name string) *Element { return d.chips[name] }

// Row returns the option row for name.
func (d *Dropdown) Row(name string) *Element { return d.rows[name] }

func (d *Dropdown) toggle() {
	d.mu.Lock()
	if d.state == Open {
		d.state = Closed
	} else {
		d.state = Open
	}
	state := d.state
	d.mu.Unlock()

	d.logger.Debug("dropdown toggled", slog.String("state", state.String()))
	d.notify(state)
}

func (d *Dropdown) handlePointerDown(ev PointerEvent) {
	d.mu.Lock()
	if d.closed || d.state != Open || d.root.Contains(ev.Target) {
		d.mu.Unlock()
		return
	}
	d.state = Closed
	d.mu.Unlock()

	d.logger.Debug("dropdown dismissed", slog.String("target", ev.Target.ID()))
	d.notify(Closed)
}

func (d *Dropdown) notify(state State) {
	if d.onState != nil {
		d.onState(state)
	}
}

func (d *Dropdown) chipName(target *Element) string {
	for name, chip := range d.chips {
		if chip == target {
			return name
		}
	}
	return ""
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
