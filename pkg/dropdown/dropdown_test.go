package dropdown

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testOptions = []string{"eCommerce", "Retail", "Healthcare", "Electronics", "Food", "Industrial"}

// fakeOwner mimics the controller's toggle semantics.
type fakeOwner struct {
	selected []string
	toggles  []string
}

func (o *fakeOwner) ToggleIndustry(name string) error {
	o.toggles = append(o.toggles, name)
	for i, existing := range o.selected {
		if existing == name {
			o.selected = append(o.selected[:i:i], o.selected[i+1:]...)
			return nil
		}
	}
	o.selected = append(o.selected, name)
	return nil
}

func (o *fakeOwner) Industries() []string {
	return append([]string{}, o.selected...)
}

func newTestDropdown(t *testing.T, opts ...Option) (*Dropdown, *fakeOwner) {
	t.Helper()
	owner := &fakeOwner{}
	d, err := New(owner, testOptions, opts...)
	if err != nil {
		t.Fatalf("new dropdown: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, owner
}

func TestDropdown_SurfaceClickToggles(t *testing.T) {
	var states []State
	d, _ := newTestDropdown(t, WithStateListener(func(s State) {
		states = append(states, s)
	}))

	if d.IsOpen() {
		t.Fatalf("expected closed on construction")
	}
	d.ToggleOpen()
	if !d.IsOpen() {
		t.Fatalf("expected open after first click")
	}
	d.ToggleOpen()
	if d.IsOpen() {
		t.Fatalf("expected closed after second click")
	}
	if diff := cmp.Diff([]State{Open, Closed}, states); diff != "" {
		t.Fatalf("state transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestDropdown_SelectOptionKeepsListOpen(t *testing.T) {
	d, owner := newTestDropdown(t)
	d.ToggleOpen()

	for _, name := range []string{"Retail", "Food", "Retail"} {
		if err := d.SelectOption(name); err != nil {
			t.Fatalf("select %s: %v", name, err)
		}
	}
	if !d.IsOpen() {
		t.Fatalf("selection must not close the list")
	}
	if diff := cmp.Diff([]string{"Food"}, d.Selected()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Retail", "Food", "Retail"}, owner.toggles); diff != "" {
		t.Fatalf("toggles mismatch (-want +got):\n%s", diff)
	}
}

func TestDropdown_SelectOptionErrors(t *testing.T) {
	d, owner := newTestDropdown(t)
	if err := d.SelectOption("Retail"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	d.ToggleOpen()
	if err := d.SelectOption("Mining"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if len(owner.toggles) != 0 {
		t.Fatalf("failed selections must not reach the owner")
	}
}

func TestDropdown_RemoveChipDoesNotToggleVisibility(t *testing.T) {
	for _, open := range []bool{false, true} {
		d, owner := newTestDropdown(t)
		owner.selected = []string{"Retail", "Food", "Healthcare"}
		if open {
			d.ToggleOpen()
		}

		if err := d.RemoveChip("Food"); err != nil {
			t.Fatalf("remove chip: %v", err)
		}
		if d.IsOpen() != open {
			t.Fatalf("chip removal flipped visibility (open=%v)", open)
		}
		if diff := cmp.Diff([]string{"Retail", "Healthcare"}, d.Selected()); diff != "" {
			t.Fatalf("selection mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDropdown_ChipClickWithoutStopWouldReachSurface(t *testing.T) {
	d, owner := newTestDropdown(t)
	owner.selected = []string{"Retail"}

	// A bare click on the chip bubbles through the chip handler only.
	ev, err := Dispatch(d.Chip("Retail"))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !ev.Stopped() {
		t.Fatalf("chip handler must stop propagation")
	}
	if d.IsOpen() {
		t.Fatalf("surface handler ran despite stop")
	}
}

func TestDropdown_RemoveChipRequiresSelection(t *testing.T) {
	d, owner := newTestDropdown(t)
	if err := d.RemoveChip("Retail"); !errors.Is(err, ErrNotSelected) {
		t.Fatalf("expected ErrNotSelected, got %v", err)
	}
	if len(owner.toggles) != 0 {
		t.Fatalf("unexpected toggle %v", owner.toggles)
	}
}

func TestDropdown_OutsidePressCloses(t *testing.T) {
	bus := NewBus()
	d, _ := newTestDropdown(t, WithObserver(bus))
	elsewhere := NewElement("comments", nil)

	d.ToggleOpen()
	bus.Press(elsewhere)
	if d.IsOpen() {
		t.Fatalf("outside press must close the list")
	}

	d.ToggleOpen()
	bus.Press(nil)
	if d.IsOpen() {
		t.Fatalf("press on nothing counts as outside")
	}
}

func TestDropdown_InsidePressKeepsOpen(t *testing.T) {
	bus := NewBus()
	d, _ := newTestDropdown(t, WithObserver(bus))
	d.ToggleOpen()

	for _, target := range []*Element{d.Row("Retail"), d.List(), d.Root(), d.Surface(), d.Chip("Food")} {
		bus.Press(target)
		if !d.IsOpen() {
			t.Fatalf("press inside on %s closed the list", target.ID())
		}
	}
}

func TestDropdown_OutsidePressWhileClosedIsIgnored(t *testing.T) {
	bus := NewBus()
	var changes int
	d, _ := newTestDropdown(t, WithObserver(bus), WithStateListener(func(State) { changes++ }))
	bus.Press(NewElement("email", nil))
	if d.IsOpen() || changes != 0 {
		t.Fatalf("closed dropdown should ignore outside presses")
	}
}

func TestDropdown_CloseDetachesListener(t *testing.T) {
	bus := NewBus()
	owner := &fakeOwner{}
	d, err := New(owner, testOptions, WithObserver(bus))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if bus.Listeners() != 1 {
		t.Fatalf("expected one listener after construction, got %d", bus.Listeners())
	}

	d.ToggleOpen()
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if bus.Listeners() != 0 {
		t.Fatalf("listener leaked: %d", bus.Listeners())
	}

	bus.Press(NewElement("outside", nil))
	if !d.IsOpen() {
		t.Fatalf("detached dropdown must not react to presses")
	}
}

func TestDropdown_WithoutObserverStillWorks(t *testing.T) {
	d, _ := newTestDropdown(t)
	d.ToggleOpen()
	if !d.IsOpen() {
		t.Fatalf("expected open")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("close without observer: %v", err)
	}
}

func TestDropdown_ClickRoutesByElement(t *testing.T) {
	d, owner := newTestDropdown(t)

	if err := d.Click(d.Row("Food")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed for hidden row, got %v", err)
	}
	if err := d.Click(d.Surface()); err != nil {
		t.Fatalf("surface click: %v", err)
	}
	if err := d.Click(d.Row("Food")); err != nil {
		t.Fatalf("row click: %v", err)
	}
	if err := d.Click(d.Chip("Food")); err != nil {
		t.Fatalf("chip click: %v", err)
	}
	if err := d.Click(NewElement("elsewhere", nil)); err != nil {
		t.Fatalf("foreign click: %v", err)
	}
	if !d.IsOpen() {
		t.Fatalf("expected list to stay open")
	}
	if diff := cmp.Diff([]string{"Food", "Food"}, owner.toggles); diff != "" {
		t.Fatalf("toggles mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RequiresOwner(t *testing.T) {
	if _, err := New(nil, testOptions); err == nil {
		t.Fatalf("expected error for nil owner")
	}
}

func TestElement_Contains(t *testing.T) {
	root := NewElement("root", nil)
	child := NewElement("child", root)
	leaf := NewElement("leaf", child)
	other := NewElement("other", nil)

	if !root.Contains(leaf) || !root.Contains(root) || !child.Contains(leaf) {
		t.Fatalf("expected ancestors to contain descendants")
	}
	if leaf.Contains(root) || root.Contains(other) || root.Contains(nil) {
		t.Fatalf("unexpected containment")
	}
}

func TestDropdown_NilBusObserverIsIgnored(t *testing.T) {
	var bus *Bus
	d, _ := newTestDropdown(t, WithObserver(bus))
	if d.observer != nil {
		t.Fatalf("nil bus should leave the dropdown without an observer")
	}
	d.ToggleOpen()
	if !d.IsOpen() {
		t.Fatalf("expected open")
	}
}

func TestDropdown_ZeroValueBus(t *testing.T) {
	var bus Bus
	d, _ := newTestDropdown(t, WithObserver(&bus))
	if bus.Listeners() != 1 {
		t.Fatalf("expected one listener, got %d", bus.Listeners())
	}

	d.ToggleOpen()
	bus.Press(NewElement("email", nil))
	if d.IsOpen() {
		t.Fatalf("outside press on a zero-value bus must close the list")
	}
}

func TestDropdown_PressDeliveredAfterCloseIsIgnored(t *testing.T) {
	bus := NewBus()
	owner := &fakeOwner{}
	d, err := New(owner, testOptions, WithObserver(bus))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	d.ToggleOpen()
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// A press already copied out of the bus can still arrive.
	d.handlePointerDown(PointerEvent{Target: NewElement("outside", nil)})
	if !d.IsOpen() {
		t.Fatalf("closed dropdown must not act on late presses")
	}
}
