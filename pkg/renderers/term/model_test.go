package term

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	zone "github.com/lrstanley/bubblezone"

	"github.com/goliatone/go-partnerform/pkg/dropdown"
	"github.com/goliatone/go-partnerform/pkg/partner"
	"github.com/goliatone/go-partnerform/pkg/render"
)

type fixture struct {
	ctrl     *partner.Controller
	menu     *dropdown.Dropdown
	model    *Model
	payloads []partner.Payload
}

func newFixture(t *testing.T, submitErr error) *fixture {
	t.Helper()
	f := &fixture{}
	bus := dropdown.NewBus()

	var model *Model
	f.ctrl = partner.New(
		partner.WithSubmitter(partner.SubmitterFunc(func(_ context.Context, p partner.Payload) error {
			f.payloads = append(f.payloads, p)
			return submitErr
		})),
		partner.WithNotifier(partner.NotifierFunc(func(ctx context.Context, kind partner.Kind, msg string) {
			model.Notify(ctx, kind, msg)
		})),
	)
	menu, err := dropdown.New(f.ctrl, partner.Catalog(), dropdown.WithObserver(bus))
	if err != nil {
		t.Fatalf("dropdown: %v", err)
	}
	f.menu = menu

	model, err = New(context.Background(), f.ctrl, menu, bus)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	f.model = model
	t.Cleanup(func() {
		_ = menu.Close()
		model.zones.Close()
	})
	return f
}

func (f *fixture) key(msg tea.KeyMsg) tea.Cmd {
	_, cmd := f.model.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_PressesDriveTheDropdown(t *testing.T) {
	f := newFixture(t, nil)
	m := f.model

	m.press(dropdown.SurfaceID)
	if !f.menu.IsOpen() {
		t.Fatalf("pressing the surface should open the dropdown")
	}

	m.press(dropdown.RowID(partner.IndustryRetail))
	m.press(dropdown.RowID(partner.IndustryFood))
	if diff := cmp.Diff([]string{"Retail", "Food"}, f.ctrl.Industries()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	if !f.menu.IsOpen() {
		t.Fatalf("picking rows should leave the dropdown open")
	}

	m.press(dropdown.ChipID(partner.IndustryRetail))
	if diff := cmp.Diff([]string{"Food"}, f.ctrl.Industries()); diff != "" {
		t.Fatalf("selection mismatch after chip removal (-want +got):\n%s", diff)
	}
	if !f.menu.IsOpen() {
		t.Fatalf("removing a chip must not toggle visibility")
	}

	m.press(fieldPrefix + string(partner.FieldEmail))
	if f.menu.IsOpen() {
		t.Fatalf("pressing another field should close the dropdown")
	}
	if m.order[m.focus] != fieldPrefix+string(partner.FieldEmail) {
		t.Fatalf("press should focus the field, focus=%s", m.order[m.focus])
	}

	m.press(dropdown.SurfaceID)
	m.press(backgroundID)
	if f.menu.IsOpen() {
		t.Fatalf("pressing the background should close the dropdown")
	}
}

func TestModel_ChipPressWhileClosedKeepsItClosed(t *testing.T) {
	f := newFixture(t, nil)
	_ = f.ctrl.ToggleIndustry(partner.IndustryHealthcare)

	f.model.press(dropdown.ChipID(partner.IndustryHealthcare))
	if f.menu.IsOpen() {
		t.Fatalf("chip removal must not open the dropdown")
	}
	if len(f.ctrl.Industries()) != 0 {
		t.Fatalf("chip should have been removed")
	}
}

func TestModel_TypingUpdatesController(t *testing.T) {
	f := newFixture(t, nil)

	f.key(runes("Al"))
	f.key(runes("ex"))
	if got := f.ctrl.Field(partner.FieldContactName); got != "Alex" {
		t.Fatalf("expected contact name Alex, got %q", got)
	}

	f.model.press(fieldPrefix + string(partner.FieldEstimatedUnits))
	f.key(runes("-"))
	f.key(runes("20"))
	if got := f.ctrl.Field(partner.FieldEstimatedUnits); got != "20" {
		t.Fatalf("expected units 20, got %q", got)
	}
}

func TestModel_SelectorKeys(t *testing.T) {
	f := newFixture(t, nil)
	for i := 0; i < 4; i++ {
		f.key(tea.KeyMsg{Type: tea.KeyTab})
	}
	if f.model.order[f.model.focus] != dropdown.SurfaceID {
		t.Fatalf("expected selector focus, got %s", f.model.order[f.model.focus])
	}

	f.key(tea.KeyMsg{Type: tea.KeyEnter})
	if !f.menu.IsOpen() {
		t.Fatalf("enter should open the dropdown")
	}
	f.key(tea.KeyMsg{Type: tea.KeyDown})
	f.key(tea.KeyMsg{Type: tea.KeyEnter})
	if diff := cmp.Diff([]string{"Retail"}, f.ctrl.Industries()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}

	f.key(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(f.ctrl.Industries()) != 0 {
		t.Fatalf("backspace should remove the last chip")
	}
	f.key(tea.KeyMsg{Type: tea.KeyEsc})
	if f.menu.IsOpen() {
		t.Fatalf("esc should close the dropdown")
	}
}

func fill(t *testing.T, ctrl *partner.Controller) {
	t.Helper()
	for name, value := range map[partner.FieldName]string{
		partner.FieldContactName: "Alex",
		partner.FieldEmail:       "a@x.com",
		partner.FieldCompanyName: "Acme",
	} {
		if err := ctrl.SetField(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	if err := ctrl.ToggleIndustry(partner.IndustryFood); err != nil {
		t.Fatalf("toggle: %v", err)
	}
}

func TestModel_SubmitSuccessResetsInputs(t *testing.T) {
	f := newFixture(t, nil)
	fill(t, f.ctrl)
	f.model.syncInputs()

	cmd := f.model.press(submitID)
	if cmd == nil {
		t.Fatalf("expected a submission command")
	}
	f.model.Update(cmd())

	if len(f.payloads) != 1 {
		t.Fatalf("expected one request, got %d", len(f.payloads))
	}
	if f.model.notice == nil || f.model.notice.Message != partner.MessageSuccess {
		t.Fatalf("expected success notice, got %+v", f.model.notice)
	}
	for name, input := range f.model.inputs {
		if input.Value() != "" {
			t.Fatalf("input %s should be cleared, got %q", name, input.Value())
		}
	}
	if !strings.Contains(f.model.View(), partner.MessageSuccess) {
		t.Fatalf("success notice should be on screen")
	}
}

func TestModel_SubmitValidationAndFailure(t *testing.T) {
	f := newFixture(t, errors.New("boom"))

	f.model.Update(f.key(tea.KeyMsg{Type: tea.KeyCtrlS})())
	if f.model.notice == nil || f.model.notice.Kind != partner.KindValidation {
		t.Fatalf("expected validation notice, got %+v", f.model.notice)
	}
	if len(f.payloads) != 0 {
		t.Fatalf("validation failure must not send")
	}

	fill(t, f.ctrl)
	f.model.Update(f.key(tea.KeyMsg{Type: tea.KeyCtrlS})())
	if f.model.notice == nil || f.model.notice.Message != partner.MessageFailure {
		t.Fatalf("expected failure notice, got %+v", f.model.notice)
	}
	if got := f.ctrl.Field(partner.FieldCompanyName); got != "Acme" {
		t.Fatalf("state lost after failure: %q", got)
	}
}

func TestModel_View(t *testing.T) {
	f := newFixture(t, nil)
	view := f.model.View()
	for _, want := range []string{render.Heading, render.IndustryPlaceholder, render.SubmitLabel, "Contact Name *"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}

	f.model.press(dropdown.SurfaceID)
	f.model.press(dropdown.RowID(partner.IndustryElectronics))
	view = f.model.View()
	if !strings.Contains(view, "Electronics ×") || !strings.Contains(view, render.SelectedMarker+" Electronics") {
		t.Fatalf("expected chip and marked row in view:\n%s", view)
	}
	if strings.Contains(view, render.IndustryPlaceholder) {
		t.Fatalf("placeholder should be hidden")
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := New(context.Background(), nil, nil, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNew_SharedZoneManager(t *testing.T) {
	ctrl := partner.New()
	menu, err := dropdown.New(ctrl, partner.Catalog())
	if err != nil {
		t.Fatalf("dropdown: %v", err)
	}
	defer menu.Close()

	shared := zone.New()
	defer shared.Close()

	m, err := New(context.Background(), ctrl, menu, dropdown.NewBus(), WithZoneManager(shared))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if m.zones != shared || m.ownZones {
		t.Fatalf("model should use the shared manager without owning it")
	}
}
