// Package term is a full-screen, mouse-aware front end for the partnership
// form built on bubbletea. Every mouse press is hit-tested against bubblezone
// zones and forwarded to the dropdown's interaction bus, so pressing
// anywhere outside the industry selector closes it.
package term

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/goliatone/go-partnerform/pkg/client"
	"github.com/goliatone/go-partnerform/pkg/dropdown"
	"github.com/goliatone/go-partnerform/pkg/partner"
	"github.com/goliatone/go-partnerform/pkg/render"
)

const (
	submitID     = "submit"
	backgroundID = "background"
	fieldPrefix  = "field."
)

// submitDoneMsg carries the outcome of an asynchronous submission together
// with the notices the controller raised while it ran.
type submitDoneMsg struct {
	err     error
	notices []render.Notice
}

// Option configures a Model.
type Option func(*Model)

// WithStyles replaces the default palette.
func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
	}
}

// WithLogger sets the logger for submission outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithZoneManager shares a bubblezone manager with a parent program.
func WithZoneManager(manager *zone.Manager) Option {
	return func(m *Model) {
		if manager != nil {
			m.zones = manager
		}
	}
}

// Model is the bubbletea model for the form.
type Model struct {
	ctx    context.Context
	ctrl   *partner.Controller
	menu   *dropdown.Dropdown
	bus    *dropdown.Bus
	zones  *zone.Manager
	styles Styles
	logger *slog.Logger

	ownZones bool

	inputs   map[partner.FieldName]*textinput.Model
	elements map[string]*dropdown.Element
	order    []string
	focus    int
	cursor   int

	notices  chan render.Notice
	notice   *render.Notice
	reported render.ErrorMapping
	quitting bool
}

var _ tea.Model = (*Model)(nil)

// New builds the model. The controller must notify through Model.Notify for
// notices to reach the screen; bus must be the observer the dropdown was
// built with.
func New(ctx context.Context, ctrl *partner.Controller, menu *dropdown.Dropdown, bus *dropdown.Bus, options ...Option) (*Model, error) {
	if ctrl == nil || menu == nil || bus == nil {
		return nil, errors.New("term: controller, dropdown and bus are required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		menu:     menu,
		bus:      bus,
		styles:   DefaultStyles(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		inputs:   make(map[partner.FieldName]*textinput.Model),
		elements: make(map[string]*dropdown.Element),
		notices:  make(chan render.Notice, 4),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	if m.zones == nil {
		m.zones = zone.New()
		m.ownZones = true
	}

	m.elements[backgroundID] = dropdown.NewElement(backgroundID, nil)
	m.elements[submitID] = dropdown.NewElement(submitID, nil)
	m.elements[dropdown.RootID] = menu.Root()
	m.elements[dropdown.SurfaceID] = menu.Surface()
	m.elements[dropdown.ListID] = menu.List()
	for _, name := range menu.Options() {
		m.elements[dropdown.ChipID(name)] = menu.Chip(name)
		m.elements[dropdown.RowID(name)] = menu.Row(name)
	}

	surface := render.Build(ctrl.Snapshot(), false)
	for _, view := range surface.Contact {
		m.addInput(view)
	}
	m.order = append(m.order, dropdown.SurfaceID)
	for _, view := range surface.Details {
		m.addInput(view)
	}
	m.order = append(m.order, submitID)

	m.setFocus(0)
	return m, nil
}

func (m *Model) addInput(view render.FieldView) {
	input := textinput.New()
	input.Placeholder = view.Placeholder
	input.Prompt = ""
	input.Width = 44
	input.SetValue(view.Value)

	id := fieldPrefix + string(view.Name)
	m.inputs[view.Name] = &input
	m.elements[id] = dropdown.NewElement(id, nil)
	m.order = append(m.order, id)
}

// Notify implements partner.Notifier. It may be called from the submission
// goroutine; notices are handed to the update loop when the submission ends.
func (m *Model) Notify(_ context.Context, kind partner.Kind, message string) {
	select {
	case m.notices <- render.Notice{Kind: kind, Message: message}:
	default:
		m.logger.Warn("notice dropped", slog.String("kind", string(kind)))
	}
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles mouse presses, keys, and submission results.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m, m.press(m.hitTest(msg))
		}
		return m, nil

	case submitDoneMsg:
		m.finishSubmit(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, m.updateFocusedInput(msg)
}

// hitTest returns the id of the innermost zone under the pointer, or the
// background when the press landed outside every zone.
func (m *Model) hitTest(msg tea.MouseMsg) string {
	for _, id := range m.hitOrder() {
		if m.zones.Get(id).InBounds(msg) {
			return id
		}
	}
	return backgroundID
}

// hitOrder lists zones innermost first: chips sit inside the surface and
// rows inside the list.
func (m *Model) hitOrder() []string {
	var ids []string
	for _, name := range m.ctrl.Industries() {
		ids = append(ids, dropdown.ChipID(name))
	}
	if m.menu.IsOpen() {
		for _, name := range m.menu.Options() {
			ids = append(ids, dropdown.RowID(name))
		}
		ids = append(ids, dropdown.ListID)
	}
	ids = append(ids, dropdown.SurfaceID, dropdown.RootID)
	for _, id := range m.order {
		if id != dropdown.SurfaceID {
			ids = append(ids, id)
		}
	}
	return ids
}

// press is a left-button press on the element behind id. The bus sees it
// first, as a pointerdown would, then the dropdown handles it as a click.
func (m *Model) press(id string) tea.Cmd {
	target, ok := m.elements[id]
	if !ok {
		target = m.elements[backgroundID]
	}
	m.bus.Press(target)

	if m.menu.Root().Contains(target) {
		if err := m.menu.Click(target); err != nil {
			m.logger.Debug("dropdown click ignored", slog.String("target", id), slog.String("error", err.Error()))
		}
		m.setFocus(m.indexOf(dropdown.SurfaceID))
		return nil
	}

	switch {
	case id == submitID:
		m.setFocus(m.indexOf(submitID))
		return m.submit()
	case m.indexOf(id) >= 0:
		m.setFocus(m.indexOf(id))
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return tea.Quit
	case "tab":
		m.setFocus(m.focus + 1)
		return nil
	case "shift+tab":
		m.setFocus(m.focus - 1)
		return nil
	case "ctrl+s":
		return m.submit()
	}

	switch m.order[m.focus] {
	case dropdown.SurfaceID:
		return m.handleSelectorKey(msg)
	case submitID:
		if msg.String() == "enter" || msg.String() == " " {
			return m.submit()
		}
		return nil
	}

	if msg.String() == "enter" {
		m.setFocus(m.focus + 1)
		return nil
	}
	if m.order[m.focus] == fieldPrefix+string(partner.FieldEstimatedUnits) && msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !render.UnitsKeyAllowed(r) {
				return nil
			}
		}
	}
	return m.updateFocusedInput(msg)
}

func (m *Model) handleSelectorKey(msg tea.KeyMsg) tea.Cmd {
	options := m.menu.Options()
	switch msg.String() {
	case "enter", " ":
		if !m.menu.IsOpen() {
			m.menu.ToggleOpen()
			return nil
		}
		if m.cursor >= 0 && m.cursor < len(options) {
			if err := m.menu.SelectOption(options[m.cursor]); err != nil {
				m.logger.Debug("option not toggled", slog.String("error", err.Error()))
			}
		}
	case "esc":
		if m.menu.IsOpen() {
			m.menu.ToggleOpen()
		}
	case "up":
		if m.menu.IsOpen() && m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.menu.IsOpen() && m.cursor < len(options)-1 {
			m.cursor++
		}
	case "backspace":
		if selected := m.ctrl.Industries(); len(selected) > 0 {
			if err := m.menu.RemoveChip(selected[len(selected)-1]); err != nil {
				m.logger.Debug("chip not removed", slog.String("error", err.Error()))
			}
		}
	}
	return nil
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	name, ok := m.focusedField()
	if !ok {
		return nil
	}
	input := m.inputs[name]
	updated, cmd := input.Update(msg)
	*input = updated
	if updated.Value() != m.ctrl.Field(name) {
		if err := m.ctrl.SetField(name, updated.Value()); err != nil {
			m.logger.Error("field not stored", slog.String("field", string(name)), slog.String("error", err.Error()))
		}
	}
	return cmd
}

func (m *Model) focusedField() (partner.FieldName, bool) {
	id := m.order[m.focus]
	if len(id) <= len(fieldPrefix) || id[:len(fieldPrefix)] != fieldPrefix {
		return "", false
	}
	return partner.FieldName(id[len(fieldPrefix):]), true
}

func (m *Model) setFocus(i int) {
	if i < 0 {
		i = len(m.order) - 1
	}
	m.focus = i % len(m.order)
	focused, _ := m.focusedField()
	for name, input := range m.inputs {
		if name == focused {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *Model) indexOf(id string) int {
	for i, candidate := range m.order {
		if candidate == id {
			return i
		}
	}
	return -1
}

// submit starts a submission in the background. Re-entry while one is in
// flight is left to the controller, which rejects it without a request.
func (m *Model) submit() tea.Cmd {
	if m.ctrl.Submitting() {
		return nil
	}
	m.notice = nil
	ctx := m.ctx
	return func() tea.Msg {
		err := m.ctrl.Submit(ctx)
		return submitDoneMsg{err: err, notices: m.drainNotices()}
	}
}

func (m *Model) drainNotices() []render.Notice {
	var out []render.Notice
	for {
		select {
		case n := <-m.notices:
			out = append(out, n)
		default:
			return out
		}
	}
}

func (m *Model) finishSubmit(msg submitDoneMsg) {
	if len(msg.notices) > 0 {
		last := msg.notices[len(msg.notices)-1]
		m.notice = &last
	}

	var verr *partner.ValidationError
	switch {
	case msg.err == nil:
		m.reported = render.ErrorMapping{}
		m.syncInputs()
	case errors.Is(msg.err, partner.ErrSubmitInFlight), errors.As(msg.err, &verr):
	default:
		m.reported = render.MapErrorPayload(client.FieldErrors(msg.err))
		m.logger.Debug("submission failed", slog.String("error", msg.err.Error()))
	}
}

// syncInputs copies controller values back into the text inputs, which is
// how a reset becomes visible.
func (m *Model) syncInputs() {
	for name, input := range m.inputs {
		input.SetValue(m.ctrl.Field(name))
	}
}
