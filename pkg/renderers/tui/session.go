// Package tui drives the partnership form through sequential survey prompts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-partnerform/pkg/client"
	"github.com/goliatone/go-partnerform/pkg/dropdown"
	"github.com/goliatone/go-partnerform/pkg/partner"
	"github.com/goliatone/go-partnerform/pkg/render"
)

const quitLabel = "Quit"

type actionKind int

const (
	actionField actionKind = iota
	actionIndustries
	actionSubmit
	actionQuit
)

type action struct {
	kind  actionKind
	field render.FieldView
	label string
}

// Session is a prompt loop over a controller and its industry dropdown.
// Moving to any other prompt counts as a press outside the dropdown.
type Session struct {
	ctrl   *partner.Controller
	menu   *dropdown.Dropdown
	bus    *dropdown.Bus
	driver PromptDriver
	text   TextRenderer
	theme  Theme
	logger *slog.Logger

	fields   map[partner.FieldName]*dropdown.Element
	submit   *dropdown.Element
	reported render.ErrorMapping
}

// New builds a session. bus may be nil, in which case the dropdown is only
// closed by its own surface.
func New(ctrl *partner.Controller, menu *dropdown.Dropdown, bus *dropdown.Bus, options ...Option) (*Session, error) {
	if ctrl == nil || menu == nil {
		return nil, errors.New("tui: controller and dropdown are required")
	}
	s := &Session{
		ctrl:   ctrl,
		menu:   menu,
		bus:    bus,
		theme:  DefaultTheme,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		fields: make(map[partner.FieldName]*dropdown.Element),
		submit: dropdown.NewElement("submit", nil),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	for _, spec := range partner.FieldSpecs() {
		s.fields[spec.Name] = dropdown.NewElement(string(spec.Name), nil)
	}
	return s, nil
}

// Notify implements partner.Notifier by printing through the driver.
func (s *Session) Notify(ctx context.Context, kind partner.Kind, message string) {
	prefix := s.theme.ErrorPrefix
	if kind == partner.KindSuccess {
		prefix = s.theme.InfoPrefix
	}
	if err := s.driver.Info(ctx, prefix+message); err != nil {
		s.logger.Warn("notification not shown", slog.String("kind", string(kind)), slog.String("error", err.Error()))
	}
}

// Run loops until the user quits, aborts, or ctx ends.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		surface := s.surface()
		if err := s.show(ctx, surface); err != nil {
			return err
		}

		actions := buildActions(surface)
		labels := make([]string, len(actions))
		for i, a := range actions {
			labels[i] = a.label
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:  "What would you like to do?",
			Options:  labels,
			PageSize: len(labels),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(actions) {
			return ErrNoChoice
		}

		chosen := actions[idx]
		switch chosen.kind {
		case actionField:
			err = s.editField(ctx, chosen.field)
		case actionIndustries:
			err = s.editIndustries(ctx)
		case actionSubmit:
			err = s.submitProposal(ctx)
		case actionQuit:
			quit, qerr := s.confirmQuit(ctx)
			if qerr != nil {
				return qerr
			}
			if quit {
				return nil
			}
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) surface() render.Surface {
	surface := render.Build(s.ctrl.Snapshot(), s.menu.IsOpen())
	surface.ApplyErrors(s.reported)
	return surface
}

func (s *Session) show(ctx context.Context, surface render.Surface) error {
	out, err := s.text.Render(ctx, surface, render.RenderOptions{})
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, string(out))
}

func buildActions(surface render.Surface) []action {
	var actions []action
	addFields := func(views []render.FieldView) {
		for _, view := range views {
			actions = append(actions, action{kind: actionField, field: view, label: fieldLabel(view)})
		}
	}
	addFields(surface.Contact)

	selection := surface.Industries.Placeholder
	if len(surface.Industries.Chips) > 0 {
		selection = fmt.Sprint(surface.Industries.Chips)
	}
	actions = append(actions, action{kind: actionIndustries, label: surface.Industries.Label + ": " + selection})

	addFields(surface.Details)
	actions = append(actions,
		action{kind: actionSubmit, label: surface.Submit.Label},
		action{kind: actionQuit, label: quitLabel},
	)
	return actions
}

func fieldLabel(view render.FieldView) string {
	label := view.Label
	if view.Required {
		label += " *"
	}
	if view.Value != "" {
		label += ": " + view.Value
	}
	return label
}

// press reports a pointer press outside the dropdown, if a bus is wired.
func (s *Session) press(target *dropdown.Element) {
	if s.bus != nil {
		s.bus.Press(target)
	}
}

func (s *Session) editField(ctx context.Context, view render.FieldView) error {
	s.press(s.fields[view.Name])

	var (
		value string
		err   error
	)
	if view.Kind == partner.InputTextArea {
		value, err = s.driver.TextArea(ctx, TextAreaConfig{
			Message: view.Label,
			Default: view.Value,
			Help:    view.Placeholder,
		})
	} else {
		value, err = s.promptInput(ctx, view)
	}
	if err != nil {
		return err
	}
	return s.ctrl.SetField(view.Name, value)
}

func (s *Session) promptInput(ctx context.Context, view render.FieldView) (string, error) {
	var validate func(string) error
	if view.Name == partner.FieldEstimatedUnits {
		validate = render.ValidateUnitsInput
	}
	message := view.Label
	if view.Required {
		message += " *"
	}
	for {
		value, err := s.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   view.Value,
			Help:      view.Placeholder,
			Validator: validate,
		})
		if err != nil {
			return "", err
		}
		if validate == nil {
			return value, nil
		}
		if verr := validate(value); verr != nil {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+verr.Error()); err != nil {
				return "", err
			}
			continue
		}
		return value, nil
	}
}

// editIndustries opens the dropdown if needed and applies the difference
// between the current selection and the prompt result. Removals go through
// the chips and additions through the option rows, so the dropdown stays
// open exactly as it would after clicking inside it.
func (s *Session) editIndustries(ctx context.Context) error {
	if !s.menu.IsOpen() {
		s.menu.ToggleOpen()
	}

	options := s.menu.Options()
	current := s.ctrl.Industries()
	picked, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  render.IndustryLabel,
		Options:  options,
		Defaults: indicesOf(options, current),
		PageSize: len(options),
	})
	if err != nil {
		return err
	}
	chosen := defaultsFromIndices(options, picked)

	for _, name := range current {
		if indexOf(chosen, name) < 0 {
			if err := s.menu.RemoveChip(name); err != nil {
				return err
			}
		}
	}
	for _, name := range chosen {
		if indexOf(current, name) < 0 {
			if err := s.menu.SelectOption(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) submitProposal(ctx context.Context) error {
	s.press(s.submit)

	err := s.ctrl.Submit(ctx)
	switch {
	case err == nil:
		s.reported = render.ErrorMapping{}
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	var verr *partner.ValidationError
	if errors.As(err, &verr) {
		return nil
	}
	s.reported = render.MapErrorPayload(client.FieldErrors(err))
	s.logger.Debug("submission failed", slog.String("error", err.Error()))
	return nil
}

func (s *Session) confirmQuit(ctx context.Context) (bool, error) {
	snap := s.ctrl.Snapshot()
	if snap.Fields.Empty() && len(snap.Industries) == 0 {
		return true, nil
	}
	return s.driver.Confirm(ctx, ConfirmConfig{
		Message: "Discard this proposal and quit?",
		Default: false,
	})
}
