package render

import "github.com/goliatone/go-partnerform/pkg/partner"

// Fixed copy shown around the form.
const (
	Heading             = "Partner With Us"
	Intro               = "We're looking for great partners. Tell us about your business and let's grow together."
	IndustryLabel       = "Your Industry/Industries"
	IndustryPlaceholder = "Click to select industries..."
	SubmitLabel         = "Submit Proposal"
	SubmittingLabel     = "Submitting..."
	SelectedMarker      = "✓"
)

// FieldView is one scalar input as it should be presented.
type FieldView struct {
	Name        partner.FieldName
	Label       string
	Placeholder string
	Kind        partner.InputKind
	Required    bool
	Value       string
	Errors      []string
}

// OptionView is one catalog row of the industry selector.
type OptionView struct {
	Name     string
	Selected bool
}

// SelectorView is the industry multi-select. Chips are in selection order;
// Placeholder is only set when nothing is selected.
type SelectorView struct {
	Label       string
	Chips       []string
	Placeholder string
	Open        bool
	Options     []OptionView
	Errors      []string
}

// SubmitView is the submit action.
type SubmitView struct {
	Label    string
	Disabled bool
}

// Surface is the presentation contract shared by every front end. Contact
// fields are laid out before the selector and Details after it.
type Surface struct {
	Heading    string
	Intro      string
	Contact    []FieldView
	Industries SelectorView
	Details    []FieldView
	Submit     SubmitView
	// Errors holds form-level messages reported by the endpoint.
	Errors []string
}

// Fields returns Contact followed by Details.
func (s Surface) Fields() []FieldView {
	out := make([]FieldView, 0, len(s.Contact)+len(s.Details))
	out = append(out, s.Contact...)
	return append(out, s.Details...)
}

// Build derives the surface from a controller snapshot and the dropdown's
// visibility.
func Build(snap partner.Snapshot, open bool) Surface {
	surface := Surface{
		Heading: Heading,
		Intro:   Intro,
		Submit: SubmitView{
			Label:    SubmitLabel,
			Disabled: snap.Submitting,
		},
	}
	if snap.Submitting {
		surface.Submit.Label = SubmittingLabel
	}

	for _, spec := range partner.FieldSpecs() {
		view := FieldView{
			Name:        spec.Name,
			Label:       spec.Label,
			Placeholder: spec.Placeholder,
			Kind:        spec.Kind,
			Required:    spec.Required,
			Value:       snap.Fields.Get(spec.Name),
		}
		switch spec.Name {
		case partner.FieldEstimatedUnits, partner.FieldComments:
			surface.Details = append(surface.Details, view)
		default:
			surface.Contact = append(surface.Contact, view)
		}
	}

	selected := make(map[string]bool, len(snap.Industries))
	for _, name := range snap.Industries {
		selected[name] = true
	}
	selector := SelectorView{
		Label: IndustryLabel,
		Chips: append([]string{}, snap.Industries...),
		Open:  open,
	}
	if len(selector.Chips) == 0 {
		selector.Placeholder = IndustryPlaceholder
	}
	for _, name := range partner.Catalog() {
		selector.Options = append(selector.Options, OptionView{Name: name, Selected: selected[name]})
	}
	surface.Industries = selector
	return surface
}

// ApplyErrors attaches endpoint-reported messages to the matching inputs.
func (s *Surface) ApplyErrors(mapping ErrorMapping) {
	attach := func(views []FieldView) {
		for i := range views {
			views[i].Errors = append([]string(nil), mapping.Fields[views[i].Name]...)
		}
	}
	attach(s.Contact)
	attach(s.Details)
	s.Industries.Errors = append([]string(nil), mapping.Industries...)
	s.Errors = append([]string(nil), mapping.Form...)
}
