package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-partnerform/pkg/dropdown"
	"github.com/goliatone/go-partnerform/pkg/partner"
	"github.com/goliatone/go-partnerform/pkg/render"
)

const helpText = "tab next • enter/space open or pick • backspace remove last • esc close • ctrl+s submit • ctrl+c quit"

// View draws the form and registers every clickable zone.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	surface := render.Build(m.ctrl.Snapshot(), m.menu.IsOpen())
	surface.ApplyErrors(m.reported)

	sections := []string{
		m.styles.Heading.Render(surface.Heading),
		m.styles.Intro.Render(surface.Intro),
	}
	if m.notice != nil {
		style := m.styles.Error
		if m.notice.Kind == partner.KindSuccess {
			style = m.styles.Success
		}
		sections = append(sections, style.Render(m.notice.Message))
	}
	for _, message := range surface.Errors {
		sections = append(sections, m.styles.Error.Render("! "+message))
	}

	for _, view := range surface.Contact {
		sections = append(sections, m.fieldView(view))
	}
	sections = append(sections, m.selectorView(surface.Industries))
	for _, view := range surface.Details {
		sections = append(sections, m.fieldView(view))
	}

	button := m.styles.Button
	if surface.Submit.Disabled {
		button = m.styles.Disabled
	}
	sections = append(sections,
		m.zones.Mark(submitID, button.Render(surface.Submit.Label)),
		m.styles.Help.Render(helpText),
	)

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) fieldView(view render.FieldView) string {
	id := fieldPrefix + string(view.Name)
	label := view.Label
	if view.Required {
		label += " *"
	}

	box := m.styles.Input
	if m.order[m.focus] == id {
		box = m.styles.Focused
	}
	lines := []string{
		m.styles.Label.Render(label),
		box.Render(m.inputs[view.Name].View()),
	}
	for _, message := range view.Errors {
		lines = append(lines, m.styles.Error.Render(message))
	}
	return m.zones.Mark(id, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) selectorView(view render.SelectorView) string {
	var chips []string
	for _, name := range view.Chips {
		chips = append(chips, m.zones.Mark(dropdown.ChipID(name), m.styles.Chip.Render(name+" ×")))
	}
	content := m.styles.Placeholder.Render(view.Placeholder)
	if len(chips) > 0 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	}

	box := m.styles.Input
	if m.order[m.focus] == dropdown.SurfaceID {
		box = m.styles.Focused
	}
	lines := []string{
		m.styles.Label.Render(view.Label + " *"),
		m.zones.Mark(dropdown.SurfaceID, box.Render(content)),
	}

	if view.Open {
		rows := make([]string, 0, len(view.Options))
		for i, opt := range view.Options {
			marker := "  "
			if opt.Selected {
				marker = render.SelectedMarker + " "
			}
			style := m.styles.Option
			if i == m.cursor && m.order[m.focus] == dropdown.SurfaceID {
				style = m.styles.Cursor
			}
			rows = append(rows, m.zones.Mark(dropdown.RowID(opt.Name), style.Render(marker+opt.Name)))
		}
		lines = append(lines, m.zones.Mark(dropdown.ListID, strings.Join(rows, "\n")))
	}
	for _, message := range view.Errors {
		lines = append(lines, m.styles.Error.Render(message))
	}
	return m.zones.Mark(dropdown.RootID, lipgloss.JoinVertical(lipgloss.Left, lines...))
}
