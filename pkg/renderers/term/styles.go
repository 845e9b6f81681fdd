package term

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Heading     lipgloss.Style
	Intro       lipgloss.Style
	Label       lipgloss.Style
	Input       lipgloss.Style
	Focused     lipgloss.Style
	Chip        lipgloss.Style
	Placeholder lipgloss.Style
	Option      lipgloss.Style
	Cursor      lipgloss.Style
	Button      lipgloss.Style
	Disabled    lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Help        lipgloss.Style
}

var (
	colorAccent = lipgloss.Color("#2563EB")
	colorMuted  = lipgloss.Color("#6B7280")
	colorError  = lipgloss.Color("#DC2626")
	colorOK     = lipgloss.Color("#16A34A")
	colorWhite  = lipgloss.Color("#FFFFFF")
)

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1).
		Width(48)

	return Styles{
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Intro:       lipgloss.NewStyle().Foreground(colorMuted).MarginBottom(1),
		Label:       lipgloss.NewStyle().Bold(true),
		Input:       box,
		Focused:     box.BorderForeground(colorAccent),
		Chip:        lipgloss.NewStyle().Foreground(colorWhite).Background(colorAccent).Padding(0, 1).MarginRight(1),
		Placeholder: lipgloss.NewStyle().Foreground(colorMuted),
		Option:      lipgloss.NewStyle().PaddingLeft(2),
		Cursor:      lipgloss.NewStyle().PaddingLeft(2).Foreground(colorAccent).Bold(true),
		Button:      lipgloss.NewStyle().Foreground(colorWhite).Background(colorAccent).Padding(0, 2).MarginTop(1),
		Disabled:    lipgloss.NewStyle().Foreground(colorWhite).Background(colorMuted).Padding(0, 2).MarginTop(1),
		Error:       lipgloss.NewStyle().Foreground(colorError),
		Success:     lipgloss.NewStyle().Foreground(colorOK),
		Help:        lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
