package term

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the model full screen with mouse reporting and blocks until the
// user quits or ctx ends.
func Run(ctx context.Context, m *Model, options ...tea.ProgramOption) error {
	if m.ownZones {
		defer m.zones.Close()
	}

	base := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	program := tea.NewProgram(m, append(base, options...)...)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
