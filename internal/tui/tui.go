// Package tui is the interactive terminal front end for the todo list.
package tui

import (
	"context"

	"todo-cli/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full-screen UI and blocks until the user quits. Changes are
// recorded in opts.Journal (if set) and logged at debug level.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(opts)
	if m.journal != nil {
		onErr := func(err error) { m.logger.Warn("journal", "err", err) }
		defer m.store.Subscribe(m.journal.Observer(ctx, onErr))()
	}
	defer m.store.Subscribe(logging.ChangeObserver(m.logger))()

	m.logger.Info("tui started")
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	m.logger.Info("tui stopped")
	return err
}
