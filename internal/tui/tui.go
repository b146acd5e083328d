package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"kiosk-cli/internal/store"
)

// Run starts the full-screen reader over an already-loaded library.
func Run(s store.Store, db *store.DB) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		cfg = &store.GlobalConfig{}
	}
	applyAppearancePreferences(cfg)

	m := newAppModel(s, db, resolveTheme(cfg), DefaultMetrics())
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
