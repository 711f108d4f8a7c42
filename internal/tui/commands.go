package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/faces/internal/engine"
)

// refreshCmd drops every realized face and realizes the basic faces again.
func refreshCmd(e *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		e.ClearFaceCache()
		results, err := e.Refresh(context.Background())
		return RefreshedMsg{Results: results, Err: err}
	}
}

// waitForReload blocks for the next theme reload.
func waitForReload(ch <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return ThemeReloadedMsg{Err: err}
	}
}
