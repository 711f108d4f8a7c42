package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-4, 1)
		m.ensureVisible()
		if m.viewMode == ViewDetail {
			m.detail.SetContent(m.detailContent(m.selected))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RefreshedMsg:
		m.refreshing = false
		m.lastFaces = 0
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		}
		for _, r := range msg.Results {
			m.lastFaces += r.Faces
			if r.Err != nil {
				m.errorMsg = fmt.Sprintf("%s: %s", r.Surface, r.Err)
			}
		}
		m.reloadNames()
		return m, nil

	case ThemeReloadedMsg:
		if msg.Err != nil {
			m.errorMsg = "theme reload failed: " + msg.Err.Error()
		} else {
			m.errorMsg = ""
			m.reloadNames()
			if m.viewMode == ViewDetail {
				m.detail.SetContent(m.detailContent(m.selected))
			}
		}
		return m, waitForReload(m.reloads)

	case ErrorMsg:
		m.errorMsg = msg.Message
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.MoveCursorUp()
	case "down", "j":
		m.MoveCursorDown()

	case "tab":
		m.NextSurface(1)
	case "shift+tab":
		m.NextSurface(-1)

	case "enter", " ":
		if name, ok := m.SelectedStyle(); ok {
			m.selected = name
			m.viewMode = ViewDetail
			m.detail.SetContent(m.detailContent(name))
			m.detail.GotoTop()
		}

	case "r":
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, tea.Batch(m.spinner.Tick, refreshCmd(m.engine))

	case "?":
		m.viewMode = ViewHelp

	case "x", "esc":
		m.errorMsg = ""
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace", "h", "left":
		m.viewMode = ViewList
		m.selected = ""
		return m, nil
	case "?":
		m.viewMode = ViewHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}
	if m.selected != "" {
		m.viewMode = ViewDetail
	} else {
		m.viewMode = ViewList
	}
	return m, nil
}
