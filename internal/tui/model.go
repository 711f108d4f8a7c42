// Package tui is an interactive browser for the styles of an engine,
// showing every style rendered in its realized face.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/preview"
)

// Options configures the browser.
type Options struct {
	Renderer *preview.Renderer
	// Surface is the surface shown first. Empty means the first one.
	Surface string
	// Reloads delivers the outcome of each theme reload, if the theme is
	// watched.
	Reloads <-chan error
	// SampleText is rendered in each face. Empty means a pangram.
	SampleText string
}

const defaultSample = "The quick brown fox jumps over the lazy dog"

// Model is the browser state.
type Model struct {
	engine  *engine.Engine
	render  *preview.Renderer
	reloads <-chan error
	sample  string

	surfaces []string
	surface  int
	styles   []string

	viewMode     ViewMode
	cursor       int
	scrollOffset int
	selected     string

	detail     viewport.Model
	spinner    spinner.Model
	refreshing bool
	lastFaces  int

	errorMsg string

	width  int
	height int
}

// NewModel builds a browser over e.
func NewModel(e *engine.Engine, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	sample := opts.SampleText
	if sample == "" {
		sample = defaultSample
	}

	m := Model{
		engine:   e,
		render:   opts.Renderer,
		reloads:  opts.Reloads,
		sample:   sample,
		viewMode: ViewList,
		detail:   viewport.New(80, 20),
		spinner:  s,
		width:    80,
		height:   24,
	}
	m.reloadNames()
	for i, name := range m.surfaces {
		if name == opts.Surface {
			m.surface = i
		}
	}
	return m
}

// Init starts listening for theme reloads.
func (m Model) Init() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	return waitForReload(m.reloads)
}

// Surface returns the name of the surface on display, or "" when the engine
// has none.
func (m Model) Surface() string {
	if len(m.surfaces) == 0 {
		return ""
	}
	return m.surfaces[m.surface]
}

// Styles returns the listed style names.
func (m Model) Styles() []string { return m.styles }

// Cursor returns the list cursor.
func (m Model) Cursor() int { return m.cursor }

// Mode returns the current view.
func (m Model) Mode() ViewMode { return m.viewMode }

// Refreshing reports whether a refresh is in flight.
func (m Model) Refreshing() bool { return m.refreshing }

// SelectedStyle returns the style under the cursor.
func (m Model) SelectedStyle() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.styles) {
		return "", false
	}
	return m.styles[m.cursor], true
}

// MoveCursorUp moves up, wrapping to the bottom.
func (m *Model) MoveCursorUp() {
	if len(m.styles) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.styles) - 1
	}
	m.ensureVisible()
}

// MoveCursorDown moves down, wrapping to the top.
func (m *Model) MoveCursorDown() {
	if len(m.styles) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.styles) {
		m.cursor = 0
	}
	m.ensureVisible()
}

// NextSurface cycles through the surfaces by delta.
func (m *Model) NextSurface(delta int) {
	n := len(m.surfaces)
	if n == 0 {
		return
	}
	m.surface = ((m.surface+delta)%n + n) % n
}

func (m *Model) listHeight() int {
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) ensureVisible() {
	h := m.listHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+h {
		m.scrollOffset = m.cursor - h + 1
	}
}

// reloadNames re-reads surfaces and styles, keeping the selection by name
// where it still exists.
func (m *Model) reloadNames() {
	current := m.Surface()
	selected, _ := m.SelectedStyle()

	m.surfaces = m.engine.SurfaceNames()
	m.styles = m.engine.StyleNames()

	m.surface = 0
	for i, name := range m.surfaces {
		if name == current {
			m.surface = i
		}
	}
	m.cursor = 0
	for i, name := range m.styles {
		if name == selected {
			m.cursor = i
		}
	}
	m.ensureVisible()
}
