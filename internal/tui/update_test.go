package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/engine"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestListKeys(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		keys   []tea.KeyMsg
		assert func(t *testing.T, m Model)
	}{
		{
			name: "down moves the cursor",
			keys: []tea.KeyMsg{runes("j"), {Type: tea.KeyDown}},
			assert: func(t *testing.T, m Model) {
				assert.Equal(t, 2, m.Cursor())
			},
		},
		{
			name: "up wraps",
			keys: []tea.KeyMsg{runes("k")},
			assert: func(t *testing.T, m Model) {
				assert.Equal(t, len(m.Styles())-1, m.Cursor())
			},
		},
		{
			name: "tab switches surface",
			keys: []tea.KeyMsg{{Type: tea.KeyTab}},
			assert: func(t *testing.T, m Model) {
				assert.Equal(t, "beta", m.Surface())
			},
		},
		{
			name: "shift tab switches back",
			keys: []tea.KeyMsg{{Type: tea.KeyShiftTab}},
			assert: func(t *testing.T, m Model) {
				assert.Equal(t, "beta", m.Surface())
			},
		},
		{
			name: "question mark opens help",
			keys: []tea.KeyMsg{runes("?")},
			assert: func(t *testing.T, m Model) {
				assert.Equal(t, ViewHelp, m.Mode())
			},
		},
		{
			name: "any key closes help",
			keys: []tea.KeyMsg{runes("?"), runes("z")},
			assert: func(t *testing.T, m Model) {
				assert.Equal(t, ViewList, m.Mode())
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := newTestModel(t, Options{})
			for _, k := range tc.keys {
				m, _ = press(t, m, k)
			}
			tc.assert(t, m)
		})
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDetailView(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	for i, name := range m.Styles() {
		if name == "link" {
			m.cursor = i
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewDetail, m.Mode())
	view := m.View()
	assert.Contains(t, view, "Global definition")
	assert.Contains(t, view, "foreground")
	assert.Contains(t, view, "blue")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewList, m.Mode())
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	m, cmd := press(t, m, runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.Refreshing())

	// A second press while refreshing is ignored.
	_, again := press(t, m, runes("r"))
	assert.Nil(t, again)

	msg := refreshCmd(m.engine)()
	refreshed, ok := msg.(RefreshedMsg)
	require.True(t, ok)
	require.NoError(t, refreshed.Err)
	require.Len(t, refreshed.Results, 2)

	m, _ = press(t, m, refreshed)
	assert.False(t, m.Refreshing())
	assert.Equal(t, 2*len(engine.BasicStyles), m.lastFaces)
	assert.Contains(t, m.View(), "faces realized")
}

func TestRefreshReportsSurfaceErrors(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	m, _ = press(t, m, RefreshedMsg{Results: []engine.RefreshResult{{Surface: "beta", Err: errors.New("boom")}}})
	assert.Contains(t, m.View(), "beta: boom")

	m, _ = press(t, m, runes("x"))
	assert.NotContains(t, m.View(), "boom")
}

func TestThemeReload(t *testing.T) {
	t.Parallel()

	reloads := make(chan error, 2)
	m := newTestModel(t, Options{Reloads: reloads})
	require.NotNil(t, m.Init())

	reloads <- errors.New("line 3: bad indent")
	msg := m.Init()()
	m, cmd := press(t, m, msg)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "theme reload failed")

	require.NoError(t, m.engine.DefineStyle("zebra", engine.Global()))
	reloads <- nil
	m, _ = press(t, m, cmd())
	assert.NotContains(t, m.View(), "theme reload failed")
	assert.Contains(t, m.Styles(), "zebra")

	close(reloads)
	assert.Nil(t, waitForReload(reloads)())
}

func TestWindowSize(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 8})
	assert.Equal(t, 120, m.detail.Width)
	assert.Equal(t, 4, m.detail.Height)

	for range len(m.Styles()) - 1 {
		m.MoveCursorDown()
	}
	assert.Greater(t, m.scrollOffset, 0)
	assert.Contains(t, m.View(), "More above")
}
