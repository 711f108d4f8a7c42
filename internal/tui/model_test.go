package tui

import (
	"io"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/preview"
	"github.com/alexisbeaulieu97/faces/internal/tty"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	e := engine.New(engine.Options{})
	require.NoError(t, e.SetStyleAttribute("default", attr.SlotForeground, "black", engine.Global()))
	require.NoError(t, e.SetStyleAttribute("default", attr.SlotBackground, "white", engine.Global()))
	require.NoError(t, e.SetStyleAttribute("link", attr.SlotForeground, "blue", engine.Global()))
	require.NoError(t, e.SetStyleAttribute("link", attr.SlotUnderline, true, engine.Global()))
	for _, name := range []string{"alpha", "beta"} {
		_, err := e.AddSurface(engine.SurfaceConfig{
			Name:   name,
			Kind:   engine.KindTTY,
			Colors: color.NewPalette(color.Depth256),
			Caps:   tty.CapAll,
		})
		require.NoError(t, err)
	}
	return e
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Renderer == nil {
		opts.Renderer = preview.NewWithProfile(io.Discard, termenv.Ascii)
	}
	return NewModel(newTestEngine(t), opts)
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		surface string
		want    string
	}{
		{name: "first surface by default", want: "alpha"},
		{name: "requested surface", surface: "beta", want: "beta"},
		{name: "unknown surface falls back", surface: "gamma", want: "alpha"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := newTestModel(t, Options{Surface: tc.surface})
			assert.Equal(t, tc.want, m.Surface())
			assert.Equal(t, ViewList, m.Mode())
			assert.Contains(t, m.Styles(), "link")
			assert.Contains(t, m.Styles(), "default")
			assert.Nil(t, m.Init())
		})
	}
}

func TestCursorWraps(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	n := len(m.Styles())
	require.Greater(t, n, 1)

	m.MoveCursorUp()
	assert.Equal(t, n-1, m.Cursor())
	m.MoveCursorDown()
	assert.Equal(t, 0, m.Cursor())
	m.MoveCursorDown()
	assert.Equal(t, 1, m.Cursor())

	name, ok := m.SelectedStyle()
	require.True(t, ok)
	assert.Equal(t, m.Styles()[1], name)
}

func TestNextSurfaceWraps(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	m.NextSurface(1)
	assert.Equal(t, "beta", m.Surface())
	m.NextSurface(1)
	assert.Equal(t, "alpha", m.Surface())
	m.NextSurface(-1)
	assert.Equal(t, "beta", m.Surface())
}

func TestEmptyEngine(t *testing.T) {
	t.Parallel()

	m := NewModel(engine.New(engine.Options{}), Options{})
	assert.Equal(t, "", m.Surface())
	m.NextSurface(1)
	assert.Contains(t, m.View(), "No surfaces registered")
}
