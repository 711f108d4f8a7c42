package config

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/engine"
)

func TestWatcherReappliesOnWrite(t *testing.T) {
	t.Parallel()

	path := writeTheme(t, "watched.yaml", validYAML)
	theme, err := Load(path)
	require.NoError(t, err)

	e := engine.New(theme.EngineOptions(engine.Options{}))
	_, err = Apply(context.Background(), e, theme, ApplyOptions{})
	require.NoError(t, err)

	w, err := NewWatcher(path, e, ApplyOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	w.SetDebounce(50 * time.Millisecond)

	reloaded := make(chan error, 4)
	w.OnReload(func(_ *Theme, err error) { reloaded <- err })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	updated := strings.Replace(validYAML, "foreground: blue", "foreground: green", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("theme was not reloaded")
	}

	v, err := e.StyleAttribute("link", attr.SlotForeground, engine.Global())
	require.NoError(t, err)
	assert.Equal(t, attr.String("green"), v)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherReportsBrokenTheme(t *testing.T) {
	t.Parallel()

	path := writeTheme(t, "watched.yaml", validYAML)
	e := engine.New(engine.Options{})

	w, err := NewWatcher(path, e, ApplyOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	w.SetDebounce(50 * time.Millisecond)

	reloaded := make(chan error, 4)
	w.OnReload(func(_ *Theme, err error) { reloaded <- err })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("styles: [\n"), 0o600))

	select {
	case err := <-reloaded:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("theme was not reloaded")
	}
}
