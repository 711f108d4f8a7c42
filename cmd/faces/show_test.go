package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/facecache"
)

func TestShowSavesAndReloadsSnapshot(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, testTheme)
	saved := filepath.Join(t.TempDir(), "snapshots", "term.json")

	output, err := execute(t, "--theme", theme, "show", "--save", saved)
	require.NoError(t, err)
	assert.Contains(t, output, "Surface: term")
	assert.Contains(t, output, "ATTRIBUTES")

	snap, err := facecache.ReadSnapshot(saved)
	require.NoError(t, err)
	assert.Equal(t, "term", snap.Surface)
	assert.Len(t, snap.Faces, len(engine.BasicStyles))

	output, err = execute(t, "show", "--from", saved, "--json")
	require.NoError(t, err)
	var reread facecache.Snapshot
	require.NoError(t, json.Unmarshal([]byte(output), &reread))
	assert.Equal(t, snap, reread)
}

func TestShowMissingSnapshot(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "show", "--from", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading snapshot")
}

func TestShowDiff(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, testTheme)
	saved := filepath.Join(t.TempDir(), "term.json")
	_, err := execute(t, "--theme", theme, "show", "--save", saved)
	require.NoError(t, err)

	output, err := execute(t, "--theme", theme, "show", "--diff", saved)
	require.NoError(t, err)
	assert.Equal(t, "No differences.\n", output)

	changed := writeTestTheme(t, strings.Replace(testTheme, "background: white", "background: yellow", 1))
	output, err = execute(t, "--theme", changed, "show", "--diff", saved)
	require.NoError(t, err)
	assert.Contains(t, output, "-face 0")
	assert.Contains(t, output, "+face 0")
	assert.Contains(t, output, "background=yellow")
}
