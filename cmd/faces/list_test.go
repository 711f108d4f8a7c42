package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListStyles(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, testTheme)

	output, err := execute(t, "--theme", theme, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "STYLE")
	assert.Contains(t, output, "warning")
	assert.Contains(t, output, "hyperlink")

	output, err = execute(t, "--theme", theme, "list", "--json")
	require.NoError(t, err)
	var rows []styleJSON
	require.NoError(t, json.Unmarshal([]byte(output), &rows))

	byName := make(map[string]styleJSON, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}
	require.Contains(t, byName, "hyperlink")
	assert.Equal(t, "link", byName["hyperlink"].AliasOf)
	assert.Equal(t, byName["link"].Face, byName["hyperlink"].Face)
	assert.Equal(t, 0, byName["default"].Face)
}

func TestListSurfaces(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, testTheme)

	output, err := execute(t, "--theme", theme, "list", "--surfaces", "--json")
	require.NoError(t, err)
	var rows []surfaceJSON
	require.NoError(t, json.Unmarshal([]byte(output), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "mono", rows[0].Name)
	assert.Equal(t, "term", rows[1].Name)
	assert.Equal(t, "tty", rows[1].Kind)
	assert.Positive(t, rows[1].Faces)

	output, err = execute(t, "--theme", theme, "list", "--surfaces")
	require.NoError(t, err)
	assert.Contains(t, output, "SURFACE")
	assert.Contains(t, output, "light")
}
