package main

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/merge"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

func TestParseRefArg(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		arg  string
		want merge.Ref
	}{
		{name: "style name", arg: "link", want: merge.Name("link")},
		{name: "property list", arg: "{weight: bold}", want: merge.Props{{Key: "weight", Value: "bold"}}},
		{name: "list of names", arg: "[link, bold]", want: merge.List{merge.Name("link"), merge.Name("bold")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseRefArg(tc.arg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRefArgRejectsBadYAML(t *testing.T) {
	t.Parallel()

	_, err := parseRefArg("{weight: [bold")
	require.Error(t, err)
	var invalid *faceerrors.InvalidReferenceError
	assert.True(t, errors.As(err, &invalid))
}

func TestParseRefArgs(t *testing.T) {
	t.Parallel()

	single, err := parseRefArgs([]string{"link"})
	require.NoError(t, err)
	assert.Equal(t, merge.Name("link"), single)

	several, err := parseRefArgs([]string{"link", "{slant: italic}"})
	require.NoError(t, err)
	assert.Equal(t, merge.List{merge.Name("link"), merge.Props{{Key: "slant", Value: "italic"}}}, several)
}

func TestResolveCommand(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, testTheme)

	output, err := execute(t, "--theme", theme, "resolve", "warning")
	require.NoError(t, err)
	assert.Contains(t, output, "Surface: term")
	assert.Contains(t, output, "foreground")
	assert.Contains(t, output, "blue")
	assert.Contains(t, output, "weight")

	output, err = execute(t, "--theme", theme, "resolve", "--json", "hyperlink", "{foreground: red}")
	require.NoError(t, err)
	var face faceJSON
	require.NoError(t, json.Unmarshal([]byte(output), &face))
	assert.Equal(t, "term", face.Surface)
	assert.Equal(t, "blue", face.Attrs["foreground"], "earlier references win")
	assert.Equal(t, "single", face.Terminal["underline"])

	output, err = execute(t, "--theme", theme, "resolve", "--preview", "--sample", "hello", "link")
	require.NoError(t, err)
	assert.Contains(t, output, "hello")

	output, err = execute(t, "--theme", theme, "resolve", "no-such-style")
	require.NoError(t, err, "unknown styles contribute nothing")
	assert.Contains(t, output, "Face:    0")
}

func TestSupportsCommand(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, testTheme)

	output, err := execute(t, "--theme", theme, "supports", "{slant: italic}")
	require.NoError(t, err)
	assert.Contains(t, output, "supported on term")

	output, err = execute(t, "--theme", theme, "--surface", "mono", "supports", "{foreground: red}")
	require.ErrorIs(t, err, errUnsupported)
	assert.Contains(t, output, "not supported on mono")

	output, err = execute(t, "--theme", theme, "--surface", "mono", "supports", "-q", "{foreground: red}")
	require.ErrorIs(t, err, errUnsupported)
	assert.Empty(t, output)
}
