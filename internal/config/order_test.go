package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

func TestStyleOrder(t *testing.T) {
	t.Parallel()

	styles := map[string]map[string]any{
		"default":      {"foreground": "black"},
		"link":         {"inherit": "default", "underline": true},
		"link-visited": {"inherit": []any{"link", "shadow"}},
		"shadow":       {"inherit": "link"},
		"bold":         {"weight": "bold"},
		"outside":      {"inherit": "not-in-theme"},
	}

	levels, err := StyleOrder(styles)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"bold", "default", "outside"},
		{"link"},
		{"shadow"},
		{"link-visited"},
	}, levels)
}

func TestStyleOrderDetectsCycles(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		styles map[string]map[string]any
		stuck  []string
	}{
		{
			name:   "self",
			styles: map[string]map[string]any{"a": {"inherit": "a"}},
			stuck:  []string{"a"},
		},
		{
			name: "through a list",
			styles: map[string]map[string]any{
				"a":    {"inherit": []any{"b"}},
				"b":    {"inherit": []string{"c"}},
				"c":    {"inherit": "a"},
				"free": {"weight": "bold"},
			},
			stuck: []string{"a", "b", "c"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := StyleOrder(tc.styles)
			var ce *faceerrors.InheritanceCycleError
			require.ErrorAs(t, err, &ce)
			require.Equal(t, tc.stuck, ce.Path)
		})
	}
}
