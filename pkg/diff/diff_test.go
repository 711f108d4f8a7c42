package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/facecache"
)

func TestUnified(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		before   string
		after    string
		empty    bool
		contains []string
	}{
		{name: "identical", before: "a\nb\n", after: "a\nb\n", empty: true},
		{
			name:     "single line change",
			before:   "line1\nline2\nline3\n",
			after:    "line1\nmodified\nline3\n",
			contains: []string{"--- old", "+++ new", " line1", "-line2", "+modified", " line3"},
		},
		{
			name:     "appended line",
			before:   "line1\n",
			after:    "line1\nline2\n",
			contains: []string{"@@ -1,1 +1,2 @@", "+line2"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := Unified([]byte(tc.before), []byte(tc.after), "old", "new")
			if tc.empty {
				assert.Empty(t, out)
				return
			}
			for _, want := range tc.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestUnifiedTruncates(t *testing.T) {
	t.Parallel()

	var before, after strings.Builder
	for i := 0; i < maxDiffLines+10; i++ {
		before.WriteString("a\n")
		after.WriteString("b\n")
	}
	out := Unified([]byte(before.String()), []byte(after.String()), "old", "new")
	require.Contains(t, out, truncateMessage)
}

func TestSnapshots(t *testing.T) {
	t.Parallel()

	before := facecache.Snapshot{Surface: "term", Faces: []facecache.Entry{
		{ID: 0, Base: true, Attrs: map[string]any{"foreground": "black", "background": "white"}},
		{ID: 1, Base: true, Attrs: map[string]any{"foreground": "blue"}},
	}}
	after := facecache.Snapshot{Surface: "term", Faces: []facecache.Entry{
		{ID: 1, Base: true, Attrs: map[string]any{"foreground": "red"}},
		{ID: 0, Base: true, Attrs: map[string]any{"foreground": "black", "background": "white"}},
		{ID: 2, BaseID: 1, Attrs: map[string]any{"foreground": "red"}},
	}}

	out := Snapshots(before, after)
	assert.Contains(t, out, "--- before: term")
	assert.Contains(t, out, " face 0 background=white foreground=black")
	assert.Contains(t, out, "-face 1 foreground=blue")
	assert.Contains(t, out, "+face 1 foreground=red")
	assert.Contains(t, out, "+face 2 (of 1) foreground=red")

	assert.Empty(t, Snapshots(before, before))
}
