package style

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

func TestDefineAssignsStableIDs(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	def := g.Define(DefaultName)
	link := g.Define("link")
	require.Equal(t, 0, def.ID)
	require.Equal(t, 1, link.ID)

	g.Set("link", attr.SlotForeground, attr.String("blue"))
	again := g.Define("link")
	require.Equal(t, 1, again.ID)
	require.True(t, again.Attrs.Empty())

	byID, ok := g.ByID(1)
	require.True(t, ok)
	require.Equal(t, "link", byID.Name)
	require.Equal(t, []string{"default", "link"}, g.Names())
}

func TestLookupHidesIgnoreDefault(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	g.Set("mode-line", attr.SlotForeground, attr.IgnoreDefault())

	v, ok := g.Lookup("mode-line")
	require.True(t, ok)
	require.True(t, v[attr.SlotForeground].IsUnspecified())

	raw, ok := g.Raw("mode-line")
	require.True(t, ok)
	require.True(t, raw[attr.SlotForeground].IsIgnoreDefault())

	_, ok = g.Lookup("missing")
	require.False(t, ok)
}

func TestResolveAliases(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	g.SetAlias("hyperlink", "link")
	g.SetAlias("url", "hyperlink")

	name, err := g.Resolve("url")
	require.NoError(t, err)
	require.Equal(t, "link", name)

	name, err = g.Resolve("plain")
	require.NoError(t, err)
	require.Equal(t, "plain", name)

	g.SetAlias("a", "b")
	g.SetAlias("b", "c")
	g.SetAlias("c", "a")
	name, err = g.Resolve("a")
	var aliasErr *faceerrors.AliasCycleError
	require.ErrorAs(t, err, &aliasErr)
	require.Equal(t, DefaultName, name)

	g.SetAlias("self", "self")
	name, err = g.Resolve("self")
	require.Error(t, err)
	require.Equal(t, DefaultName, name)

	g.SetAlias("c", "")
	name, err = g.Resolve("a")
	require.NoError(t, err)
	require.Equal(t, "c", name)
}

func TestCheckInheritance(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	g.Set("a", attr.SlotForeground, attr.String("red"))
	g.Set("b", attr.SlotInherit, attr.Names("a"))
	g.Set("c", attr.SlotInherit, attr.Names("x", "b"))
	g.Set("loop1", attr.SlotInherit, attr.Names("loop2"))
	g.Set("loop2", attr.SlotInherit, attr.Names("loop1"))
	g.SetAlias("alias-a", "a")
	g.Set("via", attr.SlotInherit, attr.Names("alias-a"))

	tests := []struct {
		name    string
		child   string
		parents []string
		cycle   bool
	}{
		{name: "self", child: "a", parents: []string{"a"}, cycle: true},
		{name: "direct back edge", child: "a", parents: []string{"b"}, cycle: true},
		{name: "through list branch", child: "a", parents: []string{"c"}, cycle: true},
		{name: "unrelated", child: "d", parents: []string{"c"}, cycle: false},
		{name: "unknown parent", child: "a", parents: []string{"nowhere"}, cycle: false},
		{name: "existing loop", child: "d", parents: []string{"loop1"}, cycle: true},
		{name: "own alias", child: "a", parents: []string{"alias-a"}, cycle: true},
		{name: "child named by alias", child: "alias-a", parents: []string{"a"}, cycle: true},
		{name: "alias deeper in chain", child: "a", parents: []string{"via"}, cycle: true},
		{name: "alias to unrelated", child: "d", parents: []string{"via"}, cycle: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckInheritance(g.Lookup, g.Resolve, tt.child, tt.parents)
			if !tt.cycle {
				require.NoError(t, err)
				return
			}
			var cycleErr *faceerrors.InheritanceCycleError
			require.ErrorAs(t, err, &cycleErr)
			child, _ := g.Resolve(tt.child)
			require.Equal(t, child, cycleErr.Style)
			require.NotEmpty(t, cycleErr.Path)
		})
	}
}

func TestEqualEmptyAndCopy(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	g.Set("a", attr.SlotWeight, attr.WeightOf(attr.WeightBold))
	require.NoError(t, g.Copy("a", "b"))

	equal, err := g.Equal("a", "b")
	require.NoError(t, err)
	require.True(t, equal)

	g.Set("b", attr.SlotForeground, attr.String("Red"))
	equal, err = g.Equal("a", "b")
	require.NoError(t, err)
	require.False(t, equal)

	g.Ensure("blank")
	empty, err := g.Empty("blank")
	require.NoError(t, err)
	require.True(t, empty)

	_, err = g.Empty("missing")
	var unknown *faceerrors.UnknownStyleError
	require.ErrorAs(t, err, &unknown)
	require.Error(t, g.Copy("missing", "b"))
}

func TestTableOverlayAndMergeInGlobal(t *testing.T) {
	t.Parallel()

	g := NewGraph()
	g.Set("link", attr.SlotForeground, attr.String("blue"))
	g.Set("link", attr.SlotUnderline, attr.IgnoreDefault())

	tbl := NewTable()
	v, ok := tbl.Lookup(g, "link")
	require.True(t, ok)
	require.True(t, attr.String("blue").Equal(v[attr.SlotForeground]))

	local := tbl.Define(g, "link")
	local[attr.SlotForeground] = attr.String("green")
	local[attr.SlotUnderline] = attr.On()
	local[attr.SlotWeight] = attr.WeightOf(attr.WeightBold)

	v, _ = tbl.Lookup(g, "link")
	require.True(t, attr.String("green").Equal(v[attr.SlotForeground]))

	require.NoError(t, tbl.MergeInGlobal(g, "link"))
	v, _ = tbl.Lookup(g, "link")
	require.True(t, attr.String("blue").Equal(v[attr.SlotForeground]))
	require.True(t, v[attr.SlotUnderline].IsUnspecified())
	require.True(t, attr.WeightOf(attr.WeightBold).Equal(v[attr.SlotWeight]))

	require.NoError(t, tbl.Copy(g, "link", "visited"))
	equal, err := tbl.Equal("link", "visited")
	require.NoError(t, err)
	require.True(t, equal)
	require.Equal(t, []string{"link", "visited"}, tbl.Names())

	_, ok = g.Get("visited")
	require.True(t, ok)
}
