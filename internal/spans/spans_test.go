package spans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/merge"
)

func TestPutAndProperty(t *testing.T) {
	t.Parallel()

	b := NewBuffer(20)
	b.Put(2, 8, PropFace, merge.Name("bold"))
	b.Put(5, 10, PropFace, merge.Name("link"))

	tests := []struct {
		pos  int
		want merge.Ref
	}{
		{0, nil},
		{2, merge.Name("bold")},
		{4, merge.Name("bold")},
		{5, merge.Name("link")},
		{9, merge.Name("link")},
		{10, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Property(tt.pos, PropFace), "pos %d", tt.pos)
	}
	assert.Nil(t, b.Property(3, PropMouseFace))

	b.Put(3, 4, PropFace, nil)
	require.Equal(t, []Run{
		{Start: 2, End: 3, Ref: merge.Name("bold")},
		{Start: 4, End: 5, Ref: merge.Name("bold")},
		{Start: 5, End: 10, Ref: merge.Name("link")},
	}, b.Runs(PropFace))
}

func TestNextChange(t *testing.T) {
	t.Parallel()

	b := NewBuffer(20)
	b.Put(5, 10, PropFace, merge.Name("bold"))

	next, ok := b.NextChange(0, PropFace, 20)
	require.True(t, ok)
	require.Equal(t, 5, next)

	next, ok = b.NextChange(6, PropFace, 20)
	require.True(t, ok)
	require.Equal(t, 10, next)

	next, ok = b.NextChange(12, PropFace, 20)
	require.False(t, ok)
	require.Equal(t, 20, next)

	next, ok = b.NextChange(0, PropFace, 3)
	require.False(t, ok)
	require.Equal(t, 3, next)
}

func TestOverlaysAt(t *testing.T) {
	t.Parallel()

	b := NewBuffer(30)
	low := b.AddOverlay(0, 20, 0, map[string]merge.Ref{PropFace: merge.Name("region")})
	high := b.AddOverlay(5, 15, 10, map[string]merge.Ref{PropFace: merge.Name("isearch")})
	b.AddOverlay(25, 30, 0, nil)

	overlays, next := b.OverlaysAt(7)
	require.Len(t, overlays, 2)
	assert.Equal(t, low, overlays[0].ID)
	assert.Equal(t, high, overlays[1].ID)
	assert.Equal(t, 15, next)

	overlays, next = b.OverlaysAt(2)
	require.Len(t, overlays, 1)
	assert.Equal(t, 5, next)

	overlays, next = b.OverlaysAt(21)
	require.Empty(t, overlays)
	assert.Equal(t, 25, next)

	require.True(t, b.DeleteOverlay(high))
	require.False(t, b.DeleteOverlay(high))
	overlays, _ = b.OverlaysAt(7)
	require.Len(t, overlays, 1)
}

func TestOverlayTieBreak(t *testing.T) {
	t.Parallel()

	overlays := []Overlay{
		{ID: 1, Start: 0, End: 10},
		{ID: 2, Start: 3, End: 10},
		{ID: 3, Start: 0, End: 5},
		{ID: 4, Start: 0, End: 10, Priority: -1},
	}
	sortOverlays(overlays)

	ids := make([]int, 0, len(overlays))
	for _, o := range overlays {
		ids = append(ids, o.ID)
	}
	require.Equal(t, []int{4, 1, 3, 2}, ids)
}

func TestInsertAndDelete(t *testing.T) {
	t.Parallel()

	b := NewBuffer(20)
	b.Put(5, 10, PropFace, merge.Name("bold"))
	id := b.AddOverlay(12, 15, 0, nil)

	b.Insert(7, 3)
	require.Equal(t, 23, b.Len())
	require.Equal(t, []Run{{Start: 5, End: 13, Ref: merge.Name("bold")}}, b.Runs(PropFace))

	b.Insert(5, 2)
	require.Equal(t, []Run{{Start: 7, End: 15, Ref: merge.Name("bold")}}, b.Runs(PropFace))

	b.Delete(0, 8)
	require.Equal(t, 17, b.Len())
	require.Equal(t, []Run{{Start: 0, End: 7, Ref: merge.Name("bold")}}, b.Runs(PropFace))

	overlays, _ := b.OverlaysAt(10)
	require.Len(t, overlays, 1)
	assert.Equal(t, id, overlays[0].ID)
	assert.Equal(t, 9, overlays[0].Start)

	b.Delete(0, 7)
	require.Empty(t, b.Runs(PropFace))
}

func TestNewString(t *testing.T) {
	t.Parallel()

	require.Equal(t, 5, NewString("héllo").Len())
}
