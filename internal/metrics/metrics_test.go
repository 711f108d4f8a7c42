package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/facecache"
	"github.com/alexisbeaulieu97/faces/internal/tty"
)

func TestObserveCountsEvents(t *testing.T) {
	t.Parallel()

	c := New()
	c.Observe("term", facecache.EventHit)
	c.Observe("term", facecache.EventHit)
	c.Observe("term", facecache.EventMiss)
	c.Observe("gui", facecache.EventRealize)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.events.WithLabelValues("term", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("term", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("gui", "realize")))

	c.Forget("term")
	assert.Equal(t, 1, testutil.CollectAndCount(c.events))
}

func TestRecordRefresh(t *testing.T) {
	t.Parallel()

	c := New()
	c.RecordRefresh([]engine.RefreshResult{
		{Surface: "term", Faces: 20},
		{Surface: "broken", Err: errors.New("no default colors")},
	}, 3*time.Millisecond)

	assert.Equal(t, 20.0, testutil.ToFloat64(c.realized.WithLabelValues("term")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.refreshErrors.WithLabelValues("broken")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.refreshTime))
}

func TestCollectorObservesEngine(t *testing.T) {
	t.Parallel()

	c := New()
	e := engine.New(engine.Options{Observer: c})
	require.NoError(t, e.SetStyleAttribute("link", attr.SlotUnderline, true, engine.Global()))
	_, err := e.AddSurface(engine.SurfaceConfig{
		Name:   "term",
		Kind:   engine.KindTTY,
		Colors: color.NewPalette(color.Depth256),
		Caps:   tty.CapAll,
	})
	require.NoError(t, err)

	results, err := e.Refresh(context.Background())
	require.NoError(t, err)
	c.RecordRefresh(results, time.Millisecond)

	_, err = e.LookupNamed("term", "link", true)
	require.NoError(t, err)
	_, err = e.LookupNamed("term", "link", true)
	require.NoError(t, err)

	assert.Equal(t, float64(len(engine.BasicStyles)), testutil.ToFloat64(c.realized.WithLabelValues("term")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(c.events.WithLabelValues("term", "realize")), float64(len(engine.BasicStyles)+1))
	assert.GreaterOrEqual(t, testutil.ToFloat64(c.events.WithLabelValues("term", "hit")), 1.0)

	srv := httptest.NewServer(c.Handler())
	t.Cleanup(srv.Close)
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `faces_cache_events_total{event="realize",surface="term"}`)
	assert.Contains(t, string(body), `faces_realized{surface="term"} 20`)
}
