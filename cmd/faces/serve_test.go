package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/metrics"
)

func TestServeHandler(t *testing.T) {
	t.Parallel()

	theme := writeTestTheme(t, testTheme)
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	collector := metrics.New()
	s, err := openSession(context.Background(), root, &rootFlags{theme: theme}, engine.Options{Observer: collector})
	require.NoError(t, err)
	collector.RecordRefresh(s.results, 0)

	srv := httptest.NewServer(newServeHandler(s, collector))
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/surfaces/term/resolve", "application/json", strings.NewReader(`{"ref": "warning"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mresp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	body, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `faces_realized{surface="term"}`)
	assert.Contains(t, string(body), "faces_cache_events_total")
}
