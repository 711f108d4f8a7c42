package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/facecache"
	"github.com/alexisbeaulieu97/faces/internal/metrics"
	"github.com/alexisbeaulieu97/faces/internal/tty"
)

func newTestServer(t *testing.T) (*engine.Engine, *httptest.Server) {
	t.Helper()

	collector := metrics.New()
	e := engine.New(engine.Options{Observer: collector})
	require.NoError(t, e.SetStyleAttribute("default", attr.SlotForeground, "black", engine.Global()))
	require.NoError(t, e.SetStyleAttribute("default", attr.SlotBackground, "white", engine.Global()))
	require.NoError(t, e.SetStyleAttribute("link", attr.SlotUnderline, true, engine.Global()))
	require.NoError(t, e.SetStyleAttribute("link", attr.SlotForeground, "blue", engine.Global()))
	_, err := e.AddSurface(engine.SurfaceConfig{
		Name:   "term",
		Kind:   engine.KindTTY,
		Colors: color.NewPalette(color.Depth256),
		Caps:   tty.CapAll,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(e, Options{Metrics: collector.Handler()}))
	t.Cleanup(srv.Close)
	return e, srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var raw any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		if m, ok := raw.(map[string]any); ok {
			out = m
		} else {
			out = map[string]any{"items": raw}
		}
	}
	return resp, out
}

func TestResolve(t *testing.T) {
	t.Parallel()

	_, srv := newTestServer(t)

	cases := []struct {
		name   string
		ref    any
		status int
		assert func(t *testing.T, body map[string]any)
	}{
		{
			name:   "named style",
			ref:    "link",
			status: http.StatusOK,
			assert: func(t *testing.T, body map[string]any) {
				attrs := body["attrs"].(map[string]any)
				assert.Equal(t, "blue", attrs["foreground"])
				assert.Equal(t, true, attrs["underline"])
				terminal := body["terminal"].(map[string]any)
				assert.Equal(t, "single", terminal["underline"])
			},
		},
		{
			name:   "property list",
			ref:    map[string]any{"weight": "bold"},
			status: http.StatusOK,
			assert: func(t *testing.T, body map[string]any) {
				terminal := body["terminal"].(map[string]any)
				assert.Equal(t, true, terminal["bold"])
			},
		},
		{
			name:   "null is the default face",
			ref:    nil,
			status: http.StatusOK,
			assert: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(engine.DefaultFaceID), body["id"])
			},
		},
		{
			name:   "invalid reference",
			ref:    42,
			status: http.StatusBadRequest,
			assert: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["error"], "reference")
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			resp, body := do(t, srv, http.MethodPost, "/surfaces/term/resolve", map[string]any{"ref": tc.ref})
			require.Equal(t, tc.status, resp.StatusCode)
			tc.assert(t, body)
		})
	}
}

func TestUnknownSurfaceIsNotFound(t *testing.T) {
	t.Parallel()

	_, srv := newTestServer(t)
	resp, body := do(t, srv, http.MethodGet, "/surfaces/nowhere/faces", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "nowhere")
}

func TestSupports(t *testing.T) {
	t.Parallel()

	_, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/surfaces/term/supports", map[string]any{"ref": map[string]any{"slant": "italic"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["supported"])

	resp, body = do(t, srv, http.MethodPost, "/surfaces/term/supports", map[string]any{"ref": map[string]any{"foreground": "black"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["supported"])
}

func TestSnapshotAndFace(t *testing.T) {
	t.Parallel()

	_, srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/surfaces/term/resolve", map[string]any{"ref": "link"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(srv.URL + "/surfaces/term/faces")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snap facecache.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "term", snap.Surface)
	require.Len(t, snap.Faces, len(engine.BasicStyles)+1)

	resp2, body := do(t, srv, http.MethodGet, "/surfaces/term/faces/0", nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, float64(0), body["id"])

	resp3, _ := do(t, srv, http.MethodGet, "/surfaces/term/faces/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestStylesAndAttributes(t *testing.T) {
	t.Parallel()

	e, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/styles", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["styles"], "link")

	resp, _ = do(t, srv, http.MethodPut, "/styles/link/weight", map[string]any{"value": "bold"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	v, err := e.StyleAttribute("link", attr.SlotWeight, engine.Global())
	require.NoError(t, err)
	assert.Equal(t, attr.WeightOf(attr.WeightBold), v)

	resp, _ = do(t, srv, http.MethodPut, "/styles/link/height?surface=term", map[string]any{"value": 1.5})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	local, err := e.StyleAttribute("link", attr.SlotHeight, engine.OnSurface("term"))
	require.NoError(t, err)
	assert.Equal(t, attr.Float(1.5), local)

	resp, body = do(t, srv, http.MethodGet, "/styles/link", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	attrs := body["attrs"].(map[string]any)
	assert.Equal(t, "blue", attrs["foreground"])
	assert.NotContains(t, attrs, "height")

	resp, _ = do(t, srv, http.MethodPut, "/styles/link/colour", map[string]any{"value": "red"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPut, "/styles/link/inherit", map[string]any{"value": "link"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSurfacesCacheAndMetrics(t *testing.T) {
	t.Parallel()

	_, srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/surfaces", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "term", first["name"])
	assert.Equal(t, "tty", first["kind"])
	assert.Equal(t, "light", first["background_mode"])

	resp, _ = do(t, srv, http.MethodPost, "/surfaces/term/resolve", map[string]any{"ref": "link"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = do(t, srv, http.MethodPost, "/cache/clear", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(len(engine.BasicStyles)+1), body["cleared"])

	mresp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	assert.Equal(t, http.StatusOK, mresp.StatusCode)
}
