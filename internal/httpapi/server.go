// Package httpapi exposes an engine over HTTP for inspection and live
// editing of styles.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/config"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/logger"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// Options configures the handler.
type Options struct {
	Logger *logger.Logger
	// Metrics, when set, is served at /metrics.
	Metrics http.Handler
}

// Server serves one engine.
type Server struct {
	Engine *engine.Engine
	logger *logger.Logger
}

// NewHandler routes the API:
//
//	GET  /surfaces
//	GET  /surfaces/{surface}/faces
//	GET  /surfaces/{surface}/faces/{id}
//	POST /surfaces/{surface}/resolve     {"ref": ...}
//	POST /surfaces/{surface}/supports    {"ref": ...}
//	GET  /styles
//	GET  /styles/{name}                  ?surface=
//	PUT  /styles/{name}/{attribute}      {"value": ...} ?surface=
//	POST /cache/clear
func NewHandler(e *engine.Engine, opts Options) http.Handler {
	s := &Server{Engine: e, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/surfaces", s.listSurfaces)
	r.Route("/surfaces/{surface}", func(r chi.Router) {
		r.Get("/faces", s.snapshot)
		r.Get("/faces/{id}", s.face)
		r.Post("/resolve", s.resolve)
		r.Post("/supports", s.supports)
	})
	r.Get("/styles", s.listStyles)
	r.Get("/styles/{name}", s.style)
	r.Put("/styles/{name}/{attribute}", s.setAttribute)
	r.Post("/cache/clear", s.clearCache)

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}
	return r
}

type refRequest struct {
	Ref any `json:"ref"`
}

type valueRequest struct {
	Value any `json:"value"`
}

type faceResponse struct {
	Surface  string         `json:"surface"`
	ID       int            `json:"id"`
	Attrs    map[string]any `json:"attrs"`
	Terminal map[string]any `json:"terminal,omitempty"`
}

type surfaceResponse struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	BackgroundMode string   `json:"background_mode"`
	Remaps         []string `json:"remaps"`
}

func (s *Server) listSurfaces(w http.ResponseWriter, _ *http.Request) {
	names := s.Engine.SurfaceNames()
	out := make([]surfaceResponse, 0, len(names))
	for _, name := range names {
		mode, err := s.Engine.BackgroundMode(name)
		if err != nil {
			continue
		}
		remaps, _ := s.Engine.Remaps(name)
		kind := engine.KindTTY
		if sf, err := s.Engine.Surface(name); err == nil {
			kind = sf.Kind()
		}
		out = append(out, surfaceResponse{Name: name, Kind: kind.String(), BackgroundMode: mode, Remaps: remaps})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Engine.Snapshot(chi.URLParam(r, "surface"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) face(w http.ResponseWriter, r *http.Request) {
	surface := chi.URLParam(r, "surface")
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, faceerrors.NewValidationError("id", "face id must be an integer", err))
		return
	}
	resp, err := s.faceResponse(surface, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	surface := chi.URLParam(r, "surface")
	var body refRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, faceerrors.NewValidationError("body", "invalid request body", err))
		return
	}
	ref, err := config.ParseRef(body.Ref)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := s.Engine.ComputeCharFace(surface, ref)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.faceResponse(surface, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) supports(w http.ResponseWriter, r *http.Request) {
	surface := chi.URLParam(r, "surface")
	var body refRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, faceerrors.NewValidationError("body", "invalid request body", err))
		return
	}
	ref, err := config.ParseRef(body.Ref)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ok, err := s.Engine.SupportsAttributes(surface, ref)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"supported": ok})
}

func (s *Server) listStyles(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"styles":  s.Engine.StyleNames(),
		"aliases": s.Engine.Aliases(),
	})
}

func (s *Server) style(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	target := targetOf(r)

	out := make(map[string]any)
	for _, slot := range attr.Slots() {
		v, err := s.Engine.StyleAttribute(name, slot, target)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if v.IsUnspecified() {
			continue
		}
		out[slot.String()] = v.Plain()
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"name": name, "attrs": out})
}

func (s *Server) setAttribute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	slot, ok := attr.ParseSlot(chi.URLParam(r, "attribute"))
	if !ok {
		s.writeError(w, faceerrors.NewInvalidAttributeValueError(name, chi.URLParam(r, "attribute"), nil, "unknown attribute"))
		return
	}
	var body valueRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, faceerrors.NewValidationError("body", "invalid request body", err))
		return
	}
	if err := s.Engine.SetStyleAttribute(name, slot, jsonValue(body.Value), targetOf(r)); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.WithFields(map[string]any{"face": name, "attribute": slot.String()}).Info("face attribute set over http")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearCache(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]int{"cleared": s.Engine.ClearFaceCache()})
}

func (s *Server) faceResponse(surface string, id int) (faceResponse, error) {
	f, err := s.Engine.Face(surface, id)
	if err != nil {
		return faceResponse{}, err
	}
	resp := faceResponse{Surface: surface, ID: f.ID, Attrs: f.Attrs.Plain()}
	if tf, err := s.Engine.TerminalFace(surface, id); err == nil && tf != nil {
		resp.Terminal = tf.Plain()
	}
	return resp, nil
}

// targetOf reads the optional surface query parameter.
func targetOf(r *http.Request) engine.Target {
	if surface := r.URL.Query().Get("surface"); surface != "" {
		return engine.OnSurface(surface)
	}
	return engine.Global()
}

// jsonValue turns JSON numbers that hold integers into ints, which is what
// the attribute validators expect for heights and box widths.
func jsonValue(v any) any {
	switch t := v.(type) {
	case float64:
		if t == float64(int(t)) {
			return int(t)
		}
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = jsonValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = jsonValue(item)
		}
		return out
	}
	return v
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(err, "response encode failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusOf(err), map[string]string{"error": err.Error()})
}

func statusOf(err error) int {
	var (
		unknownSurface *faceerrors.UnknownSurfaceError
		unknownStyle   *faceerrors.UnknownStyleError
		invalidAttr    *faceerrors.InvalidAttributeValueError
		invalidRef     *faceerrors.InvalidReferenceError
		validation     *faceerrors.ValidationError
		cycle          *faceerrors.InheritanceCycleError
	)
	switch {
	case errors.As(err, &unknownSurface), errors.As(err, &unknownStyle):
		return http.StatusNotFound
	case errors.As(err, &invalidAttr), errors.As(err, &invalidRef), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &cycle):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
