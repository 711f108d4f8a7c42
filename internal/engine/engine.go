// Package engine resolves style references into realized faces for one or
// more display surfaces.
package engine

import (
	"errors"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/facecache"
	"github.com/alexisbeaulieu97/faces/internal/logger"
	"github.com/alexisbeaulieu97/faces/internal/merge"
	"github.com/alexisbeaulieu97/faces/internal/style"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// Options configures an Engine.
type Options struct {
	// MaxDepth bounds nested reference resolution. Zero means
	// merge.DefaultMaxDepth.
	MaxDepth int
	// SuppressBoldInverseDefaultColors drops bold from terminal faces whose
	// colors are the swapped default colors.
	SuppressBoldInverseDefaultColors bool
	// AlwaysMatchFilters makes every well-formed filter match.
	AlwaysMatchFilters bool
	// Workers bounds Refresh parallelism. Zero means one per surface.
	Workers  int
	Logger   *logger.Logger
	Observer facecache.Observer
}

// Engine owns the global style graph and the registered surfaces.
//
// Writers take the write lock. Resolution takes the read lock and then the
// surface mutex, so different surfaces resolve in parallel.
type Engine struct {
	mu       sync.RWMutex
	graph    *style.Graph
	surfaces map[string]*Surface
	opts     Options
	logger   *logger.Logger

	fontOrder     []attr.Slot
	altFamilies   map[string][]string
	altRegistries map[string][]string
}

// New returns an engine with the default style and the basic styles
// predefined.
func New(opts Options) *Engine {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = merge.DefaultMaxDepth
	}
	e := &Engine{
		graph:     style.NewGraph(),
		surfaces:  make(map[string]*Surface),
		opts:      opts,
		logger:    opts.Logger,
		fontOrder: append([]attr.Slot(nil), defaultFontOrder...),
	}
	for _, name := range BasicStyles {
		e.graph.Ensure(name)
	}
	return e
}

// Options returns the current options.
func (e *Engine) Options() Options {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opts
}

// AddSurface registers a surface.
func (e *Engine) AddSurface(cfg SurfaceConfig) (*Surface, error) {
	if cfg.Name == "" {
		return nil, faceerrors.NewValidationError("surface.name", "surface name is required", nil)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.surfaces[cfg.Name]; exists {
		return nil, faceerrors.NewValidationError("surface.name", "surface already registered: "+cfg.Name, nil)
	}
	s := newSurface(cfg, e.opts, e.logger)
	e.surfaces[cfg.Name] = s
	e.logger.WithFields(map[string]any{"surface": cfg.Name, "kind": cfg.Kind.String()}).Debug("surface registered")
	return s, nil
}

// RemoveSurface unregisters a surface and releases its faces.
func (e *Engine) RemoveSurface(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.surfaces[name]
	if !ok {
		return false
	}
	s.cache.Clear()
	delete(e.surfaces, name)
	return true
}

// SurfaceNames lists registered surfaces in sorted order.
func (e *Engine) SurfaceNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return sortedSurfaceNames(e.surfaces)
}

// StyleNames lists the globally defined styles in sorted order.
func (e *Engine) StyleNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph.Names()
}

// Aliases returns a copy of the alias table.
func (e *Engine) Aliases() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.graph.Aliases()
}

// Surface returns a registered surface.
func (e *Engine) Surface(name string) (*Surface, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.surface(name)
}

// surface returns the named surface. Callers hold e.mu.
func (e *Engine) surface(name string) (*Surface, error) {
	s, ok := e.surfaces[name]
	if !ok {
		return nil, faceerrors.NewUnknownSurfaceError(name)
	}
	return s, nil
}

// withSurface runs fn under the read lock and the surface mutex, after
// bringing the surface's basic faces up to date.
func (e *Engine) withSurface(name string, fn func(s *Surface, r *merge.Resolver) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, err := e.surface(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r := e.resolver(s)
	if err := e.prepare(s, r); err != nil {
		return err
	}
	return fn(s, r)
}

// resolver builds the merge resolver of s. Callers hold s.mu.
func (e *Engine) resolver(s *Surface) *merge.Resolver {
	return &merge.Resolver{
		Graph:  e.graph,
		Local:  s.local,
		Remaps: s.remaps,
		Params: s.params,
		Default: func() (attr.Vector, bool) {
			if !s.haveDefault {
				return attr.Vector{}, false
			}
			return s.defaultAttrs, true
		},
		Logger:             s.logger,
		MaxDepth:           e.opts.MaxDepth,
		AlwaysMatchFilters: e.opts.AlwaysMatchFilters,
	}
}

// markAll flags every surface for face recomputation. Callers hold the
// write lock.
func (e *Engine) markAll() {
	for _, s := range e.surfaces {
		s.faceChange = true
	}
}

// surfacesFor returns the surfaces a target touches. Callers hold e.mu.
func (e *Engine) surfacesFor(t Target) ([]*Surface, error) {
	switch t.kind {
	case targetSurface:
		s, err := e.surface(t.surface)
		if err != nil {
			return nil, err
		}
		return []*Surface{s}, nil
	default:
		out := make([]*Surface, 0, len(e.surfaces))
		for _, name := range sortedSurfaceNames(e.surfaces) {
			out = append(out, e.surfaces[name])
		}
		return out, nil
	}
}

func sortedSurfaceNames(m map[string]*Surface) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// hitLimit reports whether err records a recursion limit.
func hitLimit(err error) bool {
	var limit *faceerrors.RecursionLimitError
	return errors.As(err, &limit)
}
