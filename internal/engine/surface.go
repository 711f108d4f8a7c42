package engine

import (
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/facecache"
	"github.com/alexisbeaulieu97/faces/internal/logger"
	"github.com/alexisbeaulieu97/faces/internal/merge"
	"github.com/alexisbeaulieu97/faces/internal/style"
	"github.com/alexisbeaulieu97/faces/internal/tty"
)

// SurfaceKind distinguishes character-cell terminals from graphical
// displays.
type SurfaceKind int

const (
	KindTTY SurfaceKind = iota
	KindGUI
)

func (k SurfaceKind) String() string {
	if k == KindGUI {
		return "gui"
	}
	return "tty"
}

// ParseSurfaceKind maps "tty" or "gui" to a kind.
func ParseSurfaceKind(s string) (SurfaceKind, bool) {
	switch strings.ToLower(s) {
	case "tty", "":
		return KindTTY, true
	case "gui":
		return KindGUI, true
	}
	return KindTTY, false
}

// Background modes.
const (
	BackgroundLight = "light"
	BackgroundDark  = "dark"
)

// SurfaceConfig describes a surface at registration.
type SurfaceConfig struct {
	Name   string
	Kind   SurfaceKind
	Colors color.Resolver
	Caps   tty.Capabilities
	// Fonts opens fonts for GUI surfaces. Optional.
	Fonts tty.FontBackend
	// Foreground and Background are the surface's default color
	// parameters, used when the default style leaves them unspecified.
	Foreground string
	Background string
	// BackgroundMode is "light" or "dark"; empty means light.
	BackgroundMode string
	Params         map[string]string
}

// Surface is one display target with its own style overrides, remapping
// and realized faces.
type Surface struct {
	mu sync.Mutex

	name   string
	kind   SurfaceKind
	local  *style.Table
	remaps *merge.Remaps
	params map[string]string
	colors color.Resolver
	caps   tty.Capabilities
	logger *logger.Logger

	tty   *tty.Backend
	cache *facecache.Cache

	fg, bg         string
	backgroundMode string

	faceChange   bool
	defaultAttrs attr.Vector
	haveDefault  bool
	basic        [numBasic]int
}

func newSurface(cfg SurfaceConfig, opts Options, log *logger.Logger) *Surface {
	s := &Surface{
		name:           cfg.Name,
		kind:           cfg.Kind,
		local:          style.NewTable(),
		remaps:         merge.NewRemaps(),
		colors:         cfg.Colors,
		caps:           cfg.Caps,
		logger:         log.WithFields(map[string]any{"surface": cfg.Name}),
		fg:             cfg.Foreground,
		bg:             cfg.Background,
		backgroundMode: cfg.BackgroundMode,
		faceChange:     true,
	}
	if s.backgroundMode == "" {
		s.backgroundMode = BackgroundLight
	}
	if cfg.Params != nil {
		s.params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			s.params[k] = v
		}
	}

	var backend facecache.Backend
	if cfg.Kind == KindGUI {
		backend = &tty.GUIBackend{Fonts: cfg.Fonts}
	} else {
		s.tty = &tty.Backend{
			Colors:                           cfg.Colors,
			SuppressBoldInverseDefaultColors: opts.SuppressBoldInverseDefaultColors,
			Logger:                           s.logger,
		}
		backend = s.tty
	}
	s.cache = facecache.New(cfg.Name, backend, opts.Observer)
	for i := range s.basic {
		s.basic[i] = -1
	}
	return s
}

// Name returns the surface name.
func (s *Surface) Name() string { return s.name }

// Kind returns the surface kind.
func (s *Surface) Kind() SurfaceKind { return s.kind }

// Cache exposes the surface's realized faces.
func (s *Surface) Cache() *facecache.Cache { return s.cache }

// Colors returns the resolver the surface realizes colors with.
func (s *Surface) Colors() color.Resolver { return s.colors }

// Target selects where a style change applies.
type Target struct {
	kind    targetKind
	surface string
}

type targetKind uint8

const (
	targetGlobal targetKind = iota
	targetSurface
	targetAll
)

// Global targets the process-wide definitions.
func Global() Target { return Target{kind: targetGlobal} }

// OnSurface targets the local definitions of one surface.
func OnSurface(name string) Target { return Target{kind: targetSurface, surface: name} }

// AllSurfaces targets every surface's local definitions and the global
// ones.
func AllSurfaces() Target { return Target{kind: targetAll} }

func (t Target) String() string {
	switch t.kind {
	case targetSurface:
		return "surface:" + t.surface
	case targetAll:
		return "all"
	}
	return "global"
}
