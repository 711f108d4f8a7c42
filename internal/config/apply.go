package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/engine"
	"github.com/alexisbeaulieu97/faces/internal/logger"
	"github.com/alexisbeaulieu97/faces/internal/tty"
)

// ApplyOptions carries what a theme file cannot describe.
type ApplyOptions struct {
	Logger *logger.Logger
	// Fonts opens fonts for GUI surfaces.
	Fonts tty.FontBackend
}

// Apply installs a theme into e: engine settings, global styles in
// inheritance order, aliases, then each surface with its remaps and local
// styles. Surfaces named by the theme are replaced. The surfaces are
// refreshed before Apply returns.
func Apply(ctx context.Context, e *engine.Engine, theme *Theme, opts ApplyOptions) ([]engine.RefreshResult, error) {
	log := opts.Logger.WithFields(map[string]any{"theme": theme.Name})

	e.SetSuppressBoldInverse(theme.SuppressBoldInverse)
	e.SetFiltersAlwaysMatch(theme.FiltersAlwaysMatch)
	if len(theme.FontSelectionOrder) > 0 {
		order := make([]attr.Slot, 0, len(theme.FontSelectionOrder))
		for _, name := range theme.FontSelectionOrder {
			slot, _ := attr.ParseSlot(name)
			order = append(order, slot)
		}
		if err := e.SetFontSelectionOrder(order); err != nil {
			return nil, err
		}
	}
	if theme.AlternativeFamilies != nil {
		e.SetAlternativeFamilies(theme.AlternativeFamilies)
	}
	if theme.AlternativeRegistries != nil {
		e.SetAlternativeRegistries(theme.AlternativeRegistries)
	}

	if err := applyStyles(e, theme.Styles, engine.Global(), true); err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(theme.Aliases) {
		e.SetAlias(name, theme.Aliases[name])
	}

	for i := range theme.Surfaces {
		if err := applySurface(e, theme, &theme.Surfaces[i], opts); err != nil {
			return nil, fmt.Errorf("surface %s: %w", theme.Surfaces[i].Name, err)
		}
	}

	log.WithFields(map[string]any{
		"styles":   len(theme.Styles),
		"surfaces": len(theme.Surfaces),
	}).Info("theme applied")

	return e.Refresh(ctx)
}

// applyStyles sets the attributes of styles in target, parents first.
// define clears each style before setting it.
func applyStyles(e *engine.Engine, styles map[string]map[string]any, target engine.Target, define bool) error {
	levels, err := StyleOrder(styles)
	if err != nil {
		return err
	}
	for _, level := range levels {
		for _, name := range level {
			if define {
				if err := e.DefineStyle(name, target); err != nil {
					return err
				}
			}
			attrs := styles[name]
			for _, key := range sortedKeys(attrs) {
				slot, ok := attr.ParseSlot(key)
				if !ok {
					return fmt.Errorf("style %s: unknown attribute %q", name, key)
				}
				if err := e.SetStyleAttribute(name, slot, attrs[key], target); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func applySurface(e *engine.Engine, theme *Theme, s *Surface, opts ApplyOptions) error {
	cfg, err := SurfaceConfig(theme, s)
	if err != nil {
		return err
	}
	cfg.Fonts = opts.Fonts

	e.RemoveSurface(s.Name)
	if _, err := e.AddSurface(cfg); err != nil {
		return err
	}

	// Local styles start from the global definition, so they are not
	// cleared first.
	if err := applyStyles(e, s.Styles, engine.OnSurface(s.Name), false); err != nil {
		return err
	}

	for _, name := range sortedKeys(s.Remaps) {
		ref, err := ParseRef(s.Remaps[name])
		if err != nil {
			return err
		}
		if err := e.SetRemap(s.Name, name, ref); err != nil {
			return err
		}
	}
	return nil
}

// SurfaceConfig builds the engine registration of a theme surface: its
// palette, extended by the color file when there is one, and its terminal
// capabilities. Without explicit capabilities they follow from the depth.
func SurfaceConfig(theme *Theme, s *Surface) (engine.SurfaceConfig, error) {
	kind, ok := engine.ParseSurfaceKind(s.Kind)
	if !ok {
		return engine.SurfaceConfig{}, fmt.Errorf("unknown surface kind %q", s.Kind)
	}

	depth := color.DepthTrue
	switch {
	case s.Depth == "" && kind == engine.KindTTY, strings.EqualFold(s.Depth, "auto"):
		depth = color.DetectDepth()
	case s.Depth != "":
		d, ok := color.ParseDepth(s.Depth)
		if !ok {
			return engine.SurfaceConfig{}, fmt.Errorf("unknown color depth %q", s.Depth)
		}
		depth = d
	}

	palette := color.NewPalette(depth)
	if s.ColorFile != "" {
		path := s.ColorFile
		if !filepath.IsAbs(path) && theme.Path != "" {
			path = filepath.Join(filepath.Dir(theme.Path), path)
		}
		entries, err := color.LoadColorFilePath(path)
		if err != nil {
			return engine.SurfaceConfig{}, err
		}
		palette.Extend(entries)
	}

	caps := tty.DetectCapabilities(profileFor(depth))
	if len(s.Capabilities) > 0 {
		parsed, err := tty.ParseCapabilities(s.Capabilities)
		if err != nil {
			return engine.SurfaceConfig{}, err
		}
		caps = parsed
	}

	return engine.SurfaceConfig{
		Name:           s.Name,
		Kind:           kind,
		Colors:         palette,
		Caps:           caps,
		Foreground:     s.Foreground,
		Background:     s.Background,
		BackgroundMode: s.BackgroundMode,
		Params:         s.Params,
	}, nil
}

func profileFor(d color.Depth) termenv.Profile {
	switch {
	case d >= color.DepthTrue:
		return termenv.TrueColor
	case d >= color.Depth256:
		return termenv.ANSI256
	case d >= color.Depth8:
		return termenv.ANSI
	}
	return termenv.Ascii
}
