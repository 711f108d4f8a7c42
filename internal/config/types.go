// Package config loads theme files and applies them to an engine.
package config

import "github.com/alexisbeaulieu97/faces/internal/engine"

// Theme is the decoded form of a theme file.
type Theme struct {
	// Path is the file the theme was loaded from, if any. Relative color
	// files are resolved against its directory.
	Path string `mapstructure:"-"`

	Name string `mapstructure:"name"`
	// MaxDepth bounds nested reference resolution; zero keeps the engine
	// default.
	MaxDepth            int  `mapstructure:"max_depth" validate:"omitempty,min=1,max=100000"`
	SuppressBoldInverse bool `mapstructure:"suppress_bold_inverse"`
	FiltersAlwaysMatch  bool `mapstructure:"filters_always_match"`

	FontSelectionOrder    []string            `mapstructure:"font_selection_order" validate:"omitempty,len=4,unique,dive,oneof=width height weight slant"`
	AlternativeFamilies   map[string][]string `mapstructure:"alternative_families"`
	AlternativeRegistries map[string][]string `mapstructure:"alternative_registries"`

	// Styles maps a style name to its attributes, keyed by attribute name
	// (foreground, weight, inherit, ...).
	Styles  map[string]map[string]any `mapstructure:"styles" validate:"dive,keys,stylename,endkeys"`
	Aliases map[string]string         `mapstructure:"aliases" validate:"dive,keys,stylename,endkeys,stylename"`

	Surfaces []Surface `mapstructure:"surfaces" validate:"dive"`
}

// Surface describes one display target of a theme.
type Surface struct {
	Name string `mapstructure:"name" validate:"required,stylename"`
	Kind string `mapstructure:"kind" validate:"omitempty,surfacekind"`
	// Depth is the color depth: none, 8, 16, 256, truecolor, or auto to
	// ask the terminal.
	Depth        string   `mapstructure:"depth" validate:"omitempty,colordepth"`
	Capabilities []string `mapstructure:"capabilities"`
	ColorFile    string   `mapstructure:"color_file"`

	Foreground     string            `mapstructure:"foreground"`
	Background     string            `mapstructure:"background"`
	BackgroundMode string            `mapstructure:"background_mode" validate:"omitempty,oneof=light dark"`
	Params         map[string]string `mapstructure:"params"`

	// Remaps maps a style name to the reference it displays as.
	Remaps map[string]any             `mapstructure:"remaps" validate:"dive,keys,stylename,endkeys"`
	Styles map[string]map[string]any `mapstructure:"styles" validate:"dive,keys,stylename,endkeys"`
}

// Surface returns the named surface of the theme.
func (t *Theme) Surface(name string) (*Surface, bool) {
	for i := range t.Surfaces {
		if t.Surfaces[i].Name == name {
			return &t.Surfaces[i], true
		}
	}
	return nil, false
}

// EngineOptions returns base with the theme's engine-wide settings
// applied.
func (t *Theme) EngineOptions(base engine.Options) engine.Options {
	if t.MaxDepth > 0 {
		base.MaxDepth = t.MaxDepth
	}
	base.SuppressBoldInverseDefaultColors = t.SuppressBoldInverse
	base.AlwaysMatchFilters = t.FiltersAlwaysMatch
	return base
}
