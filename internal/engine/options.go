package engine

import (
	"maps"
	"slices"
	"strings"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/merge"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

var defaultFontOrder = []attr.Slot{attr.SlotWidth, attr.SlotHeight, attr.SlotWeight, attr.SlotSlant}

// FontSelectionOrder returns the order in which font attributes are
// relaxed when no exact font matches.
func (e *Engine) FontSelectionOrder() []attr.Slot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.fontOrder)
}

// SetFontSelectionOrder sets the font matching order. It must be a
// permutation of width, height, weight and slant.
func (e *Engine) SetFontSelectionOrder(order []attr.Slot) error {
	if len(order) != len(defaultFontOrder) {
		return faceerrors.NewValidationError("font-selection-order", "expected width, height, weight and slant", nil)
	}
	seen := make(map[attr.Slot]bool, len(order))
	for _, slot := range order {
		if !slices.Contains(defaultFontOrder, slot) || seen[slot] {
			return faceerrors.NewValidationError("font-selection-order", "invalid or repeated attribute "+slot.String(), nil)
		}
		seen[slot] = true
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if slices.Equal(e.fontOrder, order) {
		return nil
	}
	e.fontOrder = slices.Clone(order)
	e.markAll()
	return nil
}

// AlternativeFamilies returns the font family fallback table.
func (e *Engine) AlternativeFamilies() map[string][]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAlist(e.altFamilies)
}

// SetAlternativeFamilies sets the font families tried in turn when a family
// is not available.
func (e *Engine) SetAlternativeFamilies(alist map[string][]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if maps.EqualFunc(e.altFamilies, alist, slices.Equal[[]string]) {
		return
	}
	e.altFamilies = cloneAlist(alist)
	e.markAll()
}

// AlternativeRegistries returns the font registry fallback table.
func (e *Engine) AlternativeRegistries() map[string][]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneAlist(e.altRegistries)
}

// SetAlternativeRegistries sets the registries tried in turn when a
// registry is not available. Registries are compared in lower case.
func (e *Engine) SetAlternativeRegistries(alist map[string][]string) {
	lowered := make(map[string][]string, len(alist))
	for k, vs := range alist {
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = strings.ToLower(v)
		}
		lowered[strings.ToLower(k)] = out
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if maps.EqualFunc(e.altRegistries, lowered, slices.Equal[[]string]) {
		return
	}
	e.altRegistries = lowered
	e.markAll()
}

func cloneAlist(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// SetBackgroundMode sets a surface's background mode to light or dark.
func (e *Engine) SetBackgroundMode(surface, mode string) error {
	mode = strings.ToLower(mode)
	if mode != BackgroundLight && mode != BackgroundDark {
		return faceerrors.NewValidationError("background-mode", "must be light or dark, got "+mode, nil)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.surface(surface)
	if err != nil {
		return err
	}
	if s.backgroundMode != mode {
		s.backgroundMode = mode
		s.faceChange = true
	}
	return nil
}

// BackgroundMode returns a surface's background mode.
func (e *Engine) BackgroundMode(surface string) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, err := e.surface(surface)
	if err != nil {
		return "", err
	}
	return s.backgroundMode, nil
}

// SetSuppressBoldInverse toggles dropping bold from terminal faces that
// show the swapped default colors.
func (e *Engine) SetSuppressBoldInverse(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.opts.SuppressBoldInverseDefaultColors == on {
		return
	}
	e.opts.SuppressBoldInverseDefaultColors = on
	for _, s := range e.surfaces {
		if s.tty != nil {
			s.tty.SuppressBoldInverseDefaultColors = on
		}
	}
	e.markAll()
}

// SetFiltersAlwaysMatch makes every well-formed filter match.
func (e *Engine) SetFiltersAlwaysMatch(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.opts.AlwaysMatchFilters == on {
		return
	}
	e.opts.AlwaysMatchFilters = on
	e.markAll()
}

// SetRemap makes name display as ref on the surface.
func (e *Engine) SetRemap(surface, name string, ref merge.Ref) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.surface(surface)
	if err != nil {
		return err
	}
	s.remaps.Set(name, ref)
	s.faceChange = true
	return nil
}

// ClearRemap removes the remapping of name on the surface.
func (e *Engine) ClearRemap(surface, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.surface(surface)
	if err != nil {
		return err
	}
	if s.remaps.Delete(name) {
		s.faceChange = true
	}
	return nil
}

// Remaps lists the remapped style names of the surface.
func (e *Engine) Remaps(surface string) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, err := e.surface(surface)
	if err != nil {
		return nil, err
	}
	return s.remaps.Names(), nil
}

// SetParam sets a context parameter that filters are evaluated against.
// An empty value removes it.
func (e *Engine) SetParam(surface, key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.surface(surface)
	if err != nil {
		return err
	}
	if value == "" {
		delete(s.params, key)
	} else {
		if s.params == nil {
			s.params = make(map[string]string)
		}
		s.params[key] = value
	}
	s.faceChange = true
	return nil
}

// InvalidateCache marks a surface, or every surface when name is empty,
// for recomputation on next use.
func (e *Engine) InvalidateCache(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if name == "" {
		e.markAll()
		return nil
	}
	s, err := e.surface(name)
	if err != nil {
		return err
	}
	s.faceChange = true
	return nil
}

// ClearFaceCache frees every realized face on every surface now.
func (e *Engine) ClearFaceCache() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, s := range e.surfaces {
		total += s.cache.Clear()
		s.haveDefault = false
		s.faceChange = true
	}
	e.logger.WithFields(map[string]any{"faces": total}).Debug("face caches cleared")
	return total
}

// ColorDistance measures the distance between two colors as shown on the
// surface. Colors are names or [3]int RGB triples with 8-bit channels. A nil
// metric uses color.Distance.
func (e *Engine) ColorDistance(surface string, a, b any, metric color.Metric) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, err := e.surface(surface)
	if err != nil {
		return 0, err
	}
	ca, err := s.colorOf(a)
	if err != nil {
		return 0, err
	}
	cb, err := s.colorOf(b)
	if err != nil {
		return 0, err
	}
	if metric == nil {
		metric = color.Distance
	}
	return metric(ca, cb), nil
}

// ColorGray reports whether the named color is a shade of gray on the
// surface.
func (e *Engine) ColorGray(surface, name string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, err := e.surface(surface)
	if err != nil {
		return false, err
	}
	c, err := s.colorOf(name)
	if err != nil {
		return false, nil
	}
	return color.Gray(c), nil
}

// ColorSupported reports whether the surface can display the named color.
func (e *Engine) ColorSupported(surface, name string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, err := e.surface(surface)
	if err != nil {
		return false, err
	}
	if s.colors == nil {
		return false, nil
	}
	_, _, ok := s.colors.LookupColor(name)
	return ok, nil
}

func (s *Surface) colorOf(v any) (color.Color, error) {
	switch c := v.(type) {
	case [3]int:
		for _, ch := range c {
			if ch < 0 || ch > 255 {
				return color.Color{}, faceerrors.NewInvalidAttributeValueError("", "color", v, "channel out of range")
			}
		}
		return color.RGB8(uint8(c[0]), uint8(c[1]), uint8(c[2])), nil
	case []int:
		if len(c) == 3 {
			return s.colorOf([3]int{c[0], c[1], c[2]})
		}
	case string:
		if s.colors != nil {
			if device, _, ok := s.colors.LookupColor(c); ok {
				return device, nil
			}
		}
		return color.Color{}, faceerrors.NewInvalidAttributeValueError("", "color", c, "undefined color")
	}
	return color.Color{}, faceerrors.NewInvalidAttributeValueError("", "color", v, "expected a color name or RGB triple")
}
