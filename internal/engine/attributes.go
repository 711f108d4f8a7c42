package engine

import (
	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/style"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// SetStyleAttribute validates value and stores it as slot of the named
// style in target. Storing Unspecified globally records IgnoreDefault so the
// global value no longer shadows anything. Surfaces that may display the
// style are marked for recomputation when the value changes.
func (e *Engine) SetStyleAttribute(name string, slot attr.Slot, value any, target Target) error {
	if !slot.Valid() {
		return faceerrors.NewInvalidAttributeValueError(name, slot.String(), value, "unknown attribute")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	resolved, err := e.graph.Resolve(name)
	if err != nil {
		return err
	}
	v, err := attr.ValidateDefinition(resolved, slot, value)
	if err != nil {
		return err
	}

	surfaces, err := e.surfacesFor(target)
	if err != nil {
		return err
	}

	if slot == attr.SlotInherit && v.Kind() == attr.KindNames {
		if err := e.checkInheritance(resolved, v.NameList(), target, surfaces); err != nil {
			return err
		}
	}

	if target.kind != targetGlobal {
		for _, s := range surfaces {
			local, ok := s.local.Get(resolved)
			if !ok {
				local = s.local.Ensure(e.graph, resolved)
				_ = s.local.MergeInGlobal(e.graph, resolved)
			}
			if local[slot].Equal(v) {
				continue
			}
			local[slot] = v
			s.faceChange = true
			if resolved == style.DefaultName {
				s.updateDefaultParams(slot, v)
			}
		}
	}

	if target.kind != targetSurface {
		global := v
		if global.IsUnspecified() {
			global = attr.IgnoreDefault()
		}
		def := e.graph.Ensure(resolved)
		if !def.Attrs[slot].Equal(global) {
			e.graph.Set(resolved, slot, global)
			e.markAll()
		}
	}

	e.logger.WithFields(map[string]any{
		"face":      resolved,
		"attribute": slot.String(),
		"target":    target.String(),
	}).Debug("face attribute set")
	return nil
}

// checkInheritance rejects parents that would make resolved inherit from
// itself as seen from any touched table.
func (e *Engine) checkInheritance(resolved string, parents []string, target Target, surfaces []*Surface) error {
	if target.kind != targetSurface {
		if err := style.CheckInheritance(e.graph.Lookup, e.graph.Resolve, resolved, parents); err != nil {
			return err
		}
	}
	if target.kind == targetGlobal {
		return nil
	}
	for _, s := range surfaces {
		lookup := func(name string) (attr.Vector, bool) { return s.local.Lookup(e.graph, name) }
		if err := style.CheckInheritance(lookup, e.graph.Resolve, resolved, parents); err != nil {
			return err
		}
	}
	return nil
}

// updateDefaultParams mirrors a change of the default colors into the
// surface's color parameters.
func (s *Surface) updateDefaultParams(slot attr.Slot, v attr.Value) {
	name, ok := v.Str()
	if !ok {
		return
	}
	switch slot {
	case attr.SlotForeground:
		s.fg = name
	case attr.SlotBackground:
		s.bg = name
	}
}

// StyleAttribute returns the stored value of slot for the named style. A
// surface target reads the local definition when there is one.
func (e *Engine) StyleAttribute(name string, slot attr.Slot, target Target) (attr.Value, error) {
	if !slot.Valid() {
		return attr.Value{}, faceerrors.NewInvalidAttributeValueError(name, slot.String(), nil, "unknown attribute")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	resolved, err := e.graph.Resolve(name)
	if err != nil {
		return attr.Value{}, err
	}
	if target.kind == targetSurface {
		s, err := e.surface(target.surface)
		if err != nil {
			return attr.Value{}, err
		}
		if local, ok := s.local.Get(resolved); ok {
			return local[slot], nil
		}
	}
	raw, ok := e.graph.Raw(resolved)
	if !ok {
		return attr.Value{}, faceerrors.NewUnknownStyleError(name)
	}
	return raw[slot], nil
}

// AttributeValues lists the symbolic values slot accepts.
func (e *Engine) AttributeValues(slot attr.Slot) []string {
	return attr.Values(slot)
}

// AttributeRelative reports whether value only makes sense merged over
// another value.
func (e *Engine) AttributeRelative(slot attr.Slot, value attr.Value) bool {
	return attr.Relative(slot, value)
}

// MergeAttribute combines two values of slot, from taking precedence.
func (e *Engine) MergeAttribute(slot attr.Slot, from, to attr.Value) attr.Value {
	return attr.MergeAttribute(slot, from, to)
}

// DefineStyle creates the named style, or clears an existing one, in
// target.
func (e *Engine) DefineStyle(name string, target Target) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	surfaces, err := e.surfacesFor(target)
	if err != nil {
		return err
	}
	if target.kind != targetSurface {
		e.graph.Define(name)
		e.markAll()
	}
	if target.kind != targetGlobal {
		for _, s := range surfaces {
			s.local.Define(e.graph, name)
			s.faceChange = true
		}
	}
	return nil
}

// CopyStyle replaces the attributes of to with those of from in target.
func (e *Engine) CopyStyle(from, to string, target Target) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	surfaces, err := e.surfacesFor(target)
	if err != nil {
		return err
	}
	if target.kind != targetSurface {
		if err := e.graph.Copy(from, to); err != nil {
			return err
		}
		e.markAll()
	}
	if target.kind != targetGlobal {
		for _, s := range surfaces {
			if err := s.local.Copy(e.graph, from, to); err != nil {
				return err
			}
			s.faceChange = true
		}
	}
	return nil
}

// StyleEqual reports whether two styles hold identical attributes in
// target. AllSurfaces compares the global definitions.
func (e *Engine) StyleEqual(a, b string, target Target) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if target.kind == targetSurface {
		s, err := e.surface(target.surface)
		if err != nil {
			return false, err
		}
		return s.local.Equal(a, b)
	}
	return e.graph.Equal(a, b)
}

// StyleEmpty reports whether every attribute of the style is Unspecified
// in target.
func (e *Engine) StyleEmpty(name string, target Target) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if target.kind == targetSurface {
		s, err := e.surface(target.surface)
		if err != nil {
			return false, err
		}
		local, ok := s.local.Get(name)
		if !ok {
			return false, faceerrors.NewUnknownStyleError(name)
		}
		return local.Empty(), nil
	}
	return e.graph.Empty(name)
}

// MergeInGlobal folds the global definition of name into the surface's
// local one.
func (e *Engine) MergeInGlobal(name, surface string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.surface(surface)
	if err != nil {
		return err
	}
	if err := s.local.MergeInGlobal(e.graph, name); err != nil {
		return err
	}
	s.faceChange = true
	return nil
}

// SetAlias makes name stand for target everywhere. An empty target removes
// the alias.
func (e *Engine) SetAlias(name, target string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.graph.SetAlias(name, target)
	e.markAll()
}
