package engine

import (
	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/facecache"
	"github.com/alexisbeaulieu97/faces/internal/merge"
	"github.com/alexisbeaulieu97/faces/internal/spans"
	"github.com/alexisbeaulieu97/faces/internal/tty"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// ResolveCharStyle returns the face to display position pos of src with, and
// the next position at which the face may change, never beyond limit.
// baseID, when non-negative, replaces the default face as the starting
// point. A slot other than attr.NoSlot restricts merging to references that
// set it.
func (e *Engine) ResolveCharStyle(surface string, src spans.Source, pos, limit, baseID int, filter attr.Slot) (int, int, error) {
	return e.resolveChar(surface, src, pos, limit, baseID, filter, false)
}

// ResolveMouseStyle is ResolveCharStyle for the mouse-highlight property.
// Only the highest-priority overlay carrying the property contributes.
func (e *Engine) ResolveMouseStyle(surface string, src spans.Source, pos, limit, baseID int) (int, int, error) {
	return e.resolveChar(surface, src, pos, limit, baseID, attr.NoSlot, true)
}

func (e *Engine) resolveChar(surface string, src spans.Source, pos, limit, baseID int, filter attr.Slot, mouse bool) (int, int, error) {
	prop := spans.PropFace
	if mouse {
		prop = spans.PropMouseFace
	}
	if limit > src.Len() || limit < 0 {
		limit = src.Len()
	}

	id, next := -1, limit
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		ref := src.Property(pos, prop)
		next, _ = src.NextChange(pos, prop, limit)

		overlays, overlayNext := src.OverlaysAt(pos)
		if overlayNext < next {
			next = overlayNext
		}

		base := e.baseFace(s, r, baseID)
		if len(overlays) == 0 && ref == nil {
			id = base.ID
			return nil
		}

		attrs := base.Attrs
		if ref != nil {
			attrs = e.mergeOr(r, ref, &attrs, base.Attrs, filter)
		}

		if mouse {
			for i := len(overlays) - 1; i >= 0 && ref == nil; i-- {
				o := overlays[i]
				if o.End < next {
					next = o.End
				}
				if ref = o.Props[prop]; ref != nil {
					attrs = e.mergeOr(r, ref, &attrs, base.Attrs, filter)
				}
			}
		} else {
			for _, o := range overlays {
				if o.End < next {
					next = o.End
				}
				if oref := o.Props[prop]; oref != nil {
					attrs = e.mergeOr(r, oref, &attrs, base.Attrs, filter)
				}
			}
		}

		realized, err := e.faceFor(s, &attrs, base.ID)
		if err != nil {
			id = base.ID
			return nil
		}
		id = realized
		return nil
	})
	return id, next, err
}

// ResolveStringStyle returns the face for position pos of a string and the
// position where its style property next changes, or -1 when it stays the
// same to the end.
func (e *Engine) ResolveStringStyle(surface string, src spans.Source, pos, baseID int) (int, int, error) {
	endptr := -1
	if next, changed := src.NextChange(pos, spans.PropFace, src.Len()); changed {
		endptr = next
	}

	id := -1
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		base := e.baseFace(s, r, baseID)
		ref := src.Property(pos, spans.PropFace)
		if ref == nil {
			id = base.ID
			return nil
		}
		attrs := e.mergeOr(r, ref, &base.Attrs, base.Attrs, attr.NoSlot)
		realized, err := e.faceFor(s, &attrs, base.ID)
		if err != nil {
			id = base.ID
			return nil
		}
		id = realized
		return nil
	})
	return id, endptr, err
}

// baseFace returns the face resolution starts from: baseID when it names a
// cached face, otherwise the possibly remapped default face.
func (e *Engine) baseFace(s *Surface, r *merge.Resolver, baseID int) *facecache.Face {
	if baseID >= 0 {
		if f, ok := s.cache.Face(baseID); ok {
			return f
		}
	}
	if f, ok := s.cache.Face(e.lookupBasic(s, r, DefaultFaceID)); ok {
		return f
	}
	f, _ := s.cache.Face(s.basic[0])
	return f
}

// mergeOr merges ref into a copy of attrs. Hitting the recursion limit
// abandons the merge and yields fallback.
func (e *Engine) mergeOr(r *merge.Resolver, ref merge.Ref, attrs *attr.Vector, fallback attr.Vector, filter attr.Slot) attr.Vector {
	out := *attrs
	var err error
	if filter == attr.NoSlot {
		_, err = r.MergeRef(ref, &out)
	} else {
		_, err = r.MergeRefFiltered(ref, &out, filter)
	}
	if err != nil && hitLimit(err) {
		return fallback
	}
	return out
}

// LookupNamed returns the face of the named style merged over the default
// face. An unknown style yields -1, with an UnknownStyleError when signal is
// set.
func (e *Engine) LookupNamed(surface, name string, signal bool) (int, error) {
	id := -1
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		var err error
		id, err = e.lookupNamed(s, r, name, signal)
		return err
	})
	return id, err
}

// LookupDerived returns the face of the named style merged over face baseID.
func (e *Engine) LookupDerived(surface, name string, baseID int, signal bool) (int, error) {
	id := -1
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		base, ok := s.cache.Face(baseID)
		if !ok {
			return nil
		}
		symbol, ok := r.Attributes(name)
		if !ok {
			if signal {
				return faceerrors.NewUnknownStyleError(name)
			}
			return nil
		}
		attrs := base.Attrs
		if err := r.MergeVectors(&symbol, &attrs); err != nil {
			if hitLimit(err) {
				id = baseID
				return nil
			}
			s.logger.WithFields(map[string]any{"face": name}).Warn(err.Error())
		}
		var err error
		id, err = e.faceFor(s, &attrs, baseID)
		return err
	})
	return id, err
}

// LookupBasic maps the id of a basic face to the face to display, applying
// the surface's remapping of that face's style.
func (e *Engine) LookupBasic(surface string, id int) (int, error) {
	out := id
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		out = e.lookupBasic(s, r, id)
		return nil
	})
	return out, err
}

// MergeFaces merges a named style, or when name is empty the attributes of
// realized face faceID, over face baseID. Any failure yields baseID.
func (e *Engine) MergeFaces(surface, name string, faceID, baseID int) (int, error) {
	id := baseID
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		base, ok := s.cache.Face(baseID)
		if !ok {
			return nil
		}
		attrs := base.Attrs

		if name != "" {
			if ok, err := r.MergeNamed(name, &attrs); !ok || hitLimit(err) {
				return nil
			}
		} else {
			if faceID < 0 || faceID == baseID {
				return nil
			}
			face, ok := s.cache.Face(faceID)
			if !ok {
				return nil
			}
			from := face.Attrs
			if err := r.MergeVectors(&from, &attrs); err != nil && hitLimit(err) {
				return nil
			}
		}

		if realized, err := e.faceFor(s, &attrs, baseID); err == nil {
			id = realized
		}
		return nil
	})
	return id, err
}

// MergeStyleID is MergeFaces for a style identified by its definition id.
func (e *Engine) MergeStyleID(surface string, styleID, baseID int) (int, error) {
	e.mu.RLock()
	def, ok := e.graph.ByID(styleID)
	e.mu.RUnlock()
	if !ok {
		return baseID, nil
	}
	return e.LookupDerived(surface, def.Name, baseID, false)
}

// ComputeCharFace returns the face for ref merged over the default face.
// A nil ref is the default face.
func (e *Engine) ComputeCharFace(surface string, ref merge.Ref) (int, error) {
	id := DefaultFaceID
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		if ref == nil {
			id = s.basic[0]
			return nil
		}
		attrs := s.defaultAttrs
		if _, err := r.MergeRef(ref, &attrs); err != nil && hitLimit(err) {
			id = s.basic[0]
			return nil
		}
		realized, err := e.faceFor(s, &attrs, s.basic[0])
		if err != nil {
			return err
		}
		id = realized
		return nil
	})
	return id, err
}

// MergeAdHoc merges ref into an all-Unspecified vector as seen from the
// surface. The returned vector carries every valid part of ref; the error
// describes the invalid parts.
func (e *Engine) MergeAdHoc(surface string, ref merge.Ref) (attr.Vector, error) {
	var out attr.Vector
	var mergeErr error
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		_, mergeErr = r.MergeRef(ref, &out)
		return nil
	})
	if err != nil {
		return out, err
	}
	return out, mergeErr
}

// SupportsAttributes reports whether the surface can display ref
// distinguishably from its default face.
func (e *Engine) SupportsAttributes(surface string, ref merge.Ref) (bool, error) {
	supported := false
	err := e.withSurface(surface, func(s *Surface, r *merge.Resolver) error {
		var attrs attr.Vector
		if ok, _ := r.MergeRef(ref, &attrs); !ok {
			return nil
		}
		if s.kind == KindTTY {
			supported = tty.Negotiate(&attrs, &s.defaultAttrs, s.colors, s.caps)
			return nil
		}
		supported = guiSupports(&attrs, &s.defaultAttrs)
		return nil
	})
	return supported, err
}

// guiSupports accepts attrs unless a requested slot matches the default,
// which would make the face indistinguishable.
func guiSupports(attrs, def *attr.Vector) bool {
	for i := range attrs {
		slot := attr.Slot(i)
		if slot == attr.SlotInherit || slot == attr.SlotFont || attrs[i].IsUnspecified() {
			continue
		}
		if attrs[i].Equal(def[i]) {
			return false
		}
	}
	return true
}

// Face returns a realized face of the surface.
func (e *Engine) Face(surface string, id int) (*facecache.Face, error) {
	var face *facecache.Face
	err := e.withSurface(surface, func(s *Surface, _ *merge.Resolver) error {
		f, ok := s.cache.Face(id)
		if !ok {
			return faceerrors.NewValidationError("face", "no realized face with that id", nil)
		}
		face = f
		return nil
	})
	return face, err
}

// TerminalFace returns the terminal appearance of a realized face. It is nil
// on GUI surfaces.
func (e *Engine) TerminalFace(surface string, id int) (*tty.Face, error) {
	face, err := e.Face(surface, id)
	if err != nil {
		return nil, err
	}
	tf, _ := face.Data.(*tty.Face)
	return tf, nil
}

// Snapshot lists the realized faces of the surface.
func (e *Engine) Snapshot(surface string) (facecache.Snapshot, error) {
	var snap facecache.Snapshot
	err := e.withSurface(surface, func(s *Surface, _ *merge.Resolver) error {
		snap = s.cache.Snapshot()
		return nil
	})
	return snap, err
}

// DefaultAttributes returns the attributes of the realized default face.
func (e *Engine) DefaultAttributes(surface string) (attr.Vector, error) {
	var out attr.Vector
	err := e.withSurface(surface, func(s *Surface, _ *merge.Resolver) error {
		out = s.defaultAttrs
		return nil
	})
	return out, err
}
