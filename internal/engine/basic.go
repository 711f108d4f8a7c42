package engine

import (
	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/merge"
	"github.com/alexisbeaulieu97/faces/internal/style"
	"github.com/alexisbeaulieu97/faces/internal/tty"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// DefaultFaceID is the id of the realized default face on every surface.
const DefaultFaceID = 0

// BasicStyles are realized on every surface in this order, so the face of
// BasicStyles[i] has id i after a recomputation.
var BasicStyles = []string{
	style.DefaultName,
	"mode-line-active",
	"mode-line-inactive",
	"tool-bar",
	"fringe",
	"header-line-active",
	"header-line-inactive",
	"scroll-bar",
	"border",
	"cursor",
	"mouse",
	"menu",
	"vertical-border",
	"window-divider",
	"window-divider-first-pixel",
	"window-divider-last-pixel",
	"internal-border",
	"child-frame-border",
	"tab-bar",
	"tab-line",
}

const numBasic = 20

// prepare recomputes the basic faces of s when they are stale. Callers hold
// s.mu.
func (e *Engine) prepare(s *Surface, r *merge.Resolver) error {
	if !s.faceChange && s.haveDefault && s.cache.Len() > 0 {
		return nil
	}
	return e.recompute(s, r)
}

// recompute frees every realized face of s and realizes the basic faces
// again.
func (e *Engine) recompute(s *Surface, r *merge.Resolver) error {
	if n := s.cache.Clear(); n > 0 {
		s.logger.WithFields(map[string]any{"faces": n}).Debug("face cache cleared")
	}
	s.haveDefault = false
	for i := range s.basic {
		s.basic[i] = -1
	}

	def, err := e.defaultVector(s, r)
	if err != nil {
		return err
	}
	id, err := s.cache.Realize(&def, DefaultFaceID)
	if err != nil {
		return err
	}
	s.defaultAttrs = def
	s.haveDefault = true
	s.basic[0] = id

	plain := *r
	plain.DisableRemap = true
	for i := 1; i < numBasic; i++ {
		name := BasicStyles[i]
		symbol, _ := plain.AttributesNoRemap(name)
		attrs := def
		if err := plain.MergeVectors(&symbol, &attrs); err != nil {
			s.logger.WithFields(map[string]any{"face": name}).Warn(err.Error())
			if hitLimit(err) {
				attrs = def
			}
		}
		id, err := s.cache.Realize(&attrs, i)
		if err != nil {
			s.logger.WithFields(map[string]any{"face": name}).Error(err, "cannot realize basic face")
			continue
		}
		s.basic[i] = id
	}
	s.faceChange = false
	return nil
}

// defaultVector builds the fully specified attributes of the default face
// of s.
func (e *Engine) defaultVector(s *Surface, r *merge.Resolver) (attr.Vector, error) {
	v, _ := r.AttributesNoRemap(style.DefaultName)
	for i := range v {
		if v[i].IsReset() {
			v[i] = attr.Unspecified()
		}
	}
	v[attr.SlotInherit] = attr.Unspecified()

	if s.kind == KindTTY {
		v[attr.SlotFamily] = attr.String("default")
		v[attr.SlotFoundry] = attr.String("default")
		v[attr.SlotWidth] = attr.WidthOf(attr.WidthNormal)
		v[attr.SlotHeight] = attr.Int(1)
		fillUnspecified(&v, attr.SlotWeight, attr.WeightOf(attr.WeightNormal))
		fillUnspecified(&v, attr.SlotSlant, attr.SlantOf(attr.SlantNormal))
		fillUnspecified(&v, attr.SlotFontset, attr.Off())
	}

	for _, slot := range []attr.Slot{
		attr.SlotExtend, attr.SlotUnderline, attr.SlotOverline,
		attr.SlotStrikeThrough, attr.SlotBox, attr.SlotInverse, attr.SlotStipple,
	} {
		fillUnspecified(&v, slot, attr.Off())
	}

	if v[attr.SlotForeground].IsUnspecified() {
		switch {
		case s.fg != "":
			v[attr.SlotForeground] = attr.String(s.fg)
		case s.kind == KindTTY:
			v[attr.SlotForeground] = attr.String(tty.UnspecifiedFG)
		default:
			return v, faceerrors.NewValidationError("default.foreground", "unable to determine a default foreground color", nil)
		}
	}
	if v[attr.SlotBackground].IsUnspecified() {
		switch {
		case s.bg != "":
			v[attr.SlotBackground] = attr.String(s.bg)
		case s.kind == KindTTY:
			v[attr.SlotBackground] = attr.String(tty.UnspecifiedBG)
		default:
			return v, faceerrors.NewValidationError("default.background", "unable to determine a default background color", nil)
		}
	}

	if !v.FullySpecified() {
		return v, faceerrors.NewValidationError("default", "default face is not fully specified", nil)
	}
	return v, nil
}

func fillUnspecified(v *attr.Vector, slot attr.Slot, value attr.Value) {
	if v[slot].IsUnspecified() {
		v[slot] = value
	}
}

// lookupBasic returns the face id to use for basic face id on s, honoring
// remapping of its style. Callers hold s.mu.
func (e *Engine) lookupBasic(s *Surface, r *merge.Resolver, id int) int {
	if id < 0 || id >= numBasic {
		return id
	}
	realized := s.basic[id]
	if s.remaps.Len() == 0 {
		return realized
	}
	if _, ok := s.remaps.Get(BasicStyles[id]); !ok {
		return realized
	}
	remapped, err := e.lookupNamed(s, r, BasicStyles[id], false)
	if err != nil || remapped < 0 {
		return realized
	}
	return remapped
}

// lookupNamed realizes the named style merged over the default face.
func (e *Engine) lookupNamed(s *Surface, r *merge.Resolver, name string, signal bool) (int, error) {
	symbol, ok := r.Attributes(name)
	if !ok {
		if signal {
			return -1, faceerrors.NewUnknownStyleError(name)
		}
		return -1, nil
	}
	attrs := s.defaultAttrs
	if err := r.MergeVectors(&symbol, &attrs); err != nil {
		if hitLimit(err) {
			return DefaultFaceID, nil
		}
		s.logger.WithFields(map[string]any{"face": name}).Warn(err.Error())
	}
	return e.faceFor(s, &attrs, s.basic[0])
}

// faceFor returns baseID when attrs are those of that face, and otherwise
// the id of the face for attrs.
func (e *Engine) faceFor(s *Surface, attrs *attr.Vector, baseID int) (int, error) {
	if base, ok := s.cache.Face(baseID); ok && base.Attrs.Equal(attrs) {
		return baseID, nil
	}
	return e.realize(s, attrs)
}

// realize returns the id of the face for attrs, realizing it on a miss.
func (e *Engine) realize(s *Surface, attrs *attr.Vector) (int, error) {
	id, err := s.cache.LookupOrRealize(attrs)
	if err != nil {
		s.logger.Error(err, "cannot realize face")
		return -1, err
	}
	return id, nil
}
