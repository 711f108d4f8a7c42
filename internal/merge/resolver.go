package merge

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/logger"
	"github.com/alexisbeaulieu97/faces/internal/style"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// DefaultMaxDepth bounds nested reference resolution.
const DefaultMaxDepth = 200

// Resolver merges style references for one surface.
type Resolver struct {
	Graph  *style.Graph
	Local  *style.Table
	Remaps *Remaps
	// Params is the context filters are evaluated against. A nil map means
	// no context, in which no parameter filter matches.
	Params map[string]string
	// Default returns the realized default vector used to replace Reset.
	Default func() (attr.Vector, bool)
	Logger  *logger.Logger

	MaxDepth           int
	AlwaysMatchFilters bool
	DisableRemap       bool
}

type pointKind uint8

const (
	normalPoint pointKind = iota
	remapPoint
)

// point records a named style currently being merged.
type point struct {
	name string
	kind pointKind
	prev *point
}

// push returns a new point on top of prev, or false if merging name again
// would loop. A remap point for the same name lets a normal point through:
// inside a remap the name refers to the unmapped style.
func push(prev *point, name string, kind pointKind) (*point, bool) {
	for p := prev; p != nil; p = p.prev {
		if p.name != name {
			continue
		}
		if p.kind == kind {
			return nil, false
		}
		if p.kind == remapPoint {
			break
		}
	}
	return &point{name: name, kind: kind, prev: prev}, true
}

// walk carries per-call state through one top-level merge.
type walk struct {
	depth int
	limit int
	errs  []error
	hit   bool
}

func (w *walk) enter() bool {
	w.depth++
	return w.depth <= w.limit
}

// exceeded records the first time the depth ceiling is hit and reports
// whether this call was that first time.
func (w *walk) exceeded(what string) bool {
	if w.hit {
		return false
	}
	w.hit = true
	w.errs = append(w.errs, faceerrors.NewRecursionLimitError(what, w.depth))
	return true
}

func (w *walk) leave() { w.depth-- }

func (w *walk) fail(err error) { w.errs = append(w.errs, err) }

func (r *Resolver) newWalk() *walk {
	limit := r.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	return &walk{limit: limit}
}

// MergeRef merges ref into to. It reports false when any part of ref was
// invalid; valid parts are still applied. The error joins every problem
// found, including a RecursionLimitError when the depth ceiling was hit.
func (r *Resolver) MergeRef(ref Ref, to *attr.Vector) (bool, error) {
	w := r.newWalk()
	ok := r.mergeRef(w, ref, to, true, nil, attr.NoSlot)
	return ok, errors.Join(w.errs...)
}

// MergeRefFiltered is MergeRef restricted to references that affect slot.
func (r *Resolver) MergeRefFiltered(ref Ref, to *attr.Vector, slot attr.Slot) (bool, error) {
	w := r.newWalk()
	ok := r.mergeRef(w, ref, to, true, nil, slot)
	return ok, errors.Join(w.errs...)
}

// MergeNamed merges the named style into to.
func (r *Resolver) MergeNamed(name string, to *attr.Vector) (bool, error) {
	w := r.newWalk()
	ok := r.mergeNamed(w, name, to, nil, attr.NoSlot)
	return ok, errors.Join(w.errs...)
}

// MergeVectors layers from over to, resolving from's inherit list first.
func (r *Resolver) MergeVectors(from, to *attr.Vector) error {
	w := r.newWalk()
	r.mergeVectors(w, from, to, nil)
	return errors.Join(w.errs...)
}

// Attributes returns the attributes of name as seen on this surface,
// applying aliases and remapping.
func (r *Resolver) Attributes(name string) (attr.Vector, bool) {
	return r.attributes(r.newWalk(), name, nil)
}

// AttributesNoRemap returns the alias-resolved definition of name.
func (r *Resolver) AttributesNoRemap(name string) (attr.Vector, bool) {
	resolved := r.resolveName(name)
	return r.Local.Lookup(r.Graph, resolved)
}

func (r *Resolver) resolveName(name string) string {
	resolved, err := r.Graph.Resolve(name)
	if err != nil {
		r.Logger.WithFields(map[string]any{"face": name}).Warn("face alias cycle")
	}
	return resolved
}

func (r *Resolver) attributes(w *walk, name string, points *point) (attr.Vector, bool) {
	resolved := r.resolveName(name)
	if !r.DisableRemap {
		if ref, ok := r.Remaps.Get(resolved); ok {
			if p, pushed := push(points, resolved, remapPoint); pushed {
				var out attr.Vector
				ok := r.mergeRef(w, ref, &out, false, p, attr.NoSlot)
				return out, ok
			}
		}
	}
	return r.Local.Lookup(r.Graph, resolved)
}

func (r *Resolver) mergeNamed(w *walk, name string, to *attr.Vector, points *point, filter attr.Slot) bool {
	p, ok := push(points, name, normalPoint)
	if !ok {
		return false
	}
	from, ok := r.attributes(w, name, p)
	if !ok {
		return false
	}

	if name != style.DefaultName {
		def, haveDefault := attr.Vector{}, false
		if r.Default != nil {
			def, haveDefault = r.Default()
		}
		for i := range from {
			if !from[i].IsReset() {
				continue
			}
			if haveDefault {
				from[i] = def[i]
			} else {
				from[i] = attr.Unspecified()
			}
		}
	}

	if filter == attr.NoSlot || filterApplies(from[filter]) ||
		(from[attr.SlotInherit].Kind() == attr.KindNames && filterApplies(r.inheritedAttr(w, &from, filter, p))) {
		r.mergeVectors(w, &from, to, p)
	}
	return true
}

func filterApplies(v attr.Value) bool {
	return !v.IsOff() && !v.IsUnspecified()
}

// inheritedAttr follows the inherit chain of attrs until slot is specified.
func (r *Resolver) inheritedAttr(w *walk, attrs *attr.Vector, slot attr.Slot, points *point) attr.Value {
	defer w.leave()
	if !w.enter() {
		w.exceeded("inherit")
		return attr.Unspecified()
	}

	inherited := *attrs
	val := inherited[slot]
	for steps := 0; val.IsUnspecified() && inherited[attr.SlotInherit].Kind() == attr.KindNames; steps++ {
		if steps > w.limit {
			w.fail(faceerrors.NewRecursionLimitError("inherit", steps))
			break
		}
		parents := inherited[attr.SlotInherit].NameList()
		if len(parents) == 1 {
			next, ok := r.attributes(w, parents[0], points)
			if !ok {
				break
			}
			inherited = next
			val = inherited[slot]
			continue
		}
		ok := false
		for _, parent := range parents {
			inherited, ok = r.attributes(w, parent, points)
			if !ok {
				break
			}
			val = r.inheritedAttr(w, &inherited, slot, points)
			if !val.IsUnspecified() {
				break
			}
		}
		if !ok {
			break
		}
	}
	return val
}

func (r *Resolver) mergeVectors(w *walk, from, to *attr.Vector, points *point) {
	if inherit := from[attr.SlotInherit]; inherit.Kind() == attr.KindNames {
		r.mergeRef(w, Names(inherit.NameList()...), to, false, points, attr.NoSlot)
	}
	attr.Overlay(from, to)
}

func (r *Resolver) mergeRef(w *walk, ref Ref, to *attr.Vector, errMsgs bool, points *point, filter attr.Slot) bool {
	defer w.leave()
	if !w.enter() {
		if label := refLabel(ref); w.exceeded(label) {
			r.Logger.WithFields(map[string]any{"ref": label}).Warn("face recursion limit exceeded")
		}
		return false
	}

	for {
		f, isFiltered := ref.(Filtered)
		if !isFiltered {
			break
		}
		match, valid := r.evaluateFilter(f.Filter)
		if !valid {
			if errMsgs {
				r.Logger.WithFields(map[string]any{"ref": f.String()}).Warn("invalid face ref")
			}
			w.fail(faceerrors.NewInvalidReferenceError(f, "filter needs a parameter"))
			return false
		}
		if !match {
			return true
		}
		ref = f.Inner
	}

	switch ref := ref.(type) {
	case nil:
		return true
	case Name:
		ok := r.mergeNamed(w, string(ref), to, points, filter)
		if !ok && errMsgs {
			r.Logger.WithFields(map[string]any{"face": string(ref)}).Warn("invalid face reference")
			w.fail(faceerrors.NewUnknownStyleError(string(ref)))
		}
		return ok
	case LegacyColor:
		color, ok := ref.Color.(string)
		if !ok {
			if errMsgs {
				r.Logger.WithFields(map[string]any{"color": fmt.Sprint(ref.Color)}).Warn("invalid face color")
			}
			w.fail(faceerrors.NewInvalidReferenceError(ref, "color must be a string"))
			return false
		}
		if ref.Background {
			to[attr.SlotBackground] = attr.String(color)
		} else {
			to[attr.SlotForeground] = attr.String(color)
		}
		return true
	case Props:
		return r.mergeProps(w, ref, to, errMsgs, points, filter)
	case List:
		ok := true
		for i := len(ref) - 1; i >= 0; i-- {
			if !r.mergeRef(w, ref[i], to, errMsgs, points, filter) {
				ok = false
			}
		}
		return ok
	}
	w.fail(faceerrors.NewInvalidReferenceError(ref, "unsupported reference"))
	return false
}

func (r *Resolver) mergeProps(w *walk, props Props, to *attr.Vector, errMsgs bool, points *point, filter attr.Slot) bool {
	filterPassed := false
	if filter != attr.NoSlot {
		var parent any
		seen := false
		for _, prop := range props {
			slot, _ := attr.ParseSlot(prop.Key)
			switch {
			case slot == filter:
				seen = true
				if isNil(prop.Value) {
					return true
				}
			case slot == attr.SlotInherit:
				parent = prop.Value
			}
		}
		if !seen {
			if isNil(parent) {
				return true
			}
			parentRef, ok := AsRef(parent)
			var scratch attr.Vector
			if !ok || !r.mergeRef(w, parentRef, &scratch, errMsgs, points, attr.NoSlot) {
				r.logInvalidAttribute("inherit", parent)
				w.fail(faceerrors.NewInvalidAttributeValueError("", "inherit", parent, "invalid parent reference"))
				return false
			}
			if !filterApplies(scratch[filter]) {
				return true
			}
		}
		filterPassed = true
	}

	ok := true
	for _, prop := range props {
		if isUnspecified(prop.Value) {
			continue
		}
		if err := r.mergeProp(w, prop, to, errMsgs, points, filter, filterPassed); err != nil {
			r.logInvalidAttribute(prop.Key, prop.Value)
			w.fail(err)
			ok = false
		}
	}
	return ok
}

func (r *Resolver) mergeProp(w *walk, prop Prop, to *attr.Vector, errMsgs bool, points *point, filter attr.Slot, filterPassed bool) error {
	slot, known := attr.ParseSlot(prop.Key)
	if !known {
		return faceerrors.NewInvalidAttributeValueError("", prop.Key, prop.Value, "unknown attribute")
	}

	if slot == attr.SlotInherit {
		parent, ok := AsRef(prop.Value)
		if !ok {
			return faceerrors.NewInvalidAttributeValueError("", slot.String(), prop.Value, "expected a face reference")
		}
		if filterPassed {
			filter = attr.NoSlot
		}
		if !r.mergeRef(w, parent, to, errMsgs, points, filter) {
			return faceerrors.NewInvalidAttributeValueError("", slot.String(), prop.Value, "invalid parent reference")
		}
		return nil
	}

	value, err := attr.Validate(slot, prop.Value)
	if err != nil {
		return err
	}
	if slot == attr.SlotHeight {
		merged, ok := attr.MergeHeights(value, to[attr.SlotHeight])
		if !ok {
			return faceerrors.NewInvalidAttributeValueError("", slot.String(), prop.Value, "height cannot be merged")
		}
		value = merged
	}
	to.Assign(slot, value)
	return nil
}

func (r *Resolver) logInvalidAttribute(keyword string, value any) {
	r.Logger.WithFields(map[string]any{"keyword": keyword, "value": fmt.Sprint(value)}).Warn("invalid face attribute")
}

// evaluateFilter reports whether f matches and whether it is well formed.
func (r *Resolver) evaluateFilter(f Filter) (match, valid bool) {
	if f.Always {
		return true, true
	}
	if f.Param == "" {
		return false, false
	}
	if r.AlwaysMatchFilters {
		return true, true
	}
	if r.Params == nil {
		return false, true
	}
	value, ok := r.Params[f.Param]
	return ok && value == f.Value, true
}

func refLabel(ref Ref) string {
	if ref == nil {
		return "nil"
	}
	return ref.String()
}
