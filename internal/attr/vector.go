package attr

import (
	"strings"
)

// Vector holds one Value per Slot. The zero Vector is all-Unspecified.
type Vector [NumSlots]Value

// FullySpecified reports whether every rendering-relevant slot is concrete.
// The font, inherit and distant-foreground slots are optional.
func (v *Vector) FullySpecified() bool {
	for i := range v {
		switch Slot(i) {
		case SlotFont, SlotInherit, SlotDistantForeground:
			continue
		}
		if !v[i].Concrete() {
			return false
		}
	}
	return true
}

// Missing lists the rendering-relevant slots that are not concrete.
func (v *Vector) Missing() []Slot {
	var out []Slot
	for i := range v {
		switch Slot(i) {
		case SlotFont, SlotInherit, SlotDistantForeground:
			continue
		}
		if !v[i].Concrete() {
			out = append(out, Slot(i))
		}
	}
	return out
}

// Empty reports whether every slot is Unspecified.
func (v *Vector) Empty() bool {
	for i := range v {
		if !v[i].IsUnspecified() {
			return false
		}
	}
	return true
}

// Equal compares two vectors slot by slot. Color names compare without
// regard to case; every other string compares byte-wise.
func (v *Vector) Equal(o *Vector) bool {
	for i := range v {
		if !slotEqual(Slot(i), v[i], o[i]) {
			return false
		}
	}
	return true
}

func slotEqual(slot Slot, a, b Value) bool {
	if slot.isColor() && a.kind == KindString && b.kind == KindString {
		return strings.EqualFold(a.str, b.str)
	}
	return a.Equal(b)
}

// MergeHeights combines a height from a merged style with the height it is
// merged into. It reports false when the combination is invalid.
func MergeHeights(from, to Value) (Value, bool) {
	switch from.kind {
	case KindInt:
		return from, true
	case KindFloat:
		switch to.kind {
		case KindInt:
			return Int(int(from.float * float64(to.num))), true
		case KindFloat:
			return Float(from.float * to.float), true
		case KindUnspecified:
			return from, true
		}
	case KindFunc:
		if from.fn == nil || from.fn.Fn == nil {
			return Value{}, false
		}
		result := from.fn.Fn(to)
		if to.kind == KindInt && result.kind != KindInt {
			return Value{}, false
		}
		switch result.kind {
		case KindInt, KindFloat, KindUnspecified, KindFunc:
			return result, true
		}
	}
	return Value{}, false
}

// Overlay applies every specified slot of from onto to. Heights combine via
// MergeHeights, a font descriptor in from takes precedence over the scalar
// font slots, and the inherit slot of to is cleared afterward. Resolving
// from's own inherit list is the caller's job.
func Overlay(from, to *Vector) {
	var font *FontSpec
	if spec, ok := from[SlotFont].Font(); ok {
		base, _ := to[SlotFont].Font()
		font = spec.Merge(base)
		font.Size = 0
		to[SlotFont] = Value{kind: KindFont, font: font}
	}

	for i := range from {
		slot := Slot(i)
		value := from[i]
		if value.IsUnspecified() || slot == SlotFont {
			continue
		}
		if slot == SlotHeight && value.kind != KindInt {
			if merged, ok := MergeHeights(value, to[i]); ok {
				to[i] = merged
			}
			clearFontProp(to, SlotHeight)
			continue
		}
		if to[i].Equal(value) {
			continue
		}
		to[i] = value
		if slot <= SlotSlant {
			clearFontProp(to, slot)
		}
	}

	if font != nil {
		if font.Foundry != "" {
			to[SlotFoundry] = String(font.Foundry)
		}
		if font.Family != "" {
			to[SlotFamily] = String(font.Family)
		}
		if font.Weight != nil {
			to[SlotWeight] = WeightOf(*font.Weight)
		}
		if font.Slant != nil {
			to[SlotSlant] = SlantOf(*font.Slant)
		}
		if font.Width != nil {
			to[SlotWidth] = WidthOf(*font.Width)
		}
		if font.Adstyle != "" {
			current, _ := to[SlotFont].Font()
			spec := current.clone()
			spec.Adstyle = font.Adstyle
			to[SlotFont] = Value{kind: KindFont, font: spec}
		}
	}

	to[SlotInherit] = Off()
}

// Assign stores value into slot, clearing the matching field of the font
// descriptor held by v.
func (v *Vector) Assign(slot Slot, value Value) {
	v[slot] = value
	if slot <= SlotSlant {
		clearFontProp(v, slot)
	}
}

func clearFontProp(v *Vector, slot Slot) {
	spec, ok := v[SlotFont].Font()
	if !ok {
		return
	}
	v[SlotFont] = Value{kind: KindFont, font: spec.without(slot)}
}

// Relative reports whether value would still need a base to be merged into
// before it becomes absolute.
func Relative(slot Slot, value Value) bool {
	if slot == SlotHeight {
		return value.kind != KindInt
	}
	return value.IsUnspecified() || value.IsIgnoreDefault()
}

// MergeAttribute merges a single slot value the way Overlay would.
func MergeAttribute(slot Slot, from, to Value) Value {
	if from.IsUnspecified() || from.IsIgnoreDefault() {
		return to
	}
	if slot == SlotHeight {
		if merged, ok := MergeHeights(from, to); ok {
			return merged
		}
	}
	return from
}

func (v *Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(':')
		b.WriteString(Slot(i).String())
		b.WriteByte(' ')
		b.WriteString(v[i].String())
	}
	b.WriteByte(']')
	return b.String()
}

// Plain converts the vector to a map keyed by slot name, omitting
// Unspecified slots.
func (v *Vector) Plain() map[string]any {
	out := make(map[string]any, NumSlots)
	for i := range v {
		if v[i].IsUnspecified() {
			continue
		}
		out[Slot(i).String()] = v[i].Plain()
	}
	return out
}
