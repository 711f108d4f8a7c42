package attr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

// Value variants. The zero Value is Unspecified.
const (
	KindUnspecified Kind = iota
	KindIgnoreDefault
	KindReset
	KindOff
	KindOn
	KindString
	KindInt
	KindFloat
	KindFunc
	KindWeight
	KindSlant
	KindWidth
	KindUnderline
	KindBox
	KindFont
	KindNames
)

// Value is a single style attribute.
type Value struct {
	kind  Kind
	str   string
	num   int
	float float64
	fn    *HeightFunc
	ul    *Underline
	box   *Box
	font  *FontSpec
	names []string
}

// Unspecified returns the "inherit from whatever this merges into" marker.
func Unspecified() Value { return Value{} }

// IgnoreDefault returns the marker that suppresses the global default for a
// slot.
func IgnoreDefault() Value { return Value{kind: KindIgnoreDefault} }

// Reset returns the marker that falls back to the surface default style.
func Reset() Value { return Value{kind: KindReset} }

// Off returns the nil value of a slot.
func Off() Value { return Value{kind: KindOff} }

// On returns the t value of a slot.
func On() Value { return Value{kind: KindOn} }

// Bool maps true to On and false to Off.
func Bool(b bool) Value {
	if b {
		return On()
	}
	return Off()
}

// String wraps a string attribute such as a family or color name.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps an absolute height or a box line width.
func Int(n int) Value { return Value{kind: KindInt, num: n} }

// Float wraps a relative height factor.
func Float(f float64) Value { return Value{kind: KindFloat, float: f} }

// Func wraps a height transform.
func Func(fn *HeightFunc) Value { return Value{kind: KindFunc, fn: fn} }

// WeightOf wraps a weight.
func WeightOf(w Weight) Value { return Value{kind: KindWeight, num: int(w)} }

// SlantOf wraps a slant.
func SlantOf(s Slant) Value { return Value{kind: KindSlant, num: int(s)} }

// WidthOf wraps a width.
func WidthOf(w Width) Value { return Value{kind: KindWidth, num: int(w)} }

// UnderlineOf wraps an underline descriptor.
func UnderlineOf(u Underline) Value { return Value{kind: KindUnderline, ul: &u} }

// BoxOf wraps a box descriptor.
func BoxOf(b Box) Value { return Value{kind: KindBox, box: &b} }

// FontOf wraps a font descriptor.
func FontOf(f FontSpec) Value { return Value{kind: KindFont, font: &f} }

// Names wraps an inherit list. An empty list is Off.
func Names(names ...string) Value {
	if len(names) == 0 {
		return Off()
	}
	return Value{kind: KindNames, names: slices.Clone(names)}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsUnspecified reports whether v is the Unspecified marker.
func (v Value) IsUnspecified() bool { return v.kind == KindUnspecified }

// IsIgnoreDefault reports whether v is the IgnoreDefault marker.
func (v Value) IsIgnoreDefault() bool { return v.kind == KindIgnoreDefault }

// IsReset reports whether v is the Reset marker.
func (v Value) IsReset() bool { return v.kind == KindReset }

// IsOff reports whether v is nil.
func (v Value) IsOff() bool { return v.kind == KindOff }

// Concrete reports whether v is neither Unspecified nor IgnoreDefault.
func (v Value) Concrete() bool {
	return v.kind != KindUnspecified && v.kind != KindIgnoreDefault
}

// Truthy reports whether v is a concrete non-nil value.
func (v Value) Truthy() bool {
	return v.Concrete() && v.kind != KindOff && v.kind != KindReset
}

// Str returns the string payload.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// IntValue returns the integer payload.
func (v Value) IntValue() (int, bool) { return v.num, v.kind == KindInt }

// FloatValue returns the relative height payload.
func (v Value) FloatValue() (float64, bool) { return v.float, v.kind == KindFloat }

// HeightFunc returns the transform payload.
func (v Value) HeightFunc() (*HeightFunc, bool) { return v.fn, v.kind == KindFunc }

// Weight returns the weight payload.
func (v Value) Weight() (Weight, bool) { return Weight(v.num), v.kind == KindWeight }

// Slant returns the slant payload.
func (v Value) Slant() (Slant, bool) { return Slant(v.num), v.kind == KindSlant }

// Width returns the width payload.
func (v Value) Width() (Width, bool) { return Width(v.num), v.kind == KindWidth }

// Underline returns the underline descriptor payload.
func (v Value) Underline() (Underline, bool) {
	if v.kind != KindUnderline || v.ul == nil {
		return Underline{}, false
	}
	return *v.ul, true
}

// Box returns the box descriptor payload.
func (v Value) Box() (Box, bool) {
	if v.kind != KindBox || v.box == nil {
		return Box{}, false
	}
	return *v.box, true
}

// Font returns the font descriptor payload. The result must not be mutated.
func (v Value) Font() (*FontSpec, bool) {
	if v.kind != KindFont {
		return nil, false
	}
	return v.font, true
}

// NameList returns the inherit names.
func (v Value) NameList() []string {
	if v.kind != KindNames {
		return nil
	}
	return slices.Clone(v.names)
}

// Equal compares values structurally; strings compare byte-wise.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt, KindWeight, KindSlant, KindWidth:
		return v.num == o.num
	case KindFloat:
		return v.float == o.float
	case KindFunc:
		if v.fn == nil || o.fn == nil {
			return v.fn == o.fn
		}
		return v.fn.Name == o.fn.Name
	case KindUnderline:
		return *v.ul == *o.ul
	case KindBox:
		return *v.box == *o.box
	case KindFont:
		return v.font.equal(o.font)
	case KindNames:
		return slices.Equal(v.names, o.names)
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindUnspecified:
		return "unspecified"
	case KindIgnoreDefault:
		return ":ignore-defface"
	case KindReset:
		return "reset"
	case KindOff:
		return "nil"
	case KindOn:
		return "t"
	case KindString:
		return strconv.Quote(v.str)
	case KindInt:
		return strconv.Itoa(v.num)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'g', -1, 64)
	case KindFunc:
		if v.fn == nil {
			return "#<function>"
		}
		return "#<function " + v.fn.Name + ">"
	case KindWeight:
		return Weight(v.num).String()
	case KindSlant:
		return Slant(v.num).String()
	case KindWidth:
		return Width(v.num).String()
	case KindUnderline:
		return v.ul.String()
	case KindBox:
		return v.box.String()
	case KindFont:
		return v.font.String()
	case KindNames:
		if len(v.names) == 1 {
			return v.names[0]
		}
		return "(" + strings.Join(v.names, " ") + ")"
	}
	return fmt.Sprintf("#<kind %d>", v.kind)
}

// Plain converts v to a JSON-friendly form.
func (v Value) Plain() any {
	switch v.kind {
	case KindUnspecified:
		return "unspecified"
	case KindIgnoreDefault:
		return "ignore-defface"
	case KindReset:
		return "reset"
	case KindOff:
		return false
	case KindOn:
		return true
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.float
	case KindNames:
		return slices.Clone(v.names)
	case KindUnderline:
		out := map[string]any{"style": v.ul.Style.String()}
		if v.ul.UseForeground {
			out["color"] = "foreground-color"
		} else if v.ul.Color != "" {
			out["color"] = v.ul.Color
		}
		return out
	case KindBox:
		out := map[string]any{"line-width": []int{v.box.Width, v.box.Height}, "style": v.box.Style.String()}
		if v.box.Color != "" {
			out["color"] = v.box.Color
		}
		return out
	default:
		return v.String()
	}
}
