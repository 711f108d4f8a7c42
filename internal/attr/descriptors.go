package attr

import (
	"fmt"
	"strings"
)

// LineStyle is the drawing style of an underline.
type LineStyle uint8

// Underline styles.
const (
	LineSolid LineStyle = iota
	LineDouble
	LineWave
	LineDots
	LineDashes
)

var lineStyleNames = map[LineStyle]string{
	LineSolid:  "line",
	LineDouble: "double-line",
	LineWave:   "wave",
	LineDots:   "dots",
	LineDashes: "dashes",
}

func (s LineStyle) String() string { return lineStyleNames[s] }

// ParseLineStyle resolves an underline style symbol.
func ParseLineStyle(name string) (LineStyle, bool) {
	for style, candidate := range lineStyleNames {
		if candidate == name {
			return style, true
		}
	}
	return LineSolid, false
}

// Underline describes a colored or styled underline.
type Underline struct {
	Color         string
	UseForeground bool
	Style         LineStyle
}

// Styled reports whether the underline needs more than a plain single line.
func (u Underline) Styled() bool {
	return u.Style != LineSolid || u.Color != ""
}

func (u Underline) String() string {
	parts := []string{"style " + u.Style.String()}
	switch {
	case u.UseForeground:
		parts = append(parts, "color foreground-color")
	case u.Color != "":
		parts = append(parts, "color "+u.Color)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// BoxStyle is the 3D appearance of a box around text.
type BoxStyle uint8

// Box styles; BoxPlain corresponds to a nil style.
const (
	BoxPlain BoxStyle = iota
	BoxPressed
	BoxReleased
	BoxFlatButton
)

var boxStyleNames = map[BoxStyle]string{
	BoxPlain:      "nil",
	BoxPressed:    "pressed-button",
	BoxReleased:   "released-button",
	BoxFlatButton: "flat-button",
}

func (s BoxStyle) String() string { return boxStyleNames[s] }

// ParseBoxStyle resolves a box style symbol; "" and "nil" mean plain.
func ParseBoxStyle(name string) (BoxStyle, bool) {
	if name == "" {
		return BoxPlain, true
	}
	for style, candidate := range boxStyleNames {
		if candidate == name {
			return style, true
		}
	}
	return BoxPlain, false
}

// Box describes a box drawn around characters. Width is the vertical line
// width and Height the horizontal one; negative values draw inward.
type Box struct {
	Width  int
	Height int
	Color  string
	Style  BoxStyle
}

func (b Box) String() string {
	return fmt.Sprintf("(line-width (%d . %d) color %q style %s)", b.Width, b.Height, b.Color, b.Style)
}

// FontSpec is a partial font description that overrides the scalar font
// slots of a vector when merged.
type FontSpec struct {
	Family  string
	Foundry string
	Adstyle string
	Weight  *Weight
	Slant   *Slant
	Width   *Width
	Size    int
}

func (f *FontSpec) clone() *FontSpec {
	if f == nil {
		return &FontSpec{}
	}
	out := *f
	return &out
}

// Merge returns a copy of base with every field set in f applied over it.
func (f *FontSpec) Merge(base *FontSpec) *FontSpec {
	out := base.clone()
	if f == nil {
		return out
	}
	if f.Family != "" {
		out.Family = f.Family
	}
	if f.Foundry != "" {
		out.Foundry = f.Foundry
	}
	if f.Adstyle != "" {
		out.Adstyle = f.Adstyle
	}
	if f.Weight != nil {
		w := *f.Weight
		out.Weight = &w
	}
	if f.Slant != nil {
		s := *f.Slant
		out.Slant = &s
	}
	if f.Width != nil {
		w := *f.Width
		out.Width = &w
	}
	if f.Size != 0 {
		out.Size = f.Size
	}
	return out
}

// without returns a copy with the font property backing slot cleared.
func (f *FontSpec) without(slot Slot) *FontSpec {
	out := f.clone()
	switch slot {
	case SlotFamily:
		out.Family = ""
	case SlotFoundry:
		out.Foundry = ""
	case SlotWidth:
		out.Width = nil
	case SlotHeight:
		out.Size = 0
	case SlotWeight:
		out.Weight = nil
	case SlotSlant:
		out.Slant = nil
	}
	return out
}

func (f *FontSpec) equal(o *FontSpec) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Family == o.Family && f.Foundry == o.Foundry && f.Adstyle == o.Adstyle &&
		f.Size == o.Size && eqPtr(f.Weight, o.Weight) && eqPtr(f.Slant, o.Slant) && eqPtr(f.Width, o.Width)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *FontSpec) String() string {
	if f == nil {
		return "nil"
	}
	var parts []string
	if f.Foundry != "" {
		parts = append(parts, "foundry "+f.Foundry)
	}
	if f.Family != "" {
		parts = append(parts, "family "+f.Family)
	}
	if f.Weight != nil {
		parts = append(parts, "weight "+f.Weight.String())
	}
	if f.Slant != nil {
		parts = append(parts, "slant "+f.Slant.String())
	}
	if f.Width != nil {
		parts = append(parts, "width "+f.Width.String())
	}
	if f.Adstyle != "" {
		parts = append(parts, "adstyle "+f.Adstyle)
	}
	if f.Size != 0 {
		parts = append(parts, fmt.Sprintf("size %d", f.Size))
	}
	return "#<font-spec " + strings.Join(parts, " ") + ">"
}

// HeightFunc is a named height transform. Two transforms are equal when
// their names are.
type HeightFunc struct {
	Name string
	Fn   func(Value) Value
}
