package tty

import (
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/logger"
)

// Pixel indices standing for the terminal's own default colors.
const (
	DefaultFG = -2
	DefaultBG = -3
)

// Names that select the terminal's default colors.
const (
	UnspecifiedFG = "unspecified-fg"
	UnspecifiedBG = "unspecified-bg"
)

// UnderlineKind is how a terminal face underlines text.
type UnderlineKind uint8

const (
	UnderlineNone UnderlineKind = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineWave
	UnderlineDots
	UnderlineDashes
)

var underlineNames = [...]string{"none", "single", "double", "wave", "dots", "dashes"}

func (k UnderlineKind) String() string {
	if int(k) < len(underlineNames) {
		return underlineNames[k]
	}
	return "unknown"
}

// Face is the terminal rendering of a realized face. A color whose Index is
// DefaultFG or DefaultBG leaves the terminal's default in place.
type Face struct {
	Bold          bool
	Dim           bool
	Italic        bool
	Inverse       bool
	StrikeThrough bool

	Underline UnderlineKind
	// UnderlineColor is nil when the underline follows the foreground.
	UnderlineColor *color.Color

	Foreground color.Color
	Background color.Color
	// Defaulted is set when a color could not be loaded and fell back to
	// a default pixel.
	Defaulted bool
}

// IsDefault reports whether c is one of the default pixels.
func IsDefault(c color.Color) bool {
	return c.Index == DefaultFG || c.Index == DefaultBG
}

func (f *Face) String() string {
	var parts []string
	for _, flag := range []struct {
		on   bool
		name string
	}{
		{f.Bold, "bold"}, {f.Dim, "dim"}, {f.Italic, "italic"},
		{f.Inverse, "inverse"}, {f.StrikeThrough, "strike-through"},
	} {
		if flag.on {
			parts = append(parts, flag.name)
		}
	}
	if f.Underline != UnderlineNone {
		parts = append(parts, "underline="+f.Underline.String())
	}
	parts = append(parts, "fg="+pixelName(f.Foreground), "bg="+pixelName(f.Background))
	return strings.Join(parts, " ")
}

// Plain converts the face to a JSON-friendly map.
func (f *Face) Plain() map[string]any {
	out := map[string]any{
		"bold":           f.Bold,
		"dim":            f.Dim,
		"italic":         f.Italic,
		"inverse":        f.Inverse,
		"strike-through": f.StrikeThrough,
		"underline":      f.Underline.String(),
		"foreground":     pixelName(f.Foreground),
		"background":     pixelName(f.Background),
	}
	if f.UnderlineColor != nil {
		out["underline-color"] = pixelName(*f.UnderlineColor)
	}
	return out
}

func pixelName(c color.Color) string {
	switch c.Index {
	case DefaultFG:
		return UnspecifiedFG
	case DefaultBG:
		return UnspecifiedBG
	case -1:
		return c.Hex()
	}
	return c.Hex() + "@" + strconv.Itoa(c.Index)
}

// Backend realizes faces for one terminal surface.
type Backend struct {
	Colors color.Resolver
	// SuppressBoldInverseDefaultColors drops bold from faces whose colors
	// are the default colors swapped.
	SuppressBoldInverseDefaultColors bool
	Logger                           *logger.Logger
}

// Realize implements facecache.Backend.
func (b *Backend) Realize(attrs *attr.Vector) (any, error) {
	return b.RealizeFace(attrs), nil
}

// Release implements facecache.Backend. Terminal faces hold no resources.
func (b *Backend) Release(any) {}

// RealizeFace maps fully specified attributes onto terminal appearances.
func (b *Backend) RealizeFace(attrs *attr.Vector) *Face {
	face := &Face{}

	if w, ok := attrs[attr.SlotWeight].Weight(); ok {
		face.Bold = w > attr.WeightMedium
		face.Dim = w < attr.WeightNormal
	}
	if s, ok := attrs[attr.SlotSlant].Slant(); ok && s != attr.SlantNormal {
		face.Italic = true
	}
	face.Inverse = attrs[attr.SlotInverse].Truthy()
	face.StrikeThrough = attrs[attr.SlotStrikeThrough].Truthy()

	underline := attrs[attr.SlotUnderline]
	switch underline.Kind() {
	case attr.KindOn:
		face.Underline = UnderlineSingle
	case attr.KindString:
		face.Underline = UnderlineSingle
		name, _ := underline.Str()
		c, _ := b.mapColor(name, true)
		face.UnderlineColor = &c
	case attr.KindUnderline:
		u, _ := underline.Underline()
		face.Underline = underlineKind(u.Style)
		if !u.UseForeground && u.Color != "" {
			c, _ := b.mapColor(u.Color, true)
			face.UnderlineColor = &c
		}
	}

	fgName, _ := attrs[attr.SlotForeground].Str()
	bgName, _ := attrs[attr.SlotBackground].Str()
	var fgDefaulted, bgDefaulted bool
	face.Foreground, fgDefaulted = b.mapColor(fgName, true)
	face.Background, bgDefaulted = b.mapColor(bgName, false)
	face.Defaulted = fgDefaulted || bgDefaulted

	if face.Inverse && !face.Defaulted {
		face.Foreground, face.Background = face.Background, face.Foreground
	}

	if b.SuppressBoldInverseDefaultColors && face.Bold &&
		face.Background.Index == DefaultFG && face.Foreground.Index == DefaultBG {
		face.Bold = false
	}
	return face
}

func underlineKind(style attr.LineStyle) UnderlineKind {
	switch style {
	case attr.LineDouble:
		return UnderlineDouble
	case attr.LineWave:
		return UnderlineWave
	case attr.LineDots:
		return UnderlineDots
	case attr.LineDashes:
		return UnderlineDashes
	}
	return UnderlineSingle
}

// mapColor returns the device color for name. Unknown names fall back to
// the default pixel and report defaulted.
func (b *Backend) mapColor(name string, foreground bool) (color.Color, bool) {
	defaultPixel := color.Color{Index: DefaultBG}
	if foreground {
		defaultPixel = color.Color{Index: DefaultFG}
	}

	switch name {
	case UnspecifiedFG:
		return color.Color{Index: DefaultFG}, false
	case UnspecifiedBG:
		return color.Color{Index: DefaultBG}, false
	case "":
		return defaultPixel, false
	}

	if b.Colors != nil {
		if device, _, ok := b.Colors.LookupColor(name); ok {
			return device, false
		}
	}
	b.Logger.WithFields(map[string]any{"color": name}).Warn("unable to load color")
	return defaultPixel, true
}
