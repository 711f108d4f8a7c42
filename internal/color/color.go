// Package color maps color names to device colors and measures how far
// apart two colors look.
package color

import "fmt"

// SameColorThreshold is the Distance below which two colors are treated as
// indistinguishable on a terminal.
const SameColorThreshold = 10000

// Color is a color with 16-bit channels. Index is the terminal palette
// entry it was mapped to, or -1 for a direct RGB color.
type Color struct {
	R, G, B uint16
	Index   int
}

// RGB8 builds a direct color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{R: uint16(r) * 257, G: uint16(g) * 257, B: uint16(b) * 257, Index: -1}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R>>8, c.G>>8, c.B>>8)
}

// List returns the channels as (red green blue).
func (c Color) List() [3]int {
	return [3]int{int(c.R), int(c.G), int(c.B)}
}

// Metric compares two colors. Distance is the default.
type Metric func(a, b Color) int

// Distance is Riemersma's weighted RGB metric. It is close to L*u*v*
// without its discontinuities, and it is not a true metric.
func Distance(x, y Color) int {
	r := int64(x.R) - int64(y.R)
	g := int64(x.G) - int64(y.G)
	b := int64(x.B) - int64(y.B)
	rMean := (int64(x.R) + int64(y.R)) >> 1

	return int((((2*65536+rMean)*r*r)>>16 + 4*g*g + ((2*65536+65535-rMean)*b*b)>>16) >> 16)
}

// Gray reports whether c is a shade of gray, white or black.
func Gray(c Color) bool {
	r, g, b := int(c.R), int(c.G), int(c.B)
	if r < 5000 && g < 5000 && b < 5000 {
		return true
	}
	return abs(r-g) < max(r, g)/20 &&
		abs(g-b) < max(g, b)/20 &&
		abs(b-r) < max(b, r)/20
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Resolver looks up color names for one surface. device is what the surface
// will actually show; standard is the exact value the name denotes.
type Resolver interface {
	LookupColor(name string) (device, standard Color, ok bool)
}
