package color

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Depth is the number of colors a surface can show.
type Depth int

// Supported depths. DepthNone is a monochrome surface.
const (
	DepthNone Depth = 0
	Depth8    Depth = 8
	Depth16   Depth = 16
	Depth256  Depth = 256
	DepthTrue Depth = 1 << 24
)

// DepthFromProfile maps a termenv color profile to a Depth.
func DepthFromProfile(p termenv.Profile) Depth {
	switch p {
	case termenv.TrueColor:
		return DepthTrue
	case termenv.ANSI256:
		return Depth256
	case termenv.ANSI:
		return Depth16
	default:
		return DepthNone
	}
}

// DetectDepth inspects the environment of the current process.
func DetectDepth() Depth {
	return DepthFromProfile(termenv.ColorProfile())
}

// ParseDepth accepts 0, 8, 16, 256 and "true"/"truecolor"/"24bit".
func ParseDepth(s string) (Depth, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "none", "mono":
		return DepthNone, true
	case "8":
		return Depth8, true
	case "16":
		return Depth16, true
	case "256":
		return Depth256, true
	case "true", "truecolor", "24bit", "16777216":
		return DepthTrue, true
	}
	return 0, false
}

func (d Depth) String() string {
	switch d {
	case DepthNone:
		return "none"
	case DepthTrue:
		return "truecolor"
	}
	return strconv.Itoa(int(d))
}

// Palette resolves names against the tcell color table, extended by any
// loaded color files, and maps them onto the first Depth palette entries.
type Palette struct {
	mu      sync.RWMutex
	depth   Depth
	entries []tcell.Color
	index   map[tcell.Color]int
	named   map[string]Color
}

// NewPalette returns a palette for a surface of the given depth.
func NewPalette(depth Depth) *Palette {
	p := &Palette{
		depth: depth,
		index: make(map[tcell.Color]int),
		named: make(map[string]Color),
	}
	if depth > DepthNone && depth < DepthTrue {
		p.entries = make([]tcell.Color, 0, int(depth))
		for i := 0; i < int(depth); i++ {
			c := tcell.PaletteColor(i)
			p.entries = append(p.entries, c)
			p.index[c] = i
		}
	}
	return p
}

// Depth returns the number of colors the palette maps onto.
func (p *Palette) Depth() Depth { return p.depth }

// Define adds or replaces a named color.
func (p *Palette) Define(name string, c Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c.Index = -1
	p.named[normalize(name)] = c
}

// Extend defines every entry, typically the result of LoadColorFile.
func (p *Palette) Extend(entries []Entry) {
	for _, e := range entries {
		p.Define(e.Name, e.Color)
	}
}

// LookupColor implements Resolver.
func (p *Palette) LookupColor(name string) (Color, Color, bool) {
	if p.depth == DepthNone {
		return Color{}, Color{}, false
	}
	standard, ok := p.standard(name)
	if !ok {
		return Color{}, Color{}, false
	}
	return p.nearest(standard), standard, true
}

// ByIndex returns palette entry i.
func (p *Palette) ByIndex(i int) (Color, bool) {
	if i < 0 || i >= len(p.entries) {
		return Color{}, false
	}
	return fromTcell(p.entries[i], i), true
}

// Names lists every name the palette understands, sorted.
func (p *Palette) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	seen := make(map[string]struct{}, len(tcell.ColorNames)+len(p.named))
	for name := range tcell.ColorNames {
		seen[name] = struct{}{}
	}
	for name := range p.named {
		seen[name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (p *Palette) standard(name string) (Color, bool) {
	if c, ok := Parse(name); ok {
		return c, true
	}
	key := normalize(name)

	p.mu.RLock()
	c, ok := p.named[key]
	p.mu.RUnlock()
	if ok {
		return c, true
	}

	tc, ok := tcell.ColorNames[key]
	if !ok || !tc.Valid() {
		return Color{}, false
	}
	return fromTcell(tc, -1), true
}

func (p *Palette) nearest(c Color) Color {
	if len(p.entries) == 0 {
		return c
	}
	want := tcell.NewRGBColor(int32(c.R>>8), int32(c.G>>8), int32(c.B>>8))
	found := tcell.FindColor(want, p.entries)
	idx, ok := p.index[found]
	if !ok {
		return c
	}
	return fromTcell(found, idx)
}

func fromTcell(c tcell.Color, index int) Color {
	r, g, b := c.RGB()
	out := RGB8(uint8(r), uint8(g), uint8(b))
	out.Index = index
	return out
}

func normalize(name string) string {
	key := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	return strings.ReplaceAll(key, "grey", "gray")
}

// Parse reads the numeric color forms #rgb, #rrggbb and rgb:r/g/b, where
// each rgb: component has one to four hex digits.
func Parse(spec string) (Color, bool) {
	switch {
	case strings.HasPrefix(spec, "#"):
		c, err := colorful.Hex(spec)
		if err != nil {
			return Color{}, false
		}
		r, g, b := c.RGB255()
		return RGB8(r, g, b), true
	case strings.HasPrefix(strings.ToLower(spec), "rgb:"):
		parts := strings.Split(spec[4:], "/")
		if len(parts) != 3 {
			return Color{}, false
		}
		var ch [3]uint16
		for i, part := range parts {
			if len(part) == 0 || len(part) > 4 {
				return Color{}, false
			}
			n, err := strconv.ParseUint(part, 16, 16)
			if err != nil {
				return Color{}, false
			}
			maxVal := uint64(1)<<(4*len(part)) - 1
			ch[i] = uint16(n * 65535 / maxVal)
		}
		return Color{R: ch[0], G: ch[1], B: ch[2], Index: -1}, true
	}
	return Color{}, false
}
