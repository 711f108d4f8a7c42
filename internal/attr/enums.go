package attr

import (
	"sort"
	"strings"
)

// Weight is a numeric font weight; larger is heavier.
type Weight int

// Canonical weights.
const (
	WeightThin       Weight = 0
	WeightUltraLight Weight = 40
	WeightLight      Weight = 50
	WeightSemiLight  Weight = 55
	WeightNormal     Weight = 80
	WeightMedium     Weight = 100
	WeightSemiBold   Weight = 180
	WeightBold       Weight = 200
	WeightExtraBold  Weight = 205
	WeightBlack      Weight = 210
	WeightUltraHeavy Weight = 250
)

// Slant is a numeric font slant; normal is 100.
type Slant int

// Canonical slants.
const (
	SlantReverseOblique Slant = 0
	SlantReverseItalic  Slant = 10
	SlantNormal         Slant = 100
	SlantItalic         Slant = 200
	SlantOblique        Slant = 210
)

// Width is a numeric font set-width; normal is 100.
type Width int

// Canonical widths.
const (
	WidthUltraCondensed Width = 50
	WidthExtraCondensed Width = 63
	WidthCondensed      Width = 75
	WidthSemiCondensed  Width = 87
	WidthNormal         Width = 100
	WidthSemiExpanded   Width = 113
	WidthExpanded       Width = 125
	WidthExtraExpanded  Width = 150
	WidthUltraExpanded  Width = 200
)

type enumEntry struct {
	name  string
	value int
}

// The first entry for each value is its canonical name.
var weightTable = []enumEntry{
	{"thin", 0},
	{"ultra-light", 40}, {"ultralight", 40}, {"extra-light", 40}, {"extralight", 40},
	{"light", 50},
	{"semi-light", 55}, {"semilight", 55}, {"demilight", 55},
	{"normal", 80}, {"regular", 80}, {"book", 80},
	{"medium", 100},
	{"semi-bold", 180}, {"semibold", 180}, {"demibold", 180}, {"demi-bold", 180}, {"demi", 180},
	{"bold", 200},
	{"extra-bold", 205}, {"extrabold", 205}, {"ultra-bold", 205}, {"ultrabold", 205},
	{"black", 210}, {"heavy", 210},
	{"ultra-heavy", 250}, {"ultraheavy", 250},
}

var slantTable = []enumEntry{
	{"reverse-oblique", 0},
	{"reverse-italic", 10},
	{"normal", 100},
	{"italic", 200},
	{"oblique", 210},
}

var widthTable = []enumEntry{
	{"ultra-condensed", 50},
	{"extra-condensed", 63},
	{"condensed", 75}, {"compressed", 75}, {"narrow", 75},
	{"semi-condensed", 87},
	{"normal", 100}, {"medium", 100}, {"regular", 100},
	{"semi-expanded", 113},
	{"expanded", 125},
	{"extra-expanded", 150},
	{"ultra-expanded", 200}, {"wide", 200},
}

func lookupEnum(table []enumEntry, name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, entry := range table {
		if entry.name == name {
			return entry.value, true
		}
	}
	return 0, false
}

func enumName(table []enumEntry, value int) string {
	for _, entry := range table {
		if entry.value == value {
			return entry.name
		}
	}
	return "unknown"
}

func enumNames(table []enumEntry) []string {
	out := make([]string, 0, len(table))
	for _, entry := range table {
		out = append(out, entry.name)
	}
	sort.Strings(out)
	return out
}

// ParseWeight resolves a weight symbol, including its aliases.
func ParseWeight(name string) (Weight, bool) {
	v, ok := lookupEnum(weightTable, name)
	return Weight(v), ok
}

func (w Weight) String() string { return enumName(weightTable, int(w)) }

// ParseSlant resolves a slant symbol.
func ParseSlant(name string) (Slant, bool) {
	v, ok := lookupEnum(slantTable, name)
	return Slant(v), ok
}

func (s Slant) String() string { return enumName(slantTable, int(s)) }

// ParseWidth resolves a set-width symbol, including its aliases.
func ParseWidth(name string) (Width, bool) {
	v, ok := lookupEnum(widthTable, name)
	return Width(v), ok
}

func (w Width) String() string { return enumName(widthTable, int(w)) }
