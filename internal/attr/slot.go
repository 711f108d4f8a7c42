package attr

import "strings"

// Slot identifies one dimension of a style attribute vector.
type Slot int

// Slots in vector order.
const (
	SlotFamily Slot = iota
	SlotFoundry
	SlotWidth
	SlotHeight
	SlotWeight
	SlotSlant
	SlotUnderline
	SlotInverse
	SlotForeground
	SlotBackground
	SlotStipple
	SlotOverline
	SlotStrikeThrough
	SlotBox
	SlotFont
	SlotInherit
	SlotFontset
	SlotDistantForeground
	SlotExtend

	// NumSlots is the length of a Vector.
	NumSlots
)

// NoSlot is used where an optional slot filter is absent.
const NoSlot Slot = -1

var slotNames = [NumSlots]string{
	SlotFamily:            "family",
	SlotFoundry:           "foundry",
	SlotWidth:             "width",
	SlotHeight:            "height",
	SlotWeight:            "weight",
	SlotSlant:             "slant",
	SlotUnderline:         "underline",
	SlotInverse:           "inverse-video",
	SlotForeground:        "foreground",
	SlotBackground:        "background",
	SlotStipple:           "stipple",
	SlotOverline:          "overline",
	SlotStrikeThrough:     "strike-through",
	SlotBox:               "box",
	SlotFont:              "font",
	SlotInherit:           "inherit",
	SlotFontset:           "fontset",
	SlotDistantForeground: "distant-foreground",
	SlotExtend:            "extend",
}

// String returns the keyword name of the slot without the leading colon.
func (s Slot) String() string {
	if s < 0 || s >= NumSlots {
		return "invalid"
	}
	return slotNames[s]
}

// Valid reports whether s names a real slot.
func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

// ParseSlot maps a keyword such as ":foreground" or "foreground" to its slot.
func ParseSlot(keyword string) (Slot, bool) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(keyword)), ":")
	if name == "inverse" || name == "reverse-video" {
		return SlotInverse, true
	}
	for i, candidate := range slotNames {
		if candidate == name {
			return Slot(i), true
		}
	}
	return NoSlot, false
}

// Slots returns every slot in vector order.
func Slots() []Slot {
	out := make([]Slot, NumSlots)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// isColor reports whether the slot holds a color name.
func (s Slot) isColor() bool {
	return s == SlotForeground || s == SlotBackground || s == SlotDistantForeground
}
