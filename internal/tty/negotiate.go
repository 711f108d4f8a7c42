package tty

import (
	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
)

type weightClass int

const (
	weightDim weightClass = iota - 1
	weightPlain
	weightBold
)

func classifyWeight(v attr.Value) (weightClass, bool) {
	w, ok := v.Weight()
	if !ok {
		return weightPlain, false
	}
	switch {
	case w > attr.WeightMedium:
		return weightBold, true
	case w < attr.WeightNormal:
		return weightDim, true
	}
	return weightPlain, true
}

// Negotiate reports whether a terminal with caps and colors can show attrs,
// merged over the default face def, distinctly from def and close to what
// attrs ask for. Only the specified slots of attrs are considered.
func Negotiate(attrs, def *attr.Vector, colors color.Resolver, caps Capabilities) bool {
	for _, slot := range []attr.Slot{
		attr.SlotFamily, attr.SlotFoundry, attr.SlotStipple, attr.SlotHeight,
		attr.SlotWidth, attr.SlotOverline, attr.SlotBox,
	} {
		if !attrs[slot].IsUnspecified() {
			return false
		}
	}

	var want Capabilities

	if class, ok := classifyWeight(attrs[attr.SlotWeight]); ok {
		defClass, _ := classifyWeight(def[attr.SlotWeight])
		if class == defClass {
			return false
		}
		switch class {
		case weightBold:
			want |= CapBold
		case weightDim:
			want |= CapDim
		}
	}

	if slant, ok := attrs[attr.SlotSlant].Slant(); ok {
		defSlant, _ := def[attr.SlotSlant].Slant()
		if slant == attr.SlantNormal || slant == defSlant {
			return false
		}
		want |= CapItalic
	}

	if ul := attrs[attr.SlotUnderline]; !ul.IsUnspecified() {
		u, isDescriptor := ul.Underline()
		switch {
		case ul.Kind() == attr.KindString, isDescriptor && u.Styled():
			want |= CapUnderlineStyled
		case ul.Equal(def[attr.SlotUnderline]):
			return false
		default:
			want |= CapUnderline
		}
	}

	for _, check := range []struct {
		slot attr.Slot
		cap  Capabilities
	}{
		{attr.SlotInverse, CapInverse},
		{attr.SlotStrikeThrough, CapStrikeThrough},
	} {
		v := attrs[check.slot]
		if v.IsUnspecified() {
			continue
		}
		if v.Equal(def[check.slot]) {
			return false
		}
		want |= check.cap
	}

	fg, fgOK := colorSupported(attrs[attr.SlotForeground], def[attr.SlotForeground], colors)
	if !fgOK {
		return false
	}
	bg, bgOK := colorSupported(attrs[attr.SlotBackground], def[attr.SlotBackground], colors)
	if !bgOK {
		return false
	}
	if fg != nil && bg != nil {
		delta := color.Distance(fg.standard, bg.standard) - color.Distance(fg.device, bg.device)
		if delta > color.SameColorThreshold || delta < -color.SameColorThreshold {
			return false
		}
	}

	return caps.Supports(want)
}

type lookedUp struct {
	device, standard color.Color
}

// colorSupported checks one requested color. It returns nil with true when
// no color was requested.
func colorSupported(v, def attr.Value, colors color.Resolver) (*lookedUp, bool) {
	name, ok := v.Str()
	if !ok {
		return nil, true
	}
	if v.Equal(def) || colors == nil {
		return nil, false
	}
	device, standard, ok := colors.LookupColor(name)
	if !ok {
		return nil, false
	}
	if color.Distance(device, standard) > color.SameColorThreshold {
		return nil, false
	}
	if defName, isString := def.Str(); isString {
		if defDevice, _, found := colors.LookupColor(defName); found &&
			color.Distance(device, defDevice) <= color.SameColorThreshold {
			return nil, false
		}
	}
	return &lookedUp{device: device, standard: standard}, true
}
