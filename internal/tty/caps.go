// Package tty realizes faces for character terminals and decides whether a
// terminal can show a set of attributes distinctly.
package tty

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Capabilities is the set of non-color character attributes a terminal can
// display.
type Capabilities uint16

const (
	CapInverse Capabilities = 1 << iota
	CapUnderline
	CapBold
	CapDim
	CapItalic
	CapStrikeThrough
	CapUnderlineStyled

	CapAll = CapInverse | CapUnderline | CapBold | CapDim | CapItalic | CapStrikeThrough | CapUnderlineStyled
)

var capNames = []struct {
	cap  Capabilities
	name string
}{
	{CapInverse, "inverse"},
	{CapUnderline, "underline"},
	{CapBold, "bold"},
	{CapDim, "dim"},
	{CapItalic, "italic"},
	{CapStrikeThrough, "strike-through"},
	{CapUnderlineStyled, "underline-styled"},
}

// Supports reports whether every bit of want is present.
func (c Capabilities) Supports(want Capabilities) bool {
	return c&want == want
}

func (c Capabilities) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, entry := range capNames {
		if c&entry.cap != 0 {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseCapabilities combines capability names. "all" selects every
// capability.
func ParseCapabilities(names []string) (Capabilities, error) {
	var out Capabilities
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			out |= CapAll
			continue
		}
		found := false
		for _, entry := range capNames {
			if entry.name == name {
				out |= entry.cap
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown terminal capability %q", name)
		}
	}
	return out, nil
}

// DetectCapabilities guesses capabilities from a termenv color profile.
// Terminals without color are assumed to manage only the classic
// attributes.
func DetectCapabilities(p termenv.Profile) Capabilities {
	switch p {
	case termenv.TrueColor:
		return CapAll
	case termenv.ANSI256, termenv.ANSI:
		return CapAll &^ CapUnderlineStyled
	default:
		return CapInverse | CapUnderline | CapBold
	}
}
