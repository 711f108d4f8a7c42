// Package preview renders realized terminal faces as styled text.
package preview

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/tty"
)

// Renderer turns faces into lipgloss styles for one output.
type Renderer struct {
	r *lipgloss.Renderer
}

// New renders for w, detecting its color profile.
func New(w io.Writer) *Renderer {
	return &Renderer{r: lipgloss.NewRenderer(w)}
}

// NewWithProfile renders with a fixed color profile, whatever the output.
func NewWithProfile(w io.Writer, p termenv.Profile) *Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(p)
	return &Renderer{r: r}
}

// Style maps a terminal face onto a lipgloss style. Colors standing for the
// terminal defaults are left unset.
func (r *Renderer) Style(f *tty.Face) lipgloss.Style {
	s := r.r.NewStyle()
	if f == nil {
		return s
	}
	if !tty.IsDefault(f.Foreground) {
		s = s.Foreground(lipglossColor(f.Foreground))
	}
	if !tty.IsDefault(f.Background) {
		s = s.Background(lipglossColor(f.Background))
	}
	// A defaulted face keeps inverse as an attribute; otherwise the colors
	// are already swapped.
	if f.Inverse && f.Defaulted {
		s = s.Reverse(true)
	}
	return s.
		Bold(f.Bold).
		Faint(f.Dim).
		Italic(f.Italic).
		Strikethrough(f.StrikeThrough).
		Underline(f.Underline != tty.UnderlineNone)
}

// StyleAttrs approximates fully specified attributes, such as those of a
// GUI face, on the terminal using colors.
func (r *Renderer) StyleAttrs(attrs *attr.Vector, colors color.Resolver) lipgloss.Style {
	b := &tty.Backend{Colors: colors}
	return r.Style(b.RealizeFace(attrs))
}

// Sample renders text in face f.
func (r *Renderer) Sample(f *tty.Face, text string) string {
	return r.Style(f).Render(text)
}

func lipglossColor(c color.Color) lipgloss.TerminalColor {
	if c.Index >= 0 {
		return lipgloss.Color(strconv.Itoa(c.Index))
	}
	return lipgloss.Color(c.Hex())
}
