package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/engine"
)

// View renders the current screen.
func (m Model) View() string {
	var body string
	switch m.viewMode {
	case ViewDetail:
		body = m.detail.View()
	case ViewHelp:
		body = m.renderHelp()
	default:
		body = m.renderList()
	}

	parts := []string{m.renderHeader()}
	if m.errorMsg != "" {
		parts = append(parts, errorStyle.Render("✗ "+m.errorMsg))
	}
	parts = append(parts, body, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	if len(m.surfaces) == 0 {
		return headerStyle.Render("faces")
	}
	surface := m.Surface()
	kind := "tty"
	if sf, err := m.engine.Surface(surface); err == nil {
		kind = sf.Kind().String()
	}
	title := titleStyle.Render("faces")
	summary := fmt.Sprintf("%s (%s)  %d/%d  %d styles", surface, kind, m.surface+1, len(m.surfaces), len(m.styles))
	if m.refreshing {
		summary += "  " + m.spinner.View() + " refreshing"
	} else if m.lastFaces > 0 {
		summary += fmt.Sprintf("  %d faces realized", m.lastFaces)
	}
	if m.viewMode == ViewDetail {
		summary += "  › " + m.selected
	}
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, title, mutedStyle.Render(summary)))
}

func (m Model) renderList() string {
	if len(m.surfaces) == 0 {
		return emptyStateStyle.Render("No surfaces registered.\n\nAdd one under surfaces: in the theme file.")
	}

	width := 0
	for _, name := range m.styles {
		width = max(width, lipgloss.Width(name))
	}

	start := m.scrollOffset
	end := min(start+m.listHeight(), len(m.styles))

	var items []string
	if start > 0 {
		items = append(items, mutedStyle.Render("▲ More above"))
	}
	for i := start; i < end; i++ {
		name := m.styles[i]
		line := fmt.Sprintf("%-*s  %s", width, name, m.sampleFor(name))
		if i == m.cursor {
			items = append(items, selectedItemStyle.Render(line))
		} else {
			items = append(items, itemStyle.Render(line))
		}
	}
	if end < len(m.styles) {
		items = append(items, mutedStyle.Render("▼ More below"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// sampleFor renders the sample text in the realized face of style name on
// the current surface.
func (m Model) sampleFor(name string) string {
	surface := m.Surface()
	id, err := m.engine.LookupNamed(surface, name, false)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	if m.render == nil {
		return m.sample
	}
	tf, err := m.engine.TerminalFace(surface, id)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	if tf != nil {
		return m.render.Sample(tf, m.sample)
	}

	face, err := m.engine.Face(surface, id)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	sf, err := m.engine.Surface(surface)
	if err != nil {
		return m.sample
	}
	return m.render.StyleAttrs(&face.Attrs, sf.Colors()).Render(m.sample)
}

func (m Model) detailContent(name string) string {
	surface := m.Surface()
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Sample") + "\n")
	b.WriteString("  " + m.sampleFor(name) + "\n")

	b.WriteString(sectionStyle.Render("Global definition") + "\n")
	b.WriteString(m.definition(name, engine.Global()))

	if surface != "" {
		b.WriteString(sectionStyle.Render("On "+surface) + "\n")
		b.WriteString(m.definition(name, engine.OnSurface(surface)))

		id, err := m.engine.LookupNamed(surface, name, false)
		if err == nil {
			if face, err := m.engine.Face(surface, id); err == nil {
				b.WriteString(sectionStyle.Render(fmt.Sprintf("Realized face #%d", face.ID)) + "\n")
				b.WriteString(plainLines(face.Attrs.Plain()))
			}
			if tf, err := m.engine.TerminalFace(surface, id); err == nil && tf != nil {
				b.WriteString(sectionStyle.Render("Terminal") + "\n")
				b.WriteString("  " + tf.String() + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) definition(name string, target engine.Target) string {
	var b strings.Builder
	for _, slot := range attr.Slots() {
		v, err := m.engine.StyleAttribute(name, slot, target)
		if err != nil {
			return "  " + errorStyle.Render(err.Error()) + "\n"
		}
		if v.IsUnspecified() {
			continue
		}
		fmt.Fprintf(&b, "  %-16s %v\n", slot.String(), v.Plain())
	}
	if b.Len() == 0 {
		return mutedStyle.Render("  unspecified") + "\n"
	}
	return b.String()
}

func plainLines(attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-16s %v\n", k, attrs[k])
	}
	return b.String()
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"↑/k ↓/j", "move"},
		{"enter", "inspect style"},
		{"esc", "back to list"},
		{"tab / shift+tab", "next / previous surface"},
		{"r", "clear the face cache and realize again"},
		{"x", "dismiss error"},
		{"?", "toggle help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Keys") + "\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s %s\n", keyStyle.Render(fmt.Sprintf("%-18s", row[0])), row[1])
	}
	return helpStyle.Render(b.String())
}

func (m Model) renderFooter() string {
	var hints []string
	switch m.viewMode {
	case ViewDetail:
		hints = []string{"↑/↓: scroll", "esc: back", "?: help", "q: quit"}
	case ViewHelp:
		hints = []string{"any key: close"}
	default:
		hints = []string{"↑/↓: navigate", "enter: inspect", "tab: surface", "r: refresh", "?: help", "q: quit"}
	}
	if m.errorMsg != "" {
		hints = append(hints, "x: dismiss error")
	}
	return footerStyle.Render(strings.Join(hints, "  •  "))
}
