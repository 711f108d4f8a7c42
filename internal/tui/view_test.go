package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListView(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{SampleText: "sample"})
	view := m.View()

	assert.Contains(t, view, "alpha (tty)")
	assert.Contains(t, view, "default")
	assert.Contains(t, view, "sample")
	assert.Contains(t, view, "enter: inspect")
}

func TestHelpView(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	m.viewMode = ViewHelp
	view := m.View()

	assert.Contains(t, view, "Keys")
	assert.Contains(t, view, "next / previous surface")
	assert.Contains(t, view, "any key: close")
}

func TestDefinitionUnspecified(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{})
	out := m.detailContent("fringe")
	assert.Contains(t, out, "On alpha")
	assert.Contains(t, out, "Realized face")
	assert.Contains(t, out, "Terminal")
}
