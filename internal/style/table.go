package style

import (
	"github.com/alexisbeaulieu97/faces/internal/attr"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// Table is the surface-local overlay of style definitions. Local entries
// share their id with the global definition of the same name.
type Table struct {
	defs map[string]*attr.Vector
}

// NewTable returns an empty overlay.
func NewTable() *Table {
	return &Table{defs: make(map[string]*attr.Vector)}
}

// Define creates or clears the local definition of name, vivifying the
// global one so the name has an id.
func (t *Table) Define(g *Graph, name string) *attr.Vector {
	g.Ensure(name)
	if v, ok := t.defs[name]; ok {
		*v = attr.Vector{}
		return v
	}
	v := &attr.Vector{}
	t.defs[name] = v
	return v
}

// Ensure returns the local definition of name, creating an empty one if
// missing.
func (t *Table) Ensure(g *Graph, name string) *attr.Vector {
	if v, ok := t.defs[name]; ok {
		return v
	}
	return t.Define(g, name)
}

// Get returns the local definition of name.
func (t *Table) Get(name string) (*attr.Vector, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.defs[name]
	return v, ok
}

// Lookup returns the attributes of name as seen from this surface: the
// local definition when there is one, otherwise the global one.
func (t *Table) Lookup(g *Graph, name string) (attr.Vector, bool) {
	if v, ok := t.Get(name); ok {
		return *v, true
	}
	return g.Lookup(name)
}

// Names lists local definitions in sorted order.
func (t *Table) Names() []string {
	return sortedKeys(t.defs)
}

// Copy replaces the local attributes of to with the local attributes of from.
func (t *Table) Copy(g *Graph, from, to string) error {
	src, ok := t.defs[from]
	if !ok {
		return faceerrors.NewUnknownStyleError(from)
	}
	*t.Ensure(g, to) = *src
	return nil
}

// MergeInGlobal folds the global definition of name into the local one.
// Global IgnoreDefault slots clear the local value back to Unspecified; any
// other specified global slot overrides it.
func (t *Table) MergeInGlobal(g *Graph, name string) error {
	global, ok := g.Raw(name)
	if !ok {
		return faceerrors.NewUnknownStyleError(name)
	}
	local := t.Ensure(g, name)
	for i := range global {
		switch {
		case global[i].IsIgnoreDefault():
			local[i] = attr.Unspecified()
		case !global[i].IsUnspecified():
			local[i] = global[i]
		}
	}
	return nil
}

// Equal reports whether two local definitions hold identical attributes.
func (t *Table) Equal(a, b string) (bool, error) {
	va, ok := t.defs[a]
	if !ok {
		return false, faceerrors.NewUnknownStyleError(a)
	}
	vb, ok := t.defs[b]
	if !ok {
		return false, faceerrors.NewUnknownStyleError(b)
	}
	return identical(va, vb), nil
}
