// Package style holds named style definitions: one process-wide table plus
// per-surface overlays that take precedence for their surface.
package style

import (
	"sort"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// DefaultName is the style every surface falls back to.
const DefaultName = "default"

// Definition is a named style in the global table.
type Definition struct {
	ID    int
	Name  string
	Attrs attr.Vector
}

// Graph is the process-wide style table. It is not synchronized; the engine
// serializes writers against readers.
type Graph struct {
	defs    map[string]*Definition
	byID    []*Definition
	aliases map[string]string
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		defs:    make(map[string]*Definition),
		aliases: make(map[string]string),
	}
}

// Define creates name with all-Unspecified attributes, or resets the
// attributes of an existing definition while keeping its id.
func (g *Graph) Define(name string) *Definition {
	if def, ok := g.defs[name]; ok {
		def.Attrs = attr.Vector{}
		return def
	}
	return g.Ensure(name)
}

// Ensure returns the definition of name, creating it on first reference.
func (g *Graph) Ensure(name string) *Definition {
	if def, ok := g.defs[name]; ok {
		return def
	}
	def := &Definition{ID: len(g.byID), Name: name}
	g.defs[name] = def
	g.byID = append(g.byID, def)
	return def
}

// Get returns the definition of name without creating it.
func (g *Graph) Get(name string) (*Definition, bool) {
	def, ok := g.defs[name]
	return def, ok
}

// ByID returns the definition holding id.
func (g *Graph) ByID(id int) (*Definition, bool) {
	if id < 0 || id >= len(g.byID) {
		return nil, false
	}
	return g.byID[id], true
}

// Names lists defined styles in id order.
func (g *Graph) Names() []string {
	out := make([]string, 0, len(g.byID))
	for _, def := range g.byID {
		out = append(out, def.Name)
	}
	return out
}

// Len returns the number of defined styles.
func (g *Graph) Len() int { return len(g.byID) }

// Lookup returns the global attributes of name for use in a merge. Slots
// marked IgnoreDefault read as Unspecified.
func (g *Graph) Lookup(name string) (attr.Vector, bool) {
	def, ok := g.defs[name]
	if !ok {
		return attr.Vector{}, false
	}
	out := def.Attrs
	for i := range out {
		if out[i].IsIgnoreDefault() {
			out[i] = attr.Unspecified()
		}
	}
	return out, true
}

// Raw returns the stored global attributes of name unchanged.
func (g *Graph) Raw(name string) (attr.Vector, bool) {
	def, ok := g.defs[name]
	if !ok {
		return attr.Vector{}, false
	}
	return def.Attrs, true
}

// Set stores value into slot of the global definition of name.
func (g *Graph) Set(name string, slot attr.Slot, value attr.Value) {
	g.Ensure(name).Attrs[slot] = value
}

// Copy replaces the global attributes of to with those of from.
func (g *Graph) Copy(from, to string) error {
	src, ok := g.defs[from]
	if !ok {
		return faceerrors.NewUnknownStyleError(from)
	}
	g.Ensure(to).Attrs = src.Attrs
	return nil
}

// SetAlias makes name stand for target. An empty target removes the alias.
func (g *Graph) SetAlias(name, target string) {
	if target == "" {
		delete(g.aliases, name)
		return
	}
	g.aliases[name] = target
}

// Aliases returns a copy of the alias table.
func (g *Graph) Aliases() map[string]string {
	out := make(map[string]string, len(g.aliases))
	for k, v := range g.aliases {
		out[k] = v
	}
	return out
}

// Resolve follows aliases from name until a non-alias is reached. An alias
// loop yields DefaultName together with an AliasCycleError.
func (g *Graph) Resolve(name string) (string, error) {
	hare, tortoise := name, name
	for {
		current := hare
		next, ok := g.aliases[hare]
		if !ok {
			return current, nil
		}
		hare = next
		current = hare
		next, ok = g.aliases[hare]
		if !ok {
			return current, nil
		}
		hare = next
		tortoise = g.aliases[tortoise]
		if hare == tortoise {
			return DefaultName, faceerrors.NewAliasCycleError(name)
		}
	}
}

// Equal reports whether two global definitions hold identical attributes.
func (g *Graph) Equal(a, b string) (bool, error) {
	va, ok := g.defs[a]
	if !ok {
		return false, faceerrors.NewUnknownStyleError(a)
	}
	vb, ok := g.defs[b]
	if !ok {
		return false, faceerrors.NewUnknownStyleError(b)
	}
	return identical(&va.Attrs, &vb.Attrs), nil
}

// Empty reports whether every slot of the global definition is Unspecified.
func (g *Graph) Empty(name string) (bool, error) {
	def, ok := g.defs[name]
	if !ok {
		return false, faceerrors.NewUnknownStyleError(name)
	}
	return def.Attrs.Empty(), nil
}

func identical(a, b *attr.Vector) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
