package merge

import "sort"

// Remaps is a surface's remapping table: a named style looked up on the
// surface is replaced by the mapped reference.
type Remaps struct {
	entries map[string]Ref
}

// NewRemaps returns an empty remapping table.
func NewRemaps() *Remaps {
	return &Remaps{entries: make(map[string]Ref)}
}

// Set maps name to ref.
func (r *Remaps) Set(name string, ref Ref) {
	r.entries[name] = ref
}

// Delete removes the mapping for name and reports whether there was one.
func (r *Remaps) Delete(name string) bool {
	_, ok := r.entries[name]
	delete(r.entries, name)
	return ok
}

// Get returns the replacement for name.
func (r *Remaps) Get(name string) (Ref, bool) {
	if r == nil {
		return nil, false
	}
	ref, ok := r.entries[name]
	return ref, ok
}

// Len returns the number of mappings.
func (r *Remaps) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Names lists remapped styles in sorted order.
func (r *Remaps) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
