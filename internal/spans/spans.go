// Package spans stores the style-affecting properties of a text: runs of a
// named property over a position range, and prioritized overlays on top.
package spans

import (
	"sort"
	"unicode/utf8"

	"github.com/alexisbeaulieu97/faces/internal/merge"
)

// Property names the resolver reads.
const (
	PropFace      = "face"
	PropMouseFace = "mouse-face"
)

// Run applies Ref to the positions [Start, End).
type Run struct {
	Start, End int
	Ref        merge.Ref
}

// Overlay attaches properties to [Start, End) above the text's own runs.
// Higher Priority wins.
type Overlay struct {
	ID       int
	Start    int
	End      int
	Priority int
	Props    map[string]merge.Ref
}

// Source supplies the style spans of a buffer or string.
type Source interface {
	// Len is the number of positions.
	Len() int
	// Property returns the value of prop at pos, or nil.
	Property(pos int, prop string) merge.Ref
	// NextChange returns the first position after pos, no later than
	// limit, where prop changes. ok is false when prop is constant up to
	// limit.
	NextChange(pos int, prop string, limit int) (next int, ok bool)
	// OverlaysAt returns the overlays covering pos, lowest priority first,
	// and the next position at which the set of overlays may change.
	OverlaysAt(pos int) ([]Overlay, int)
}

// Buffer is an in-memory Source.
type Buffer struct {
	length   int
	runs     map[string][]Run
	overlays []Overlay
	nextID   int
}

// NewBuffer returns a buffer with length positions and no properties.
func NewBuffer(length int) *Buffer {
	return &Buffer{length: length, runs: make(map[string][]Run), nextID: 1}
}

// NewString returns a buffer sized to the runes of s.
func NewString(s string) *Buffer {
	return NewBuffer(utf8.RuneCountInString(s))
}

// Len implements Source.
func (b *Buffer) Len() int { return b.length }

// Put sets prop to ref over [start, end). A nil ref removes the property
// from the range.
func (b *Buffer) Put(start, end int, prop string, ref merge.Ref) {
	start, end = b.clamp(start, end)
	if start >= end {
		return
	}
	runs := cut(b.runs[prop], start, end)
	if ref != nil {
		runs = append(runs, Run{Start: start, End: end, Ref: ref})
		sort.Slice(runs, func(i, j int) bool { return runs[i].Start < runs[j].Start })
	}
	if len(runs) == 0 {
		delete(b.runs, prop)
		return
	}
	b.runs[prop] = runs
}

// Runs returns a copy of the runs of prop.
func (b *Buffer) Runs(prop string) []Run {
	return append([]Run(nil), b.runs[prop]...)
}

// cut removes [start, end) from runs, splitting runs that straddle it.
func cut(runs []Run, start, end int) []Run {
	out := make([]Run, 0, len(runs)+1)
	for _, r := range runs {
		switch {
		case r.End <= start || r.Start >= end:
			out = append(out, r)
		default:
			if r.Start < start {
				out = append(out, Run{Start: r.Start, End: start, Ref: r.Ref})
			}
			if r.End > end {
				out = append(out, Run{Start: end, End: r.End, Ref: r.Ref})
			}
		}
	}
	return out
}

// AddOverlay adds an overlay and returns its id.
func (b *Buffer) AddOverlay(start, end, priority int, props map[string]merge.Ref) int {
	start, end = b.clamp(start, end)
	o := Overlay{ID: b.nextID, Start: start, End: end, Priority: priority, Props: make(map[string]merge.Ref, len(props))}
	for k, v := range props {
		o.Props[k] = v
	}
	b.nextID++
	b.overlays = append(b.overlays, o)
	return o.ID
}

// DeleteOverlay removes the overlay with id.
func (b *Buffer) DeleteOverlay(id int) bool {
	for i, o := range b.overlays {
		if o.ID == id {
			b.overlays = append(b.overlays[:i], b.overlays[i+1:]...)
			return true
		}
	}
	return false
}

// Property implements Source.
func (b *Buffer) Property(pos int, prop string) merge.Ref {
	runs := b.runs[prop]
	i := sort.Search(len(runs), func(i int) bool { return runs[i].End > pos })
	if i < len(runs) && runs[i].Start <= pos {
		return runs[i].Ref
	}
	return nil
}

// NextChange implements Source.
func (b *Buffer) NextChange(pos int, prop string, limit int) (int, bool) {
	if limit > b.length {
		limit = b.length
	}
	runs := b.runs[prop]
	i := sort.Search(len(runs), func(i int) bool { return runs[i].End > pos })
	next := limit
	if i < len(runs) {
		if runs[i].Start <= pos {
			next = runs[i].End
		} else {
			next = runs[i].Start
		}
	}
	if next >= limit {
		return limit, false
	}
	return next, true
}

// OverlaysAt implements Source.
func (b *Buffer) OverlaysAt(pos int) ([]Overlay, int) {
	next := b.length
	var out []Overlay
	for _, o := range b.overlays {
		switch {
		case o.Start <= pos && pos < o.End:
			out = append(out, o)
			if o.End < next {
				next = o.End
			}
		case o.Start > pos && o.Start < next:
			next = o.Start
		}
	}
	sortOverlays(out)
	return out, next
}

// sortOverlays orders overlays by increasing priority. On a tie the overlay
// starting later, then ending earlier, ranks higher.
func sortOverlays(overlays []Overlay) {
	sort.SliceStable(overlays, func(i, j int) bool {
		a, b := overlays[i], overlays[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return a.ID < b.ID
	})
}

// Insert shifts properties for n positions inserted at pos. Insertions
// strictly inside a run extend it; insertions at a boundary fall into the
// right neighbour.
func (b *Buffer) Insert(pos, n int) {
	if n <= 0 {
		return
	}
	for prop, runs := range b.runs {
		for i := range runs {
			r := &runs[i]
			r.Start, r.End = shiftInsert(r.Start, r.End, pos, n)
		}
		b.runs[prop] = runs
	}
	for i := range b.overlays {
		o := &b.overlays[i]
		o.Start, o.End = shiftInsert(o.Start, o.End, pos, n)
	}
	b.length += n
}

func shiftInsert(start, end, pos, n int) (int, int) {
	switch {
	case pos <= start:
		return start + n, end + n
	case pos < end:
		return start, end + n
	}
	return start, end
}

// Delete removes the positions [q0, q1), shrinking or dropping the runs
// and overlays it touches.
func (b *Buffer) Delete(q0, q1 int) {
	q0, q1 = b.clamp(q0, q1)
	if q0 >= q1 {
		return
	}
	for prop, runs := range b.runs {
		out := runs[:0]
		for _, r := range runs {
			start, end, keep := shiftDelete(r.Start, r.End, q0, q1)
			if keep {
				out = append(out, Run{Start: start, End: end, Ref: r.Ref})
			}
		}
		if len(out) == 0 {
			delete(b.runs, prop)
		} else {
			b.runs[prop] = out
		}
	}
	kept := b.overlays[:0]
	for _, o := range b.overlays {
		start, end, keep := shiftDelete(o.Start, o.End, q0, q1)
		if keep {
			o.Start, o.End = start, end
			kept = append(kept, o)
		}
	}
	b.overlays = kept
	b.length -= q1 - q0
}

func shiftDelete(start, end, q0, q1 int) (int, int, bool) {
	n := q1 - q0
	switch {
	case end <= q0:
		return start, end, true
	case start >= q1:
		return start - n, end - n, true
	case start < q0 && end > q1:
		return start, end - n, true
	case start < q0:
		return start, q0, true
	case end > q1:
		return q0, end - n, true
	}
	return 0, 0, false
}

func (b *Buffer) clamp(start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > b.length {
		end = b.length
	}
	return start, end
}
