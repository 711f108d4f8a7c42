// Package facecache stores realized faces for one surface, keyed by the
// content hash of their fully specified attributes.
package facecache

import (
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/faces/internal/attr"
)

// Face is a realized face. It must not be modified after it is cached.
type Face struct {
	ID    int
	Hash  uint64
	Attrs attr.Vector
	// Base is false for per-charset variants derived from BaseID.
	Base   bool
	BaseID int
	// Data is the backend's rendering state.
	Data any
}

// Backend turns fully specified attributes into rendering state.
type Backend interface {
	Realize(attrs *attr.Vector) (any, error)
	Release(data any)
}

// IncompleteError is returned when asked to realize attributes that are not
// fully specified.
type IncompleteError struct {
	Missing []attr.Slot
}

// Error implements the error interface.
func (e *IncompleteError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("realize error: attributes not fully specified: %v", e.Missing)
}

// Cache holds the realized faces of one surface.
type Cache struct {
	name    string
	backend Backend
	obs     Observer

	mu       sync.RWMutex
	faces    []*Face
	buckets  map[uint64][]int
	count    int
	garbaged bool
}

// New returns an empty cache for the named surface. backend and obs may be
// nil.
func New(name string, backend Backend, obs Observer) *Cache {
	return &Cache{
		name:    name,
		backend: backend,
		obs:     obs,
		buckets: make(map[uint64][]int),
	}
}

// Name returns the surface name the cache was created for.
func (c *Cache) Name() string { return c.name }

// Lookup returns the id of a cached base face equal to attrs.
func (c *Cache) Lookup(attrs *attr.Vector) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookup(attr.Hash(attrs), attrs)
}

func (c *Cache) lookup(hash uint64, attrs *attr.Vector) (int, bool) {
	for _, id := range c.buckets[hash] {
		f := c.faces[id]
		if !f.Base {
			break
		}
		if f.Hash == hash && f.Attrs.Equal(attrs) {
			return id, true
		}
	}
	return -1, false
}

// LookupOrRealize returns the id of the base face for attrs, realizing it
// on a miss.
func (c *Cache) LookupOrRealize(attrs *attr.Vector) (int, error) {
	hash := attr.Hash(attrs)

	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.lookup(hash, attrs); ok {
		c.notify(EventHit)
		return id, nil
	}
	c.notify(EventMiss)
	return c.realize(hash, attrs, -1, true, -1)
}

// Realize realizes attrs as a base face. If replaceID names a cached face,
// that face is evicted first and its id is reused, and the surface is
// flagged for redraw.
func (c *Cache) Realize(attrs *attr.Vector, replaceID int) (int, error) {
	hash := attr.Hash(attrs)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.realize(hash, attrs, replaceID, true, -1)
}

// RealizeDerived returns a non-base variant of baseID with attrs, realizing
// it if no such variant is cached.
func (c *Cache) RealizeDerived(attrs *attr.Vector, baseID int) (int, error) {
	hash := attr.Hash(attrs)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.face(baseID) == nil {
		return -1, fmt.Errorf("realize error: no base face %d", baseID)
	}
	for _, id := range c.buckets[hash] {
		f := c.faces[id]
		if !f.Base && f.BaseID == baseID && f.Attrs.Equal(attrs) {
			c.notify(EventHit)
			return id, nil
		}
	}
	c.notify(EventMiss)
	return c.realize(hash, attrs, -1, false, baseID)
}

func (c *Cache) realize(hash uint64, attrs *attr.Vector, replaceID int, base bool, baseID int) (int, error) {
	if !attrs.FullySpecified() {
		return -1, &IncompleteError{Missing: attrs.Missing()}
	}

	id := -1
	if c.face(replaceID) != nil {
		c.uncache(replaceID)
		c.garbaged = true
		id = replaceID
	}

	var data any
	if c.backend != nil {
		var err error
		if data, err = c.backend.Realize(attrs); err != nil {
			return -1, err
		}
	}

	if id < 0 {
		id = c.freeID()
	}
	if base {
		baseID = id
	}
	f := &Face{ID: id, Hash: hash, Attrs: *attrs, Base: base, BaseID: baseID, Data: data}
	c.insert(f)
	c.notify(EventRealize)
	return id, nil
}

// freeID returns the first unused slot, growing the table if none is free.
func (c *Cache) freeID() int {
	for i, f := range c.faces {
		if f == nil {
			return i
		}
	}
	c.faces = append(c.faces, nil)
	return len(c.faces) - 1
}

func (c *Cache) insert(f *Face) {
	for len(c.faces) <= f.ID {
		c.faces = append(c.faces, nil)
	}
	c.faces[f.ID] = f
	c.count++

	bucket := c.buckets[f.Hash]
	if f.Base {
		bucket = append([]int{f.ID}, bucket...)
	} else {
		bucket = append(bucket, f.ID)
	}
	c.buckets[f.Hash] = bucket
}

// Face returns the face with the given id.
func (c *Cache) Face(id int) (*Face, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.face(id)
	return f, f != nil
}

func (c *Cache) face(id int) *Face {
	if id < 0 || id >= len(c.faces) {
		return nil
	}
	return c.faces[id]
}

// Uncache removes a face, along with its derived variants when it is a base
// face.
func (c *Cache) Uncache(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.face(id) == nil {
		return false
	}
	c.uncache(id)
	return true
}

func (c *Cache) uncache(id int) {
	f := c.faces[id]
	if f.Base {
		for _, other := range c.faces {
			if other != nil && !other.Base && other.BaseID == id {
				c.remove(other)
			}
		}
	}
	c.remove(f)
}

func (c *Cache) remove(f *Face) {
	bucket := c.buckets[f.Hash]
	for i, id := range bucket {
		if id == f.ID {
			bucket = append(bucket[:i:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.buckets, f.Hash)
	} else {
		c.buckets[f.Hash] = bucket
	}

	if c.backend != nil && f.Data != nil {
		c.backend.Release(f.Data)
	}
	c.faces[f.ID] = nil
	c.count--
	c.notify(EventEvict)
}

// Clear frees every face and flags the surface for redraw. It returns the
// number of faces freed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	freed := c.count
	if c.backend != nil {
		for _, f := range c.faces {
			if f != nil && f.Data != nil {
				c.backend.Release(f.Data)
			}
		}
	}
	c.faces = nil
	c.buckets = make(map[uint64][]int)
	c.count = 0
	c.garbaged = true
	c.notify(EventClear)
	return freed
}

// Len returns the number of cached faces.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Faces returns the cached faces ordered by id.
func (c *Cache) Faces() []*Face {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Face, 0, c.count)
	for _, f := range c.faces {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// TakeRedraw reports whether the surface needs a redraw since the last call
// and resets the flag.
func (c *Cache) TakeRedraw() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	g := c.garbaged
	c.garbaged = false
	return g
}

func (c *Cache) notify(event Event) {
	if c.obs != nil {
		c.obs.Observe(c.name, event)
	}
}
