package engine

import (
	"context"
	"fmt"
	"sync"
)

// RefreshResult reports the recomputation of one surface.
type RefreshResult struct {
	Surface string
	Faces   int
	Err     error
}

// Refresh recomputes the basic faces of every surface marked for face
// change, one goroutine per surface bounded by Options.Workers. It returns
// the per-surface results in name order and the first error.
func (e *Engine) Refresh(ctx context.Context) ([]RefreshResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	names := sortedSurfaceNames(e.surfaces)
	results := make([]RefreshResult, len(names))

	var pool chan struct{}
	if e.opts.Workers > 0 {
		pool = make(chan struct{}, e.opts.Workers)
	}

	var firstErr error
	var once sync.Once
	var wg sync.WaitGroup

	for idx, name := range names {
		s := e.surfaces[name]
		wg.Add(1)
		go func(idx int, s *Surface) {
			defer wg.Done()

			res := RefreshResult{Surface: s.name}
			defer func() { results[idx] = res }()

			if pool != nil {
				select {
				case pool <- struct{}{}:
					defer func() { <-pool }()
				case <-ctx.Done():
					res.Err = ctx.Err()
					once.Do(func() { firstErr = fmt.Errorf("refresh %s: %w", s.name, res.Err) })
					return
				}
			}

			s.mu.Lock()
			defer s.mu.Unlock()

			if err := e.prepare(s, e.resolver(s)); err != nil {
				res.Err = err
				once.Do(func() { firstErr = fmt.Errorf("refresh %s: %w", s.name, err) })
				return
			}
			res.Faces = s.cache.Len()
		}(idx, s)
	}

	wg.Wait()
	return results, firstErr
}
