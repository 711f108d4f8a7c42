package config

import (
	"sort"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// StyleOrder groups the styles of a theme into levels so that every style
// comes after the theme styles it inherits from. Parents the theme does not
// define impose no ordering. Names within a level are sorted.
func StyleOrder(styles map[string]map[string]any) ([][]string, error) {
	dependents := make(map[string][]string, len(styles))
	indegree := make(map[string]int, len(styles))
	for name := range styles {
		indegree[name] += 0
	}

	for name, attrs := range styles {
		for _, parent := range inheritNames(attrs) {
			if _, ok := styles[parent]; !ok {
				continue
			}
			dependents[parent] = append(dependents[parent], name)
			indegree[name]++
		}
	}

	var queue []string
	for name, degree := range indegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}

	processed := 0
	var levels [][]string
	for len(queue) > 0 {
		sort.Strings(queue)
		levels = append(levels, queue)

		var next []string
		for _, name := range queue {
			processed++
			for _, dep := range dependents[name] {
				indegree[dep]--
				if indegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}

	if processed != len(indegree) {
		var stuck []string
		for name, degree := range indegree {
			if degree > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, faceerrors.NewInheritanceCycleError(stuck[0], stuck)
	}
	return levels, nil
}

// inheritNames extracts the parent names of a raw style definition.
func inheritNames(attrs map[string]any) []string {
	for key, raw := range attrs {
		if slot, ok := attr.ParseSlot(key); !ok || slot != attr.SlotInherit {
			continue
		}
		switch r := raw.(type) {
		case string:
			return []string{r}
		case []string:
			return r
		case []any:
			out := make([]string, 0, len(r))
			for _, item := range r {
				if name, ok := item.(string); ok {
					out = append(out, name)
				}
			}
			return out
		}
	}
	return nil
}
