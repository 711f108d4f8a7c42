package style

import (
	"github.com/alexisbeaulieu97/faces/internal/attr"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// LookupFunc returns the attributes of a style as a surface sees them.
type LookupFunc func(name string) (attr.Vector, bool)

// ResolveFunc maps a style name through its aliases. A nil ResolveFunc
// leaves names as they are.
type ResolveFunc func(name string) (string, error)

// CheckInheritance walks every parent chain reachable from parents and
// returns an InheritanceCycleError if child appears on one of them, or if a
// chain already loops on itself. Names are compared after alias resolution.
// Unknown parents end their branch.
func CheckInheritance(lookup LookupFunc, resolve ResolveFunc, child string, parents []string) error {
	canonical := func(name string) string {
		if resolve == nil {
			return name
		}
		// An alias loop resolves to the default style.
		resolved, _ := resolve(name)
		return resolved
	}
	child = canonical(child)

	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	stack := []string{child}

	var cycle []string
	var dfs func(string) bool
	dfs = func(name string) bool {
		name = canonical(name)
		if name == child || visiting[name] {
			idx := indexOf(stack, name)
			cycle = append([]string{}, stack[idx:]...)
			cycle = append(cycle, name)
			return true
		}
		if visited[name] {
			return false
		}

		visiting[name] = true
		stack = append(stack, name)

		if attrs, ok := lookup(name); ok {
			for _, parent := range attrs[attr.SlotInherit].NameList() {
				if dfs(parent) {
					return true
				}
			}
		}

		visiting[name] = false
		visited[name] = true
		stack = stack[:len(stack)-1]
		return false
	}

	for _, parent := range parents {
		if dfs(parent) {
			return faceerrors.NewInheritanceCycleError(child, cycle)
		}
	}
	return nil
}

func indexOf(slice []string, target string) int {
	for i, v := range slice {
		if v == target {
			return i
		}
	}
	return -1
}
