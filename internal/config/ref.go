package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/faces/internal/merge"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// ParseRef converts a decoded theme or request value into a style
// reference:
//
//	link                                  a named style
//	[bold, link]                          a list, earlier entries win
//	{foreground: red, weight: bold}       a property list
//	{foreground-color: red}               the legacy color form
//	{filtered: {param: mode, value: dark}, face: ...}
//	{filtered: {always: true}, face: ...}
func ParseRef(raw any) (merge.Ref, error) {
	switch r := raw.(type) {
	case nil:
		return nil, nil
	case merge.Ref:
		return r, nil
	case string:
		if r == "" {
			return nil, faceerrors.NewInvalidReferenceError(raw, "empty style name")
		}
		return merge.Name(r), nil
	case []string:
		return merge.Names(r...), nil
	case []any:
		out := make(merge.List, 0, len(r))
		for _, item := range r {
			ref, err := ParseRef(item)
			if err != nil {
				return nil, err
			}
			out = append(out, ref)
		}
		return out, nil
	case map[string]any:
		return parseMapRef(r)
	case map[any]any:
		m := make(map[string]any, len(r))
		for k, v := range r {
			m[fmt.Sprint(k)] = v
		}
		return parseMapRef(m)
	}
	return nil, faceerrors.NewInvalidReferenceError(raw, "expected a name, a list or a map")
}

func parseMapRef(m map[string]any) (merge.Ref, error) {
	if f, ok := m["filtered"]; ok {
		return parseFiltered(f, m)
	}

	if len(m) == 1 {
		for key, value := range m {
			switch strings.TrimPrefix(key, ":") {
			case "foreground-color":
				return merge.LegacyColor{Color: value}, nil
			case "background-color":
				return merge.LegacyColor{Background: true, Color: value}, nil
			}
		}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	props := make(merge.Props, 0, len(keys))
	for _, k := range keys {
		props = append(props, merge.Prop{Key: strings.TrimPrefix(k, ":"), Value: m[k]})
	}
	return props, nil
}

func parseFiltered(f any, m map[string]any) (merge.Ref, error) {
	spec, ok := f.(map[string]any)
	if !ok {
		return nil, faceerrors.NewInvalidReferenceError(f, "filter must be a map")
	}
	if len(m) != 2 {
		return nil, faceerrors.NewInvalidReferenceError(m, "filtered reference takes exactly a filter and a face")
	}
	face, ok := m["face"]
	if !ok {
		return nil, faceerrors.NewInvalidReferenceError(m, "filtered reference without a face")
	}

	var filter merge.Filter
	if always, ok := spec["always"].(bool); ok && always {
		filter.Always = true
	} else {
		param, _ := spec["param"].(string)
		if param == "" {
			return nil, faceerrors.NewInvalidReferenceError(f, "filter needs a param")
		}
		filter.Param = param
		if value, ok := spec["value"]; ok && value != nil {
			filter.Value = fmt.Sprint(value)
		}
	}

	inner, err := ParseRef(face)
	if err != nil {
		return nil, err
	}
	return merge.Filtered{Filter: filter, Inner: inner}, nil
}
