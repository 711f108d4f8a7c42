// Package merge resolves style references into attribute vectors by walking
// named styles, inheritance and remapping with cycle detection.
package merge

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/faces/internal/attr"
)

// Ref is a style reference. The set of implementations is closed: Name,
// Props, List, LegacyColor and Filtered. A nil Ref contributes nothing.
type Ref interface {
	isRef()
	String() string
}

// Name refers to a named style.
type Name string

// Prop is one keyword/value pair of a property list.
type Prop struct {
	Key   string
	Value any
}

// Props is an ordered property list such as (:foreground "red" :weight bold).
type Props []Prop

// List holds several references; earlier entries take precedence.
type List []Ref

// LegacyColor is the (foreground-color . "red") form.
type LegacyColor struct {
	Background bool
	Color      any
}

// Filter restricts a Filtered reference to contexts where Param equals
// Value. Always matches unconditionally.
type Filter struct {
	Always bool
	Param  string
	Value  string
}

// Filtered applies Inner only when Filter matches.
type Filtered struct {
	Filter Filter
	Inner  Ref
}

func (Name) isRef()        {}
func (Props) isRef()       {}
func (List) isRef()        {}
func (LegacyColor) isRef() {}
func (Filtered) isRef()    {}

func (n Name) String() string { return string(n) }

func (p Props) String() string {
	parts := make([]string, 0, 2*len(p))
	for _, prop := range p {
		parts = append(parts, ":"+strings.TrimPrefix(prop.Key, ":"), fmt.Sprint(prop.Value))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (l List) String() string {
	parts := make([]string, 0, len(l))
	for _, r := range l {
		if r == nil {
			parts = append(parts, "nil")
			continue
		}
		parts = append(parts, r.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (c LegacyColor) String() string {
	if c.Background {
		return fmt.Sprintf("(background-color . %v)", c.Color)
	}
	return fmt.Sprintf("(foreground-color . %v)", c.Color)
}

func (f Filter) String() string {
	if f.Always {
		return "nil"
	}
	return fmt.Sprintf("(:window %s %s)", f.Param, f.Value)
}

func (f Filtered) String() string {
	inner := "nil"
	if f.Inner != nil {
		inner = f.Inner.String()
	}
	return fmt.Sprintf("(:filtered %s %s)", f.Filter, inner)
}

// Of builds a property list from alternating keys and values.
func Of(pairs ...any) Props {
	out := make(Props, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		out = append(out, Prop{Key: key, Value: pairs[i+1]})
	}
	return out
}

// Names builds a reference to one or more named styles.
func Names(names ...string) Ref {
	switch len(names) {
	case 0:
		return nil
	case 1:
		return Name(names[0])
	}
	out := make(List, 0, len(names))
	for _, name := range names {
		out = append(out, Name(name))
	}
	return out
}

// AsRef converts loosely typed data, as found in an :inherit value, into a
// reference.
func AsRef(raw any) (Ref, bool) {
	switch r := raw.(type) {
	case nil:
		return nil, true
	case Ref:
		return r, true
	case string:
		if r == "" {
			return nil, false
		}
		return Name(r), true
	case []string:
		return Names(r...), true
	case attr.Value:
		switch r.Kind() {
		case attr.KindNames:
			return Names(r.NameList()...), true
		case attr.KindOff:
			return nil, true
		case attr.KindString:
			s, _ := r.Str()
			return Name(s), s != ""
		}
	case []any:
		out := make(List, 0, len(r))
		for _, item := range r {
			ref, ok := AsRef(item)
			if !ok {
				return nil, false
			}
			out = append(out, ref)
		}
		return out, true
	}
	return nil, false
}

func isNil(raw any) bool {
	switch r := raw.(type) {
	case nil:
		return true
	case bool:
		return !r
	case attr.Value:
		return r.IsOff()
	}
	return false
}

func isUnspecified(raw any) bool {
	v, ok := raw.(attr.Value)
	return ok && v.IsUnspecified()
}
