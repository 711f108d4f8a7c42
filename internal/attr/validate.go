package attr

import (
	"encoding/json"
	"sort"
	"strings"

	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

type validator func(raw any) (Value, string)

var validators = [NumSlots]validator{
	SlotFamily:            nonEmptyString,
	SlotFoundry:           nonEmptyString,
	SlotWidth:             validateWidth,
	SlotHeight:            validateHeight,
	SlotWeight:            validateWeight,
	SlotSlant:             validateSlant,
	SlotUnderline:         validateUnderline,
	SlotInverse:           boolean,
	SlotForeground:        nonEmptyString,
	SlotBackground:        nonEmptyString,
	SlotStipple:           optionalString,
	SlotOverline:          boolean,
	SlotStrikeThrough:     boolean,
	SlotBox:               validateBox,
	SlotFont:              validateFont,
	SlotInherit:           validateInherit,
	SlotFontset:           optionalString,
	SlotDistantForeground: nonEmptyString,
	SlotExtend:            boolean,
}

// Validate checks raw against the legal values of slot as they may appear in
// a property list, and converts it to a Value. Unspecified is accepted and
// returned unchanged; Reset and IgnoreDefault are rejected.
func Validate(slot Slot, raw any) (Value, error) {
	if !slot.Valid() {
		return Value{}, faceerrors.NewInvalidAttributeValueError("", slot.String(), raw, "unknown attribute")
	}
	if v, ok := raw.(Value); ok {
		switch v.kind {
		case KindUnspecified:
			return v, nil
		case KindReset, KindIgnoreDefault:
			return Value{}, faceerrors.NewInvalidAttributeValueError("", slot.String(), raw, "marker not allowed here")
		}
		raw = v.raw()
	}
	value, msg := validators[slot](raw)
	if msg != "" {
		return Value{}, faceerrors.NewInvalidAttributeValueError("", slot.String(), raw, msg)
	}
	return value, nil
}

// ValidateDefinition checks a value being stored into the definition of
// style. All three markers are accepted. Heights must be a positive integer
// for the default style and must yield one when merged over 10 otherwise.
func ValidateDefinition(style string, slot Slot, raw any) (Value, error) {
	if v, ok := raw.(Value); ok && (!v.Concrete() || v.IsReset()) {
		return v, nil
	}
	value, err := Validate(slot, raw)
	if err != nil {
		if attrErr, ok := err.(*faceerrors.InvalidAttributeValueError); ok {
			attrErr.Style = style
		}
		return Value{}, err
	}
	if slot == SlotHeight {
		if style == "default" {
			if n, ok := value.IntValue(); !ok || n <= 0 {
				return Value{}, faceerrors.NewInvalidAttributeValueError(style, slot.String(), raw, "default face height must be a positive integer")
			}
		} else {
			test, ok := MergeHeights(value, Int(10))
			if n, isInt := test.IntValue(); !ok || !isInt || n <= 0 {
				return Value{}, faceerrors.NewInvalidAttributeValueError(style, slot.String(), raw, "height does not yield a positive integer")
			}
		}
	}
	return value, nil
}

// raw converts a concrete Value back to the plain Go form the validators
// accept.
func (v Value) raw() any {
	switch v.kind {
	case KindOff:
		return nil
	case KindOn:
		return true
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindFloat:
		return v.float
	case KindFunc:
		return v.fn
	case KindWeight:
		return Weight(v.num)
	case KindSlant:
		return Slant(v.num)
	case KindWidth:
		return Width(v.num)
	case KindUnderline:
		return *v.ul
	case KindBox:
		return *v.box
	case KindFont:
		return v.font
	case KindNames:
		return v.NameList()
	}
	return v
}

func nonEmptyString(raw any) (Value, string) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return Value{}, "expected a non-empty string"
	}
	return String(s), ""
}

func optionalString(raw any) (Value, string) {
	switch r := raw.(type) {
	case nil:
		return Off(), ""
	case bool:
		if !r {
			return Off(), ""
		}
	case string:
		if r != "" {
			return String(r), ""
		}
	}
	return Value{}, "expected nil or a non-empty string"
}

func boolean(raw any) (Value, string) {
	switch r := raw.(type) {
	case nil:
		return Off(), ""
	case bool:
		return Bool(r), ""
	}
	return Value{}, "expected t or nil"
}

func validateWeight(raw any) (Value, string) {
	switch r := raw.(type) {
	case Weight:
		if r.String() != "unknown" {
			return WeightOf(r), ""
		}
	case string:
		if w, ok := ParseWeight(r); ok {
			return WeightOf(w), ""
		}
	}
	return Value{}, "unknown weight"
}

func validateSlant(raw any) (Value, string) {
	switch r := raw.(type) {
	case Slant:
		if r.String() != "unknown" {
			return SlantOf(r), ""
		}
	case string:
		if s, ok := ParseSlant(r); ok {
			return SlantOf(s), ""
		}
	}
	return Value{}, "unknown slant"
}

func validateWidth(raw any) (Value, string) {
	switch r := raw.(type) {
	case Width:
		if r.String() != "unknown" {
			return WidthOf(r), ""
		}
	case string:
		if w, ok := ParseWidth(r); ok {
			return WidthOf(w), ""
		}
	}
	return Value{}, "unknown width"
}

func validateHeight(raw any) (Value, string) {
	switch r := raw.(type) {
	case *HeightFunc:
		if r != nil && r.Fn != nil {
			return Func(r), ""
		}
		return Value{}, "nil height function"
	case HeightFunc:
		if r.Fn != nil {
			fn := r
			return Func(&fn), ""
		}
		return Value{}, "nil height function"
	}
	if n, ok := asInt(raw); ok {
		if n > 0 {
			return Int(n), ""
		}
		return Value{}, "height must be positive"
	}
	if f, ok := asFloat(raw); ok {
		if f > 0 {
			return Float(f), ""
		}
		return Value{}, "relative height must be positive"
	}
	return Value{}, "expected an integer, a float or a function"
}

func validateUnderline(raw any) (Value, string) {
	switch r := raw.(type) {
	case nil:
		return Off(), ""
	case bool:
		return Bool(r), ""
	case string:
		if r == "" {
			return Value{}, "empty underline color"
		}
		return String(r), ""
	case Underline:
		return UnderlineOf(r), ""
	}
	entries, ok := plistEntries(raw)
	if !ok {
		return Value{}, "expected t, nil, a color or a property list"
	}
	var u Underline
	for _, e := range entries {
		switch e.key {
		case "color":
			s, isString := e.value.(string)
			switch {
			case !isString || s == "":
				return Value{}, "underline color must be a non-empty string"
			case s == "foreground-color":
				u.UseForeground = true
			default:
				u.Color = s
			}
		case "style":
			name, _ := e.value.(string)
			style, known := ParseLineStyle(name)
			if !known {
				return Value{}, "unknown underline style"
			}
			u.Style = style
		default:
			return Value{}, "unknown underline property " + e.key
		}
	}
	return UnderlineOf(u), ""
}

func validateBox(raw any) (Value, string) {
	switch r := raw.(type) {
	case nil:
		return Off(), ""
	case bool:
		if r {
			return Int(1), ""
		}
		return Off(), ""
	case string:
		if r == "" {
			return Value{}, "empty box color"
		}
		return String(r), ""
	case Box:
		return BoxOf(r), ""
	}
	if n, ok := asInt(raw); ok {
		if n == 0 {
			return Value{}, "box width must be non-zero"
		}
		return Int(n), ""
	}
	if w, h, ok := asPair(raw); ok {
		return BoxOf(Box{Width: w, Height: h}), ""
	}
	entries, ok := plistEntries(raw)
	if !ok {
		return Value{}, "expected t, nil, an integer, a color, a pair or a property list"
	}
	box := Box{Width: 1, Height: 1}
	for _, e := range entries {
		switch e.key {
		case "line-width":
			if n, isInt := asInt(e.value); isInt && n != 0 {
				box.Width, box.Height = n, n
			} else if w, h, isPair := asPair(e.value); isPair && w != 0 && h != 0 {
				box.Width, box.Height = w, h
			} else {
				return Value{}, "box line-width must be a non-zero integer or pair"
			}
		case "color":
			switch c := e.value.(type) {
			case nil:
				box.Color = ""
			case string:
				if c == "" {
					return Value{}, "empty box color"
				}
				box.Color = c
			default:
				return Value{}, "box color must be a string"
			}
		case "style":
			name := ""
			if e.value != nil {
				s, isString := e.value.(string)
				if !isString {
					return Value{}, "unknown box style"
				}
				name = s
			}
			style, known := ParseBoxStyle(name)
			if !known {
				return Value{}, "unknown box style"
			}
			box.Style = style
		default:
			return Value{}, "unknown box property " + e.key
		}
	}
	return BoxOf(box), ""
}

func validateFont(raw any) (Value, string) {
	switch r := raw.(type) {
	case *FontSpec:
		if r != nil {
			return FontOf(*r), ""
		}
		return Value{}, "nil font"
	case FontSpec:
		return FontOf(r), ""
	}
	entries, ok := plistEntries(raw)
	if !ok {
		return Value{}, "expected a font spec"
	}
	var spec FontSpec
	for _, e := range entries {
		s, _ := e.value.(string)
		switch e.key {
		case "family":
			spec.Family = s
		case "foundry":
			spec.Foundry = s
		case "adstyle":
			spec.Adstyle = s
		case "weight":
			w, known := ParseWeight(s)
			if !known {
				return Value{}, "unknown font weight"
			}
			spec.Weight = &w
		case "slant":
			sl, known := ParseSlant(s)
			if !known {
				return Value{}, "unknown font slant"
			}
			spec.Slant = &sl
		case "width":
			w, known := ParseWidth(s)
			if !known {
				return Value{}, "unknown font width"
			}
			spec.Width = &w
		case "size":
			n, isInt := asInt(e.value)
			if !isInt || n <= 0 {
				return Value{}, "font size must be a positive integer"
			}
			spec.Size = n
		default:
			return Value{}, "unknown font property " + e.key
		}
	}
	return FontOf(spec), ""
}

func validateInherit(raw any) (Value, string) {
	switch r := raw.(type) {
	case nil:
		return Off(), ""
	case string:
		if r == "" {
			return Value{}, "empty style name"
		}
		return Names(r), ""
	case []string:
		for _, name := range r {
			if name == "" {
				return Value{}, "empty style name"
			}
		}
		return Names(r...), ""
	case []any:
		names := make([]string, 0, len(r))
		for _, item := range r {
			name, ok := item.(string)
			if !ok || name == "" {
				return Value{}, "inherit list must contain style names"
			}
			names = append(names, name)
		}
		return Names(names...), ""
	}
	return Value{}, "expected a style name or a list of names"
}

type plistEntry struct {
	key   string
	value any
}

// plistEntries accepts either a map or a flat key/value list.
func plistEntries(raw any) ([]plistEntry, bool) {
	switch p := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(p))
		for k := range p {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]plistEntry, 0, len(keys))
		for _, k := range keys {
			out = append(out, plistEntry{key: strings.TrimPrefix(k, ":"), value: p[k]})
		}
		return out, true
	case []any:
		if len(p)%2 != 0 {
			return nil, false
		}
		out := make([]plistEntry, 0, len(p)/2)
		for i := 0; i < len(p); i += 2 {
			k, ok := p[i].(string)
			if !ok {
				return nil, false
			}
			out = append(out, plistEntry{key: strings.TrimPrefix(k, ":"), value: p[i+1]})
		}
		return out, true
	}
	return nil, false
}

func asInt(raw any) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}

func asFloat(raw any) (float64, bool) {
	switch f := raw.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case json.Number:
		v, err := f.Float64()
		return v, err == nil
	}
	return 0, false
}

func asPair(raw any) (int, int, bool) {
	switch p := raw.(type) {
	case [2]int:
		return p[0], p[1], true
	case []int:
		if len(p) == 2 {
			return p[0], p[1], true
		}
	case []any:
		if len(p) == 2 {
			a, okA := asInt(p[0])
			b, okB := asInt(p[1])
			if okA && okB {
				return a, b, true
			}
		}
	}
	return 0, 0, false
}

// Values lists the symbolic values a slot accepts, for completion.
func Values(slot Slot) []string {
	switch slot {
	case SlotWeight:
		return enumNames(weightTable)
	case SlotSlant:
		return enumNames(slantTable)
	case SlotWidth:
		return enumNames(widthTable)
	case SlotUnderline, SlotInverse, SlotOverline, SlotStrikeThrough, SlotBox, SlotExtend:
		return []string{"nil", "t"}
	}
	return nil
}
