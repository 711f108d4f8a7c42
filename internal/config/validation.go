package config

import (
	"fmt"
	"sort"

	"github.com/alexisbeaulieu97/faces/internal/attr"
	"github.com/alexisbeaulieu97/faces/internal/tty"
	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// ValidateTheme checks a decoded theme: struct tags first, then attribute
// names and values, surface names, capabilities, remap references and
// inheritance cycles among the theme's own styles.
func ValidateTheme(theme *Theme) error {
	if theme == nil {
		return faceerrors.NewValidationError("theme", "theme is nil", nil)
	}

	if err := validatorInstance().Struct(theme); err != nil {
		return convertValidationError(err)
	}

	if err := validateStyles("styles", theme.Styles); err != nil {
		return err
	}
	if _, err := StyleOrder(theme.Styles); err != nil {
		return faceerrors.NewValidationError("styles", err.Error(), err)
	}

	seen := make(map[string]bool, len(theme.Surfaces))
	for i := range theme.Surfaces {
		s := &theme.Surfaces[i]
		field := fmt.Sprintf("surfaces[%d]", i)
		if seen[s.Name] {
			return faceerrors.NewValidationError(field+".name", fmt.Sprintf("duplicate surface %q", s.Name), nil)
		}
		seen[s.Name] = true

		if _, err := tty.ParseCapabilities(s.Capabilities); err != nil {
			return faceerrors.NewValidationError(field+".capabilities", err.Error(), err)
		}
		if err := validateStyles(field+".styles", s.Styles); err != nil {
			return err
		}
		for _, name := range sortedKeys(s.Remaps) {
			if _, err := ParseRef(s.Remaps[name]); err != nil {
				return faceerrors.NewValidationError(field+".remaps."+name, err.Error(), err)
			}
		}
	}

	return nil
}

// validateStyles checks every attribute of every style the way the engine
// will when the theme is applied.
func validateStyles(field string, styles map[string]map[string]any) error {
	for _, name := range sortedKeys(styles) {
		attrs := styles[name]
		for _, key := range sortedKeys(attrs) {
			slot, ok := attr.ParseSlot(key)
			if !ok {
				return faceerrors.NewValidationError(field+"."+name+"."+key, "unknown attribute", nil)
			}
			if _, err := attr.ValidateDefinition(name, slot, attrs[key]); err != nil {
				return faceerrors.NewValidationError(field+"."+name+"."+key, err.Error(), err)
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
