package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	faceerrors "github.com/alexisbeaulieu97/faces/pkg/errors"
)

// convertValidationError turns validator errors into a ValidationError
// naming the first offending field.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return faceerrors.NewValidationError(field, msg, err)
	}

	return faceerrors.NewValidationError("theme", err.Error(), err)
}

// yamlishFieldName renders Theme.Surfaces[0].BackgroundMode as
// surfaces[0].background_mode.
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = snake(part)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	inKey := false
	for i, r := range s {
		switch r {
		case '[':
			inKey = true
		case ']':
			inKey = false
		}
		if !inKey && r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
