package config

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/faces/internal/color"
	"github.com/alexisbeaulieu97/faces/internal/engine"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	styleNamePattern = regexp.MustCompile(`^[^\s\x00-\x1f]+$`)
)

// validatorInstance configures and returns the shared validator used for
// themes.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("stylename", func(fl validator.FieldLevel) bool {
			return styleNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("surfacekind", func(fl validator.FieldLevel) bool {
			_, ok := engine.ParseSurfaceKind(fl.Field().String())
			return ok
		})

		_ = v.RegisterValidation("colordepth", func(fl validator.FieldLevel) bool {
			depth := fl.Field().String()
			if strings.EqualFold(depth, "auto") {
				return true
			}
			_, ok := color.ParseDepth(depth)
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the theme validator for use outside the package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
