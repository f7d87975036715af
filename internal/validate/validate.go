package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/countdown/engine.go
//   type Duration struct {
//       Hours   int `validate:"min=0,max=23"`
//       Minutes int `validate:"min=0,max=59"`
//       Seconds int `validate:"min=0,max=59"`
//   }
//
// Custom tags registered here:
//   theme_mode  the string is "dark" or "light"

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Theme values accepted by the theme_mode tag.
const (
	ModeDark  = "dark"
	ModeLight = "light"
)

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		_ = validatorInst.RegisterValidation("theme_mode", isThemeMode)
	})
	return validatorInst
}

func isThemeMode(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == ModeDark || v == ModeLight
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}

// ThemeMode reports whether s is a valid persisted theme value.
func ThemeMode(s string) bool {
	return Var(s, "theme_mode") == nil
}
