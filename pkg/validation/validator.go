// Package validation wraps go-playground/validator with messages keyed by the
// configuration file's field names, plus a fluent checker for cross-field
// rules that struct tags cannot express.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// enums maps a registered tag to a hint listing its accepted values
	enums   = make(map[string]string)
	enumsMu sync.RWMutex
)

func init() {
	validate = validator.New()

	// Report fields by their yaml name, as users write them
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// RegisterEnum adds a string validation tag accepted when parse succeeds,
// e.g. RegisterEnum("objective", "jaccard-entropy|size-entropy", fn). The hint
// appears in error messages. Registering a tag twice replaces it.
func RegisterEnum(tag, hint string, parse func(string) error) error {
	if tag == "" {
		return errors.New("validation tag cannot be empty")
	}
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return parse(fl.Field().String()) == nil
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", tag, err)
	}

	enumsMu.Lock()
	enums[tag] = hint
	enumsMu.Unlock()
	return nil
}

// Struct validates v using its validate struct tags.
func Struct(v any) error {
	if v == nil {
		return errors.New("value to validate cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: %q must be one of [%s]", field, fmt.Sprint(e.Value()), param)
		}

		enumsMu.RLock()
		hint, ok := enums[tag]
		enumsMu.RUnlock()
		if ok {
			return fmt.Errorf("%s: %q is not a valid %s (%s)", field, fmt.Sprint(e.Value()), tag, hint)
		}
		return fmt.Errorf("%s: validation failed (%s)", field, tag)
	}

	return err
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
