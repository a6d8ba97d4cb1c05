package validation

import (
	"errors"
	"fmt"
)

// ConfigValidator checks the rules of one config section that struct tags
// cannot express, such as limits that depend on another field. Every failure
// is kept, so a single run reports all of them.
type ConfigValidator struct {
	section string
	errs    []error
}

// NewConfigValidator returns a validator whose messages are prefixed with
// section, e.g. "graph.random_edges: ...".
func NewConfigValidator(section string) *ConfigValidator {
	return &ConfigValidator{section: section}
}

func (cv *ConfigValidator) add(field string, err error) {
	if field == "" {
		cv.errs = append(cv.errs, fmt.Errorf("%s: %w", cv.section, err))
		return
	}
	cv.errs = append(cv.errs, fmt.Errorf("%s.%s: %w", cv.section, field, err))
}

// Check records err against field when it is non-nil.
func (cv *ConfigValidator) Check(field string, err error) *ConfigValidator {
	if err != nil {
		cv.add(field, err)
	}
	return cv
}

// MaxInt fails when value exceeds limit.
func (cv *ConfigValidator) MaxInt(field string, value, limit int) *ConfigValidator {
	if value > limit {
		cv.add(field, fmt.Errorf("value %d exceeds maximum %d", value, limit))
	}
	return cv
}

func countSet(set []bool) int {
	n := 0
	for _, s := range set {
		if s {
			n++
		}
	}
	return n
}

// ExactlyOne fails unless exactly one of set is true. fields names them in
// the same order for the message.
func (cv *ConfigValidator) ExactlyOne(fields []string, set ...bool) *ConfigValidator {
	if n := countSet(set); n != 1 {
		cv.add("", fmt.Errorf("exactly one of %v must be set, got %d", fields, n))
	}
	return cv
}

// AtMostOne records err against field when more than one of set is true.
func (cv *ConfigValidator) AtMostOne(field string, err error, set ...bool) *ConfigValidator {
	if countSet(set) > 1 {
		cv.add(field, err)
	}
	return cv
}

// When runs fn only if cond holds.
func (cv *ConfigValidator) When(cond bool, fn func(*ConfigValidator)) *ConfigValidator {
	if cond {
		fn(cv)
	}
	return cv
}

func (cv *ConfigValidator) HasErrors() bool { return len(cv.errs) > 0 }

func (cv *ConfigValidator) Errors() []error { return cv.errs }

// Validate returns every recorded error joined, or nil.
func (cv *ConfigValidator) Validate() error {
	return errors.Join(cv.errs...)
}
