// Package validator runs post-bind validation over freshly built plugin
// instances: struct-tag rules first, then the instance's own Validate hook.
package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nextpkg/plugconf/ce"
)

var vld = validator.New(validator.WithRequiredStructEnabled())

// Validator defines an optional self-validation hook. A plugin implementing
// it is asked to validate itself after its parameters have been bound.
type Validator interface {
	Validate() error
}

// Validate checks struct tags via go-playground/validator, then invokes the
// value's Validate hook if it implements the Validator interface.
func Validate(v any) error {
	err := vld.Struct(v)
	if err != nil {
		// Non-struct values carry no tags to check.
		if _, ok := err.(*validator.InvalidValidationError); !ok {
			return fmt.Errorf("%w: %w", ce.ErrValidateFailed, err)
		}
	}

	if val, ok := v.(Validator); ok {
		if err = val.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ce.ErrValidateFailed, err)
		}
	}

	return nil
}
