// Package propset applies string-valued parameters onto a target instance.
// Field matching is case-insensitive and values are weakly typed, both
// delegated to mapstructure.
package propset

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/nextpkg/plugconf/ce"
)

// Setter binds named string values onto one target instance.
type Setter struct {
	target any
}

// New creates a property setter over the target, which must be a pointer to
// a struct for any property to be settable.
func New(target any) *Setter {
	return &Setter{target: target}
}

// Set assigns one named property on the target.
func (s *Setter) Set(name, value string) error {
	return s.Apply(map[string]string{name: value})
}

// Apply assigns every entry of values onto the target. A property name that
// matches no field, or a value that cannot be coerced to the field's type,
// is an error.
func (s *Setter) Apply(values map[string]string) error {
	input := make(map[string]any, len(values))
	for k, v := range values {
		input[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           s.target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ce.ErrBindFailed, err)
	}

	if err = dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %w", ce.ErrBindFailed, err)
	}

	return nil
}
