// Package props is the variable substitution context for a configuration
// pass. Values declared by <property> elements take precedence over
// environment variables.
package props

import (
	"os"

	"github.com/spf13/viper"
)

// Store wraps a viper instance holding document properties, falling back to
// the environment for unknown keys. One Store serves one configuration pass.
type Store struct {
	v *viper.Viper
}

// New creates an empty substitution context.
func New() *Store {
	v := viper.New()
	v.AutomaticEnv()

	return &Store{v: v}
}

// Set records one document property.
func (s *Store) Set(key, value string) {
	s.v.Set(key, value)
}

// Lookup resolves one key: document properties first, then environment.
// Unknown keys resolve to "".
func (s *Store) Lookup(key string) string {
	return s.v.GetString(key)
}

// Expand substitutes ${key} references in the input against the store.
// Unknown references expand to the empty string.
func (s *Store) Expand(in string) string {
	return os.Expand(in, s.Lookup)
}
