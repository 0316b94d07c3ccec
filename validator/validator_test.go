package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextpkg/plugconf/ce"
)

type tagged struct {
	Port int `validate:"min=1,max=65535"`
}

type hooked struct {
	Fail bool
}

func (h *hooked) Validate() error {
	if h.Fail {
		return errors.New("not ready")
	}
	return nil
}

func TestValidateTags(t *testing.T) {
	require.NoError(t, Validate(&tagged{Port: 8080}))

	err := Validate(&tagged{Port: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ce.ErrValidateFailed)
}

func TestValidateHook(t *testing.T) {
	require.NoError(t, Validate(&hooked{}))

	err := Validate(&hooked{Fail: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ce.ErrValidateFailed)
}

func TestValidateNonStruct(t *testing.T) {
	assert.NoError(t, Validate(42))
	assert.NoError(t, Validate("plain"))
}
