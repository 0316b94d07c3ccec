package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nextpkg/plugconf/ce"
)

type fakeReceiver struct {
	Base
	Port int `default:"4560"`
}

func TestRegisterAndNew(t *testing.T) {
	Register("fakeReceiver", func() Plugin { return &fakeReceiver{} })
	defer Unregister("fakeReceiver")

	p, err := New("fakeReceiver")
	require.NoError(t, err)
	require.IsType(t, &fakeReceiver{}, p)

	// Default tags are applied at construction time.
	assert.Equal(t, 4560, p.(*fakeReceiver).Port)

	assert.Contains(t, Types(), "fakeReceiver")
}

func TestNewUnknownType(t *testing.T) {
	_, err := New("does.not.Exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, ce.ErrUnknownPluginType)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dupType", func() Plugin { return &fakeReceiver{} })
	defer Unregister("dupType")

	assert.Panics(t, func() {
		Register("dupType", func() Plugin { return &fakeReceiver{} })
	})
}

func TestRegisterInvalidPanics(t *testing.T) {
	assert.Panics(t, func() {
		Register("", func() Plugin { return &fakeReceiver{} })
	})
	assert.Panics(t, func() {
		Register("nilFactory", nil)
	})
}

func TestBaseLifecycle(t *testing.T) {
	p := &fakeReceiver{}

	assert.Empty(t, p.Name())
	p.SetName("recv1")
	assert.Equal(t, "recv1", p.Name())

	assert.False(t, p.IsActive())
	require.NoError(t, p.ActivateOptions())
	assert.True(t, p.IsActive())
	require.NoError(t, p.Shutdown())
	assert.False(t, p.IsActive())
}
