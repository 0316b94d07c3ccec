package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForwarder struct {
	Base
	failShutdown bool
}

func (f *fakeForwarder) Shutdown() error {
	if f.failShutdown {
		return errors.New("flush failed")
	}
	return f.Base.Shutdown()
}

func named(name string) *fakeReceiver {
	p := &fakeReceiver{}
	p.SetName(name)
	return p
}

func TestRegistryAddAndFind(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.NameExists("a"))
	assert.Nil(t, r.Find("a"))

	a := named("a")
	b := named("b")
	r.Add(a)
	r.Add(b)

	assert.True(t, r.NameExists("a"))
	assert.Same(t, a, r.Find("a").(*fakeReceiver))
	assert.Equal(t, 2, r.Len())

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name())
	assert.Equal(t, "b", all[1].Name())
}

func TestRegistryDuplicateNamesKeptBoth(t *testing.T) {
	r := NewRegistry()

	first := named("dup")
	second := named("dup")
	r.Add(first)
	r.Add(second)

	// Both stay registered; Find returns the most recent.
	assert.Equal(t, 2, r.Len())
	assert.Same(t, second, r.Find("dup").(*fakeReceiver))
}

func TestRegistryOfType(t *testing.T) {
	r := NewRegistry()
	r.Add(named("recv"))

	fwd := &fakeForwarder{}
	fwd.SetName("fwd")
	r.Add(fwd)

	recvs := OfType[*fakeReceiver](r)
	require.Len(t, recvs, 1)
	assert.Equal(t, "recv", recvs[0].Name())

	fwds := OfType[*fakeForwarder](r)
	require.Len(t, fwds, 1)
}

func TestRegistryStopAll(t *testing.T) {
	r := NewRegistry()

	a := named("a")
	b := named("b")
	r.Add(a)
	r.Add(b)

	require.NoError(t, a.ActivateOptions())
	require.NoError(t, b.ActivateOptions())

	require.NoError(t, r.StopAll())
	assert.False(t, a.IsActive())
	assert.False(t, b.IsActive())
}

func TestRegistryStopAllCollectsFailures(t *testing.T) {
	r := NewRegistry()

	bad := &fakeForwarder{failShutdown: true}
	bad.SetName("bad")
	good := named("good")
	require.NoError(t, good.ActivateOptions())

	r.Add(bad)
	r.Add(good)

	err := r.StopAll()
	require.Error(t, err)

	// The failing plugin does not prevent the rest from stopping.
	assert.False(t, good.IsActive())
}
