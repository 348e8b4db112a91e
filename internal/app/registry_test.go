package app

import (
	"testing"

	"github.com/dkeye/VdoCall/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopConn struct{ closed bool }

func (c *nopConn) TrySend(core.Frame) error { return nil }
func (c *nopConn) Close()                   { c.closed = true }

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	first, second := &nopConn{}, &nopConn{}

	require.True(t, r.Register("c1", first, nil))
	require.False(t, r.Register("c1", second, nil))

	got, ok := r.Conn("c1")
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, 1, r.Count())
}

func TestRegistryRoomMapping(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", &nopConn{}, nil)

	_, ok := r.RoomOf("c1")
	assert.False(t, ok, "fresh connection has no room")

	require.True(t, r.SetRoom("c1", "r1"))
	room, ok := r.RoomOf("c1")
	require.True(t, ok)
	assert.EqualValues(t, "r1", room)

	r.ClearRoom("c1")
	_, ok = r.RoomOf("c1")
	assert.False(t, ok)
}

func TestRegistryUnknownIDsAreNoops(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Unregister("ghost"))
	assert.False(t, r.SetRoom("ghost", "r1"))
	assert.False(t, r.Cancel("ghost"))
	r.ClearRoom("ghost")

	_, ok := r.Conn("ghost")
	assert.False(t, ok)
	_, ok = r.RoomOf("ghost")
	assert.False(t, ok)
}

func TestRegistryUnregisterTwice(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", &nopConn{}, nil)

	assert.True(t, r.Unregister("c1"))
	assert.False(t, r.Unregister("c1"))
	assert.Zero(t, r.Count())
}

func TestRegistryCancel(t *testing.T) {
	r := NewRegistry()
	called := 0
	r.Register("c1", &nopConn{}, func() { called++ })

	assert.True(t, r.Cancel("c1"))
	assert.Equal(t, 1, called)
}
