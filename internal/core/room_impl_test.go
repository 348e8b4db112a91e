package core

import (
	"testing"

	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCapacity(t *testing.T) {
	r := NewRoomService("r1")

	require.True(t, r.AddOccupant("a"))
	require.False(t, r.AddOccupant("a"), "duplicate occupant")
	require.True(t, r.AddOccupant("b"))
	require.False(t, r.AddOccupant("c"), "room is full")

	assert.Equal(t, domain.RoomCapacity, r.OccupantCount())
	assert.Equal(t, []domain.ConnID{"a", "b"}, r.Occupants())
	assert.True(t, r.HasOccupant("b"))
	assert.False(t, r.HasOccupant("c"))
}

func TestRoomQueueIsFIFO(t *testing.T) {
	r := NewRoomService("r1")

	assert.Equal(t, 1, r.Enqueue("q1"))
	assert.Equal(t, 2, r.Enqueue("q2"))
	assert.Equal(t, 3, r.Enqueue("q3"))

	for _, want := range []domain.ConnID{"q1", "q2", "q3"} {
		got, ok := r.PopQueue()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := r.PopQueue()
	assert.False(t, ok)
}

func TestRoomRemoveQueuedByIdentity(t *testing.T) {
	r := NewRoomService("r1")
	r.Enqueue("q1")
	r.Enqueue("q2")
	r.Enqueue("q3")

	require.True(t, r.RemoveQueued("q2"))
	require.False(t, r.RemoveQueued("q2"))
	assert.Equal(t, []domain.ConnID{"q1", "q3"}, r.Queue())
}

func TestRoomEmptiness(t *testing.T) {
	r := NewRoomService("r1")
	assert.True(t, r.IsEmpty())

	r.AddOccupant("a")
	r.Enqueue("q")
	assert.False(t, r.IsEmpty())
	assert.Equal(t, RoomInfo{ID: "r1", UserCount: 1, QueueLength: 1}, r.Info())

	r.RemoveOccupant("a")
	assert.False(t, r.IsEmpty())
	r.RemoveQueued("q")
	assert.True(t, r.IsEmpty())
}

func TestRoomSnapshotsAreCopies(t *testing.T) {
	r := NewRoomService("r1")
	r.AddOccupant("a")
	r.Enqueue("q")

	occ := r.Occupants()
	occ[0] = "mutated"
	q := r.Queue()
	q[0] = "mutated"

	assert.Equal(t, []domain.ConnID{"a"}, r.Occupants())
	assert.Equal(t, []domain.ConnID{"q"}, r.Queue())
}
