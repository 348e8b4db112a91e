package app

import (
	"sync"
	"testing"

	"github.com/dkeye/VdoCall/internal/core"
	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomManagerGetOrCreateReturnsSameRoom(t *testing.T) {
	m := NewRoomManager()
	a := m.GetOrCreate("r1")
	b := m.GetOrCreate("r1")
	assert.Same(t, a, b)
	assert.Equal(t, 1, m.Len())
}

func TestRoomManagerGetDoesNotCreate(t *testing.T) {
	m := NewRoomManager()
	_, ok := m.Get("r1")
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestRoomManagerDeleteIfEmpty(t *testing.T) {
	m := NewRoomManager()
	room := m.GetOrCreate("r1")
	room.AddOccupant("a")

	assert.False(t, m.DeleteIfEmpty("r1"), "occupied room stays")
	room.RemoveOccupant("a")
	room.Enqueue("q")
	assert.False(t, m.DeleteIfEmpty("r1"), "room with a queue stays")
	room.RemoveQueued("q")

	assert.True(t, m.DeleteIfEmpty("r1"))
	assert.False(t, m.DeleteIfEmpty("r1"))

	fresh := m.GetOrCreate("r1")
	assert.NotSame(t, room, fresh)
	assert.True(t, fresh.IsEmpty())
}

func TestRoomManagerListIsSorted(t *testing.T) {
	m := NewRoomManager()
	m.GetOrCreate("b").AddOccupant("x")
	m.GetOrCreate("a").Enqueue("y")

	got := m.List()
	require.Len(t, got, 2)
	assert.Equal(t, []core.RoomInfo{
		{ID: "a", UserCount: 0, QueueLength: 1},
		{ID: "b", UserCount: 1, QueueLength: 0},
	}, got)
}

func TestRoomManagerConcurrentGetOrCreate(t *testing.T) {
	m := NewRoomManager()
	var wg sync.WaitGroup
	rooms := make([]core.RoomService, 32)
	for i := range rooms {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rooms[i] = m.GetOrCreate(domain.RoomID("shared"))
		}(i)
	}
	wg.Wait()
	for _, r := range rooms {
		assert.Same(t, rooms[0], r)
	}
}
