package core

import (
	"slices"
	"sync"

	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	id        domain.RoomID
	mu        sync.RWMutex
	occupants []domain.ConnID
	queue     []domain.ConnID
}

func NewRoomService(id domain.RoomID) RoomService {
	return &roomImpl{
		id:        id,
		occupants: make([]domain.ConnID, 0, domain.RoomCapacity),
	}
}

func (r *roomImpl) ID() domain.RoomID { return r.id }

func (r *roomImpl) Info() RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RoomInfo{ID: r.id, UserCount: len(r.occupants), QueueLength: len(r.queue)}
}

func (r *roomImpl) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.occupants) == 0 && len(r.queue) == 0
}

func (r *roomImpl) OccupantCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.occupants)
}

func (r *roomImpl) Occupants() []domain.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.occupants)
}

func (r *roomImpl) HasOccupant(id domain.ConnID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.occupants, id)
}

func (r *roomImpl) AddOccupant(id domain.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.occupants) >= domain.RoomCapacity || slices.Contains(r.occupants, id) {
		return false
	}
	r.occupants = append(r.occupants, id)
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(id)).Msg("occupant added")
	return true
}

func (r *roomImpl) RemoveOccupant(id domain.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.Index(r.occupants, id)
	if i < 0 {
		return false
	}
	r.occupants = slices.Delete(r.occupants, i, i+1)
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(id)).Msg("occupant removed")
	return true
}

func (r *roomImpl) QueueLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queue)
}

func (r *roomImpl) Queue() []domain.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.queue)
}

func (r *roomImpl) Enqueue(id domain.ConnID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, id)
	return len(r.queue)
}

func (r *roomImpl) RemoveQueued(id domain.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.Index(r.queue, id)
	if i < 0 {
		return false
	}
	r.queue = slices.Delete(r.queue, i, i+1)
	return true
}

func (r *roomImpl) PopQueue() (domain.ConnID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return "", false
	}
	head := r.queue[0]
	r.queue = slices.Delete(r.queue, 0, 1)
	return head, true
}
