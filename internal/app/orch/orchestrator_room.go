package orch

import (
	"github.com/dkeye/VdoCall/internal/core"
	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/rs/zerolog/log"
)

func (o *Orchestrator) join(id domain.ConnID, roomID domain.RoomID) {
	if _, ok := o.Registry.Conn(id); !ok {
		log.Warn().Str("module", "orch").Str("conn", string(id)).Msg("join from unknown connection")
		return
	}
	if prev, ok := o.Registry.RoomOf(id); ok {
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("from_room", string(prev)).Msg("implicit leave before join")
		o.leave(id)
	}

	room := o.Rooms.GetOrCreate(roomID)
	if room.AddOccupant(id) {
		o.Registry.SetRoom(id, roomID)
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Int("users", room.OccupantCount()).Msg("joined room")
		o.emit(id, domain.NewJoinedRoom(roomID))
		o.announcePair(room, id)
	} else {
		pos := room.Enqueue(id)
		o.Registry.SetRoom(id, roomID)
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Int("position", pos).Msg("added to queue")
		o.emit(id, domain.NewAddedToQueue(pos))
	}
	o.broadcast(room)
}

func (o *Orchestrator) leave(id domain.ConnID) {
	roomID, ok := o.Registry.RoomOf(id)
	if !ok {
		return
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		o.Registry.ClearRoom(id)
		return
	}

	if room.RemoveOccupant(id) {
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("occupant left")
		for _, peer := range room.Occupants() {
			o.emit(peer, domain.NewPeerLeft())
		}
		o.promote(room)
	} else if room.RemoveQueued(id) {
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(roomID)).Msg("left queue")
	}

	o.Registry.ClearRoom(id)
	o.broadcast(room)
	o.Rooms.DeleteIfEmpty(roomID)
}

// promote fills free slots from the head of the queue.
func (o *Orchestrator) promote(room core.RoomService) {
	for room.OccupantCount() < domain.RoomCapacity {
		next, ok := room.PopQueue()
		if !ok {
			return
		}
		room.AddOccupant(next)
		o.Registry.SetRoom(next, room.ID())
		log.Info().Str("module", "orch").Str("conn", string(next)).Str("room", string(room.ID())).Msg("promoted from queue")
		o.emit(next, domain.NewJoinedRoom(room.ID()))
		o.announcePair(room, next)
	}
}

// announcePair tells the connection that completed the pair to start
// negotiating. The other occupant waits for its signal.
func (o *Orchestrator) announcePair(room core.RoomService, initiator domain.ConnID) {
	occupants := room.Occupants()
	if len(occupants) != domain.RoomCapacity {
		return
	}
	for _, peer := range occupants {
		if peer != initiator {
			o.emit(initiator, domain.NewInitiateCall(peer))
			return
		}
	}
}

func (o *Orchestrator) broadcast(room core.RoomService) {
	queue := room.Queue()
	for i, id := range queue {
		o.emit(id, domain.NewQueuePosition(i+1, len(queue)))
	}
	occupants := room.Occupants()
	for _, id := range occupants {
		o.emit(id, domain.NewRoomStatus(len(occupants)))
	}
}
