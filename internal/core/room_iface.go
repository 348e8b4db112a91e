package core

import "github.com/dkeye/VdoCall/internal/domain"

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	ID          domain.RoomID `json:"roomId"`
	UserCount   int           `json:"userCount"`
	QueueLength int           `json:"queueLength"`
}

// RoomService holds the occupants and the waiting queue of one room.
// It only keeps membership; callers serialize multi-step transitions.
type RoomService interface {
	ID() domain.RoomID
	Info() RoomInfo
	IsEmpty() bool

	OccupantCount() int
	Occupants() []domain.ConnID
	HasOccupant(id domain.ConnID) bool
	// AddOccupant reports false when the room is full or id is already in.
	AddOccupant(id domain.ConnID) bool
	RemoveOccupant(id domain.ConnID) bool

	QueueLen() int
	Queue() []domain.ConnID
	// Enqueue appends id and returns its 1-based position.
	Enqueue(id domain.ConnID) int
	RemoveQueued(id domain.ConnID) bool
	PopQueue() (domain.ConnID, bool)
}

// RoomManager is the room directory.
type RoomManager interface {
	GetOrCreate(id domain.RoomID) RoomService
	Get(id domain.RoomID) (RoomService, bool)
	List() []RoomInfo
	// DeleteIfEmpty drops the room when nobody occupies or waits for it.
	DeleteIfEmpty(id domain.RoomID) bool
	Len() int
}
