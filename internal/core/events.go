package core

import (
	"encoding/json"

	"github.com/dkeye/VdoCall/internal/domain"
)

// Event is one client-driven state transition. The set is closed:
// JoinEvent, LeaveEvent, DisconnectEvent and SignalEvent.
type Event interface {
	Conn() domain.ConnID
	event()
}

type JoinEvent struct {
	From domain.ConnID
	Room domain.RoomID
}

type LeaveEvent struct {
	From domain.ConnID
}

// DisconnectEvent is emitted once by the transport when a connection is gone.
type DisconnectEvent struct {
	From domain.ConnID
}

type SignalEvent struct {
	From    domain.ConnID
	To      domain.ConnID
	Payload json.RawMessage
}

func (e JoinEvent) Conn() domain.ConnID       { return e.From }
func (e LeaveEvent) Conn() domain.ConnID      { return e.From }
func (e DisconnectEvent) Conn() domain.ConnID { return e.From }
func (e SignalEvent) Conn() domain.ConnID     { return e.From }

func (JoinEvent) event()       {}
func (LeaveEvent) event()      {}
func (DisconnectEvent) event() {}
func (SignalEvent) event()     {}
