package signal

import (
	"encoding/json"

	"github.com/dkeye/VdoCall/internal/domain"
)

// Client to server event names.
const (
	EventJoinRoom  = "join-room"
	EventSignal    = "signal"
	EventLeaveRoom = "leave-room"
	EventPing      = "ping"
	EventWhoAmI    = "whoami"
)

// Server replies that are not room events.
const (
	EventWelcome = "welcome"
	EventPong    = "pong"
)

type envelope struct {
	Type string `json:"type"`
}

type joinPayload struct {
	RoomID string `json:"roomId"`
}

type signalPayload struct {
	To     domain.ConnID   `json:"to"`
	Signal json.RawMessage `json:"signal"`
}

type welcomeMessage struct {
	Type string        `json:"type"`
	ID   domain.ConnID `json:"id"`
}

type pongMessage struct {
	Type string `json:"type"`
}

type whoAmIMessage struct {
	Type   string        `json:"type"`
	ID     domain.ConnID `json:"id"`
	RoomID domain.RoomID `json:"roomId,omitempty"`
}
