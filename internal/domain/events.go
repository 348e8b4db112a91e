package domain

// Server to client event names.
const (
	EventJoinedRoom    = "joined-room"
	EventAddedToQueue  = "added-to-queue"
	EventQueuePosition = "queue-position"
	EventRoomStatus    = "room-status"
	EventInitiateCall  = "initiate-call"
	EventSignal        = "signal"
	EventPeerLeft      = "peer-left"
)

type JoinedRoom struct {
	Type   string `json:"type"`
	RoomID RoomID `json:"roomId"`
}

type AddedToQueue struct {
	Type     string `json:"type"`
	Position int    `json:"position"`
}

type QueuePosition struct {
	Type     string `json:"type"`
	Position int    `json:"position"`
	Total    int    `json:"total"`
}

type RoomStatus struct {
	Type      string `json:"type"`
	UserCount int    `json:"userCount"`
}

type InitiateCall struct {
	Type   string `json:"type"`
	PeerID ConnID `json:"peerId"`
}

type PeerLeft struct {
	Type string `json:"type"`
}

func NewJoinedRoom(id RoomID) JoinedRoom { return JoinedRoom{Type: EventJoinedRoom, RoomID: id} }

func NewAddedToQueue(pos int) AddedToQueue {
	return AddedToQueue{Type: EventAddedToQueue, Position: pos}
}

func NewQueuePosition(pos, total int) QueuePosition {
	return QueuePosition{Type: EventQueuePosition, Position: pos, Total: total}
}

func NewRoomStatus(n int) RoomStatus { return RoomStatus{Type: EventRoomStatus, UserCount: n} }

func NewInitiateCall(peer ConnID) InitiateCall {
	return InitiateCall{Type: EventInitiateCall, PeerID: peer}
}

func NewPeerLeft() PeerLeft { return PeerLeft{Type: EventPeerLeft} }
