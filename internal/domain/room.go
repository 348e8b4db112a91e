package domain

// RoomCapacity is the number of occupants that make a pair.
const RoomCapacity = 2

// RoomID is chosen by clients. Any non-empty string is accepted.
type RoomID string

func ParseRoomID(raw string) (RoomID, error) {
	if raw == "" {
		return "", ErrRoomIDEmpty
	}
	return RoomID(raw), nil
}
