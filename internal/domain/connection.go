// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrRoomIDEmpty = errors.New("room id empty")

// ConnID identifies one live transport session. It is assigned by the
// server on connect and never reused.
type ConnID string

func NewConnID() ConnID {
	return ConnID(uuid.NewString())
}
