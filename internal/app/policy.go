package app

import (
	"fmt"

	"github.com/dkeye/VdoCall/internal/domain"
)

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickMember
)

// Policy decides what to do with a connection whose send buffer is full.
// It runs inside a transition and must not block.
type Policy interface {
	OnBackPressure(id domain.ConnID) BackpressureAction
}

// SimplePolicy drops the frame; delivery is at-most-once anyway.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.ConnID) BackpressureAction {
	return DropFrame
}

// KickPolicy disconnects consumers that cannot keep up.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(domain.ConnID) BackpressureAction {
	return KickMember
}

func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return SimplePolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
