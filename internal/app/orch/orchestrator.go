package orch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dkeye/VdoCall/internal/app"
	"github.com/dkeye/VdoCall/internal/core"
	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator owns the room directory and the connection registry and
// applies every client event to them as one atomic transition.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomManager
	Policy   app.Policy

	mu    sync.Mutex
	kicks []domain.ConnID
}

func New(reg *app.Registry, rooms core.RoomManager, policy app.Policy) *Orchestrator {
	return &Orchestrator{Registry: reg, Rooms: rooms, Policy: policy}
}

// Connect makes id addressable. It does not place it in any room.
func (o *Orchestrator) Connect(id domain.ConnID, conn core.SignalConnection, cancel context.CancelFunc) {
	o.Registry.Register(id, conn, cancel)
}

func (o *Orchestrator) Join(id domain.ConnID, room domain.RoomID) {
	o.Dispatch(core.JoinEvent{From: id, Room: room})
}

func (o *Orchestrator) Leave(id domain.ConnID) {
	o.Dispatch(core.LeaveEvent{From: id})
}

func (o *Orchestrator) Disconnect(id domain.ConnID) {
	o.Dispatch(core.DisconnectEvent{From: id})
}

func (o *Orchestrator) Signal(from, to domain.ConnID, payload json.RawMessage) {
	o.Dispatch(core.SignalEvent{From: from, To: to, Payload: payload})
}

// Dispatch runs one event to completion under the orchestrator lock.
// Connections marked for kicking are closed only after the lock is released.
func (o *Orchestrator) Dispatch(ev core.Event) {
	o.mu.Lock()
	switch e := ev.(type) {
	case core.JoinEvent:
		o.join(e.From, e.Room)
	case core.LeaveEvent:
		o.leave(e.From)
	case core.DisconnectEvent:
		o.disconnect(e.From)
	case core.SignalEvent:
		o.relay(e.From, e.To, e.Payload)
	default:
		log.Warn().Str("module", "orch").Str("conn", string(ev.Conn())).Msgf("unhandled event %T", ev)
	}
	kicks := o.kicks
	o.kicks = nil
	o.mu.Unlock()

	o.applyKicks(kicks)
}

func (o *Orchestrator) disconnect(id domain.ConnID) {
	o.leave(id)
	o.Registry.Unregister(id)
}

func (o *Orchestrator) emit(id domain.ConnID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("emit marshal")
		return
	}
	o.emitFrame(id, b)
}

// emitFrame is fire-and-forget: a missing or saturated connection never
// fails the transition that produced the frame.
func (o *Orchestrator) emitFrame(id domain.ConnID, f core.Frame) {
	conn, ok := o.Registry.Conn(id)
	if !ok {
		log.Debug().Str("module", "orch").Str("conn", string(id)).Msg("emit to offline connection dropped")
		return
	}
	err := conn.TrySend(f)
	if err == nil {
		return
	}
	if errors.Is(err, core.ErrConnClosed) {
		return
	}
	action := app.DropFrame
	if o.Policy != nil {
		action = o.Policy.OnBackPressure(id)
	}
	log.Warn().Err(err).Str("module", "orch").Str("conn", string(id)).Int("action", int(action)).Msg("send failed")
	if action == app.KickMember {
		o.kicks = append(o.kicks, id)
	}
}

func (o *Orchestrator) applyKicks(ids []domain.ConnID) {
	seen := make(map[domain.ConnID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if conn, ok := o.Registry.Conn(id); ok {
			conn.Close()
		}
		o.Registry.Cancel(id)
		log.Info().Str("module", "orch").Str("conn", string(id)).Msg("kicked slow connection")
	}
}
