package signal

import (
	"encoding/json"

	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(id domain.ConnID, data []byte) {
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad join payload")
		return
	}
	roomID, err := domain.ParseRoomID(p.RoomID)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("join rejected")
		return
	}
	if ctl.Limiter != nil && !ctl.Limiter.Allow(id) {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Str("room", string(roomID)).Msg("join rate limited")
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", string(roomID)).Msg("join")
	ctl.Orch.Join(id, roomID)
}

// handleLeave leaves the current room; the connection stays open.
func (ctl *SignalWSController) handleLeave(id domain.ConnID) {
	log.Info().Str("module", "signal").Str("conn", string(id)).Msg("leave")
	ctl.Orch.Leave(id)
}
