package signal

import (
	"encoding/json"

	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleRelay(id domain.ConnID, data []byte) {
	var p signalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad signal payload")
		return
	}
	if p.To == "" {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("signal without recipient")
		return
	}
	ctl.Orch.Signal(id, p.To, p.Signal)
}
