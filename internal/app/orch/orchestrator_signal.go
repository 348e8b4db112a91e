package orch

import (
	"encoding/json"

	"github.com/dkeye/VdoCall/internal/core"
	"github.com/dkeye/VdoCall/internal/domain"
	"github.com/rs/zerolog/log"
)

// relay forwards payload to `to` without checking that the two
// connections share a room.
func (o *Orchestrator) relay(from, to domain.ConnID, payload json.RawMessage) {
	if _, ok := o.Registry.Conn(to); !ok {
		log.Debug().Str("module", "orch").Str("from", string(from)).Str("to", string(to)).Msg("signal to offline peer dropped")
		return
	}
	f, err := encodeSignal(from, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("encode signal")
		return
	}
	log.Debug().Str("module", "orch").Str("from", string(from)).Str("to", string(to)).Int("bytes", len(payload)).Msg("relay signal")
	o.emitFrame(to, f)
}

// encodeSignal splices the payload into the envelope verbatim.
// json.Marshal would compact and HTML-escape a RawMessage.
func encodeSignal(from domain.ConnID, payload json.RawMessage) (core.Frame, error) {
	fromJSON, err := json.Marshal(from)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	const (
		head = `{"type":"` + domain.EventSignal + `","from":`
		mid  = `,"signal":`
	)
	buf := make([]byte, 0, len(head)+len(fromJSON)+len(mid)+len(payload)+1)
	buf = append(buf, head...)
	buf = append(buf, fromJSON...)
	buf = append(buf, mid...)
	buf = append(buf, payload...)
	buf = append(buf, '}')
	return buf, nil
}
