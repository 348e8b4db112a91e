// Package rtc publishes the ICE configuration clients negotiate with.
// The server itself never takes part in a peer connection.
package rtc

import (
	"errors"
	"fmt"

	"github.com/dkeye/VdoCall/internal/config"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
)

var ErrTURNCredentials = errors.New("turn server requires username and credential")

// ICEServers validates every STUN/TURN URL and converts the configured
// servers into pion's representation.
func ICEServers(cfgs []config.ICEServer) ([]webrtc.ICEServer, error) {
	out := make([]webrtc.ICEServer, 0, len(cfgs))
	for _, s := range cfgs {
		for _, raw := range s.URLs {
			u, err := stun.ParseURI(raw)
			if err != nil {
				return nil, fmt.Errorf("ice server %q: %w", raw, err)
			}
			isTURN := u.Scheme == stun.SchemeTypeTURN || u.Scheme == stun.SchemeTypeTURNS
			if isTURN && (s.Username == "" || s.Credential == "") {
				return nil, fmt.Errorf("ice server %q: %w", raw, ErrTURNCredentials)
			}
		}
		srv := webrtc.ICEServer{
			URLs:     append([]string(nil), s.URLs...),
			Username: s.Username,
		}
		if s.Credential != "" {
			srv.Credential = s.Credential
			srv.CredentialType = webrtc.ICECredentialTypePassword
		}
		out = append(out, srv)
	}
	return out, nil
}
