package signal

import "github.com/dkeye/VdoCall/internal/domain"

// Session control replies go only to the asking connection and never
// touch room state.

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.sendJSON(conn, pongMessage{Type: EventPong})
}

func (ctl *SignalWSController) handleWhoAmI(id domain.ConnID, conn *WsSignalConn) {
	resp := whoAmIMessage{Type: EventWhoAmI, ID: id}
	if roomID, ok := ctl.Orch.Registry.RoomOf(id); ok {
		resp.RoomID = roomID
	}
	ctl.sendJSON(conn, resp)
}
