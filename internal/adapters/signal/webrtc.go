package signal

import (
	"encoding/json"

	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/protocol"
)

// handleWebRTC relays an offer, answer or candidate to its target only.
// The payload is opaque: it is never parsed here, only forwarded together
// with the sender's connection id.
func (ctl *Controller) handleWebRTC(kind protocol.EventType, id core.ConnID, data []byte) {
	var p struct {
		RoomID       string          `json:"roomId"`
		TargetConnID string          `json:"targetConnId" validate:"required"`
		Payload      json.RawMessage `json:"payload"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	ctl.Coord.Relay(kind, id, core.ConnID(p.TargetConnID), p.Payload)
}
