package signal

import (
	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/domain"
)

func (ctl *Controller) handleCallInitiated(id core.ConnID, data []byte) {
	var p struct {
		RoomID string `json:"roomId" validate:"required"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	ctl.Coord.CallInitiated(domain.RoomID(p.RoomID), id)
}

func (ctl *Controller) handleJoinedCall(id core.ConnID, data []byte) {
	var p struct {
		RoomID string `json:"roomId" validate:"required"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	ctl.Coord.JoinedCall(domain.RoomID(p.RoomID), id)
}

func (ctl *Controller) handleCallEnded(id core.ConnID, data []byte) {
	var p struct {
		RoomID   string `json:"roomId" validate:"required"`
		Username string `json:"username"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	ctl.Coord.CallEnded(domain.RoomID(p.RoomID), id, p.Username)
}

func (ctl *Controller) handleUserLeftCall(id core.ConnID, data []byte) {
	var p struct {
		RoomID string `json:"roomId" validate:"required"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	ctl.Coord.UserLeftCall(domain.RoomID(p.RoomID), id)
}
