package signal

import (
	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/domain"
)

// The code and output relays never interpret their strings; the editor and
// runner clients own those formats.

func (ctl *Controller) handleCodeChange(id core.ConnID, data []byte) {
	var p struct {
		RoomID string `json:"roomId" validate:"required"`
		Code   string `json:"code"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	ctl.Coord.CodeChange(domain.RoomID(p.RoomID), id, p.Code)
}

func (ctl *Controller) handleSyncCode(id core.ConnID, data []byte) {
	var p struct {
		TargetConnID string `json:"targetConnId" validate:"required"`
		Code         string `json:"code"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	ctl.Coord.SyncCode(id, core.ConnID(p.TargetConnID), p.Code)
}

func (ctl *Controller) handleOutput(id core.ConnID, data []byte) {
	var p struct {
		RoomID string `json:"roomId" validate:"required"`
		Output string `json:"output"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	ctl.Coord.Output(domain.RoomID(p.RoomID), id, p.Output)
}
