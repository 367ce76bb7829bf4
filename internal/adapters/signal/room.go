package signal

import (
	"github.com/rs/zerolog/log"

	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/domain"
	"github.com/sgurov/coderoom/internal/protocol"
)

func (ctl *Controller) handleJoin(id core.ConnID, data []byte) {
	var p struct {
		RoomID   string `json:"roomId" validate:"required"`
		Username string `json:"username" validate:"required"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}
	if err := domain.ValidateUsername(p.Username); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("join rejected")
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).
		Str("room", p.RoomID).Str("username", p.Username).Msg("join")
	ctl.Coord.Join(id, domain.RoomID(p.RoomID), p.Username)
}

// handleClientsQuery answers the roster snapshot request with a directed
// reply, immediately from current state.
func (ctl *Controller) handleClientsQuery(id core.ConnID, data []byte) {
	var p struct {
		RoomID string `json:"roomId" validate:"required"`
	}
	if !ctl.decode(id, data, &p) {
		return
	}

	ctl.sendJSON(id, protocol.ConnectedClients{
		Type:    protocol.EventConnectedClients,
		RoomID:  p.RoomID,
		Clients: ctl.Coord.Snapshot(domain.RoomID(p.RoomID)),
	})
}
