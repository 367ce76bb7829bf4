package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/protocol"
)

func (ctl *Controller) handlePing(id core.ConnID) {
	ctl.sendJSON(id, protocol.Pong{Type: protocol.EventPong})
}

func (ctl *Controller) sendJSON(id core.ConnID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	ctl.Coord.Rooms.SendTo(id, b)
}
