package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sgurov/coderoom/internal/core"
	"github.com/sgurov/coderoom/internal/protocol"
)

const writeWait = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(ctl.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump serializes a connection's events: each one is fully handled
// before the next is read. On any read failure the two disconnect phases
// run in order, first with membership still intact, then the final sweep.
func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, id core.ConnID, c *wsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("readPump closing")
		ctl.Coord.Disconnecting(id)
		ctl.Coord.Disconnect(id)
		cancel()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("readPump read error")
				}
				return
			}
			ctl.dispatch(id, data)
		}
	}
}

// dispatch routes one inbound event. A malformed or unknown event is logged
// and dropped; one connection's bad frame never affects the others.
func (ctl *Controller) dispatch(id core.ConnID, data []byte) {
	var env protocol.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad json")
		return
	}

	switch env.Type {
	case protocol.EventJoin:
		ctl.handleJoin(id, data)
	case protocol.EventCodeChange:
		ctl.handleCodeChange(id, data)
	case protocol.EventSyncCode:
		ctl.handleSyncCode(id, data)
	case protocol.EventOutput:
		ctl.handleOutput(id, data)
	case protocol.EventCallInitiated:
		ctl.handleCallInitiated(id, data)
	case protocol.EventJoinedCall:
		ctl.handleJoinedCall(id, data)
	case protocol.EventCallEnded:
		ctl.handleCallEnded(id, data)
	case protocol.EventUserLeftCall:
		ctl.handleUserLeftCall(id, data)
	case protocol.EventWebRTCOffer, protocol.EventWebRTCAnswer, protocol.EventWebRTCICECandidate:
		ctl.handleWebRTC(env.Type, id, data)
	case protocol.EventGetConnectedClients:
		ctl.handleClientsQuery(id, data)
	case protocol.EventPing:
		ctl.handlePing(id)
	default:
		log.Warn().Str("module", "signal").Str("type", string(env.Type)).Msg("unknown event")
	}
}

// decode unmarshals and validates one inbound payload. False means the
// event must be dropped.
func (ctl *Controller) decode(id core.ConnID, data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad payload")
		return false
	}
	if err := ctl.validate.Struct(v); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("incomplete payload")
		return false
	}
	return true
}
