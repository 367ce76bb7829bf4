// Package signal is the WebSocket adapter: it upgrades connections, owns
// their read/write pumps and dispatches inbound events to the coordinator.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sgurov/coderoom/internal/app"
	"github.com/sgurov/coderoom/internal/config"
	"github.com/sgurov/coderoom/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	Coord *app.Coordinator

	cfg      *config.Config
	limiter  *IPRateLimiter
	validate *validator.Validate
}

func NewController(cfg *config.Config, coord *app.Coordinator) *Controller {
	return &Controller{
		Coord:    coord,
		cfg:      cfg,
		limiter:  NewIPRateLimiter(cfg.RateLimitRPS),
		validate: validator.New(),
	}
}

// wsConn wraps one gorilla connection behind core.SignalConnection. Sends
// go through a bounded channel; a full buffer drops the frame instead of
// blocking the broadcaster.
type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and attaches a fresh connection. The
// connection id is assigned here and lives until detach; a client that
// reconnects gets a new one.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	if !ctl.limiter.Allow(c.ClientIP()) {
		c.String(http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Str("module", "signal").Err(err).Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.cfg.ReadLimit)

	id := core.ConnID(uuid.NewString())
	log.Info().Str("module", "signal").Str("conn", string(id)).
		Str("client_token", c.GetString("client_token")).Msg("new WS connection")

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}
	ctl.Coord.Rooms.Register(id, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
