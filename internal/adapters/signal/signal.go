package signal

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/dkeye/VirtOffice/internal/app/orch"
	"github.com/dkeye/VirtOffice/internal/config"
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type SignalWSController struct {
	Orch     *orch.Orchestrator
	cfg      *config.Config
	limiter  *RateLimiter
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	ctl := &SignalWSController{
		Orch:     o,
		cfg:      cfg,
		limiter:  NewRateLimiter(cfg.RateLimit.Events, cfg.RateLimit.Interval),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	ctl.upgrader = websocket.Upgrader{CheckOrigin: ctl.checkOrigin}
	return ctl
}

func (ctl *SignalWSController) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(ctl.cfg.AllowedOrigins, "*") {
		return true
	}
	return slices.Contains(ctl.cfg.AllowedOrigins, origin)
}

// WsSignalConn is the transport endpoint of one client. It implements
// core.SignalConnection.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
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

// HandleSignal upgrades the request and runs the connection until the
// client goes away or ctx is done.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	id := domain.ConnID(uuid.NewString())
	client := c.GetString("client_token")

	// Headers set by middleware, such as the session cookie, ride on the
	// 101 response.
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, c.Writer.Header())
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("client", client).Msg("new WS connection")

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}

	if err := ctl.Orch.Submit(ctx, orch.Connect{From: id, Conn: conn}); err != nil {
		conn.Close()
		return
	}

	connCtx, cancel := context.WithCancel(ctx)
	go func() {
		<-connCtx.Done()
		conn.Close()
	}()
	go ctl.writePump(connCtx, id, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
