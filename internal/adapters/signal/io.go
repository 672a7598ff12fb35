package signal

import (
	"context"
	"time"

	"github.com/dkeye/VirtOffice/internal/app/orch"
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, id domain.ConnID, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.cfg.WriteWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("writePump ping")
				c.Close()
				return
			}
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("writePump set deadline")
				c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("writePump write error")
				c.Close()
				return
			}
		}
	}
}

// readPump feeds the dispatch loop in read order and reports the
// disconnect last, so it always follows the connection's own events.
func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, id domain.ConnID, c *WsSignalConn) {
	defer func() {
		cancel()
		ctl.limiter.Forget(id)
		if err := ctl.Orch.Submit(ctx, orch.Disconnect{From: id}); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("disconnect not delivered")
		}
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("readPump closing")
	}()

	c.conn.SetReadLimit(ctl.cfg.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("readPump read error")
			}
			return
		}
		if !ctl.limiter.Allow(id) {
			log.Debug().Str("module", "signal").Str("conn", string(id)).Msg("rate limited")
			continue
		}
		if err := ctl.handleFrame(ctx, id, c, data); err != nil {
			return
		}
	}
}

// handleFrame decodes one client frame and queues the resulting event.
// Malformed frames are dropped; only a stopped server ends the loop.
func (ctl *SignalWSController) handleFrame(ctx context.Context, id domain.ConnID, c *WsSignalConn, data []byte) error {
	env, err := core.Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad frame")
		return nil
	}
	if env.Type == "ping" {
		ctl.handlePing(c)
		return nil
	}
	ev, err := ctl.decodeEvent(id, env)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Str("type", env.Type).Msg("event dropped")
		return nil
	}
	return ctl.Orch.Submit(ctx, ev)
}
