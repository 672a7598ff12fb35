package signal

import (
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/rs/zerolog/log"
)

// handlePing answers application-level pings directly; they never reach
// the dispatch loop.
func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	f, err := core.Encode("pong", struct{}{}, 0)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("pong encode")
		return
	}
	_ = conn.TrySend(f)
}
