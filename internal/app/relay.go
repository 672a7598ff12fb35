package app

import (
	"encoding/json"

	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/rs/zerolog/log"
)

// Emitter delivers a targeted outbound event.
type Emitter interface {
	Send(to domain.ConnID, typ string, v any) bool
}

// SignalMessage is what the receiving peer gets. Data is never inspected.
type SignalMessage struct {
	From domain.ConnID   `json:"from"`
	Data json.RawMessage `json:"data"`
}

// SignalRelay forwards peer negotiation payloads between connections that
// share a channel. It keeps no state of its own.
type SignalRelay struct {
	channels *Channels
	out      Emitter
}

func NewSignalRelay(channels *Channels, out Emitter) *SignalRelay {
	return &SignalRelay{channels: channels, out: out}
}

// Relay reports whether payload was handed to the transport for to.
func (r *SignalRelay) Relay(from, to domain.ConnID, payload json.RawMessage) bool {
	if !r.channels.SameChannel(from, to) {
		log.Debug().Str("module", "app.relay").Str("from", string(from)).Str("to", string(to)).Msg("signal dropped: not on same channel")
		return false
	}
	return r.out.Send(to, core.EventSignal, SignalMessage{From: from, Data: payload})
}
