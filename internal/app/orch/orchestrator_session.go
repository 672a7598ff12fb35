package orch

import (
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/rs/zerolog/log"
)

type welcome struct {
	ID string `json:"id"`
}

// onConnect registers the connection and brings it up to date with the
// current roster and rooms without disturbing anyone else.
func (o *Orchestrator) onConnect(e Connect) {
	o.Registry.Bind(e.From, e.Conn)
	o.Send(e.From, core.EventWelcome, welcome{ID: string(e.From)})

	for _, m := range []struct {
		typ string
		v   any
		seq uint64
	}{
		{core.EventPlayers, o.Registry.Players(), o.playersSeq},
		{core.EventRoomsState, o.Meetings.Snapshot(), o.roomsSeq},
	} {
		f, err := core.Encode(m.typ, m.v, m.seq)
		if err != nil {
			log.Error().Err(err).Str("module", "orch").Msg("connect snapshot encode")
			continue
		}
		o.deliver(e.From, e.Conn, f)
	}
}

// onDisconnect purges the connection: player, then channel, then meetings,
// then tells everyone.
func (o *Orchestrator) onDisconnect(e Disconnect) {
	if !o.Registry.Unbind(e.From) {
		return
	}
	o.Channels.Remove(e.From)
	o.Meetings.Disconnect(e.From)
	log.Info().Str("module", "orch").Str("conn", string(e.From)).Msg("disconnected")

	o.broadcastPlayers()
	o.broadcastRooms()
}

func (o *Orchestrator) onJoin(e Join) {
	if !o.Registry.Join(e.From, e.Name, e.Color, e.Position) {
		return
	}
	o.broadcastPlayers()
}

func (o *Orchestrator) onMove(e Move) {
	if !o.Registry.Move(e.From, e.Position) {
		log.Debug().Str("module", "orch").Str("conn", string(e.From)).Msg("move before join dropped")
		return
	}
	o.broadcastPlayers()
}
