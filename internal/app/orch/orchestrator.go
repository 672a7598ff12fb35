package orch

import (
	"context"
	"errors"

	"github.com/dkeye/VirtOffice/internal/app"
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the event router and the only writer of the stores.
// Events are applied one at a time by Run, so the stores need no locks.
// Events sent by one connection keep their order; nothing is promised
// across connections.
type Orchestrator struct {
	Registry *app.Registry
	Channels *app.Channels
	Meetings *app.Meetings
	Relay    *app.SignalRelay
	Policy   app.Policy

	inbox      chan Event
	playersSeq uint64
	roomsSeq   uint64
}

func New(policy app.Policy, inboxSize int) *Orchestrator {
	o := &Orchestrator{
		Registry: app.NewRegistry(),
		Channels: app.NewChannels(),
		Meetings: app.NewMeetings(),
		Policy:   policy,
		inbox:    make(chan Event, inboxSize),
	}
	o.Relay = app.NewSignalRelay(o.Channels, o)
	return o
}

// Submit queues ev for the dispatch loop, blocking until there is room or
// ctx is done.
func (o *Orchestrator) Submit(ctx context.Context, ev Event) error {
	select {
	case o.inbox <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run applies queued events until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	log.Info().Str("module", "orch").Msg("dispatch loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "orch").Msg("dispatch loop stopped")
			return nil
		case ev := <-o.inbox:
			o.Dispatch(ev)
		}
	}
}

// Dispatch applies a single event to completion.
func (o *Orchestrator) Dispatch(ev Event) {
	switch e := ev.(type) {
	case Connect:
		o.onConnect(e)
	case Disconnect:
		o.onDisconnect(e)
	case Join:
		o.onJoin(e)
	case Move:
		o.onMove(e)
	case JoinChannel:
		o.onJoinChannel(e)
	case ChatMessage:
		o.onChatMessage(e)
	case Signal:
		o.Relay.Relay(e.From, e.To, e.Data)
	case Mute:
		o.onMute(e)
	case StartMeeting:
		o.onStartMeeting(e)
	case EndMeeting:
		o.onEndMeeting(e)
	case UpdateMeeting:
		o.onUpdateMeeting(e)
	case AskToJoin:
		o.onAskToJoin(e)
	case ApproveJoin:
		o.onApproveJoin(e)
	case LeaveMeeting:
		o.onLeaveMeeting(e)
	case KickUser:
		o.onKickUser(e)
	default:
		log.Warn().Str("module", "orch").Str("conn", string(ev.Sender())).Msgf("unhandled event %T", ev)
	}
}

// Send implements app.Emitter.
func (o *Orchestrator) Send(to domain.ConnID, typ string, v any) bool {
	conn, ok := o.Registry.Conn(to)
	if !ok {
		return false
	}
	f, err := core.Encode(typ, v, 0)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("send encode")
		return false
	}
	return o.deliver(to, conn, f)
}

func (o *Orchestrator) sendMany(ids []domain.ConnID, typ string, v any) {
	if len(ids) == 0 {
		return
	}
	f, err := core.Encode(typ, v, 0)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("sendMany encode")
		return
	}
	for _, id := range ids {
		if conn, ok := o.Registry.Conn(id); ok {
			o.deliver(id, conn, f)
		}
	}
}

func (o *Orchestrator) broadcast(typ string, v any, seq uint64) {
	f, err := core.Encode(typ, v, seq)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("broadcast encode")
		return
	}
	sent := 0
	o.Registry.Each(func(id domain.ConnID, conn core.SignalConnection) {
		if o.deliver(id, conn, f) {
			sent++
		}
	})
	log.Debug().Str("module", "orch").Str("type", typ).Uint64("seq", seq).Int("sent_to", sent).Msg("broadcast")
}

func (o *Orchestrator) broadcastPlayers() {
	o.playersSeq++
	o.broadcast(core.EventPlayers, o.Registry.Players(), o.playersSeq)
}

func (o *Orchestrator) broadcastRooms() {
	o.roomsSeq++
	o.broadcast(core.EventRoomsState, o.Meetings.Snapshot(), o.roomsSeq)
}

func (o *Orchestrator) deliver(id domain.ConnID, conn core.SignalConnection, f core.Frame) bool {
	err := conn.TrySend(f)
	if err == nil {
		return true
	}
	if errors.Is(err, core.ErrConnClosed) {
		// Teardown already underway; its Disconnect is queued behind us.
		log.Debug().Str("module", "orch").Str("conn", string(id)).Msg("deliver to closed connection")
		return false
	}
	log.Warn().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("deliver failed")
	if o.Policy == nil {
		return false
	}
	switch o.Policy.OnBackPressure(id) {
	case app.CloseConnection:
		conn.Close()
	case app.DropFrame, app.NoAction:
	}
	return false
}
