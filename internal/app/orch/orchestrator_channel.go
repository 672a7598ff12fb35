package orch

import (
	"slices"

	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/rs/zerolog/log"
)

type channelPeer struct {
	UserID domain.ConnID `json:"userId"`
	Muted  bool          `json:"muted"`
}

func (o *Orchestrator) peersOf(id domain.ConnID, ch domain.ChannelName) []domain.ConnID {
	return slices.DeleteFunc(o.Channels.MembersOf(ch), func(c domain.ConnID) bool { return c == id })
}

func (o *Orchestrator) onJoinChannel(e JoinChannel) {
	if _, ok := o.Registry.Conn(e.From); !ok {
		return
	}
	if !o.Channels.SetChannel(e.From, e.Channel) {
		return
	}
	o.sendMany(o.peersOf(e.From, e.Channel), core.EventUserJoinedChannel, channelPeer{
		UserID: e.From,
		Muted:  o.Channels.Muted(e.From),
	})
}

// onChatMessage fans the message out to the sender's channel, sender
// included. A message addressed to another channel is dropped.
func (o *Orchestrator) onChatMessage(e ChatMessage) {
	ch, ok := o.Channels.ChannelOf(e.From)
	if !ok || (e.Channel != "" && e.Channel != ch) {
		log.Debug().Str("module", "orch").Str("conn", string(e.From)).Str("channel", string(e.Channel)).Msg("chat dropped")
		return
	}
	o.sendMany(o.Channels.MembersOf(ch), core.EventChatMessage, e.Raw)
}

func (o *Orchestrator) onMute(e Mute) {
	if _, ok := o.Registry.Conn(e.From); !ok {
		return
	}
	o.Channels.SetMuted(e.From, e.Muted)
	ch, ok := o.Channels.ChannelOf(e.From)
	if !ok {
		return
	}
	o.sendMany(o.peersOf(e.From, ch), core.EventUserMute, channelPeer{UserID: e.From, Muted: e.Muted})
}
