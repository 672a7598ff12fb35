package app

import (
	"slices"

	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/rs/zerolog/log"
)

// Channels maps each connection to at most one channel and keeps its mute
// flag. Channels appear with their first member and vanish with the last.
// Owned by the dispatch goroutine.
type Channels struct {
	members map[domain.ConnID]*domain.Membership
}

func NewChannels() *Channels {
	return &Channels{members: make(map[domain.ConnID]*domain.Membership)}
}

// SetChannel moves id into ch, leaving its previous channel in the same
// step. It reports false when id is already on ch.
func (c *Channels) SetChannel(id domain.ConnID, ch domain.ChannelName) bool {
	m, ok := c.members[id]
	if !ok {
		m = &domain.Membership{}
		c.members[id] = m
	}
	if m.Channel == ch {
		return false
	}
	prev := m.Channel
	m.Channel = ch
	log.Info().Str("module", "app.channels").Str("conn", string(id)).
		Str("from", string(prev)).Str("to", string(ch)).Msg("channel changed")
	return true
}

// SetMuted records the mute flag; it is kept even while id has no channel
// so a later join carries it.
func (c *Channels) SetMuted(id domain.ConnID, muted bool) {
	m, ok := c.members[id]
	if !ok {
		m = &domain.Membership{}
		c.members[id] = m
	}
	m.Muted = muted
}

func (c *Channels) Remove(id domain.ConnID) {
	delete(c.members, id)
}

func (c *Channels) ChannelOf(id domain.ConnID) (domain.ChannelName, bool) {
	m, ok := c.members[id]
	if !ok || m.Channel == "" {
		return "", false
	}
	return m.Channel, true
}

func (c *Channels) Muted(id domain.ConnID) bool {
	m, ok := c.members[id]
	return ok && m.Muted
}

// MembersOf returns the connections on ch, sorted.
func (c *Channels) MembersOf(ch domain.ChannelName) []domain.ConnID {
	if ch == "" {
		return nil
	}
	var out []domain.ConnID
	for id, m := range c.members {
		if m.Channel == ch {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

func (c *Channels) SameChannel(a, b domain.ConnID) bool {
	ca, ok := c.ChannelOf(a)
	if !ok {
		return false
	}
	cb, ok := c.ChannelOf(b)
	return ok && ca == cb
}
