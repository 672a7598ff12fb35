package domain

import "slices"

type RoomName string

// Meeting is the optional ownable session bound to a room.
// OwnerID is always present in Participants, and no connection is both a
// participant and a pending requester.
type Meeting struct {
	Room         RoomName `json:"roomName"`
	Name         string   `json:"name"`
	IsPrivate    bool     `json:"isPrivate"`
	OwnerID      ConnID   `json:"ownerId"`
	Participants []ConnID `json:"participants"`
	JoinRequests []ConnID `json:"joinRequests"`
}

func NewMeeting(room RoomName, name string, private bool, owner ConnID) *Meeting {
	return &Meeting{
		Room:         room,
		Name:         name,
		IsPrivate:    private,
		OwnerID:      owner,
		Participants: []ConnID{owner},
		JoinRequests: []ConnID{},
	}
}

func (m *Meeting) IsParticipant(id ConnID) bool { return slices.Contains(m.Participants, id) }
func (m *Meeting) IsRequested(id ConnID) bool   { return slices.Contains(m.JoinRequests, id) }

// Strike removes id from both the participant set and the request queue.
func (m *Meeting) Strike(id ConnID) {
	m.Participants = slices.DeleteFunc(m.Participants, func(c ConnID) bool { return c == id })
	m.JoinRequests = slices.DeleteFunc(m.JoinRequests, func(c ConnID) bool { return c == id })
}

func (m *Meeting) Clone() *Meeting {
	c := *m
	c.Participants = slices.Clone(m.Participants)
	c.JoinRequests = slices.Clone(m.JoinRequests)
	if c.Participants == nil {
		c.Participants = []ConnID{}
	}
	if c.JoinRequests == nil {
		c.JoinRequests = []ConnID{}
	}
	return &c
}

// RoomState is the per-room entry of RoomsState. Rooms without a meeting
// have no entry at all.
type RoomState struct {
	Meeting *Meeting `json:"meeting,omitempty"`
}

// RoomsState is the full room map broadcast to every client.
type RoomsState map[RoomName]RoomState

// Clone returns a deep copy safe to hand to encoders or other goroutines.
func (s RoomsState) Clone() RoomsState {
	out := make(RoomsState, len(s))
	for name, rs := range s {
		if rs.Meeting == nil {
			continue
		}
		out[name] = RoomState{Meeting: rs.Meeting.Clone()}
	}
	return out
}

func (s RoomsState) Meeting(name RoomName) (*Meeting, bool) {
	rs, ok := s[name]
	if !ok || rs.Meeting == nil {
		return nil, false
	}
	return rs.Meeting, true
}
