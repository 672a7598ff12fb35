package app

import "github.com/dkeye/VirtOffice/internal/domain"

// Meetings holds at most one meeting per room and applies the meeting state
// machine. Every method either applies a whole transition and returns true,
// or leaves the state untouched and returns false.
// Owned by the dispatch goroutine.
type Meetings struct {
	state domain.RoomsState
}

func NewMeetings() *Meetings {
	return &Meetings{state: make(domain.RoomsState)}
}

func (m *Meetings) Meeting(room domain.RoomName) (*domain.Meeting, bool) {
	return m.state.Meeting(room)
}

// Snapshot returns a deep copy of the rooms map.
func (m *Meetings) Snapshot() domain.RoomsState {
	return m.state.Clone()
}

func (m *Meetings) Start(room domain.RoomName, name string, private bool, owner domain.ConnID) bool {
	if _, ok := m.state.Meeting(room); ok {
		return false
	}
	m.state[room] = domain.RoomState{Meeting: domain.NewMeeting(room, name, private, owner)}
	logMeeting(room, owner).Str("name", name).Bool("private", private).Msg("meeting started")
	return true
}

func (m *Meetings) End(room domain.RoomName, requester domain.ConnID) bool {
	mt, ok := m.owned(room, requester)
	if !ok {
		return false
	}
	m.destroy(mt)
	return true
}

func (m *Meetings) Update(room domain.RoomName, requester domain.ConnID, name string, private bool) bool {
	mt, ok := m.owned(room, requester)
	if !ok {
		return false
	}
	mt.Name = name
	mt.IsPrivate = private
	logMeeting(room, requester).Str("name", name).Bool("private", private).Msg("meeting updated")
	return true
}

// AskToJoin queues requester on a private meeting and returns the owner to
// notify.
func (m *Meetings) AskToJoin(room domain.RoomName, requester domain.ConnID) (domain.ConnID, bool) {
	mt, ok := m.state.Meeting(room)
	if !ok || !mt.IsPrivate {
		return "", false
	}
	if mt.IsRequested(requester) || mt.IsParticipant(requester) {
		return "", false
	}
	mt.JoinRequests = append(mt.JoinRequests, requester)
	logMeeting(room, requester).Msg("join requested")
	return mt.OwnerID, true
}

// Approve moves user from the request queue into the participant set.
func (m *Meetings) Approve(room domain.RoomName, requester, user domain.ConnID) bool {
	mt, ok := m.owned(room, requester)
	if !ok || !mt.IsRequested(user) {
		return false
	}
	mt.Strike(user)
	mt.Participants = append(mt.Participants, user)
	logMeeting(room, user).Msg("join approved")
	return true
}

// Kick removes user from the meeting, whether admitted or still pending.
// The owner cannot kick itself.
func (m *Meetings) Kick(room domain.RoomName, requester, user domain.ConnID) bool {
	mt, ok := m.owned(room, requester)
	if !ok || user == mt.OwnerID {
		return false
	}
	if !mt.IsParticipant(user) && !mt.IsRequested(user) {
		return false
	}
	mt.Strike(user)
	logMeeting(room, user).Msg("user kicked")
	return true
}

// Leave removes requester from the meeting. When the owner leaves the
// meeting ends; ended reports that case.
func (m *Meetings) Leave(room domain.RoomName, requester domain.ConnID) (ended, ok bool) {
	mt, ok := m.state.Meeting(room)
	if !ok {
		return false, false
	}
	if mt.OwnerID == requester {
		m.destroy(mt)
		return true, true
	}
	mt.Strike(requester)
	logMeeting(room, requester).Msg("left meeting")
	return false, true
}

// Disconnect purges id from every room.
func (m *Meetings) Disconnect(id domain.ConnID) {
	m.state = Sweep(id, m.state)
}

func (m *Meetings) owned(room domain.RoomName, requester domain.ConnID) (*domain.Meeting, bool) {
	mt, ok := m.state.Meeting(room)
	if !ok || mt.OwnerID != requester {
		return nil, false
	}
	return mt, true
}

func (m *Meetings) destroy(mt *domain.Meeting) {
	delete(m.state, mt.Room)
	logMeeting(mt.Room, mt.OwnerID).Msg("meeting ended")
}

// Sweep returns a copy of state with id purged: meetings it owns are
// dropped, and it is struck from every other meeting's participants and
// join requests. state is not modified.
func Sweep(id domain.ConnID, state domain.RoomsState) domain.RoomsState {
	out := make(domain.RoomsState, len(state))
	for room, rs := range state {
		if rs.Meeting == nil {
			continue
		}
		if rs.Meeting.OwnerID == id {
			logMeeting(room, id).Msg("meeting ended by owner disconnect")
			continue
		}
		mt := rs.Meeting.Clone()
		mt.Strike(id)
		out[room] = domain.RoomState{Meeting: mt}
	}
	return out
}
