package core

import (
	"encoding/json"
	"fmt"
)

// Inbound event names.
const (
	EventJoin          = "join"
	EventMove          = "move"
	EventJoinChannel   = "join-channel"
	EventChatMessage   = "chat-message"
	EventSignal        = "signal"
	EventMute          = "mute"
	EventStartMeeting  = "start-meeting"
	EventEndMeeting    = "end-meeting"
	EventUpdateMeeting = "update-meeting"
	EventAskToJoin     = "ask-to-join"
	EventApproveJoin   = "approve-join"
	EventLeaveMeeting  = "leave-meeting"
	EventKickUser      = "kick-user"
)

// Outbound event names.
const (
	EventWelcome           = "welcome"
	EventPlayers           = "players"
	EventRoomsState        = "rooms-state"
	EventJoinRequest       = "join-request"
	EventJoinApproved      = "join-approved"
	EventKicked            = "kicked"
	EventUserJoinedChannel = "user-joined-channel"
	EventUserMute          = "user-mute"
)

// Envelope is the wire frame in both directions.
// Seq is set only on full-state broadcasts so clients can skip duplicates.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
	Seq  uint64          `json:"seq,omitempty"`
}

// Encode builds a frame for an outbound event.
func Encode(typ string, v any, seq uint64) (Frame, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", typ, err)
	}
	b, err := json.Marshal(Envelope{Type: typ, Data: data, Seq: seq})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", typ, err)
	}
	return b, nil
}

// Decode splits a raw inbound frame into its event name and payload.
func Decode(b []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	return env, nil
}
