package orch

import (
	"encoding/json"

	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
)

// Event is one inbound occurrence for the dispatch loop. Connect and
// Disconnect come from the transport; the rest are client messages.
type Event interface {
	Sender() domain.ConnID
}

type Connect struct {
	From domain.ConnID
	Conn core.SignalConnection
}

type Disconnect struct {
	From domain.ConnID
}

type Join struct {
	From     domain.ConnID
	Name     string
	Color    string
	Position domain.Vec3
}

type Move struct {
	From     domain.ConnID
	Position domain.Vec3
}

type JoinChannel struct {
	From    domain.ConnID
	Channel domain.ChannelName
}

// ChatMessage carries the client's message verbatim in Raw. Channel is the
// channel the client addressed, empty if it named none.
type ChatMessage struct {
	From    domain.ConnID
	Channel domain.ChannelName
	Raw     json.RawMessage
}

type Signal struct {
	From domain.ConnID
	To   domain.ConnID
	Data json.RawMessage
}

type Mute struct {
	From  domain.ConnID
	Muted bool
}

type StartMeeting struct {
	From    domain.ConnID
	Room    domain.RoomName
	Name    string
	Private bool
}

type EndMeeting struct {
	From domain.ConnID
	Room domain.RoomName
}

type UpdateMeeting struct {
	From    domain.ConnID
	Room    domain.RoomName
	Name    string
	Private bool
}

type AskToJoin struct {
	From domain.ConnID
	Room domain.RoomName
}

type ApproveJoin struct {
	From domain.ConnID
	Room domain.RoomName
	User domain.ConnID
}

type LeaveMeeting struct {
	From domain.ConnID
	Room domain.RoomName
}

type KickUser struct {
	From domain.ConnID
	Room domain.RoomName
	User domain.ConnID
}

func (e Connect) Sender() domain.ConnID       { return e.From }
func (e Disconnect) Sender() domain.ConnID    { return e.From }
func (e Join) Sender() domain.ConnID          { return e.From }
func (e Move) Sender() domain.ConnID          { return e.From }
func (e JoinChannel) Sender() domain.ConnID   { return e.From }
func (e ChatMessage) Sender() domain.ConnID   { return e.From }
func (e Signal) Sender() domain.ConnID        { return e.From }
func (e Mute) Sender() domain.ConnID          { return e.From }
func (e StartMeeting) Sender() domain.ConnID  { return e.From }
func (e EndMeeting) Sender() domain.ConnID    { return e.From }
func (e UpdateMeeting) Sender() domain.ConnID { return e.From }
func (e AskToJoin) Sender() domain.ConnID     { return e.From }
func (e ApproveJoin) Sender() domain.ConnID   { return e.From }
func (e LeaveMeeting) Sender() domain.ConnID  { return e.From }
func (e KickUser) Sender() domain.ConnID      { return e.From }
