package orch

import (
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/rs/zerolog/log"
)

type joinRequest struct {
	RoomName domain.RoomName `json:"roomName"`
	UserID   domain.ConnID   `json:"userId"`
	User     *domain.Player  `json:"user"`
}

type roomNotice struct {
	RoomName domain.RoomName `json:"roomName"`
}

func dropped(ev Event, room domain.RoomName) {
	log.Debug().Str("module", "orch").Str("conn", string(ev.Sender())).Str("room", string(room)).Msgf("%T dropped", ev)
}

func (o *Orchestrator) onStartMeeting(e StartMeeting) {
	if !o.Meetings.Start(e.Room, e.Name, e.Private, e.From) {
		dropped(e, e.Room)
		return
	}
	o.broadcastRooms()
}

func (o *Orchestrator) onEndMeeting(e EndMeeting) {
	if !o.Meetings.End(e.Room, e.From) {
		dropped(e, e.Room)
		return
	}
	o.broadcastRooms()
}

func (o *Orchestrator) onUpdateMeeting(e UpdateMeeting) {
	if !o.Meetings.Update(e.Room, e.From, e.Name, e.Private) {
		dropped(e, e.Room)
		return
	}
	o.broadcastRooms()
}

func (o *Orchestrator) onAskToJoin(e AskToJoin) {
	owner, ok := o.Meetings.AskToJoin(e.Room, e.From)
	if !ok {
		dropped(e, e.Room)
		return
	}
	req := joinRequest{RoomName: e.Room, UserID: e.From}
	if p, ok := o.Registry.Player(e.From); ok {
		req.User = &p
	}
	o.Send(owner, core.EventJoinRequest, req)
	o.broadcastRooms()
}

func (o *Orchestrator) onApproveJoin(e ApproveJoin) {
	if !o.Meetings.Approve(e.Room, e.From, e.User) {
		dropped(e, e.Room)
		return
	}
	o.Send(e.User, core.EventJoinApproved, roomNotice{RoomName: e.Room})
	o.broadcastRooms()
}

func (o *Orchestrator) onKickUser(e KickUser) {
	if !o.Meetings.Kick(e.Room, e.From, e.User) {
		dropped(e, e.Room)
		return
	}
	o.Send(e.User, core.EventKicked, roomNotice{RoomName: e.Room})
	o.broadcastRooms()
}

func (o *Orchestrator) onLeaveMeeting(e LeaveMeeting) {
	if _, ok := o.Meetings.Leave(e.Room, e.From); !ok {
		dropped(e, e.Room)
		return
	}
	o.broadcastRooms()
}
