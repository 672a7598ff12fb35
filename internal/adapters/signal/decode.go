package signal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/VirtOffice/internal/app/orch"
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
)

var ErrUnknownEvent = errors.New("unknown event")

type joinPayload struct {
	Name     string      `json:"name" validate:"max=64"`
	Color    string      `json:"color" validate:"max=32"`
	Position domain.Vec3 `json:"position"`
}

type movePayload struct {
	Position domain.Vec3 `json:"position"`
}

type chatPayload struct {
	Channel string `json:"channel" validate:"max=128"`
}

type signalPayload struct {
	To   string          `json:"to" validate:"required,max=64"`
	Data json.RawMessage `json:"data" validate:"required"`
}

type meetingPayload struct {
	RoomName    string `json:"roomName" validate:"required,max=128"`
	MeetingName string `json:"meetingName" validate:"max=128"`
	IsPrivate   bool   `json:"isPrivate"`
}

type roomPayload struct {
	RoomName string `json:"roomName" validate:"required,max=128"`
}

type targetPayload struct {
	RoomName string `json:"roomName" validate:"required,max=128"`
	UserID   string `json:"userId" validate:"required,max=64"`
}

// decodeEvent turns one client envelope into a dispatch event. Payloads
// other than signal data and chat messages are fully validated here so the
// router only ever sees well-formed events.
func (ctl *SignalWSController) decodeEvent(id domain.ConnID, env core.Envelope) (orch.Event, error) {
	switch env.Type {
	case core.EventJoin:
		var p joinPayload
		if err := ctl.bind(env.Data, &p); err != nil {
			return nil, err
		}
		return orch.Join{From: id, Name: p.Name, Color: p.Color, Position: p.Position}, nil

	case core.EventMove:
		pos, err := decodePosition(env.Data)
		if err != nil {
			return nil, err
		}
		return orch.Move{From: id, Position: pos}, nil

	case core.EventJoinChannel:
		var ch string
		if err := json.Unmarshal(env.Data, &ch); err != nil {
			return nil, fmt.Errorf("join-channel payload: %w", err)
		}
		if err := ctl.validate.Var(ch, "required,max=128"); err != nil {
			return nil, fmt.Errorf("join-channel payload: %w", err)
		}
		return orch.JoinChannel{From: id, Channel: domain.ChannelName(ch)}, nil

	case core.EventChatMessage:
		var p chatPayload
		if err := ctl.bind(env.Data, &p); err != nil {
			return nil, err
		}
		return orch.ChatMessage{From: id, Channel: domain.ChannelName(p.Channel), Raw: env.Data}, nil

	case core.EventSignal:
		var p signalPayload
		if err := ctl.bind(env.Data, &p); err != nil {
			return nil, err
		}
		return orch.Signal{From: id, To: domain.ConnID(p.To), Data: p.Data}, nil

	case core.EventMute:
		var muted bool
		if err := json.Unmarshal(env.Data, &muted); err != nil {
			return nil, fmt.Errorf("mute payload: %w", err)
		}
		return orch.Mute{From: id, Muted: muted}, nil

	case core.EventStartMeeting, core.EventUpdateMeeting:
		var p meetingPayload
		if err := ctl.bind(env.Data, &p); err != nil {
			return nil, err
		}
		room := domain.RoomName(p.RoomName)
		if env.Type == core.EventStartMeeting {
			return orch.StartMeeting{From: id, Room: room, Name: p.MeetingName, Private: p.IsPrivate}, nil
		}
		return orch.UpdateMeeting{From: id, Room: room, Name: p.MeetingName, Private: p.IsPrivate}, nil

	case core.EventEndMeeting, core.EventAskToJoin, core.EventLeaveMeeting:
		var p roomPayload
		if err := ctl.bind(env.Data, &p); err != nil {
			return nil, err
		}
		room := domain.RoomName(p.RoomName)
		switch env.Type {
		case core.EventEndMeeting:
			return orch.EndMeeting{From: id, Room: room}, nil
		case core.EventAskToJoin:
			return orch.AskToJoin{From: id, Room: room}, nil
		default:
			return orch.LeaveMeeting{From: id, Room: room}, nil
		}

	case core.EventApproveJoin, core.EventKickUser:
		var p targetPayload
		if err := ctl.bind(env.Data, &p); err != nil {
			return nil, err
		}
		room, user := domain.RoomName(p.RoomName), domain.ConnID(p.UserID)
		if env.Type == core.EventApproveJoin {
			return orch.ApproveJoin{From: id, Room: room, User: user}, nil
		}
		return orch.KickUser{From: id, Room: room, User: user}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
}

func (ctl *SignalWSController) bind(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errors.New("missing payload")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("bad payload: %w", err)
	}
	if err := ctl.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// decodePosition accepts either a bare [x,y,z] or {"position":[x,y,z]}.
func decodePosition(data json.RawMessage) (domain.Vec3, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pos domain.Vec3
		if err := json.Unmarshal(data, &pos); err != nil {
			return domain.Vec3{}, fmt.Errorf("move payload: %w", err)
		}
		return pos, nil
	}
	var p movePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Vec3{}, fmt.Errorf("move payload: %w", err)
	}
	return p.Position, nil
}
