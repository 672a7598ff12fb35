package signal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dkeye/VirtOffice/internal/app/orch"
	"github.com/dkeye/VirtOffice/internal/config"
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
)

func newTestController() *SignalWSController {
	cfg := &config.Config{
		SendBuffer: 8,
		PingPeriod: time.Second,
		PongWait:   2 * time.Second,
		WriteWait:  time.Second,
		ReadLimit:  4096,
	}
	return NewSignalWSController(orch.New(nil, 8), cfg)
}

func decodeFrame(t *testing.T, ctl *SignalWSController, frame string) (orch.Event, error) {
	t.Helper()
	env, err := core.Decode([]byte(frame))
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	return ctl.decodeEvent("me", env)
}

func TestDecodeEvents(t *testing.T) {
	ctl := newTestController()
	tests := []struct {
		name  string
		frame string
		want  orch.Event
	}{
		{
			name:  "join",
			frame: `{"type":"join","data":{"name":"alice","color":"#f00","position":[1,2,3]}}`,
			want:  orch.Join{From: "me", Name: "alice", Color: "#f00", Position: domain.Vec3{1, 2, 3}},
		},
		{
			name:  "move bare array",
			frame: `{"type":"move","data":[4,5,6]}`,
			want:  orch.Move{From: "me", Position: domain.Vec3{4, 5, 6}},
		},
		{
			name:  "move object",
			frame: `{"type":"move","data":{"position":[7,8,9]}}`,
			want:  orch.Move{From: "me", Position: domain.Vec3{7, 8, 9}},
		},
		{
			name:  "join-channel",
			frame: `{"type":"join-channel","data":"R1"}`,
			want:  orch.JoinChannel{From: "me", Channel: "R1"},
		},
		{
			name:  "mute",
			frame: `{"type":"mute","data":true}`,
			want:  orch.Mute{From: "me", Muted: true},
		},
		{
			name:  "start-meeting",
			frame: `{"type":"start-meeting","data":{"roomName":"R1","meetingName":"Standup","isPrivate":true}}`,
			want:  orch.StartMeeting{From: "me", Room: "R1", Name: "Standup", Private: true},
		},
		{
			name:  "update-meeting",
			frame: `{"type":"update-meeting","data":{"roomName":"R1","meetingName":"Retro","isPrivate":false}}`,
			want:  orch.UpdateMeeting{From: "me", Room: "R1", Name: "Retro"},
		},
		{
			name:  "end-meeting",
			frame: `{"type":"end-meeting","data":{"roomName":"R1"}}`,
			want:  orch.EndMeeting{From: "me", Room: "R1"},
		},
		{
			name:  "ask-to-join",
			frame: `{"type":"ask-to-join","data":{"roomName":"R1"}}`,
			want:  orch.AskToJoin{From: "me", Room: "R1"},
		},
		{
			name:  "leave-meeting",
			frame: `{"type":"leave-meeting","data":{"roomName":"R1"}}`,
			want:  orch.LeaveMeeting{From: "me", Room: "R1"},
		},
		{
			name:  "approve-join",
			frame: `{"type":"approve-join","data":{"roomName":"R1","userId":"u"}}`,
			want:  orch.ApproveJoin{From: "me", Room: "R1", User: "u"},
		},
		{
			name:  "kick-user",
			frame: `{"type":"kick-user","data":{"roomName":"R1","userId":"u"}}`,
			want:  orch.KickUser{From: "me", Room: "R1", User: "u"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeFrame(t, ctl, tt.frame)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeKeepsOpaquePayloads(t *testing.T) {
	ctl := newTestController()

	ev, err := decodeFrame(t, ctl, `{"type":"signal","data":{"to":"peer","data":{"sdp":"v=0","type":"offer"}}}`)
	if err != nil {
		t.Fatalf("decode signal: %v", err)
	}
	sig := ev.(orch.Signal)
	if sig.To != "peer" || string(sig.Data) != `{"sdp":"v=0","type":"offer"}` {
		t.Fatalf("signal = %+v (%s)", sig, sig.Data)
	}

	ev, err = decodeFrame(t, ctl, `{"type":"chat-message","data":{"channel":"R1","message":"hi","timestamp":1}}`)
	if err != nil {
		t.Fatalf("decode chat: %v", err)
	}
	chat := ev.(orch.ChatMessage)
	var back map[string]any
	if err := json.Unmarshal(chat.Raw, &back); err != nil || back["message"] != "hi" {
		t.Fatalf("chat raw = %s (%v)", chat.Raw, err)
	}
	if chat.Channel != "R1" {
		t.Fatalf("chat channel = %q", chat.Channel)
	}
}

func TestDecodeRejectsBadPayloads(t *testing.T) {
	ctl := newTestController()
	for _, frame := range []string{
		`{"type":"start-meeting","data":{"meetingName":"no room"}}`,
		`{"type":"approve-join","data":{"roomName":"R1"}}`,
		`{"type":"signal","data":{"to":"peer"}}`,
		`{"type":"join-channel","data":""}`,
		`{"type":"join-channel","data":42}`,
		`{"type":"mute","data":"yes"}`,
		`{"type":"end-meeting"}`,
	} {
		if ev, err := decodeFrame(t, ctl, frame); err == nil {
			t.Errorf("%s: expected error, got %#v", frame, ev)
		}
	}

	_, err := decodeFrame(t, ctl, `{"type":"teleport","data":{}}`)
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("unknown event error = %v", err)
	}
}
