package domain

import (
	"slices"
	"testing"
)

func TestNewMeetingOwnerIsParticipant(t *testing.T) {
	m := NewMeeting("R1", "Standup", true, "a")
	if !m.IsParticipant("a") {
		t.Fatalf("expected owner in participants, got %v", m.Participants)
	}
	if len(m.JoinRequests) != 0 {
		t.Fatalf("expected no join requests, got %v", m.JoinRequests)
	}
}

func TestStrikeRemovesFromBothSets(t *testing.T) {
	m := NewMeeting("R1", "Standup", true, "a")
	m.Participants = append(m.Participants, "b")
	m.JoinRequests = append(m.JoinRequests, "c", "b")

	m.Strike("b")

	if !slices.Equal(m.Participants, []ConnID{"a"}) {
		t.Fatalf("participants = %v", m.Participants)
	}
	if !slices.Equal(m.JoinRequests, []ConnID{"c"}) {
		t.Fatalf("joinRequests = %v", m.JoinRequests)
	}
}

func TestRoomsStateCloneIsDeep(t *testing.T) {
	s := RoomsState{"R1": {Meeting: NewMeeting("R1", "Standup", false, "a")}}
	c := s.Clone()

	c["R1"].Meeting.Participants = append(c["R1"].Meeting.Participants, "b")
	c["R1"].Meeting.Name = "Retro"

	orig, _ := s.Meeting("R1")
	if orig.Name != "Standup" || len(orig.Participants) != 1 {
		t.Fatalf("clone shares state with original: %+v", orig)
	}
}

func TestRoomsStateMeetingMissing(t *testing.T) {
	s := RoomsState{"R1": {}}
	if _, ok := s.Meeting("R1"); ok {
		t.Fatal("expected no meeting for empty entry")
	}
	if _, ok := s.Meeting("R2"); ok {
		t.Fatal("expected no meeting for unknown room")
	}
}
