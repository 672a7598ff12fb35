package app

import (
	"testing"

	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func TestRegistryJoinMoveUnbind(t *testing.T) {
	r := NewRegistry()
	r.Bind("a", nopConn{})

	if r.Move("a", domain.Vec3{1, 0, 1}) {
		t.Fatal("move before join should be dropped")
	}
	if len(r.Players()) != 0 {
		t.Fatalf("expected empty roster, got %v", r.Players())
	}

	if !r.Join("a", "alice", "#f00", domain.Vec3{0, 0, 0}) {
		t.Fatal("join should apply")
	}
	if !r.Move("a", domain.Vec3{3, 0, 4}) {
		t.Fatal("move after join should apply")
	}
	p, ok := r.Player("a")
	if !ok || p.Position != (domain.Vec3{3, 0, 4}) || p.Name != "alice" {
		t.Fatalf("player = %+v", p)
	}

	if !r.Unbind("a") {
		t.Fatal("unbind should report a known connection")
	}
	if r.Unbind("a") {
		t.Fatal("second unbind should report unknown")
	}
	if len(r.Players()) != 0 || r.Len() != 0 {
		t.Fatalf("registry not empty after unbind: %v", r.Players())
	}
}

func TestRegistryJoinOverwritesAndKeepsOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []domain.ConnID{"a", "b", "c"} {
		r.Bind(id, nopConn{})
		r.Join(id, "same", "#000", domain.Vec3{})
	}
	r.Join("a", "renamed", "#fff", domain.Vec3{9, 9, 9})
	r.Unbind("b")

	players := r.Players()
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].ID != "a" || players[0].Name != "renamed" || players[1].ID != "c" {
		t.Fatalf("roster = %+v", players)
	}
}

func TestRegistryJoinUnknownConnection(t *testing.T) {
	r := NewRegistry()
	if r.Join("ghost", "x", "y", domain.Vec3{}) {
		t.Fatal("join without a live connection should be dropped")
	}
}
