package app

import (
	"github.com/dkeye/VirtOffice/internal/core"
	"github.com/dkeye/VirtOffice/internal/domain"
	"github.com/rs/zerolog/log"
)

type sessionEntry struct {
	Conn   core.SignalConnection
	Player *domain.Player
}

// Registry is the session registry: live connections and the player bound
// to each. It is owned by the dispatch goroutine and is not safe for
// concurrent use.
type Registry struct {
	sessions map[domain.ConnID]*sessionEntry
	// roster keeps players in first-join order so broadcasts are stable.
	roster []domain.ConnID
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.ConnID]*sessionEntry),
	}
}

func (r *Registry) Bind(id domain.ConnID, conn core.SignalConnection) {
	r.sessions[id] = &sessionEntry{Conn: conn}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("bound connection")
}

// Unbind drops the connection and its player. It reports whether the
// connection was known.
func (r *Registry) Unbind(id domain.ConnID) bool {
	e, ok := r.sessions[id]
	if !ok {
		return false
	}
	if e.Player != nil {
		r.dropFromRoster(id)
	}
	delete(r.sessions, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unbound connection")
	return true
}

// Join upserts the player for a live connection. Names are not unique.
func (r *Registry) Join(id domain.ConnID, name, color string, pos domain.Vec3) bool {
	e, ok := r.sessions[id]
	if !ok {
		return false
	}
	if e.Player == nil {
		r.roster = append(r.roster, id)
	}
	e.Player = domain.NewPlayer(id, name, color, pos)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("name", name).Msg("player joined")
	return true
}

// Move updates the position of an existing player; moves before join are dropped.
func (r *Registry) Move(id domain.ConnID, pos domain.Vec3) bool {
	e, ok := r.sessions[id]
	if !ok || e.Player == nil {
		return false
	}
	e.Player.Position = pos
	return true
}

func (r *Registry) Player(id domain.ConnID) (domain.Player, bool) {
	e, ok := r.sessions[id]
	if !ok || e.Player == nil {
		return domain.Player{}, false
	}
	return *e.Player, true
}

// Players returns a copy of the roster.
func (r *Registry) Players() []domain.Player {
	out := make([]domain.Player, 0, len(r.roster))
	for _, id := range r.roster {
		out = append(out, *r.sessions[id].Player)
	}
	return out
}

func (r *Registry) Conn(id domain.ConnID) (core.SignalConnection, bool) {
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return e.Conn, true
}

// Each calls fn for every live connection.
func (r *Registry) Each(fn func(domain.ConnID, core.SignalConnection)) {
	for id, e := range r.sessions {
		fn(id, e.Conn)
	}
}

func (r *Registry) Len() int { return len(r.sessions) }

func (r *Registry) dropFromRoster(id domain.ConnID) {
	for i, rid := range r.roster {
		if rid == id {
			r.roster = append(r.roster[:i], r.roster[i+1:]...)
			return
		}
	}
}
