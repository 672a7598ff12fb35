// Package domain contains entities without transport or lifecycle logic.
package domain

// ConnID identifies one live transport connection. It is the player's only
// identity: a new connection is a new player.
type ConnID string

// Vec3 is a world position as sent by clients, [x, y, z].
type Vec3 [3]float64

type Player struct {
	ID       ConnID `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position Vec3   `json:"position"`
}

// NewPlayer avoids raw literals in the registry.
func NewPlayer(id ConnID, name, color string, pos Vec3) *Player {
	return &Player{ID: id, Name: name, Color: color, Position: pos}
}
