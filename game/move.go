package game

import "fmt"

// Move is a placement (From == nil) or a slide of the penguin at From.
type Move struct {
	From *HexCoordinate `json:"from,omitempty"`
	To   HexCoordinate  `json:"to"`
	Team TeamEnum       `json:"team"`
}

func NewPlacement(to HexCoordinate, team TeamEnum) Move {
	return Move{To: to, Team: team}
}

func NewSlide(from, to HexCoordinate, team TeamEnum) Move {
	return Move{From: &from, To: to, Team: team}
}

func (m Move) IsPlacement() bool {
	return m.From == nil
}

// Equal compares moves by value, including whether an origin is present.
func (m Move) Equal(other Move) bool {
	if (m.From == nil) != (other.From == nil) {
		return false
	}
	if m.From != nil && *m.From != *other.From {
		return false
	}
	return m.To == other.To && m.Team == other.Team
}

// Delta is the grid distance covered by the move. Placements measure from (0, 0).
func (m Move) Delta() float64 {
	if m.From != nil {
		return m.From.ToCartesian().Distance(m.To.ToCartesian())
	}
	return m.To.ToCartesian().Distance(CartesianCoordinate{})
}

// Reverse swaps origin and destination. A placement reverses towards (0, 0).
func (m Move) Reverse() Move {
	from := HexCoordinate{}
	if m.From != nil {
		from = *m.From
	}
	return NewSlide(m.To, from, m.Team)
}

func (m Move) String() string {
	if m.From == nil {
		return fmt.Sprintf("Move(from=None, to=%v, team=%s)", m.To, m.Team)
	}
	return fmt.Sprintf("Move(from=%v, to=%v, team=%s)", *m.From, m.To, m.Team)
}
