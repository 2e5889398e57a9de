package game

import "fmt"

type Penguin struct {
	Position HexCoordinate
	Team     TeamEnum
}

func (p Penguin) String() string {
	return fmt.Sprintf("Penguin(position=%v, team=%s)", p.Position, p.Team)
}

// Field is the decoded content of one cell. It is derived from a Board and
// never stored on its own.
type Field struct {
	Coordinate HexCoordinate
	Penguin    *Penguin
	Fish       int
}

func (f Field) IsEmpty() bool {
	return f.Fish == 0 && !f.HasPenguin()
}

func (f Field) HasPenguin() bool {
	return f.Penguin != nil
}

// Team returns the occupying team, if any.
func (f Field) Team() (TeamEnum, bool) {
	if !f.HasPenguin() {
		return One, false
	}
	return f.Penguin.Team, true
}

func (f Field) String() string {
	if !f.HasPenguin() {
		return fmt.Sprintf("Field(coordinate=%v, penguin=None, fish=%d)", f.Coordinate, f.Fish)
	}
	return fmt.Sprintf("Field(coordinate=%v, penguin=%v, fish=%d)", f.Coordinate, *f.Penguin, f.Fish)
}
