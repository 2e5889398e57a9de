package game

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/samber/lo"
)

// Board stores the whole field in seven 64-bit masks, one bit per linear
// index: the penguins of each team and one mask per fish count. A cell is set
// in at most one mask. Board is a value; copying it copies the game field.
type Board struct {
	One  uint64             `json:"one"`
	Two  uint64             `json:"two"`
	Fish [MaxFish + 1]uint64 `json:"fish"`
}

// IsValid reports whether index addresses a cell of the board.
func IsValid(index int) bool {
	return index >= 0 && index < Cells
}

func bit(index int) uint64 {
	return 1 << uint(index)
}

func (b Board) team(team TeamEnum) uint64 {
	if team == One {
		return b.One
	}
	return b.Two
}

func (b *Board) setTeam(team TeamEnum, mask uint64) {
	if team == One {
		b.One = mask
	} else {
		b.Two = mask
	}
}

// clear removes index from every mask.
func (b *Board) clear(index int) {
	m := ^bit(index)
	b.One &= m
	b.Two &= m
	for i := range b.Fish {
		b.Fish[i] &= m
	}
}

// SetField encodes the content of f at f.Coordinate, replacing whatever the
// cell held before. The board is left untouched when an error is returned.
func (b *Board) SetField(f Field) error {
	index, err := f.Coordinate.ToIndex()
	if err != nil {
		return err
	}
	if !f.HasPenguin() && (f.Fish < 0 || f.Fish > MaxFish) {
		return fmt.Errorf("fish value was %d: %w", f.Fish, ErrInvalidFish)
	}
	b.clear(index)
	if f.HasPenguin() {
		b.setTeam(f.Penguin.Team, b.team(f.Penguin.Team)|bit(index))
		return nil
	}
	b.Fish[f.Fish] |= bit(index)
	return nil
}

// penguinAt returns the penguin standing on index, if any.
func (b Board) penguinAt(index int) *Penguin {
	switch {
	case b.One&bit(index) != 0:
		return &Penguin{Position: mustHex(index), Team: One}
	case b.Two&bit(index) != 0:
		return &Penguin{Position: mustHex(index), Team: Two}
	}
	return nil
}

// FishAt returns the fish count of index. Cells without a fish bit count as 0.
func (b Board) FishAt(index int) int {
	if !IsValid(index) {
		return 0
	}
	for fish, mask := range b.Fish {
		if mask&bit(index) != 0 {
			return fish
		}
	}
	return 0
}

func (b Board) GetField(index int) (Field, error) {
	coordinate, err := HexFromIndex(index)
	if err != nil {
		return Field{}, err
	}
	return Field{
		Coordinate: coordinate,
		Penguin:    b.penguinAt(index),
		Fish:       b.FishAt(index),
	}, nil
}

// FieldAt is GetField addressed by hex coordinate.
func (b Board) FieldAt(c HexCoordinate) (Field, error) {
	index, err := c.ToIndex()
	if err != nil {
		return Field{}, err
	}
	return b.GetField(index)
}

func (b Board) IsOccupied(index int) bool {
	return IsValid(index) && (b.One|b.Two)&bit(index) != 0
}

// ContainsField reports whether index is occupied or carries any fish mask bit.
func (b Board) ContainsField(index int) bool {
	if !IsValid(index) {
		return false
	}
	return b.mask()&bit(index) != 0
}

// Contains reports whether every index is occupied or carries a fish bit.
func (b Board) Contains(indexes []int) bool {
	for _, index := range indexes {
		if !b.ContainsField(index) {
			return false
		}
	}
	return true
}

func (b Board) IsTeam(team TeamEnum, index int) bool {
	return IsValid(index) && b.team(team)&bit(index) != 0
}

// mask is the union of all seven masks.
func (b Board) mask() uint64 {
	m := b.One | b.Two
	for _, f := range b.Fish {
		m |= f
	}
	return m
}

// Coordinates lists the hex coordinates of the bits set in mask, in index order.
func Coordinates(mask uint64) []HexCoordinate {
	coordinates := make([]HexCoordinate, 0, bits.OnesCount64(mask))
	for index := 0; index < Cells; index++ {
		if mask&bit(index) != 0 {
			coordinates = append(coordinates, mustHex(index))
		}
	}
	return coordinates
}

// BitCoordinate returns the coordinate of the single bit set across all masks of b.
func BitCoordinate(b Board) (HexCoordinate, error) {
	count := bits.OnesCount64(b.One) + bits.OnesCount64(b.Two)
	for _, f := range b.Fish {
		count += bits.OnesCount64(f)
	}
	if count != 1 {
		return HexCoordinate{}, fmt.Errorf("%d bits set: %w", count, ErrAmbiguousBit)
	}
	index := bits.TrailingZeros64(b.mask())
	if !IsValid(index) {
		return HexCoordinate{}, fmt.Errorf("bit %d: %w", index, ErrInvalidIndex)
	}
	return mustHex(index), nil
}

// DirectiveMoves walks from index in direction and returns one move per
// landing field, stopping at the board edge, an occupied field or a field
// without fish. It returns nothing unless a penguin of team stands on index.
func (b Board) DirectiveMoves(index int, direction Vector, team TeamEnum) []Move {
	if !b.IsTeam(team, index) {
		return nil
	}
	origin := mustHex(index)
	var moves []Move
	next := origin.AddVector(direction)
	for {
		nextIndex, err := next.ToIndex()
		if err != nil || b.IsOccupied(nextIndex) || b.FishAt(nextIndex) == 0 {
			break
		}
		moves = append(moves, NewSlide(origin, next, team))
		next = next.AddVector(direction)
	}
	return moves
}

// PossibleMovesFrom collects the moves of the penguin on index in every direction.
func (b Board) PossibleMovesFrom(index int, team TeamEnum) []Move {
	var moves []Move
	for _, d := range Directions {
		moves = append(moves, b.DirectiveMoves(index, d, team)...)
	}
	return moves
}

// Move returns a copy of the board with m applied. A slide lifts the penguin
// from its origin; the destination takes the penguin and loses its fish.
func (b Board) Move(m Move) (Board, error) {
	to, err := m.To.ToIndex()
	if err != nil {
		return b, err
	}
	next := b
	if m.From != nil {
		from, err := m.From.ToIndex()
		if err != nil {
			return b, err
		}
		next.setTeam(m.Team, next.team(m.Team)^bit(from))
	}
	for i := range next.Fish {
		next.Fish[i] &^= bit(to)
	}
	next.setTeam(m.Team, next.team(m.Team)|bit(to))
	return next, nil
}

func (b Board) TeamsPenguins(team TeamEnum) []Penguin {
	mask := b.team(team)
	penguins := make([]Penguin, 0, bits.OnesCount64(mask))
	for _, c := range Coordinates(mask) {
		penguins = append(penguins, Penguin{Position: c, Team: team})
	}
	return penguins
}

// Penguins lists every penguin in index order.
func (b Board) Penguins() []Penguin {
	var penguins []Penguin
	for index := 0; index < Cells; index++ {
		if p := b.penguinAt(index); p != nil {
			penguins = append(penguins, *p)
		}
	}
	return penguins
}

// EmptyFields lists the fields with neither a penguin nor fish.
func (b Board) EmptyFields() []Field {
	var fields []Field
	for index := 0; index < Cells; index++ {
		if b.IsOccupied(index) || b.FishAt(index) != 0 {
			continue
		}
		fields = append(fields, Field{Coordinate: mustHex(index)})
	}
	return fields
}

// MostFish lists the fields carrying the highest fish count found on the board.
func (b Board) MostFish() []Field {
	for fish := MaxFish; fish >= 0; fish-- {
		if b.Fish[fish] == 0 {
			continue
		}
		return lo.Map(Coordinates(b.Fish[fish]), func(c HexCoordinate, _ int) Field {
			return Field{Coordinate: c, Fish: fish}
		})
	}
	return nil
}

// EmptyBitmask has a bit set for every cell no mask covers. Bits above 63
// carry no meaning.
func (b Board) EmptyBitmask() uint64 {
	return ^b.mask()
}

func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for index := 0; index < Cells; index++ {
		if index/Width%2 == 1 && index%Width == 0 {
			sb.WriteString(" ")
		}
		switch {
		case b.One&bit(index) != 0:
			sb.WriteString("□")
		case b.Two&bit(index) != 0:
			sb.WriteString("■")
		case b.ContainsField(index):
			sb.WriteString(fmt.Sprint(b.FishAt(index)))
		default:
			sb.WriteString(".")
		}
		if index%Width == Width-1 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
