package game

import (
	"fmt"
	"math"
)

// CartesianCoordinate addresses the board as a plain 8x8 grid, row-major.
type CartesianCoordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// HexCoordinate addresses the board in doubled-column hex space: every row is
// shifted by half a field relative to its neighbours.
type HexCoordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CartesianFromIndex converts a linear index 0..63 to its grid coordinate.
func CartesianFromIndex(index int) (CartesianCoordinate, error) {
	if !IsValid(index) {
		return CartesianCoordinate{}, fmt.Errorf("index %d: %w", index, ErrInvalidIndex)
	}
	return CartesianCoordinate{X: index % Width, Y: index / Width}, nil
}

// HexFromIndex converts a linear index 0..63 to its hex coordinate.
func HexFromIndex(index int) (HexCoordinate, error) {
	c, err := CartesianFromIndex(index)
	if err != nil {
		return HexCoordinate{}, err
	}
	return c.ToHex(), nil
}

// mustHex is only called with indexes produced by a 0..63 scan.
func mustHex(index int) HexCoordinate {
	return CartesianCoordinate{X: index % Width, Y: index / Width}.ToHex()
}

func (c CartesianCoordinate) IsValid() bool {
	return c.X >= 0 && c.X < Width && c.Y >= 0 && c.Y < Height
}

// ToIndex returns the linear index, or ErrInvalidCoordinate when the
// coordinate lies off the board.
func (c CartesianCoordinate) ToIndex() (int, error) {
	if !c.IsValid() {
		return 0, fmt.Errorf("%v: %w", c, ErrInvalidCoordinate)
	}
	return c.Y*Width + c.X, nil
}

func (c CartesianCoordinate) ToHex() HexCoordinate {
	return HexCoordinate{X: c.X*2 + mod2(c.Y), Y: c.Y}
}

func (c CartesianCoordinate) ToVector() Vector {
	return Vector{DX: c.X, DY: c.Y}
}

func (c CartesianCoordinate) AddVector(v Vector) CartesianCoordinate {
	return CartesianCoordinate{X: c.X + v.DX, Y: c.Y + v.DY}
}

func (c CartesianCoordinate) SubtractVector(v Vector) CartesianCoordinate {
	return CartesianCoordinate{X: c.X - v.DX, Y: c.Y - v.DY}
}

func (c CartesianCoordinate) Distance(other CartesianCoordinate) float64 {
	return c.ToVector().Sub(other.ToVector()).Magnitude()
}

func (c CartesianCoordinate) String() string {
	return fmt.Sprintf("CartesianCoordinate(%d, %d)", c.X, c.Y)
}

func (h HexCoordinate) ToCartesian() CartesianCoordinate {
	x := math.Floor(float64(h.X)/2 - float64(mod2(h.Y)) + 0.5)
	return CartesianCoordinate{X: int(x), Y: h.Y}
}

// ToIndex maps the hex coordinate to its linear index via the cartesian grid.
func (h HexCoordinate) ToIndex() (int, error) {
	return h.ToCartesian().ToIndex()
}

func (h HexCoordinate) ToVector() Vector {
	return Vector{DX: h.X, DY: h.Y}
}

func (h HexCoordinate) AddVector(v Vector) HexCoordinate {
	return HexCoordinate{X: h.X + v.DX, Y: h.Y + v.DY}
}

func (h HexCoordinate) SubtractVector(v Vector) HexCoordinate {
	return HexCoordinate{X: h.X - v.DX, Y: h.Y - v.DY}
}

// Neighbors returns the six adjacent coordinates in Directions order,
// including those that fall off the board.
func (h HexCoordinate) Neighbors() []HexCoordinate {
	neighbors := make([]HexCoordinate, 0, len(Directions))
	for _, d := range Directions {
		neighbors = append(neighbors, h.AddVector(d))
	}
	return neighbors
}

func (h HexCoordinate) Distance(other HexCoordinate) float64 {
	return h.ToVector().Sub(other.ToVector()).Magnitude()
}

func (h HexCoordinate) String() string {
	return fmt.Sprintf("HexCoordinate(%d, %d)", h.X, h.Y)
}

// mod2 is y mod 2 with a non-negative result.
func mod2(y int) int {
	return ((y % 2) + 2) % 2
}
