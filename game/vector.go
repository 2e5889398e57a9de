package game

import (
	"fmt"
	"math"
)

// Vector is an offset in doubled hex space.
type Vector struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Directions are the six neighbour offsets, in the order moves are generated.
var Directions = [6]Vector{
	{1, -1},  // up right
	{-2, 0},  // left
	{1, 1},   // down right
	{-1, 1},  // down left
	{2, 0},   // right
	{-1, -1}, // up left
}

// Magnitude is the euclidean length of the raw (dx, dy) pair. It is not a hex distance.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(float64(v.DX*v.DX + v.DY*v.DY))
}

func (v Vector) Dot(other Vector) int {
	return v.DX*other.DX + v.DY*other.DY
}

func (v Vector) Cross(other Vector) int {
	return v.DX*other.DY - v.DY*other.DX
}

func (v Vector) Scale(scalar int) Vector {
	return Vector{v.DX * scalar, v.DY * scalar}
}

func (v Vector) Add(other Vector) Vector {
	return Vector{v.DX + other.DX, v.DY + other.DY}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{v.DX - other.DX, v.DY - other.DY}
}

// ArcTangent returns the angle of the vector in degrees.
func (v Vector) ArcTangent() float64 {
	return math.Atan2(float64(v.DY), float64(v.DX)) * 180 / math.Pi
}

// SameMagnitudeAndAngle reports whether both vectors have equal length and direction.
func (v Vector) SameMagnitudeAndAngle(other Vector) bool {
	return v.Magnitude() == other.Magnitude() && v.ArcTangent() == other.ArcTangent()
}

// IsOneHexMove reports whether the vector points to a direct neighbour.
func (v Vector) IsOneHexMove() bool {
	return abs(v.DX) == abs(v.DY) || (v.DX%2 == 0 && v.DY == 0)
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%d, %d)", v.DX, v.DY)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
