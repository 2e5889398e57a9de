package game

import "errors"

const (
	Width  = 8
	Height = 8
	Cells  = Width * Height

	// MaxPenguins is the number of penguins a team places before it starts sliding.
	MaxPenguins = 4
	// MaxFish is the highest fish count a single field can carry.
	MaxFish = 4
)

var (
	ErrInvalidIndex      = errors.New("index out of range")
	ErrInvalidCoordinate = errors.New("coordinate out of range")
	ErrInvalidFish       = errors.New("fish value not allowed")
	ErrInvalidMove       = errors.New("invalid move")
	ErrAmbiguousBit      = errors.New("board does not have exactly one bit set")
)
