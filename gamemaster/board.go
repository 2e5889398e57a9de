package gamemaster

import (
	"lukechampine.com/frand"

	"penguins/game"
	"penguins/meta"
)

// Source is the randomness a board generator draws from. Both *frand.RNG and
// *rand.Rand from golang.org/x/exp/rand satisfy it.
type Source interface {
	Intn(n int) int
}

// NewRandomBoard fills every field with 0..MaxFish fish and no penguins. At
// least MIN_PLACEMENT_FIELDS fields carry a single fish.
func NewRandomBoard(src Source) game.Board {
	if src == nil {
		src = frand.New()
	}
	var b game.Board
	ones := 0
	for index := 0; index < game.Cells; index++ {
		fish := src.Intn(game.MaxFish + 1)
		if fish == 1 {
			ones++
		}
		setFish(&b, index, fish)
	}
	for ones < meta.MIN_PLACEMENT_FIELDS {
		index := src.Intn(game.Cells)
		if b.FishAt(index) == 1 {
			continue
		}
		setFish(&b, index, 1)
		ones++
	}
	return b
}

func setFish(b *game.Board, index, fish int) {
	if err := b.SetField(game.Field{Coordinate: hexAt(index), Fish: fish}); err != nil {
		panic(err)
	}
}

func hexAt(index int) game.HexCoordinate {
	c, err := game.HexFromIndex(index)
	if err != nil {
		panic(err)
	}
	return c
}
