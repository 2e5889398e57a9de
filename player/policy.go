package player

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"penguins/game"
)

var ErrNoMoves = errors.New("no possible moves")

// Policy picks one of the state's possible moves.
type Policy interface {
	Choose(gs *game.GameState) (game.Move, error)
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return rand.New(rand.NewSource(seed))
}

// NewPolicy builds a policy by name: "random", "greedy" or "weighted".
// A zero seed draws one at random.
func NewPolicy(name string, temperature float64, seed uint64) (Policy, error) {
	switch name {
	case "random":
		return NewRandomPolicy(seed), nil
	case "greedy":
		return GreedyPolicy{}, nil
	case "weighted":
		if temperature <= 0 {
			return nil, fmt.Errorf("temperature must be positive, got %v", temperature)
		}
		return NewWeightedPolicy(temperature, seed), nil
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}

type RandomPolicy struct {
	rng *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: newRand(seed)}
}

func (p *RandomPolicy) Choose(gs *game.GameState) (game.Move, error) {
	if len(gs.PossibleMoves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	return gs.PossibleMoves[p.rng.Intn(len(gs.PossibleMoves))], nil
}

// GreedyPolicy takes the move landing on the most fish, the earliest on ties.
type GreedyPolicy struct{}

func (GreedyPolicy) Choose(gs *game.GameState) (game.Move, error) {
	if len(gs.PossibleMoves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	return lo.MaxBy(gs.PossibleMoves, func(a, b game.Move) bool {
		return fishAt(gs.Board, a.To) > fishAt(gs.Board, b.To)
	}), nil
}

func fishAt(b game.Board, c game.HexCoordinate) int {
	f, err := b.FieldAt(c)
	if err != nil {
		return 0
	}
	return f.Fish
}

// WeightedPolicy samples moves in proportion to the fish they capture, sharpened
// or flattened by the temperature.
type WeightedPolicy struct {
	temperature float64
	rng         *rand.Rand
}

func NewWeightedPolicy(temperature float64, seed uint64) *WeightedPolicy {
	return &WeightedPolicy{temperature: temperature, rng: newRand(seed)}
}

func (p *WeightedPolicy) Choose(gs *game.GameState) (game.Move, error) {
	if len(gs.PossibleMoves) == 0 {
		return game.Move{}, ErrNoMoves
	}
	weights := lo.Map(gs.PossibleMoves, func(m game.Move, _ int) float64 {
		return float64(fishAt(gs.Board, m.To))
	})
	policy := adjustTemperature(weights, p.temperature)
	return gs.PossibleMoves[sample(policy, p.rng.Float64())], nil
}

// adjustTemperature turns weights into probabilities. Zero weights count as one
// so every move stays reachable.
func adjustTemperature(weights []float64, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(weights))
	for i, w := range weights {
		prob := math.Pow(math.Max(w, 1), exponent)
		sum += prob
		policy[i] = prob
	}
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func sample(policy []float64, sampled float64) int {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // rounding
}
