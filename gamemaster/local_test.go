package gamemaster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"penguins/game"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestLocalEngineInit(t *testing.T) {
	engine := NewLocalEngine(NewRandomBoard(seeded(1)), game.One)
	state, getUpdate := engine.Init()

	require.NotNil(t, state)
	require.Zero(t, state.Turn)
	require.Equal(t, game.One, state.CurrentTeam.Name)
	require.NotEmpty(t, state.PossibleMoves)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := getUpdate(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded, "no update before a move")
}

func TestLocalEnginePlay(t *testing.T) {
	ctx := context.Background()

	t.Run("valid move reaches every listener", func(t *testing.T) {
		engine := NewLocalEngine(NewRandomBoard(seeded(2)), game.One)
		state, first := engine.Init()
		_, second := engine.Init()

		move := state.PossibleMoves[0]
		require.NoError(t, engine.Play(move))

		for _, get := range []UpdateGetter{first, second} {
			u, err := get(ctx)
			require.NoError(t, err)
			require.True(t, move.Equal(u.Move))
			require.Equal(t, 1, u.State.Turn)
			require.Equal(t, 1, u.State.Fishes.One)
		}
		require.Equal(t, 1, engine.State().Turn)
	})

	t.Run("illegal move is rejected", func(t *testing.T) {
		engine := NewLocalEngine(NewRandomBoard(seeded(3)), game.One)
		state, _ := engine.Init()

		err := engine.Play(game.NewPlacement(state.PossibleMoves[0].To, game.Two))
		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Zero(t, engine.State().Turn)
	})

	t.Run("game over closes listeners", func(t *testing.T) {
		var b game.Board
		require.NoError(t, b.SetField(game.Field{Coordinate: game.HexCoordinate{X: 0, Y: 0}, Fish: 1}))
		engine := NewLocalEngine(b, game.Two)
		state, getUpdate := engine.Init()
		require.Len(t, state.PossibleMoves, 1)

		require.NoError(t, engine.Play(state.PossibleMoves[0]))
		u, err := getUpdate(ctx)
		require.NoError(t, err)
		require.True(t, u.State.IsOver())

		_, err = getUpdate(ctx)
		require.ErrorIs(t, err, ErrGameOver)
		require.ErrorIs(t, engine.Play(state.PossibleMoves[0]), ErrGameOver)

		_, late := engine.Init()
		_, err = late(ctx)
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("turn limit ends the game", func(t *testing.T) {
		engine := NewLocalEngine(NewRandomBoard(seeded(4)), game.One)
		engine.maxTurns = 1
		state, getUpdate := engine.Init()

		require.NoError(t, engine.Play(state.PossibleMoves[0]))
		_, err := getUpdate(ctx)
		require.NoError(t, err)
		_, err = getUpdate(ctx)
		require.ErrorIs(t, err, ErrGameOver)
	})
}

func TestNewRandomBoard(t *testing.T) {
	t.Run("same seed same board", func(t *testing.T) {
		require.Equal(t, NewRandomBoard(seeded(7)), NewRandomBoard(seeded(7)))
	})

	t.Run("enough single fish floes and no penguins", func(t *testing.T) {
		for seed := uint64(0); seed < 20; seed++ {
			b := NewRandomBoard(seeded(seed))
			require.Empty(t, b.Penguins())
			require.GreaterOrEqual(t, len(game.Coordinates(b.Fish[1])), 2*game.MaxPenguins)
		}
	})

	t.Run("fish counts stay in range", func(t *testing.T) {
		b := NewRandomBoard(seeded(3))
		for index := 0; index < game.Cells; index++ {
			require.True(t, b.ContainsField(index), "index %d", index)
			require.LessOrEqual(t, b.FishAt(index), game.MaxFish)
		}
	})

	t.Run("default source", func(t *testing.T) {
		b := NewRandomBoard(nil)
		require.Empty(t, b.Penguins())
	})
}
