package gamemaster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"penguins/communication"
	"penguins/communication/server"
	"penguins/game"
)

func TestGameMaster(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("plays queued actions to the end", func(t *testing.T) {
		sc := server.NewServerCommunicator()
		gm := NewGameMaster(sc)
		initial, err := gm.InitializeGame(ctx, NewRandomBoard(seeded(11)), game.Two)
		require.NoError(t, err)

		published, err := sc.GetGameState(ctx)
		require.NoError(t, err)
		require.Same(t, initial, published)

		first := initial.PossibleMoves[0]
		actions := []communication.Action{
			communication.ActionFromMove(game.NewPlacement(first.To, first.Team.Opponent())),
			communication.ActionFromMove(game.NewSlide(first.To, first.To, first.Team)),
		}
		expected := initial
		for !expected.IsOver() {
			m := expected.PossibleMoves[len(expected.PossibleMoves)-1]
			actions = append(actions, communication.ActionFromMove(m))
			expected, err = expected.PerformMove(m)
			require.NoError(t, err)
		}

		go func() {
			for _, a := range actions {
				if sc.SendAction(ctx, a) != nil {
					return
				}
			}
		}()

		final, err := gm.RunGame(ctx)
		require.NoError(t, err)
		require.True(t, final.IsOver())
		require.Equal(t, expected.Board, final.Board)
		require.Equal(t, expected.Fishes, final.Fishes)
		require.Equal(t, expected.Turn, final.Turn)

		last, err := sc.GetGameState(ctx)
		require.ErrorIs(t, err, communication.ErrGameOver)
		require.Same(t, final, last)
	})

	t.Run("stops at the turn limit", func(t *testing.T) {
		sc := server.NewServerCommunicator()
		gm := NewGameMaster(sc)
		gm.MaxTurns = 2
		initial, err := gm.InitializeGame(ctx, NewRandomBoard(seeded(12)), game.One)
		require.NoError(t, err)

		second, err := initial.PerformMove(initial.PossibleMoves[0])
		require.NoError(t, err)
		require.NoError(t, sc.SendAction(ctx, communication.ActionFromMove(initial.PossibleMoves[0])))
		require.NoError(t, sc.SendAction(ctx, communication.ActionFromMove(second.PossibleMoves[0])))

		final, err := gm.RunGame(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, final.Turn)
		require.False(t, final.IsOver())

		published, err := sc.GetGameState(ctx)
		require.ErrorIs(t, err, communication.ErrGameOver, "the capped state is published as final")
		require.Same(t, final, published)

		again, err := gm.RunGame(ctx)
		require.NoError(t, err)
		require.Same(t, final, again)
	})

	t.Run("cancellation interrupts the loop", func(t *testing.T) {
		sc := server.NewServerCommunicator()
		gm := NewGameMaster(sc)
		_, err := gm.InitializeGame(ctx, NewRandomBoard(seeded(13)), game.One)
		require.NoError(t, err)

		short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err = gm.RunGame(short)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("needs a published state", func(t *testing.T) {
		_, err := NewGameMaster(server.NewServerCommunicator()).RunGame(ctx)
		require.ErrorIs(t, err, communication.ErrNoGameState)
	})
}
