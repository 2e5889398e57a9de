package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"penguins/communication"
	"penguins/communication/server"
	"penguins/game"
)

func openingState(t *testing.T) *game.GameState {
	var b game.Board
	for index := 0; index < game.Cells; index++ {
		c, err := game.HexFromIndex(index)
		require.NoError(t, err)
		require.NoError(t, b.SetField(game.Field{Coordinate: c, Fish: 1}))
	}
	return game.NewGameState(b, 0, game.One, game.Fishes{}, nil)
}

func newPair(t *testing.T) (*server.ServerCommunicator, *ClientCommunicator) {
	sc := server.NewServerCommunicator()
	ts := httptest.NewServer(sc.Handler())
	t.Cleanup(ts.Close)
	return sc, NewClientCommunicator(ts.URL)
}

func TestClientCommunicator(t *testing.T) {
	ctx := context.Background()

	t.Run("state round trip", func(t *testing.T) {
		_, cc := newPair(t)
		_, err := cc.GetGameState(ctx)
		require.ErrorIs(t, err, communication.ErrNoGameState)

		gs := openingState(t)
		require.NoError(t, cc.UpdateGameState(ctx, gs))
		got, err := cc.GetGameState(ctx)
		require.NoError(t, err)
		require.Equal(t, gs.Board, got.Board)
		require.Equal(t, gs.PossibleMoves, got.PossibleMoves)
	})

	t.Run("end game is reported with the final state", func(t *testing.T) {
		sc, cc := newPair(t)
		gs := openingState(t)
		require.NoError(t, cc.EndGame(ctx, gs))

		_, err := sc.GetGameState(ctx)
		require.ErrorIs(t, err, communication.ErrGameOver)

		got, err := cc.GetGameState(ctx)
		require.ErrorIs(t, err, communication.ErrGameOver)
		require.Equal(t, gs.Board, got.Board)
	})

	t.Run("actions reach the server", func(t *testing.T) {
		sc, cc := newPair(t)
		gs := openingState(t)
		require.NoError(t, sc.UpdateGameState(ctx, gs))

		_, err := cc.ReceiveAction(ctx)
		require.ErrorIs(t, err, communication.ErrNoAction)

		move := gs.PossibleMoves[3]
		require.NoError(t, cc.SendAction(ctx, communication.ActionFromMove(move)))
		action, err := sc.ReceiveAction(ctx)
		require.NoError(t, err)
		require.True(t, move.Equal(action.Move()))

		bad := game.NewSlide(game.HexCoordinate{X: 0, Y: 0}, game.HexCoordinate{X: 2, Y: 0}, game.One)
		err = cc.SendAction(ctx, communication.ActionFromMove(bad))
		require.ErrorIs(t, err, game.ErrInvalidMove)
	})

	t.Run("subscribe streams every published state", func(t *testing.T) {
		sc, cc := newPair(t)
		gs := openingState(t)
		require.NoError(t, sc.UpdateGameState(ctx, gs))

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		stop := errors.New("stop")
		var turns []int
		err := cc.Subscribe(ctx, func(s communication.Snapshot) error {
			turns = append(turns, s.Turn)
			if s.Turn == 0 {
				next, err := gs.PerformMove(gs.PossibleMoves[0])
				if err != nil {
					return err
				}
				return sc.UpdateGameState(ctx, next)
			}
			return stop
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, []int{0, 1}, turns)
	})
}
