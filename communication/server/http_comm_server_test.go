package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"penguins/communication"
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

func postJSON(t *testing.T, h http.Handler, path string, v any) *httptest.ResponseRecorder {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data)))
	return rec
}

func TestServerCommunicator(t *testing.T) {
	t.Run("reports missing state", func(t *testing.T) {
		sc := NewServerCommunicator()
		rec := httptest.NewRecorder()
		sc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getGameState", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)

		_, err := sc.GetGameState(context.Background())
		require.ErrorIs(t, err, communication.ErrNoGameState)
	})

	t.Run("serves the published snapshot", func(t *testing.T) {
		sc := NewServerCommunicator()
		gs := openingState(t)
		require.NoError(t, sc.UpdateGameState(context.Background(), gs))

		rec := httptest.NewRecorder()
		sc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getGameState", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var s communication.Snapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
		got, err := s.GameState()
		require.NoError(t, err)
		require.Equal(t, gs.Board, got.Board)
	})

	t.Run("accepts state updates over http", func(t *testing.T) {
		sc := NewServerCommunicator()
		gs := openingState(t)
		rec := postJSON(t, sc.Handler(), "/updateGameState", communication.NewSnapshot(gs))
		require.Equal(t, http.StatusOK, rec.Code)

		got, err := sc.GetGameState(context.Background())
		require.NoError(t, err)
		require.Equal(t, gs.Board, got.Board)

		rec = postJSON(t, sc.Handler(), "/updateGameState", communication.Snapshot{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("queues legal actions and rejects illegal ones", func(t *testing.T) {
		sc := NewServerCommunicator()
		gs := openingState(t)
		require.NoError(t, sc.UpdateGameState(context.Background(), gs))

		illegal := communication.ActionFromMove(game.NewPlacement(game.HexCoordinate{X: 0, Y: 0}, game.Two))
		rec := postJSON(t, sc.Handler(), "/sendAction", illegal)
		require.Equal(t, http.StatusConflict, rec.Code)

		legal := communication.ActionFromMove(gs.PossibleMoves[0])
		rec = postJSON(t, sc.Handler(), "/sendAction", legal)
		require.Equal(t, http.StatusOK, rec.Code)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		action, err := sc.ReceiveAction(ctx)
		require.NoError(t, err)
		require.True(t, gs.PossibleMoves[0].Equal(action.Move()))
	})

	t.Run("ended game is final", func(t *testing.T) {
		sc := NewServerCommunicator()
		gs := openingState(t)
		require.NoError(t, sc.EndGame(context.Background(), gs))

		got, err := sc.GetGameState(context.Background())
		require.ErrorIs(t, err, communication.ErrGameOver)
		require.Same(t, gs, got)

		rec := httptest.NewRecorder()
		sc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getGameState", nil))
		var s communication.Snapshot
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
		require.True(t, s.GameOver)

		rec = postJSON(t, sc.Handler(), "/sendAction", communication.ActionFromMove(gs.PossibleMoves[0]))
		require.Equal(t, http.StatusConflict, rec.Code)

		require.NoError(t, sc.UpdateGameState(context.Background(), gs))
		_, err = sc.GetGameState(context.Background())
		require.NoError(t, err, "a new game reopens the state")
	})

	t.Run("final flag over http", func(t *testing.T) {
		sc := NewServerCommunicator()
		s := communication.NewSnapshot(openingState(t))
		s.GameOver = true
		rec := postJSON(t, sc.Handler(), "/updateGameState", s)
		require.Equal(t, http.StatusOK, rec.Code)

		_, err := sc.GetGameState(context.Background())
		require.ErrorIs(t, err, communication.ErrGameOver)
	})

	t.Run("receive endpoint does not block", func(t *testing.T) {
		sc := NewServerCommunicator()
		rec := httptest.NewRecorder()
		sc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/receiveAction", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)

		action := communication.ActionFromMove(game.NewPlacement(game.HexCoordinate{X: 2, Y: 0}, game.One))
		require.NoError(t, sc.SendAction(context.Background(), action))
		rec = httptest.NewRecorder()
		sc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/receiveAction", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("receive honours cancellation", func(t *testing.T) {
		sc := NewServerCommunicator()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sc.ReceiveAction(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
