package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"penguins/game"
)

func TestCollector(t *testing.T) {
	var b game.Board
	for _, index := range []int{0, 1} {
		c, err := game.HexFromIndex(index)
		require.NoError(t, err)
		require.NoError(t, b.SetField(game.Field{Coordinate: c, Fish: 1}))
	}
	start := game.NewGameState(b, 0, game.Two, game.Fishes{}, nil)

	c := NewCollector()
	c.Start(game.Two)
	state := start
	for !state.IsOver() {
		m := state.PossibleMoves[0]
		next, err := state.PerformMove(m)
		require.NoError(t, err)
		c.AddMove(state, next, m)
		state = next
	}

	moves := c.Moves()
	require.Len(t, moves, 2)
	require.Equal(t, "TWO", moves[0].Team)
	require.Equal(t, 1, moves[0].Captured)
	require.Equal(t, "ONE", moves[1].Team)
	require.Equal(t, 2, moves[1].Step)

	gm := c.Complete(state)
	require.Equal(t, "TWO", gm.StartingTeam)
	require.Empty(t, gm.Winner, "one fish each is a draw")
	require.Equal(t, 2, gm.TotalMoves)
	require.False(t, gm.TurnLimit)
	require.False(t, gm.EndTime.Before(gm.StartTime))
}
