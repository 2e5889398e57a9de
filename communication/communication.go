package communication

import (
	"context"
	"errors"

	"penguins/game"
)

var (
	// ErrNoGameState is returned while the counterpart has not published a state yet.
	ErrNoGameState = errors.New("no game state available")
	// ErrNoAction is returned by non-blocking receivers when no action is queued.
	ErrNoAction = errors.New("no action available")
	// ErrGameOver is returned together with the final state once the game has
	// ended, either because nobody can move or because the counterpart stopped it.
	ErrGameOver = errors.New("game over")
)

// Communicator is an interface that abstracts the communication mechanism
// between the agent and its counterpart.
type Communicator interface {
	GetGameState(ctx context.Context) (*game.GameState, error)
	UpdateGameState(ctx context.Context, gs *game.GameState) error
	// EndGame publishes gs as the final state of the game.
	EndGame(ctx context.Context, gs *game.GameState) error
	SendAction(ctx context.Context, action Action) error
	ReceiveAction(ctx context.Context) (Action, error)
}
