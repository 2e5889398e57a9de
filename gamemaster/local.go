package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"penguins/game"
	"penguins/meta"
)

var ErrGameOver = errors.New("game is over")

type Update struct {
	Move  game.Move
	State *game.GameState
}

// UpdateGetter blocks until the next move is played. It returns ErrGameOver
// once the final update has been delivered.
type UpdateGetter func(ctx context.Context) (Update, error)

type Engine interface {
	Init() (*game.GameState, UpdateGetter)
	Play(game.Move) error
}

type localEngine struct {
	mutex    sync.Mutex
	state    *game.GameState
	maxTurns int
	updateCh []chan Update
	gameOver bool
}

func NewLocalEngine(board game.Board, startTeam game.TeamEnum) *localEngine {
	return NewLocalEngineFrom(game.NewGameState(board, 0, startTeam, game.Fishes{}, nil))
}

func NewLocalEngineFrom(gs *game.GameState) *localEngine {
	return &localEngine{
		state:    gs,
		maxTurns: meta.MAX_TURNS,
		gameOver: gs.IsOver(),
	}
}

// Init registers a new listener and returns the current state together with
// the listener's update getter. Every listener sees every update.
func (e *localEngine) Init() (*game.GameState, UpdateGetter) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	ch := make(chan Update, e.maxTurns+1)
	if e.gameOver {
		close(ch)
	} else {
		e.updateCh = append(e.updateCh, ch)
	}
	return e.state, func(ctx context.Context) (Update, error) {
		select {
		case u, ok := <-ch:
			if !ok {
				return Update{}, ErrGameOver
			}
			return u, nil
		case <-ctx.Done():
			return Update{}, ctx.Err()
		}
	}
}

func (e *localEngine) State() *game.GameState {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.state
}

func (e *localEngine) Play(move game.Move) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.gameOver {
		return ErrGameOver
	}
	next, err := e.state.PerformMove(move)
	if err != nil {
		return fmt.Errorf("illegal move: %w", err)
	}
	e.state = next

	u := Update{Move: move, State: next}
	for _, ch := range e.updateCh {
		ch <- u
	}
	if next.IsOver() || next.Turn >= e.maxTurns {
		e.gameOver = true
		for _, ch := range e.updateCh {
			close(ch)
		}
		e.updateCh = nil
	}
	return nil
}
