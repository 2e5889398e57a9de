package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"penguins/communication"
	"penguins/game"
	"penguins/meta"
)

// GameMaster manages the game flow and resolves actions.
type GameMaster struct {
	Communicator communication.Communicator
	MaxTurns     int
	// PollInterval is the wait between polls when the communicator does not block.
	PollInterval time.Duration
}

// NewGameMaster initializes a new GameMaster.
func NewGameMaster(comm communication.Communicator) *GameMaster {
	return &GameMaster{
		Communicator: comm,
		MaxTurns:     meta.MAX_TURNS,
		PollInterval: 50 * time.Millisecond,
	}
}

// InitializeGame publishes the opening state for board.
func (gm *GameMaster) InitializeGame(ctx context.Context, board game.Board, startTeam game.TeamEnum) (*game.GameState, error) {
	gs := game.NewGameState(board, 0, startTeam, game.Fishes{}, nil)
	if err := gm.Communicator.UpdateGameState(ctx, gs); err != nil {
		return nil, fmt.Errorf("publish initial state: %w", err)
	}
	log.Info().Stringer("start", startTeam).Int("moves", len(gs.PossibleMoves)).Msg("game initialized")
	return gs, nil
}

func (gm *GameMaster) finished(gs *game.GameState) bool {
	return gs.IsOver() || gs.Turn >= gm.MaxTurns
}

// RunGame resolves actions until neither team can move or MaxTurns is reached,
// and returns the final state. The final state is published through EndGame
// only, so players never see it as playable.
func (gm *GameMaster) RunGame(ctx context.Context) (*game.GameState, error) {
	gs, err := gm.Communicator.GetGameState(ctx)
	if errors.Is(err, communication.ErrGameOver) {
		return gs, nil
	}
	if err != nil {
		return nil, err
	}
	for !gm.finished(gs) {
		action, err := gm.receive(ctx)
		if err != nil {
			return gs, err
		}

		move := action.Move()
		if move.Team != gs.CurrentTeam.Name {
			log.Warn().Stringer("team", move.Team).Stringer("expected", gs.CurrentTeam.Name).Msg("action out of turn")
			continue
		}
		next, err := gs.PerformMove(move)
		if err != nil {
			log.Warn().Err(err).Int("turn", gs.Turn).Msg("rejected action")
			continue
		}
		log.Debug().Int("turn", gs.Turn).Stringer("move", move).Msg("move played")

		gs = next
		if gm.finished(gs) {
			break
		}
		if err := gm.Communicator.UpdateGameState(ctx, gs); err != nil {
			return gs, fmt.Errorf("publish state: %w", err)
		}
	}
	if err := gm.Communicator.EndGame(ctx, gs); err != nil {
		return gs, fmt.Errorf("publish final state: %w", err)
	}

	if !gs.IsOver() {
		log.Info().Int("turns", gs.Turn).Msg("stopped at turn limit")
	} else if winner, ok := gs.Winner(); ok {
		log.Info().Stringer("winner", winner).Int("one", gs.Fishes.One).Int("two", gs.Fishes.Two).Msg("game over")
	} else {
		log.Info().Int("fish", gs.Fishes.One).Msg("game over in a draw")
	}
	return gs, nil
}

func (gm *GameMaster) receive(ctx context.Context) (communication.Action, error) {
	for {
		action, err := gm.Communicator.ReceiveAction(ctx)
		if !errors.Is(err, communication.ErrNoAction) {
			return action, err
		}
		select {
		case <-ctx.Done():
			return communication.Action{}, ctx.Err()
		case <-time.After(gm.PollInterval):
		}
	}
}
