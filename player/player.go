package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"penguins/communication"
	"penguins/game"
)

// Subscriber streams published snapshots, as the websocket client does.
type Subscriber interface {
	Subscribe(ctx context.Context, handle func(communication.Snapshot) error) error
}

// Player represents a game player.
type Player struct {
	Team         game.TeamEnum
	Communicator communication.Communicator
	Policy       Policy
	// History holds every distinct state received, oldest first.
	History []*game.GameState
	// OnGameOver is called once with the final state.
	OnGameOver   func(*game.GameState)
	PollInterval time.Duration

	lastActed int
}

// NewPlayer creates a new Player instance.
func NewPlayer(team game.TeamEnum, comm communication.Communicator, policy Policy) *Player {
	return &Player{
		Team:         team,
		Communicator: comm,
		Policy:       policy,
		PollInterval: 50 * time.Millisecond,
		lastActed:    -1,
	}
}

var errFinished = errors.New("game finished")

// Play polls the counterpart for states until the game is over.
func (p *Player) Play(ctx context.Context) error {
	for {
		gs, err := p.Communicator.GetGameState(ctx)
		over := errors.Is(err, communication.ErrGameOver)
		switch {
		case errors.Is(err, communication.ErrNoGameState):
		case err != nil && !over:
			return err
		default:
			if err := p.OnUpdate(ctx, gs, over); errors.Is(err, errFinished) {
				return nil
			} else if err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.PollInterval):
		}
	}
}

// PlayStream reacts to every snapshot pushed by sub until the game is over.
func (p *Player) PlayStream(ctx context.Context, sub Subscriber) error {
	err := sub.Subscribe(ctx, func(s communication.Snapshot) error {
		gs, over, err := s.Decode()
		if err != nil {
			return err
		}
		return p.OnUpdate(ctx, gs, over)
	})
	if errors.Is(err, errFinished) {
		return nil
	}
	return err
}

// OnUpdate records gs and answers with a move when it is this player's turn.
// Each turn is answered at most once. gameOver marks a state the counterpart
// declared final.
func (p *Player) OnUpdate(ctx context.Context, gs *game.GameState, gameOver bool) error {
	if n := len(p.History); n == 0 || p.History[n-1].Turn != gs.Turn {
		p.History = append(p.History, gs)
	}
	if gameOver || gs.IsOver() {
		log.Info().Stringer("team", p.Team).Int("one", gs.Fishes.One).Int("two", gs.Fishes.Two).Msg("game over")
		if p.OnGameOver != nil {
			p.OnGameOver(gs)
		}
		return errFinished
	}
	if gs.CurrentTeam.Name != p.Team || gs.Turn <= p.lastActed {
		return nil
	}

	move, err := p.TakeTurn(gs)
	if err != nil {
		return err
	}
	if err := p.Communicator.SendAction(ctx, communication.ActionFromMove(move)); err != nil {
		return fmt.Errorf("send move %v: %w", move, err)
	}
	p.lastActed = gs.Turn
	log.Debug().Stringer("team", p.Team).Int("turn", gs.Turn).Stringer("move", move).Msg("move sent")
	return nil
}

// TakeTurn decides on a move for gs.
func (p *Player) TakeTurn(gs *game.GameState) (game.Move, error) {
	move, err := p.Policy.Choose(gs)
	if err != nil {
		return game.Move{}, err
	}
	if !gs.IsValidMove(move) {
		return game.Move{}, fmt.Errorf("policy chose %v: %w", move, game.ErrInvalidMove)
	}
	return move, nil
}
