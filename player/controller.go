package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"penguins/game"
	"penguins/gamemaster"
)

type Controller interface {
	Run(ctx context.Context) error
}

type localController struct {
	team   game.TeamEnum
	policy Policy
	engine gamemaster.Engine
}

// NewLocalController plays team with policy against an in-process engine.
func NewLocalController(team game.TeamEnum, policy Policy, engine gamemaster.Engine) *localController {
	return &localController{
		team:   team,
		policy: policy,
		engine: engine,
	}
}

func (l *localController) Run(ctx context.Context) error {
	state, getUpdate := l.engine.Init()
	for {
		if !state.IsOver() && state.CurrentTeam.Name == l.team {
			move, err := l.policy.Choose(state)
			if err != nil {
				return err
			}
			err = l.engine.Play(move)
			if errors.Is(err, gamemaster.ErrGameOver) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%v plays %v: %w", l.team, move, err)
			}
		}
		u, err := getUpdate(ctx)
		if errors.Is(err, gamemaster.ErrGameOver) {
			log.Debug().Stringer("team", l.team).Msg("controller done")
			return nil
		}
		if err != nil {
			return err
		}
		state = u.State
	}
}
