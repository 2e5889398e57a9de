package engine

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"penguins/experiments/metrics"
	"penguins/game"
	"penguins/gamemaster"
	"penguins/player"
)

// SelfPlay pits two policies against each other on an in-process engine.
type SelfPlay struct {
	Board     game.Board
	StartTeam game.TeamEnum
	Policies  [2]player.Policy // indexed by team
	Collector metrics.Collector
}

func LocalEngine(board game.Board, startTeam game.TeamEnum, policies [2]player.Policy) *SelfPlay {
	for _, p := range policies {
		if p == nil {
			panic("need a policy for each team")
		}
	}
	return &SelfPlay{
		Board:     board,
		StartTeam: startTeam,
		Policies:  policies,
		Collector: metrics.NewCollector(),
	}
}

// Run executes the entire game loop until the game is over.
func (e *SelfPlay) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	eng := gamemaster.NewLocalEngine(e.Board, e.StartTeam)
	state, getUpdate := eng.Init()
	e.Collector.Start(e.StartTeam)
	log.Debug().Msgf("team %v is starting", e.StartTeam)

	g, ctx := errgroup.WithContext(ctx)
	for _, team := range []game.TeamEnum{game.One, game.Two} {
		c := player.NewLocalController(team, e.Policies[team], eng)
		g.Go(func() error { return c.Run(ctx) })
	}
	g.Go(func() error {
		prev := state
		for {
			u, err := getUpdate(ctx)
			if errors.Is(err, gamemaster.ErrGameOver) {
				return nil
			}
			if err != nil {
				return err
			}
			e.Collector.AddMove(prev, u.State, u.Move)
			prev = u.State
		}
	})
	if err := g.Wait(); err != nil {
		return metrics.GameMetric{}, nil, err
	}

	final := eng.State()
	gameMetric := e.Collector.Complete(final)
	if gameMetric.TurnLimit {
		log.Debug().Msgf("stopped after %d turns", final.Turn)
	} else {
		log.Debug().Msgf("game ended with fish %d:%d", final.Fishes.One, final.Fishes.Two)
	}
	return gameMetric, e.Collector.Moves(), nil
}
