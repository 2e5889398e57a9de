package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"penguins/communication/client"
	"penguins/communication/server"
	"penguins/config"
	"penguins/experiments"
	"penguins/experiments/metrics"
	"penguins/gamemaster"
	"penguins/player"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(cfg.Level())
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if cfg.PrintConfig {
		out, err := cfg.Dump()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to dump config")
		}
		fmt.Print(out)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case "serve":
		err = serve(ctx, cfg)
	case "play":
		err = play(ctx, cfg)
	case "selfplay":
		err = selfplay(ctx, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Str("mode", cfg.Mode).Msg("failed")
	}
}

func boardSource(cfg *config.Config) gamemaster.Source {
	if cfg.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(cfg.Seed))
}

// serve hosts one game and keeps publishing the final state until interrupted.
func serve(ctx context.Context, cfg *config.Config) error {
	sc := server.NewServerCommunicator()
	serverErr := make(chan error, 1)
	go func() { serverErr <- sc.Start(ctx, cfg.Listen) }()

	gm := gamemaster.NewGameMaster(sc)
	gm.MaxTurns = cfg.MaxTurns
	if _, err := gm.InitializeGame(ctx, gamemaster.NewRandomBoard(boardSource(cfg)), cfg.TeamEnum()); err != nil {
		return err
	}
	final, err := gm.RunGame(ctx)
	if err != nil {
		return err
	}
	log.Info().Msgf("final state %v", final)
	return <-serverErr
}

func play(ctx context.Context, cfg *config.Config) error {
	policy, err := player.NewPolicy(cfg.Policy, cfg.Temperature, cfg.Seed)
	if err != nil {
		return err
	}
	cc := client.NewClientCommunicator(cfg.ServerURL)
	p := player.NewPlayer(cfg.TeamEnum(), cc, policy)
	log.Info().Str("server", cfg.ServerURL).Stringer("team", p.Team).Str("policy", cfg.Policy).Msg("joining game")
	if cfg.Stream {
		return p.PlayStream(ctx, cc)
	}
	return p.Play(ctx)
}

func selfplay(ctx context.Context, cfg *config.Config) error {
	agent1 := metrics.AgentConfig{ID: 1, Policy: cfg.Policy, Temperature: cfg.Temperature, Seed: cfg.Seed}
	agent2 := metrics.AgentConfig{ID: 2, Policy: cfg.Opponent, Temperature: cfg.Temperature}
	if cfg.Seed != 0 {
		agent2.Seed = cfg.Seed + 1_000_003
	}

	result, err := experiments.Run(ctx, [][2]metrics.AgentConfig{{agent1, agent2}}, cfg.Games, boardSource(cfg))
	if err != nil {
		return err
	}
	wins := result.Wins()
	log.Info().Int("one", wins["ONE"]).Int("two", wins["TWO"]).Int("draws", wins[""]).
		Msgf("%s vs %s over %d games", agent1.Policy, agent2.Policy, cfg.Games)

	if cfg.Out == "" {
		return nil
	}
	_, err = experiments.Store(cfg.Out, "selfplay", []metrics.AgentConfig{agent1, agent2}, result)
	return err
}
