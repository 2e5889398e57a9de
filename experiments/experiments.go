package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"penguins/engine"
	"penguins/experiments/metrics"
	"penguins/game"
	"penguins/gamemaster"
	"penguins/player"
)

// Result holds every record of an experiment.
type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// Wins counts games per winning team name; draws count under "".
func (r Result) Wins() map[string]int {
	return lo.CountValuesBy(r.Games, func(g metrics.GameRecord) string { return g.Winner })
}

// Run plays numGames games per matchup. Each matchup pairs agent1 as team One
// with agent2 as team Two; the starting team alternates between games.
func Run(ctx context.Context, matchUps [][2]metrics.AgentConfig, numGames int, src gamemaster.Source) (Result, error) {
	var result Result
	count := 0
	for mi, matchup := range matchUps {
		config1, config2 := matchup[0], matchup[1]
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < numGames; i++ {
			policies, err := policiesFor(config1, config2, i)
			if err != nil {
				return result, err
			}
			startTeam := game.One
			if i%2 == 1 {
				startTeam = game.Two
			}
			e := engine.LocalEngine(gamemaster.NewRandomBoard(src), startTeam, policies)
			gameMetric, moveMetrics, err := e.Run(ctx)
			if err != nil {
				return result, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			count++
			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}
			log.Info().Msgf("completed matchup %d game %d with winner: %q (%d:%d)",
				mi+1, i+1, gameMetric.Winner, gameMetric.FishOne, gameMetric.FishTwo)
		}
	}
	return result, nil
}

// policiesFor builds fresh policies per game. Seeded configs are offset by
// the game number so games differ but stay reproducible.
func policiesFor(config1, config2 metrics.AgentConfig, gameNumber int) ([2]player.Policy, error) {
	var policies [2]player.Policy
	for i, config := range []metrics.AgentConfig{config1, config2} {
		seed := config.Seed
		if seed != 0 {
			seed += uint64(gameNumber)
		}
		p, err := player.NewPolicy(config.Policy, config.Temperature, seed)
		if err != nil {
			return policies, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		policies[i] = p
	}
	return policies, nil
}

// Store writes the configs and results under root/name.
func Store(root, name string, configs []metrics.AgentConfig, result Result) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}
