package metrics

import (
	"time"

	"penguins/game"
)

type AgentConfig struct {
	ID          int
	Policy      string
	Temperature float64
	Seed        uint64
}

type MoveMetric struct {
	Step     int
	Team     string
	Move     string
	Captured int // fish
	Duration time.Duration
}

type GameMetric struct {
	StartingTeam string
	Winner       string // empty on a draw
	FishOne      int
	FishTwo      int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
	TurnLimit    bool
}

type Collector interface {
	Start(startTeam game.TeamEnum)
	AddMove(prev, next *game.GameState, move game.Move)
	Moves() []MoveMetric
	Complete(final *game.GameState) GameMetric
}

type collector struct {
	startTeam game.TeamEnum
	startTime time.Time
	lastMove  time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(startTeam game.TeamEnum) {
	m.startTeam = startTeam
	m.startTime = time.Now()
	m.lastMove = m.startTime
	m.moves = nil
}

func (m *collector) AddMove(prev, next *game.GameState, move game.Move) {
	now := time.Now()
	m.moves = append(m.moves, MoveMetric{
		Step:     next.Turn,
		Team:     move.Team.String(),
		Move:     move.String(),
		Captured: next.Fishes.For(move.Team) - prev.Fishes.For(move.Team),
		Duration: now.Sub(m.lastMove),
	})
	m.lastMove = now
}

func (m *collector) Moves() []MoveMetric {
	return m.moves
}

func (m *collector) Complete(final *game.GameState) GameMetric {
	end := time.Now()
	metric := GameMetric{
		StartingTeam: m.startTeam.String(),
		FishOne:      final.Fishes.One,
		FishTwo:      final.Fishes.Two,
		StartTime:    m.startTime,
		EndTime:      end,
		Duration:     end.Sub(m.startTime),
		TotalMoves:   len(m.moves),
		TurnLimit:    !final.IsOver(),
	}
	if winner, ok := final.Winner(); ok {
		metric.Winner = winner.String()
	}
	return metric
}
