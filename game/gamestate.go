package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// GameState is everything known about the game between two moves. It is
// built once and never modified: PerformMove returns a successor instead.
type GameState struct {
	Board     Board
	Turn      int
	Round     int
	StartTeam TeamEnum
	Fishes    Fishes
	LastMove  *Move

	CurrentTeam   Team
	OtherTeam     Team
	CurrentPieces []Penguin
	PossibleMoves []Move
}

// NewGameState derives the current team and its legal moves from the given position.
func NewGameState(board Board, turn int, startTeam TeamEnum, fishes Fishes, lastMove *Move) *GameState {
	gs := &GameState{
		Board:     board,
		Turn:      turn,
		Round:     (turn + 1) / 2,
		StartTeam: startTeam,
		Fishes:    fishes,
		LastMove:  lastMove,
	}
	current := gs.CurrentTeamFromTurn()
	gs.CurrentPieces = board.TeamsPenguins(current)
	gs.CurrentTeam = Team{Name: current, Penguins: gs.CurrentPieces, Fish: fishes.For(current)}
	gs.OtherTeam = gs.CurrentTeam.Opponent()
	gs.PossibleMoves = gs.PossibleMovesFor(current)
	return gs
}

// CurrentTeamFromTurn returns the start team on even turns and its opponent
// on odd ones, unless that team cannot move, in which case the turn passes.
func (gs *GameState) CurrentTeamFromTurn() TeamEnum {
	team := gs.StartTeam
	if gs.Turn%2 != 0 {
		team = team.Opponent()
	}
	if !gs.HasMoves(team) {
		return team.Opponent()
	}
	return team
}

// PossibleMovesFor lists the legal moves of team. A team with fewer than
// MaxPenguins penguins may only place one on a free single-fish field;
// afterwards it may only slide.
func (gs *GameState) PossibleMovesFor(team TeamEnum) []Move {
	b := gs.Board
	var moves []Move
	if len(b.TeamsPenguins(team)) < MaxPenguins {
		for index := 0; index < Cells; index++ {
			if !b.IsOccupied(index) && b.FishAt(index) == 1 {
				moves = append(moves, NewPlacement(mustHex(index), team))
			}
		}
		return moves
	}
	for index := 0; index < Cells; index++ {
		if b.IsTeam(team, index) {
			moves = append(moves, b.PossibleMovesFrom(index, team)...)
		}
	}
	return moves
}

func (gs *GameState) HasMoves(team TeamEnum) bool {
	return len(gs.PossibleMovesFor(team)) > 0
}

func (gs *GameState) IsValidMove(m Move) bool {
	return slices.ContainsFunc(gs.PossibleMoves, m.Equal)
}

// PerformMove applies a legal move and returns the successor state. The
// receiver is left as it was; an illegal move yields ErrInvalidMove.
func (gs *GameState) PerformMove(m Move) (*GameState, error) {
	if !gs.IsValidMove(m) {
		return nil, fmt.Errorf("%v: %w", m, ErrInvalidMove)
	}
	to, err := m.To.ToIndex()
	if err != nil {
		return nil, err
	}
	// Captured fish are read before the move clears the destination.
	captured := gs.Board.FishAt(to)
	board, err := gs.Board.Move(m)
	if err != nil {
		return nil, err
	}
	last := m
	if m.From != nil {
		from := *m.From
		last.From = &from
	}
	fishes := gs.Fishes.Add(gs.CurrentTeam.Name, captured)
	return NewGameState(board, gs.Turn+1, gs.StartTeam, fishes, &last), nil
}

// IsOver reports whether neither team has a legal move left.
func (gs *GameState) IsOver() bool {
	return len(gs.PossibleMoves) == 0 && !gs.HasMoves(gs.OtherTeam.Name)
}

// Winner returns the team with more fish. ok is false on a tie.
func (gs *GameState) Winner() (team TeamEnum, ok bool) {
	switch {
	case gs.Fishes.One > gs.Fishes.Two:
		return One, true
	case gs.Fishes.Two > gs.Fishes.One:
		return Two, true
	}
	return One, false
}

func (gs *GameState) String() string {
	return fmt.Sprintf("GameState(turn=%d, round=%d, current=%s, fishes=%d:%d)%v",
		gs.Turn, gs.Round, gs.CurrentTeam.Name, gs.Fishes.One, gs.Fishes.Two, gs.Board)
}
