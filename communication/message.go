package communication

import (
	"bytes"
	"encoding/json"
	"fmt"

	"penguins/game"
)

// FieldValue is one cell on the wire: the name of the occupying team, or the
// number of fish on the floe.
type FieldValue struct {
	Team *game.TeamEnum
	Fish int
}

func (f FieldValue) MarshalJSON() ([]byte, error) {
	if f.Team != nil {
		return json.Marshal(f.Team)
	}
	return json.Marshal(f.Fish)
}

func (f *FieldValue) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var team game.TeamEnum
		if err := json.Unmarshal(data, &team); err != nil {
			return err
		}
		*f = FieldValue{Team: &team}
		return nil
	}
	var fish int
	if err := json.Unmarshal(data, &fish); err != nil {
		return fmt.Errorf("field value %s: %w", data, err)
	}
	*f = FieldValue{Fish: fish}
	return nil
}

// Action is a move as sent by the agent.
type Action struct {
	Team game.TeamEnum       `json:"team"`
	From *game.HexCoordinate `json:"from,omitempty"`
	To   game.HexCoordinate  `json:"to"`
}

func ActionFromMove(m game.Move) Action {
	a := Action{Team: m.Team, To: m.To}
	if m.From != nil {
		from := *m.From
		a.From = &from
	}
	return a
}

func (a Action) Move() game.Move {
	if a.From == nil {
		return game.NewPlacement(a.To, a.Team)
	}
	return game.NewSlide(*a.From, a.To, a.Team)
}

// Snapshot is the state of a game as published by the counterpart. Board
// holds eight rows of eight cells, indexed [y][x] in cartesian order.
type Snapshot struct {
	Turn      int            `json:"turn"`
	StartTeam game.TeamEnum  `json:"startTeam"`
	Board     [][]FieldValue `json:"board"`
	Fishes    [2]int         `json:"fishes"`
	LastMove  *Action        `json:"lastMove,omitempty"`
	GameOver  bool           `json:"gameOver,omitempty"`
}

func NewSnapshot(gs *game.GameState) Snapshot {
	s := Snapshot{
		Turn:      gs.Turn,
		StartTeam: gs.StartTeam,
		Board:     make([][]FieldValue, game.Height),
		Fishes:    [2]int{gs.Fishes.One, gs.Fishes.Two},
		GameOver:  gs.IsOver(),
	}
	if gs.LastMove != nil {
		last := ActionFromMove(*gs.LastMove)
		s.LastMove = &last
	}
	for y := range s.Board {
		s.Board[y] = make([]FieldValue, game.Width)
		for x := range s.Board[y] {
			index := y*game.Width + x
			f, _ := gs.Board.GetField(index)
			if team, ok := f.Team(); ok {
				s.Board[y][x] = FieldValue{Team: &team}
			} else {
				s.Board[y][x] = FieldValue{Fish: f.Fish}
			}
		}
	}
	return s
}

// GameState decodes the snapshot into a game state, building the board one
// field at a time.
func (s Snapshot) GameState() (*game.GameState, error) {
	gs, _, err := s.Decode()
	return gs, err
}

// Decode is GameState that also reports whether the game has ended. A game
// stopped by the counterpart is over even if moves remain.
func (s Snapshot) Decode() (*game.GameState, bool, error) {
	if len(s.Board) != game.Height {
		return nil, false, fmt.Errorf("board has %d rows, want %d", len(s.Board), game.Height)
	}
	var board game.Board
	for y, row := range s.Board {
		if len(row) != game.Width {
			return nil, false, fmt.Errorf("row %d has %d fields, want %d", y, len(row), game.Width)
		}
		for x, value := range row {
			c := game.CartesianCoordinate{X: x, Y: y}.ToHex()
			f := game.Field{Coordinate: c, Fish: value.Fish}
			if value.Team != nil {
				f = game.Field{Coordinate: c, Penguin: &game.Penguin{Position: c, Team: *value.Team}}
			}
			if err := board.SetField(f); err != nil {
				return nil, false, fmt.Errorf("field (%d, %d): %w", x, y, err)
			}
		}
	}
	var last *game.Move
	if s.LastMove != nil {
		m := s.LastMove.Move()
		last = &m
	}
	fishes := game.Fishes{One: s.Fishes[0], Two: s.Fishes[1]}
	gs := game.NewGameState(board, s.Turn, s.StartTeam, fishes, last)
	return gs, s.GameOver || gs.IsOver(), nil
}
