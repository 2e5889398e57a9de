package game

import "fmt"

// TeamEnum identifies one of the two teams.
type TeamEnum int

const (
	One TeamEnum = iota
	Two
)

func (t TeamEnum) Opponent() TeamEnum {
	if t == One {
		return Two
	}
	return One
}

func (t TeamEnum) String() string {
	switch t {
	case One:
		return "ONE"
	case Two:
		return "TWO"
	}
	return fmt.Sprintf("TeamEnum(%d)", int(t))
}

func (t TeamEnum) MarshalText() ([]byte, error) {
	if t != One && t != Two {
		return nil, fmt.Errorf("unknown team %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *TeamEnum) UnmarshalText(text []byte) error {
	team, err := ParseTeam(string(text))
	if err != nil {
		return err
	}
	*t = team
	return nil
}

// ParseTeam accepts the wire names "ONE" and "TWO".
func ParseTeam(s string) (TeamEnum, error) {
	switch s {
	case "ONE":
		return One, nil
	case "TWO":
		return Two, nil
	}
	return One, fmt.Errorf("unknown team %q", s)
}

// Team is a team together with its penguins and collected fish, as seen
// from one game state.
type Team struct {
	Name     TeamEnum
	Penguins []Penguin
	Fish     int
}

// Opponent returns the other team with an empty tally; tallies live on GameState.
func (t Team) Opponent() Team {
	return Team{Name: t.Name.Opponent()}
}

func (t Team) String() string {
	return fmt.Sprintf("Team(name=%s, penguins=%v, fish=%d)", t.Name, t.Penguins, t.Fish)
}

// Fishes is the fish tally of both teams.
type Fishes struct {
	One int `json:"one"`
	Two int `json:"two"`
}

func (f Fishes) For(team TeamEnum) int {
	if team == One {
		return f.One
	}
	return f.Two
}

// Add returns a copy of the tally with fish credited to team.
func (f Fishes) Add(team TeamEnum, fish int) Fishes {
	if team == One {
		f.One += fish
	} else {
		f.Two += fish
	}
	return f
}
