package engine

import "fmt"

const (
	MinBoardSize     = 3
	MaxBoardSize     = 25
	DefaultBoardSize = 15
)

type GameSettings struct {
	BoardSize  int        `json:"board_size"`
	Difficulty int        `json:"difficulty"`
	Black      MoveSource `json:"black"`
	White      MoveSource `json:"white"`
	Search     Config     `json:"search"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize:  DefaultBoardSize,
		Difficulty: 3,
		Black:      SourceHuman,
		White:      SourceNegamax,
		Search:     DefaultConfig(),
	}
}

// Validate rejects board sizes outside MinBoardSize..MaxBoardSize.
// Difficulty is clamped rather than rejected.
func (s GameSettings) Validate() error {
	if s.BoardSize < MinBoardSize || s.BoardSize > MaxBoardSize {
		return fmt.Errorf("%w: board size %d outside %d..%d", ErrInvalidSettings, s.BoardSize, MinBoardSize, MaxBoardSize)
	}
	return nil
}

func (s GameSettings) normalized() GameSettings {
	s.Difficulty = ClampDifficulty(s.Difficulty)
	return s
}

func (s GameSettings) sourceFor(player PlayerColor) MoveSource {
	if player == PlayerBlack {
		return s.Black
	}
	return s.White
}
