package engine

import "fmt"

// MoveSource says who picks the moves for one side.
type MoveSource int

const (
	SourceHuman MoveSource = iota
	SourceNegamax
	SourceBestFirst
)

func (s MoveSource) IsHuman() bool {
	return s == SourceHuman
}

func (s MoveSource) String() string {
	switch s {
	case SourceNegamax:
		return "negamax"
	case SourceBestFirst:
		return "best_first"
	default:
		return "human"
	}
}

func ParseMoveSource(value string) (MoveSource, error) {
	switch value {
	case "human":
		return SourceHuman, nil
	case "negamax", "":
		return SourceNegamax, nil
	case "best_first", "bestfirst":
		return SourceBestFirst, nil
	}
	return SourceHuman, fmt.Errorf("unknown move source %q", value)
}

func (s MoveSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *MoveSource) UnmarshalText(text []byte) error {
	parsed, err := ParseMoveSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func newStrategy(source MoveSource, tt *TranspositionTable, config Config) Strategy {
	switch source {
	case SourceNegamax:
		return NewNegamaxEngine(tt, config)
	case SourceBestFirst:
		return NewBestFirstEngine(tt, config)
	default:
		return nil
	}
}
