package engine

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrGameOver        = errors.New("game is already over")
	ErrNoLegalMove     = errors.New("no legal move")
	ErrNotHumanTurn    = errors.New("not a human turn")
	ErrNotEngineTurn   = errors.New("not an engine turn")
	ErrInvalidSettings = errors.New("invalid game settings")
)
