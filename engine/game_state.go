package engine

import "fmt"

type PlayerColor int

type GameStatus int

const (
	PlayerBlack PlayerColor = iota
	PlayerWhite
)

const (
	StatusRunning GameStatus = iota
	StatusBlackWon
	StatusWhiteWon
	StatusDraw
)

// GameState is the mutable position the search works on. Moves are applied and
// undone in place; Hash always matches the cells and the side to move.
type GameState struct {
	Board  Board
	ToMove PlayerColor
	Log    []Move
	Hash   uint64
}

func NewGameState(boardSize int) *GameState {
	s := &GameState{}
	s.Reset(boardSize)
	return s
}

func (s *GameState) Reset(boardSize int) {
	s.Board = NewBoard(boardSize)
	s.ToMove = PlayerBlack
	s.Log = nil
	s.recomputeHash()
}

func (s *GameState) Clone() *GameState {
	clone := *s
	clone.Board = s.Board.Clone()
	clone.Log = append([]Move(nil), s.Log...)
	return &clone
}

// ApplyMove places the mover's stone and passes the turn.
func (s *GameState) ApplyMove(move Move) error {
	if !move.IsValid(s.Board.Size()) {
		return fmt.Errorf("%w: %s out of bounds", ErrInvalidMove, move)
	}
	if s.Board.At(move.Row, move.Col) != CellEmpty {
		return fmt.Errorf("%w: %s occupied", ErrInvalidMove, move)
	}
	s.push(s.Board.index(move.Row, move.Col))
	return nil
}

// UndoMove takes back move, which must be the last applied move.
func (s *GameState) UndoMove(move Move) {
	s.pop(s.Board.index(move.Row, move.Col))
}

// ListMoves returns every empty cell in row-major order.
func (s *GameState) ListMoves() []Move {
	moves := make([]Move, 0, s.Board.CountEmpty())
	for idx, cell := range s.Board.cells {
		if cell == CellEmpty {
			moves = append(moves, s.Board.moveAt(idx))
		}
	}
	return moves
}

func (s *GameState) HasFiveInRow(player PlayerColor) bool {
	return s.Board.HasFiveInRow(CellFromPlayer(player))
}

// MoverHasLost reports whether the player who just moved completed five.
func (s *GameState) MoverHasLost() bool {
	return s.HasFiveInRow(otherPlayer(s.ToMove))
}

func (s *GameState) IsTerminal() bool {
	return s.MoverHasLost() || s.Board.Full()
}

func (s *GameState) LastMove() (Move, bool) {
	if len(s.Log) == 0 {
		return NoMove, false
	}
	return s.Log[len(s.Log)-1], true
}

func (s *GameState) MoveCount() int {
	return len(s.Log)
}

func (s *GameState) push(idx int) {
	z := GetZobrist(s.Board.size)
	s.Board.cells[idx] = CellFromPlayer(s.ToMove)
	s.Log = append(s.Log, s.Board.moveAt(idx))
	s.Hash ^= z.stone(idx, s.ToMove) ^ z.side
	s.ToMove = otherPlayer(s.ToMove)
}

func (s *GameState) pop(idx int) {
	z := GetZobrist(s.Board.size)
	s.ToMove = otherPlayer(s.ToMove)
	s.Hash ^= z.stone(idx, s.ToMove) ^ z.side
	s.Board.cells[idx] = CellEmpty
	s.Log = s.Log[:len(s.Log)-1]
}

func (s *GameState) recomputeHash() {
	s.Hash = ComputeHash(s)
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p PlayerColor) String() string {
	if p == PlayerBlack {
		return "Black"
	}
	return "White"
}

func (s GameStatus) String() string {
	switch s {
	case StatusBlackWon:
		return "black_won"
	case StatusWhiteWon:
		return "white_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}
