package engine

import (
	"fmt"
	"strings"
)

type Cell int8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

type Board struct {
	size  int
	cells []Cell
}

func NewBoard(boardSize int) Board {
	b := Board{}
	b.Reset(boardSize)
	return b
}

func (b *Board) Reset(boardSize int) {
	b.size = boardSize
	b.cells = make([]Cell, boardSize*boardSize)
}

func (b Board) At(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

func (b *Board) Set(row, col int, value Cell) {
	b.cells[b.index(row, col)] = value
}

func (b *Board) Remove(row, col int) {
	b.cells[b.index(row, col)] = CellEmpty
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

func (b Board) IsEmpty(row, col int) bool {
	return b.InBounds(row, col) && b.At(row, col) == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Full() bool {
	for _, cell := range b.cells {
		if cell == CellEmpty {
			return false
		}
	}
	return true
}

func (b Board) Size() int {
	return b.size
}

func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

// Equal reports whether both boards have the same size and cell contents.
func (b Board) Equal(other Board) bool {
	if b.size != other.size || len(b.cells) != len(other.cells) {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// HasFiveInRow scans every length-5 window on the board.
func (b Board) HasFiveInRow(owner Cell) bool {
	_, ok := b.FindFiveInRow(owner)
	return ok
}

// FindFiveInRow returns the first window, in scan order, fully owned by owner.
func (b Board) FindFiveInRow(owner Cell) ([]Move, bool) {
	if owner == CellEmpty {
		return nil, false
	}
	for _, window := range windowsFor(b.size) {
		owned := true
		for _, idx := range window {
			if b.cells[idx] != owner {
				owned = false
				break
			}
		}
		if owned {
			line := make([]Move, 0, WindowLength)
			for _, idx := range window {
				line = append(line, b.moveAt(idx))
			}
			return line, true
		}
	}
	return nil, false
}

// Rows renders the board as 0/1/2 rows for API responses.
func (b Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for row := 0; row < b.size; row++ {
		rows[row] = make([]int, b.size)
		for col := 0; col < b.size; col++ {
			rows[row][col] = int(b.At(row, col))
		}
	}
	return rows
}

func (b Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			switch b.At(row, col) {
			case CellBlack:
				sb.WriteByte('X')
			case CellWhite:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		if row < b.size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (b Board) index(row, col int) int {
	return row*b.size + col
}

func (b Board) moveAt(idx int) Move {
	return Move{Row: idx / b.size, Col: idx % b.size}
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "Black"
	case CellWhite:
		return "White"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellBlack:
		return PlayerBlack, nil
	case CellWhite:
		return PlayerWhite, nil
	default:
		return PlayerBlack, fmt.Errorf("empty cell has no player")
	}
}
