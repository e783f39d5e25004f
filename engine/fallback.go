package engine

import "lukechampine.com/frand"

// FallbackMove picks a move without searching: win now, else block the
// opponent's five, else a cell next to the last move, else a random empty
// cell. Probe stones are always removed again.
func FallbackMove(state *GameState) (Move, bool) {
	moves := state.ListMoves()
	if len(moves) == 0 {
		return NoMove, false
	}

	mover := state.ToMove
	for _, move := range moves {
		if completesFive(&state.Board, move, mover) {
			return move, true
		}
	}
	opponent := otherPlayer(mover)
	for _, move := range moves {
		if completesFive(&state.Board, move, opponent) {
			return move, true
		}
	}

	if last, ok := state.LastMove(); ok {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				if state.Board.IsEmpty(last.Row+dr, last.Col+dc) {
					return NewMove(last.Row+dr, last.Col+dc), true
				}
			}
		}
	}

	return moves[frand.Intn(len(moves))], true
}

func completesFive(board *Board, move Move, player PlayerColor) bool {
	cell := CellFromPlayer(player)
	board.Set(move.Row, move.Col, cell)
	defer board.Remove(move.Row, move.Col)
	return board.HasFiveInRow(cell)
}
