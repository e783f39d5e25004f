package engine

const (
	// LossScore is returned for a position whose mover has already lost.
	LossScore = -10_000_000
	// WinScore bounds every search window; a timed-out node reports -WinScore.
	WinScore = 100_000_000
)

// windowWeights is indexed by the number of same-owner stones in a live window.
var windowWeights = [WindowLength + 1]int{0, 1, 10, 100, 1000, 10000}

// EvaluateWindows sums the live windows for player: windows holding only
// player's stones count positive, windows holding only opponent stones count
// negative, mixed and empty windows count zero.
func EvaluateWindows(board Board, player PlayerColor) int {
	me := CellFromPlayer(player)
	score := 0
	for _, w := range windowsFor(board.size) {
		mine, theirs := 0, 0
		for _, idx := range w {
			switch board.cells[idx] {
			case CellEmpty:
			case me:
				mine++
			default:
				theirs++
			}
		}
		switch {
		case mine > 0 && theirs > 0:
		case mine > 0:
			score += windowWeights[mine]
		case theirs > 0:
			score -= windowWeights[theirs]
		}
	}
	return score
}

// Score evaluates the position for the side to move.
func Score(state *GameState) int {
	if state.MoverHasLost() {
		return LossScore
	}
	return windowScore(state)
}

func windowScore(state *GameState) int {
	mover := state.ToMove
	return EvaluateWindows(state.Board, mover) - EvaluateWindows(state.Board, otherPlayer(mover))
}

// isWinScore reports whether a search value proves a forced win for the side it
// is reported for.
func isWinScore(value int) bool {
	return value >= -LossScore-MaxDifficulty && value < WinScore
}

func isLossScore(value int) bool {
	return value <= LossScore+MaxDifficulty && value > -WinScore
}
