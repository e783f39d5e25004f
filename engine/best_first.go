package engine

import (
	"context"
	"time"
)

// BestFirstEngine scores every root move with its own full-window descent and
// keeps the best one. Despite the name it is a full-width searcher; it differs
// from NegamaxEngine only in dropping iterative deepening and in stopping at
// the first root move that proves a win.
type BestFirstEngine struct {
	tt     *TranspositionTable
	config Config
	stats  SearchStats
}

func NewBestFirstEngine(tt *TranspositionTable, config Config) *BestFirstEngine {
	return &BestFirstEngine{tt: tt, config: config}
}

func (e *BestFirstEngine) LastStats() SearchStats {
	return e.stats
}

func (e *BestFirstEngine) ChooseMove(ctx context.Context, state *GameState, depth int, timeout time.Duration) (Move, bool) {
	depth = ClampDifficulty(depth)
	stats := SearchStats{Start: time.Now()}
	search := newSearchContext(ctx, e.tt, timeout, &stats)
	if e.tt != nil {
		e.tt.NextGeneration()
	}

	best := NoMove
	bestScore := -WinScore
	if state.IsTerminal() {
		e.stats = stats
		return best, false
	}
	for idx, cell := range state.Board.cells {
		if cell != CellEmpty {
			continue
		}
		if search.timedOut() {
			break
		}
		state.push(idx)
		score := -search.negamax(state, depth-1, 1, -WinScore, WinScore)
		state.pop(idx)
		if search.aborted {
			break
		}
		if best == NoMove || score > bestScore {
			best = state.Board.moveAt(idx)
			bestScore = score
			if e.config.AiBestFirstEarlyExit && isWinScore(bestScore) {
				break
			}
		}
	}

	// A partial root scan is still a result: every scored move was searched
	// to full depth.
	if best != NoMove {
		stats.CompletedDepths = depth
		stats.BestScore = bestScore
	}
	stats.Aborted = search.aborted
	e.stats = stats
	if e.config.AiLogSearchStats {
		logSearchStats("best_first", &stats, e.tt)
	}
	return best, best != NoMove
}
