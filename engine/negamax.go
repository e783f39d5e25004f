package engine

import (
	"context"
	"time"
)

// NegamaxEngine runs a fixed-depth alpha-beta negamax, deepened one ply at a
// time. Only fully completed depths produce a move.
type NegamaxEngine struct {
	tt     *TranspositionTable
	config Config
	stats  SearchStats
}

func NewNegamaxEngine(tt *TranspositionTable, config Config) *NegamaxEngine {
	return &NegamaxEngine{tt: tt, config: config}
}

func (e *NegamaxEngine) LastStats() SearchStats {
	return e.stats
}

func (e *NegamaxEngine) ChooseMove(ctx context.Context, state *GameState, depth int, timeout time.Duration) (Move, bool) {
	depth = ClampDifficulty(depth)
	stats := SearchStats{Start: time.Now()}
	search := newSearchContext(ctx, e.tt, timeout, &stats)
	if e.tt != nil {
		e.tt.NextGeneration()
	}

	startDepth := 1
	if !e.config.AiIterativeDeepening {
		startDepth = depth
	}

	best := NoMove
	for d := startDepth; d <= depth; d++ {
		if search.timedOut() {
			break
		}
		roundStart := time.Now()
		search.rootMove = NoMove
		score := search.negamax(state, d, 0, -WinScore, WinScore)
		if search.aborted {
			break
		}
		stats.DepthDurations = append(stats.DepthDurations, time.Since(roundStart))
		if search.rootMove == NoMove {
			break
		}
		best = search.rootMove
		stats.CompletedDepths = d
		stats.BestScore = score
		if e.config.AiStopOnProvenResult && (isWinScore(score) || isLossScore(score)) {
			break
		}
	}

	stats.Aborted = search.aborted
	e.stats = stats
	if e.config.AiLogSearchStats {
		logSearchStats("negamax", &stats, e.tt)
	}
	return best, best != NoMove
}
