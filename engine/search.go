package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
)

// Strategy picks a move for the side to move. The state is mutated during the
// search and restored before ChooseMove returns. ok is false when no move was
// produced, e.g. the budget ran out before the first result.
type Strategy interface {
	ChooseMove(ctx context.Context, state *GameState, depth int, timeout time.Duration) (move Move, ok bool)
	LastStats() SearchStats
}

type SearchStats struct {
	Nodes           int64
	TTProbes        int64
	TTHits          int64
	TTStores        int64
	Cutoffs         int64
	Start           time.Time
	DepthDurations  []time.Duration
	CompletedDepths int
	BestScore       int
	Aborted         bool
}

type searchContext struct {
	ctx         context.Context
	tt          *TranspositionTable
	stats       *SearchStats
	deadline    time.Time
	hasDeadline bool
	aborted     bool
	rootMove    Move
}

func newSearchContext(ctx context.Context, tt *TranspositionTable, timeout time.Duration, stats *SearchStats) *searchContext {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &searchContext{ctx: ctx, tt: tt, stats: stats, rootMove: NoMove}
	if timeout > 0 {
		s.deadline = stats.Start.Add(timeout)
		s.hasDeadline = true
	}
	if dl, ok := ctx.Deadline(); ok && (!s.hasDeadline || dl.Before(s.deadline)) {
		s.deadline = dl
		s.hasDeadline = true
	}
	return s
}

// timedOut latches: once the budget is gone every later check fails fast.
func (s *searchContext) timedOut() bool {
	if s.aborted {
		return true
	}
	select {
	case <-s.ctx.Done():
		s.aborted = true
		return true
	default:
	}
	if s.hasDeadline && !time.Now().Before(s.deadline) {
		s.aborted = true
		return true
	}
	return false
}

// negamax returns the value of state for its mover, searched depth plies deep
// inside the (alpha, beta) window. A timed-out node returns -WinScore and
// leaves the search aborted; callers must discard results from that point on.
func (s *searchContext) negamax(state *GameState, depth, ply, alpha, beta int) int {
	if s.timedOut() {
		return -WinScore
	}
	s.stats.Nodes++
	if state.MoverHasLost() {
		// Losing later is better than losing now.
		return LossScore - depth
	}
	if depth <= 0 || state.Board.Full() {
		return windowScore(state)
	}

	alphaOrig := alpha
	key := state.Hash
	if ply > 0 && s.tt != nil {
		s.stats.TTProbes++
		if entry, ok := s.tt.Probe(key); ok && entry.Depth >= depth {
			s.stats.TTHits++
			switch entry.Flag {
			case TTExact:
				return entry.Score
			case TTLower:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case TTUpper:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				s.stats.Cutoffs++
				return entry.Score
			}
		}
	}

	best := -WinScore
	bestIdx := -1
	for idx, cell := range state.Board.cells {
		if cell != CellEmpty {
			continue
		}
		state.push(idx)
		value := -s.negamax(state, depth-1, ply+1, -beta, -alpha)
		state.pop(idx)
		if s.aborted {
			return -WinScore
		}
		if value > best || bestIdx < 0 {
			best = value
			bestIdx = idx
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}

	bestMove := state.Board.moveAt(bestIdx)
	if ply == 0 {
		s.rootMove = bestMove
	}
	if s.tt != nil {
		flag := TTExact
		if best <= alphaOrig {
			flag = TTUpper
		} else if best >= beta {
			flag = TTLower
		}
		if s.tt.Store(key, depth, best, flag, bestMove) {
			s.stats.TTStores++
		}
	}
	return best
}

func logSearchStats(tag string, stats *SearchStats, tt *TranspositionTable) {
	if stats == nil {
		return
	}
	elapsed := time.Since(stats.Start)
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	ttHitRate := 0.0
	if stats.TTProbes > 0 {
		ttHitRate = float64(stats.TTHits) * 100.0 / float64(stats.TTProbes)
	}
	depthMs := make([]int64, 0, len(stats.DepthDurations))
	for _, d := range stats.DepthDurations {
		depthMs = append(depthMs, d.Milliseconds())
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	log.Info().
		Str("engine", tag).
		Int64("elapsedMs", elapsed.Milliseconds()).
		Int("completed", stats.CompletedDepths).
		Bool("aborted", stats.Aborted).
		Int("score", stats.BestScore).
		Int64("nodes", stats.Nodes).
		Float64("nps", nps).
		Int64("ttProbes", stats.TTProbes).
		Int64("ttHits", stats.TTHits).
		Float64("ttHitRate", ttHitRate).
		Int64("ttStores", stats.TTStores).
		Int("ttSize", tt.Count()).
		Int64("cutoffs", stats.Cutoffs).
		Ints64("depthMs", depthMs).
		Uint64("heapAlloc", mem.HeapAlloc).
		Msg("search-stats")
}
