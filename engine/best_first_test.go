package engine

import (
	"context"
	"testing"
)

func TestBestFirstTakesImmediateWin(t *testing.T) {
	state := blackFourOnRow3(t)
	engine := NewBestFirstEngine(DefaultConfig().newTranspositionTable(), DefaultConfig())
	move, ok := engine.ChooseMove(context.Background(), state, 2, 0)
	if !ok || move != NewMove(3, 4) {
		t.Fatalf("expected winning move (3,4), got %s", move)
	}
	if !isWinScore(engine.LastStats().BestScore) {
		t.Fatalf("expected a win score, got %d", engine.LastStats().BestScore)
	}
}

func TestBestFirstBlocksFour(t *testing.T) {
	state := whiteMustBlock(t)
	engine := NewBestFirstEngine(DefaultConfig().newTranspositionTable(), DefaultConfig())
	move, ok := engine.ChooseMove(context.Background(), state, 2, 0)
	if !ok || move != NewMove(3, 4) {
		t.Fatalf("expected block at (3,4), got %s", move)
	}
}

func TestBestFirstMatchesNegamax(t *testing.T) {
	config := DefaultConfig()
	config.AiBestFirstEarlyExit = false
	config.AiStopOnProvenResult = false
	config.AiIterativeDeepening = false
	state := playMoves(t, 6, NewMove(2, 2), NewMove(3, 3), NewMove(2, 3))
	for depth := 1; depth <= 3; depth++ {
		wantScore, wantMove := bruteNegamax(state, depth)
		engine := NewBestFirstEngine(config.newTranspositionTable(), config)
		move, ok := engine.ChooseMove(context.Background(), state, depth, 0)
		if !ok || move != wantMove {
			t.Fatalf("depth %d: got %s want %s", depth, move, wantMove)
		}
		if got := engine.LastStats().BestScore; got != wantScore {
			t.Fatalf("depth %d: score %d want %d", depth, got, wantScore)
		}
	}
}

func TestBestFirstEarlyExit(t *testing.T) {
	state := blackFourOnRow3(t)
	config := DefaultConfig()
	withExit := NewBestFirstEngine(config.newTranspositionTable(), config)
	withExit.ChooseMove(context.Background(), state, 2, 0)

	config.AiBestFirstEarlyExit = false
	without := NewBestFirstEngine(config.newTranspositionTable(), config)
	move, _ := without.ChooseMove(context.Background(), state, 2, 0)
	if move != NewMove(3, 4) {
		t.Fatalf("expected (3,4) without early exit, got %s", move)
	}
	if withExit.LastStats().Nodes >= without.LastStats().Nodes {
		t.Fatalf("early exit should search fewer nodes: %d vs %d", withExit.LastStats().Nodes, without.LastStats().Nodes)
	}
}

func TestBestFirstCancelledContext(t *testing.T) {
	state := playMoves(t, 9, NewMove(4, 4))
	before := state.Clone()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := NewBestFirstEngine(DefaultConfig().newTranspositionTable(), DefaultConfig())
	if _, ok := engine.ChooseMove(ctx, state, 2, 0); ok {
		t.Fatalf("cancelled search must not produce a move")
	}
	if !engine.LastStats().Aborted {
		t.Fatalf("expected aborted stats")
	}
	if !state.Board.Equal(before.Board) || state.Hash != before.Hash {
		t.Fatalf("state modified")
	}
}
