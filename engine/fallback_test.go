package engine

import "testing"

func TestFallbackPrefersWinOverBlock(t *testing.T) {
	// Both sides hold four; Black to move wins at (3,4) rather than
	// blocking at (5,4).
	state := playMoves(t, 9,
		NewMove(3, 0), NewMove(5, 0),
		NewMove(3, 1), NewMove(5, 1),
		NewMove(3, 2), NewMove(5, 2),
		NewMove(3, 3), NewMove(5, 3),
	)
	before := state.Clone()
	move, ok := FallbackMove(state)
	if !ok || move != NewMove(3, 4) {
		t.Fatalf("expected win at (3,4), got %s", move)
	}
	if !state.Board.Equal(before.Board) {
		t.Fatalf("probes left stones on the board")
	}
}

func TestFallbackBlocks(t *testing.T) {
	state := whiteMustBlock(t)
	before := state.Clone()
	move, ok := FallbackMove(state)
	if !ok || move != NewMove(3, 4) {
		t.Fatalf("expected block at (3,4), got %s", move)
	}
	if !state.Board.Equal(before.Board) {
		t.Fatalf("probes left stones on the board")
	}
}

func TestFallbackPlaysNextToLastMove(t *testing.T) {
	state := playMoves(t, 9, NewMove(4, 4), NewMove(0, 0))
	move, ok := FallbackMove(state)
	if !ok {
		t.Fatalf("expected a move")
	}
	// First empty neighbour of (0,0) in scan order.
	if move != NewMove(0, 1) {
		t.Fatalf("expected (0,1), got %s", move)
	}
}

func TestFallbackRandomOnEmptyBoard(t *testing.T) {
	state := NewGameState(9)
	for i := 0; i < 20; i++ {
		move, ok := FallbackMove(state)
		if !ok || !state.Board.IsEmpty(move.Row, move.Col) {
			t.Fatalf("expected a legal random move, got %s", move)
		}
	}
}

func TestFallbackLastEmptyCell(t *testing.T) {
	state := playMoves(t, 3,
		NewMove(0, 0), NewMove(0, 1), NewMove(0, 2), NewMove(1, 0),
		NewMove(1, 2), NewMove(2, 0), NewMove(2, 1), NewMove(2, 2),
	)
	move, ok := FallbackMove(state)
	if !ok || move != NewMove(1, 1) {
		t.Fatalf("expected the last empty cell (1,1), got %s", move)
	}
}

func TestFallbackFullBoard(t *testing.T) {
	state := NewGameState(3)
	for _, move := range state.ListMoves() {
		_ = state.ApplyMove(move)
	}
	if move, ok := FallbackMove(state); ok {
		t.Fatalf("full board has no fallback, got %s", move)
	}
}
