package engine

import "testing"

func TestEvaluateEmptyBoard(t *testing.T) {
	state := NewGameState(9)
	if got := Score(state); got != 0 {
		t.Fatalf("empty board should score 0, got %d", got)
	}
}

func TestEvaluateSingleStone(t *testing.T) {
	board := NewBoard(5)
	board.Set(2, 2, CellBlack)
	// Row, column and both diagonals each hold one window through the center.
	if got := EvaluateWindows(board, PlayerBlack); got != 4 {
		t.Fatalf("black windows: got %d want 4", got)
	}
	if got := EvaluateWindows(board, PlayerWhite); got != -4 {
		t.Fatalf("white windows: got %d want -4", got)
	}
	state := playMoves(t, 5, NewMove(2, 2))
	if got := Score(state); got != -8 {
		t.Fatalf("white to move: got %d want -8", got)
	}
}

func TestEvaluateWeights(t *testing.T) {
	board := NewBoard(5)
	for col := 0; col < 4; col++ {
		board.Set(0, col, CellWhite)
	}
	// Row 0 holds four, each column window one, the main diagonal one, the
	// anti-diagonal none.
	want := 1000 + 4*1 + 1
	if got := EvaluateWindows(board, PlayerWhite); got != want {
		t.Fatalf("got %d want %d", got, want)
	}
}

func TestEvaluateDeadWindows(t *testing.T) {
	board := NewBoard(5)
	for col := 0; col < 4; col++ {
		board.Set(0, col, CellWhite)
	}
	board.Set(0, 4, CellBlack)
	// Row 0 is dead; the other windows are single-owner.
	white := EvaluateWindows(board, PlayerWhite)
	if white != 4+1-1-1 {
		t.Fatalf("got %d", white)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	state := playMoves(t, 9, NewMove(4, 4), NewMove(4, 5), NewMove(3, 3), NewMove(2, 2))
	first := Score(state)
	second := Score(state)
	if first != second {
		t.Fatalf("score changed between calls: %d vs %d", first, second)
	}
}

func TestScoreIsSymmetric(t *testing.T) {
	state := playMoves(t, 9, NewMove(4, 4), NewMove(0, 0), NewMove(4, 5))
	forMover := windowScore(state)
	state.ToMove = otherPlayer(state.ToMove)
	if forOther := windowScore(state); forOther != -forMover {
		t.Fatalf("expected %d, got %d", -forMover, forOther)
	}
}

func TestScoreLossSentinel(t *testing.T) {
	state := playMoves(t, 7,
		NewMove(0, 0), NewMove(6, 6),
		NewMove(0, 1), NewMove(6, 5),
		NewMove(0, 2), NewMove(6, 4),
		NewMove(0, 3), NewMove(5, 0),
		NewMove(0, 4),
	)
	if got := Score(state); got != LossScore {
		t.Fatalf("expected loss sentinel, got %d", got)
	}
}

func TestSentinelsBoundWindowedSums(t *testing.T) {
	// Worst case: every window four-deep for one side.
	bound := 2 * len(windowsFor(MaxBoardSize)) * windowWeights[WindowLength-1]
	if bound >= -LossScore {
		t.Fatalf("windowed sum %d can reach the loss sentinel", bound)
	}
	if -LossScore+MaxDifficulty >= WinScore {
		t.Fatalf("win scores must stay below the search bound")
	}
}
