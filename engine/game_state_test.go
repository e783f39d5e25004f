package engine

import (
	"errors"
	"testing"
)

// playMoves builds a position by alternating moves from Black.
func playMoves(t *testing.T, size int, moves ...Move) *GameState {
	t.Helper()
	state := NewGameState(size)
	for _, move := range moves {
		if err := state.ApplyMove(move); err != nil {
			t.Fatalf("setup move %s: %v", move, err)
		}
	}
	return state
}

func TestApplyUndoRestoresState(t *testing.T) {
	state := playMoves(t, 9, NewMove(4, 4), NewMove(3, 3), NewMove(4, 5))
	before := state.Clone()

	for _, move := range state.ListMoves() {
		if err := state.ApplyMove(move); err != nil {
			t.Fatalf("apply %s: %v", move, err)
		}
		state.UndoMove(move)
		if !state.Board.Equal(before.Board) {
			t.Fatalf("board changed after apply/undo of %s", move)
		}
		if state.ToMove != before.ToMove {
			t.Fatalf("mover changed after apply/undo of %s", move)
		}
		if state.Hash != before.Hash {
			t.Fatalf("hash changed after apply/undo of %s", move)
		}
		if len(state.Log) != len(before.Log) {
			t.Fatalf("log length %d, want %d", len(state.Log), len(before.Log))
		}
	}
}

func TestMoversAlternate(t *testing.T) {
	state := NewGameState(5)
	moves := state.ListMoves()
	for i, move := range moves {
		want := PlayerBlack
		if i%2 == 1 {
			want = PlayerWhite
		}
		if state.ToMove != want {
			t.Fatalf("move %d: mover %s, want %s", i, state.ToMove, want)
		}
		if err := state.ApplyMove(move); err != nil {
			t.Fatalf("apply %s: %v", move, err)
		}
		if got := CellFromPlayer(want); state.Board.At(move.Row, move.Col) != got {
			t.Fatalf("cell %s holds %s, want %s", move, state.Board.At(move.Row, move.Col), got)
		}
	}
	if !state.Board.Full() {
		t.Fatalf("expected full board")
	}
	if stones := state.Board.Size()*state.Board.Size() - state.Board.CountEmpty(); state.MoveCount() != stones {
		t.Fatalf("log has %d moves for %d stones", state.MoveCount(), stones)
	}
}

func TestApplyMoveRejectsInvalid(t *testing.T) {
	state := playMoves(t, 5, NewMove(2, 2))
	before := state.Clone()

	cases := []Move{NewMove(2, 2), NewMove(-1, 0), NewMove(0, 5), NewMove(5, 5)}
	for _, move := range cases {
		err := state.ApplyMove(move)
		if !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("move %s: expected ErrInvalidMove, got %v", move, err)
		}
		if !state.Board.Equal(before.Board) || state.ToMove != before.ToMove || state.Hash != before.Hash {
			t.Fatalf("rejected move %s mutated the state", move)
		}
	}
}

func TestListMovesRowMajor(t *testing.T) {
	state := playMoves(t, 3, NewMove(0, 1), NewMove(1, 1))
	got := state.ListMoves()
	want := []Move{{0, 0}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("got %d moves, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("move %d: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestMoverHasLost(t *testing.T) {
	state := playMoves(t, 7,
		NewMove(0, 0), NewMove(6, 6),
		NewMove(0, 1), NewMove(6, 5),
		NewMove(0, 2), NewMove(6, 4),
		NewMove(0, 3), NewMove(5, 0),
	)
	if state.MoverHasLost() || state.IsTerminal() {
		t.Fatalf("position should still be open")
	}
	if err := state.ApplyMove(NewMove(0, 4)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !state.MoverHasLost() {
		t.Fatalf("white to move should have lost after black's five")
	}
	if !state.IsTerminal() {
		t.Fatalf("expected terminal state")
	}
	if last, ok := state.LastMove(); !ok || last != NewMove(0, 4) {
		t.Fatalf("unexpected last move %s", last)
	}
}
