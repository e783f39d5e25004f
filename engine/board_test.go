package engine

import "testing"

func TestHasFiveInRowDirections(t *testing.T) {
	cases := []struct {
		name  string
		cells []Move
	}{
		{"horizontal", []Move{{2, 1}, {2, 2}, {2, 3}, {2, 4}, {2, 5}}},
		{"vertical", []Move{{0, 6}, {1, 6}, {2, 6}, {3, 6}, {4, 6}}},
		{"diagonal", []Move{{2, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 6}}},
		{"anti-diagonal", []Move{{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0}}},
		{"anti-diagonal edge", []Move{{2, 6}, {3, 5}, {4, 4}, {5, 3}, {6, 2}}},
	}
	for _, tc := range cases {
		board := NewBoard(7)
		for _, m := range tc.cells {
			board.Set(m.Row, m.Col, CellWhite)
		}
		if !board.HasFiveInRow(CellWhite) {
			t.Fatalf("%s: expected five in a row", tc.name)
		}
		if board.HasFiveInRow(CellBlack) {
			t.Fatalf("%s: black has no stones", tc.name)
		}
		line, ok := board.FindFiveInRow(CellWhite)
		if !ok || len(line) != WindowLength {
			t.Fatalf("%s: expected a winning line, got %v", tc.name, line)
		}
		for _, m := range line {
			if board.At(m.Row, m.Col) != CellWhite {
				t.Fatalf("%s: line cell %s is not white", tc.name, m)
			}
		}
	}
}

func TestHasFiveInRowNegative(t *testing.T) {
	board := NewBoard(9)
	for col := 0; col < 4; col++ {
		board.Set(4, col, CellBlack)
	}
	if board.HasFiveInRow(CellBlack) {
		t.Fatalf("four stones must not win")
	}
	board.Set(4, 4, CellWhite)
	board.Set(4, 5, CellBlack)
	if board.HasFiveInRow(CellBlack) {
		t.Fatalf("broken run must not win")
	}
	// Wrapping across the row end is not a line.
	board = NewBoard(5)
	board.Set(0, 3, CellBlack)
	board.Set(0, 4, CellBlack)
	board.Set(1, 0, CellBlack)
	board.Set(1, 1, CellBlack)
	board.Set(1, 2, CellBlack)
	if board.HasFiveInRow(CellBlack) {
		t.Fatalf("runs must not wrap between rows")
	}
}

func TestLongRunCountsAsFive(t *testing.T) {
	board := NewBoard(9)
	for col := 1; col < 8; col++ {
		board.Set(3, col, CellBlack)
	}
	if !board.HasFiveInRow(CellBlack) {
		t.Fatalf("a run of seven contains five")
	}
}

func TestSmallBoardsHaveNoWindows(t *testing.T) {
	board := NewBoard(4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			board.Set(row, col, CellBlack)
		}
	}
	if board.HasFiveInRow(CellBlack) {
		t.Fatalf("a 4x4 board can never hold five")
	}
	if got := len(windowsFor(4)); got != 0 {
		t.Fatalf("expected no windows on 4x4, got %d", got)
	}
}

func TestWindowCount(t *testing.T) {
	// rows + cols: 2*N*(N-4), both diagonals: 2*(N-4)^2
	for _, size := range []int{5, 7, 15} {
		span := size - WindowLength + 1
		want := 2*size*span + 2*span*span
		if got := len(windowsFor(size)); got != want {
			t.Fatalf("size %d: got %d windows, want %d", size, got, want)
		}
	}
}

func TestBoardRowsAndString(t *testing.T) {
	board := NewBoard(3)
	board.Set(0, 0, CellBlack)
	board.Set(1, 2, CellWhite)
	rows := board.Rows()
	if rows[0][0] != 1 || rows[1][2] != 2 || rows[2][2] != 0 {
		t.Fatalf("unexpected rows %v", rows)
	}
	if got, want := board.String(), "X..\n..O\n..."; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	clone := board.Clone()
	clone.Set(2, 2, CellBlack)
	if board.Equal(clone) {
		t.Fatalf("clone must not share cells")
	}
}
