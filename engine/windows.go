package engine

import "sync"

// WindowLength is both the winning run length and the evaluator window width.
const WindowLength = 5

type window [WindowLength]int

type windowStore struct {
	mu     sync.Mutex
	tables map[int][]window
}

var windowTables = &windowStore{tables: make(map[int][]window)}

// windowsFor returns the cell indexes of every length-5 window on a board of the
// given size: rows, then columns, then down-right diagonals, then down-left
// diagonals.
func windowsFor(size int) []window {
	windowTables.mu.Lock()
	defer windowTables.mu.Unlock()
	if table, ok := windowTables.tables[size]; ok {
		return table
	}
	table := buildWindows(size)
	windowTables.tables[size] = table
	return table
}

func buildWindows(size int) []window {
	if size < WindowLength {
		return nil
	}
	span := size - WindowLength + 1
	out := make([]window, 0, 2*size*span+2*span*span)
	add := func(row, col, dRow, dCol int) {
		var w window
		for k := 0; k < WindowLength; k++ {
			w[k] = (row+k*dRow)*size + col + k*dCol
		}
		out = append(out, w)
	}
	for row := 0; row < size; row++ {
		for col := 0; col < span; col++ {
			add(row, col, 0, 1)
		}
	}
	for row := 0; row < span; row++ {
		for col := 0; col < size; col++ {
			add(row, col, 1, 0)
		}
	}
	for row := 0; row < span; row++ {
		for col := 0; col < span; col++ {
			add(row, col, 1, 1)
		}
	}
	for row := 0; row < span; row++ {
		for col := WindowLength - 1; col < size; col++ {
			add(row, col, 1, -1)
		}
	}
	return out
}
