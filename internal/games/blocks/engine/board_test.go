package engine

import (
	"reflect"
	"testing"
)

// fillBoardRow occupies every cell of a row except the given columns.
func fillBoardRow(b *Board, row int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, c := range except {
		skip[c] = true
	}
	for c := 0; c < b.width; c++ {
		if !skip[c] {
			b.rows[row][c] = cellFor(KindI)
		}
	}
}

func TestIsCellEmptyBounds(t *testing.T) {
	b := NewBoard(10, 20)

	if !b.IsCellEmpty(5, 5) {
		t.Error("fresh board cell should be empty")
	}

	// Out of bounds counts as a wall on every side
	for _, pos := range [][2]int{{-1, 5}, {20, 5}, {5, -1}, {5, 10}} {
		if b.IsCellEmpty(pos[0], pos[1]) {
			t.Errorf("out of bounds (%d, %d) should not be empty", pos[0], pos[1])
		}
	}

	b.Place([]PlacedCell{{Row: 5, Col: 5, Kind: KindT}})
	if b.IsCellEmpty(5, 5) {
		t.Error("placed cell should not be empty")
	}
}

func TestPlaceAndCellTags(t *testing.T) {
	b := NewBoard(10, 20)
	b.Place([]PlacedCell{
		{Row: 19, Col: 0, Kind: KindJ},
		{Row: 19, Col: 1, Kind: KindL},
	})

	kind, ok := b.Cell(19, 0).Piece()
	if !ok || kind != KindJ {
		t.Errorf("Cell(19, 0) = %v, want J", kind)
	}
	kind, ok = b.Cell(19, 1).Piece()
	if !ok || kind != KindL {
		t.Errorf("Cell(19, 1) = %v, want L", kind)
	}
	if _, ok := b.Cell(0, 0).Piece(); ok {
		t.Error("empty cell should not report a piece")
	}
}

func TestFullRows(t *testing.T) {
	b := NewBoard(10, 20)
	fillBoardRow(b, 19)
	fillBoardRow(b, 17)
	fillBoardRow(b, 15, 4) // one gap, not full

	got := b.FullRows()
	want := []int{17, 19}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FullRows() = %v, want %v", got, want)
	}
}

func TestClearAndCompress(t *testing.T) {
	tests := []struct {
		name  string
		clear []int
	}{
		{name: "no rows", clear: nil},
		{name: "single bottom row", clear: []int{19}},
		{name: "single middle row", clear: []int{10}},
		{name: "two adjacent rows", clear: []int{18, 19}},
		{name: "two separated rows", clear: []int{12, 17}},
		{name: "four rows", clear: []int{16, 17, 18, 19}},
		{name: "top row", clear: []int{0}},
		{name: "every row", clear: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(10, 20)
			// Tag each row with a distinct gap column so order is observable
			for row := 0; row < 20; row++ {
				fillBoardRow(b, row, row%10)
			}

			cleared := make(map[int]bool)
			for _, r := range tt.clear {
				cleared[r] = true
			}
			var retained []int
			for row := 0; row < 20; row++ {
				if !cleared[row] {
					retained = append(retained, row)
				}
			}

			b.ClearAndCompress(tt.clear)

			if b.Height() != 20 {
				t.Fatalf("height changed to %d", b.Height())
			}

			// Fresh empty rows on top
			for row := 0; row < len(tt.clear); row++ {
				for col := 0; col < 10; col++ {
					if !b.IsCellEmpty(row, col) {
						t.Fatalf("inserted row %d not empty at col %d", row, col)
					}
				}
			}

			// Retained rows keep their relative order below the fresh ones
			for i, orig := range retained {
				row := len(tt.clear) + i
				gap := orig % 10
				for col := 0; col < 10; col++ {
					wantEmpty := col == gap
					if b.IsCellEmpty(row, col) != wantEmpty {
						t.Fatalf("row %d (was %d) col %d: empty=%v, want %v",
							row, orig, col, b.IsCellEmpty(row, col), wantEmpty)
					}
				}
			}
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	b := NewBoard(10, 20)
	b.Place([]PlacedCell{{Row: 10, Col: 3, Kind: KindS}})

	snap := b.Snapshot()
	snap[10][3] = CellEmpty

	if b.IsCellEmpty(10, 3) {
		t.Error("mutating a snapshot should not touch the board")
	}
}
