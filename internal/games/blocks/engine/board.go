package engine

import "fmt"

// Cell is the content of one board cell: CellEmpty, or the kind of the piece
// locked there, shifted by one.
type Cell uint8

// CellEmpty marks an unoccupied cell.
const CellEmpty Cell = 0

// cellFor tags a cell with a piece kind.
func cellFor(kind PieceKind) Cell {
	return Cell(kind) + 1
}

// Piece returns the kind locked in the cell, if any.
func (c Cell) Piece() (PieceKind, bool) {
	if c == CellEmpty {
		return 0, false
	}
	return PieceKind(c - 1), true
}

// PlacedCell is an absolute board cell tagged with the kind occupying it.
type PlacedCell struct {
	Row  int
	Col  int
	Kind PieceKind
}

// Board is the playing field. Row 0 is the top; rows are dense arrays with
// no gaps. The grid itself is always height rows tall; the topless variant's
// unbounded height is realized by compressing rows out underfoot, never by
// growing the grid.
type Board struct {
	width  int
	height int
	rows   [][]Cell
}

// NewBoard creates an empty board of the given dimensions.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.rows = make([][]Cell, height)
	for r := range b.rows {
		b.rows[r] = make([]Cell, width)
	}
	return b
}

// Width returns the board width in cells.
func (b *Board) Width() int {
	return b.width
}

// Height returns the board height in rows.
func (b *Board) Height() int {
	return b.height
}

// IsCellEmpty reports whether the cell at (row, col) is free.
// Out-of-bounds positions count as occupied walls, never as errors.
func (b *Board) IsCellEmpty(row, col int) bool {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return false
	}
	return b.rows[row][col] == CellEmpty
}

// Cell returns the content at (row, col). Out-of-bounds reads as empty.
func (b *Board) Cell(row, col int) Cell {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return CellEmpty
	}
	return b.rows[row][col]
}

// Place writes the given cells into the board. Callers must have validated
// the placement against IsCellEmpty first; Place does not re-check.
func (b *Board) Place(cells []PlacedCell) {
	for _, c := range cells {
		b.rows[c.Row][c.Col] = cellFor(c.Kind)
	}
}

// FullRows returns the indices of completely occupied rows, ascending.
func (b *Board) FullRows() []int {
	var full []int
	for r := 0; r < b.height; r++ {
		complete := true
		for c := 0; c < b.width; c++ {
			if b.rows[r][c] == CellEmpty {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, r)
		}
	}
	return full
}

// ClearAndCompress removes the given rows, shifts every row above them down
// by the count removed, and inserts fresh empty rows at the top. The same
// primitive serves classic line clears and topless underfoot compression.
// Total row count is conserved and the relative order of retained rows is
// preserved.
func (b *Board) ClearAndCompress(rows []int) {
	if len(rows) == 0 {
		return
	}

	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		drop[r] = true
	}

	kept := make([][]Cell, 0, b.height)
	for r := 0; r < b.height; r++ {
		if !drop[r] {
			kept = append(kept, b.rows[r])
		}
	}

	fresh := b.height - len(kept)
	next := make([][]Cell, 0, b.height)
	for i := 0; i < fresh; i++ {
		next = append(next, make([]Cell, b.width))
	}
	next = append(next, kept...)

	if len(next) != b.height {
		panic(fmt.Sprintf("engine: compression changed row count from %d to %d", b.height, len(next)))
	}
	b.rows = next
}

// Snapshot returns a deep copy of the grid for rendering.
func (b *Board) Snapshot() [][]Cell {
	out := make([][]Cell, b.height)
	for r := range b.rows {
		out[r] = make([]Cell, b.width)
		copy(out[r], b.rows[r])
	}
	return out
}
