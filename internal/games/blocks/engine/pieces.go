package engine

// PieceKind identifies one of the seven tetromino shapes.
type PieceKind uint8

const (
	KindI PieceKind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

// String returns the standard one-letter name of the piece kind.
func (k PieceKind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// Rotation is one of the four piece orientations.
// RotSpawn is the orientation a piece spawns in; RotRight and RotLeft are one
// clockwise and one counter-clockwise turn from it; RotHalf is upside down.
type Rotation uint8

const (
	RotSpawn Rotation = iota
	RotRight
	RotHalf
	RotLeft
)

const rotationCount = 4

// CW returns the rotation one clockwise turn away.
func (r Rotation) CW() Rotation {
	return (r + 1) % rotationCount
}

// CCW returns the rotation one counter-clockwise turn away.
func (r Rotation) CCW() Rotation {
	return (r + 3) % rotationCount
}

// String returns the guideline name of the rotation state.
func (r Rotation) String() string {
	switch r {
	case RotSpawn:
		return "0"
	case RotRight:
		return "R"
	case RotHalf:
		return "2"
	case RotLeft:
		return "L"
	default:
		return "?"
	}
}

// Offset is a cell position relative to a piece origin or another cell.
// Columns grow to the right, rows grow downward.
type Offset struct {
	Col int
	Row int
}

// pieceShapes holds the occupied cells of every kind in every rotation,
// relative to the piece origin (top-left of the rotation bounding box).
// The I piece uses a 4x4 box, the O piece is constant across rotations,
// and the rest use a 3x3 box, so a single spawn origin of
// (row 0, col (width-4)/2) places every kind in the guideline spawn columns.
var pieceShapes = [KindCount][rotationCount][4]Offset{
	KindI: {
		RotSpawn: {{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		RotRight: {{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		RotHalf:  {{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		RotLeft:  {{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	KindO: {
		RotSpawn: {{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		RotRight: {{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		RotHalf:  {{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		RotLeft:  {{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	KindT: {
		RotSpawn: {{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		RotRight: {{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		RotHalf:  {{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		RotLeft:  {{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	KindS: {
		RotSpawn: {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		RotRight: {{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		RotHalf:  {{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		RotLeft:  {{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	KindZ: {
		RotSpawn: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		RotRight: {{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		RotHalf:  {{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		RotLeft:  {{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	KindJ: {
		RotSpawn: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		RotRight: {{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		RotHalf:  {{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		RotLeft:  {{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	KindL: {
		RotSpawn: {{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		RotRight: {{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		RotHalf:  {{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		RotLeft:  {{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
}

// Shape returns the four occupied cells of a kind in a rotation,
// relative to the piece origin.
func Shape(kind PieceKind, rot Rotation) [4]Offset {
	return pieceShapes[kind][rot]
}

// spawnCol returns the spawn origin column for the given board width.
// The 4-wide rotation box is centered, which puts 3-wide pieces in the
// left-middle columns and the O piece in the middle pair.
func spawnCol(boardWidth int) int {
	return (boardWidth - 4) / 2
}
