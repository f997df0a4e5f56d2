package engine

// Wall-kick candidate tables, from the published guideline (SRS), translated
// to screen coordinates: a negative Row offset moves the piece up. Candidates
// are tried in order during rotation; the first legal placement wins. The I
// piece has its own table, and the O piece never needs to move when rotating.
// Classic mode bypasses these tables entirely (identity candidate only).

// identityKick is the no-offset candidate tried by every rotation.
var identityKick = []Offset{{0, 0}}

// kickTable maps (from, to) rotation pairs to candidate offsets.
// Only adjacent transitions are populated; rotation always moves one step.
type kickTable [rotationCount][rotationCount][]Offset

var jlstzKicks = kickTable{
	RotSpawn: {
		RotRight: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		RotLeft:  {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	},
	RotRight: {
		RotSpawn: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
		RotHalf:  {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	},
	RotHalf: {
		RotRight: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
		RotLeft:  {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	},
	RotLeft: {
		RotHalf:  {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		RotSpawn: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	},
}

var iKicks = kickTable{
	RotSpawn: {
		RotRight: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		RotLeft:  {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	},
	RotRight: {
		RotSpawn: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		RotHalf:  {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	},
	RotHalf: {
		RotRight: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		RotLeft:  {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	},
	RotLeft: {
		RotHalf:  {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
		RotSpawn: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	},
}

// kickCandidates returns the ordered wall-kick candidates for rotating the
// given kind between two adjacent rotation states.
func kickCandidates(kind PieceKind, from, to Rotation) []Offset {
	switch kind {
	case KindO:
		return identityKick
	case KindI:
		return iKicks[from][to]
	default:
		return jlstzKicks[from][to]
	}
}
