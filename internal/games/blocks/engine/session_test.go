package engine

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func newTestSession(mode Mode, seed int64) *Session {
	return NewSession(DefaultRules(mode), seed)
}

func TestInitialSpawn(t *testing.T) {
	s := newTestSession(ModePolished, 1)

	p, ok := s.ActivePiece()
	if !ok {
		t.Fatal("a fresh session should have an active piece")
	}
	if p.Rot != RotSpawn || p.Row != 0 || p.Col != spawnCol(DefaultWidth) {
		t.Errorf("spawned at %+v, want spawn origin", p)
	}
	if s.Score() != 0 || s.Lines() != 0 || s.Level() != 1 {
		t.Errorf("fresh session counters = %d/%d/%d", s.Score(), s.Lines(), s.Level())
	}
	if got := len(s.PreviewQueue()); got != 5 {
		t.Errorf("polished preview length = %d, want 5", got)
	}
}

func TestClassicSpawnCollisionGameOver(t *testing.T) {
	s := newTestSession(ModeClassic, 11)

	// Stack everything below the spawn zone, leaving column 0 open so no
	// row ever completes. The next lock lands in the spawn zone and the
	// spawn after it must collide.
	for row := spawnZoneRows; row < s.board.Height(); row++ {
		fillBoardRow(s.board, row, 0)
	}

	_, res := s.HardDrop()
	if !res.Locked {
		t.Fatal("hard drop should lock")
	}
	if !res.GameOver || !s.IsGameOver() {
		t.Fatal("classic spawn collision should end the game")
	}

	before := s.BoardSnapshot()
	if s.MoveLeft() || s.MoveRight() || s.RotateCW() || s.RotateCCW() || s.SoftDrop() || s.Hold() {
		t.Error("commands after game over should be no-ops")
	}
	if d, r := s.HardDrop(); d != 0 || r.Locked {
		t.Error("hard drop after game over should be a no-op")
	}
	if r := s.Tick(time.Second); r.Moved || r.Lock.Locked {
		t.Error("ticks after game over should be no-ops")
	}
	if !reflect.DeepEqual(before, s.BoardSnapshot()) {
		t.Error("board mutated after game over")
	}
}

func TestToplessNeverGameOver(t *testing.T) {
	s := newTestSession(ModeTopless, 99)
	cmds := rand.New(rand.NewSource(7))

	for step := 0; step < 20000; step++ {
		switch cmds.Intn(6) {
		case 0:
			s.MoveLeft()
		case 1:
			s.MoveRight()
		case 2:
			s.RotateCW()
		case 3:
			s.SoftDrop()
		case 4:
			s.HardDrop()
		case 5:
			s.Hold()
		}
		s.Tick(37 * time.Millisecond)

		if s.IsGameOver() {
			t.Fatalf("topless reported game over at step %d", step)
		}
		if _, ok := s.ActivePiece(); !ok {
			t.Fatalf("spawn failed at step %d", step)
		}
	}
}

func TestWallKickAgainstLeftWall(t *testing.T) {
	// A T in its R state hugging the left wall cannot rotate to the half
	// state in place; the first wall-kick candidate (+1, 0) must apply.
	// The resolution is deterministic across fresh sessions.
	var first ActivePiece
	for i := 0; i < 5; i++ {
		s := newTestSession(ModePolished, 1)
		s.active = ActivePiece{Kind: KindT, Rot: RotRight, Row: 5, Col: -1}

		if !s.RotateCW() {
			t.Fatal("rotation with an available kick should succeed")
		}
		p, _ := s.ActivePiece()
		if p.Rot != RotHalf {
			t.Fatalf("rotation state = %s, want 2", p.Rot)
		}
		if p.Col != 0 || p.Row != 5 {
			t.Fatalf("kick moved piece to (%d, %d), want (0, 5)", p.Col, p.Row)
		}
		if i == 0 {
			first = p
		} else if p != first {
			t.Fatalf("kick resolution varied: %+v vs %+v", p, first)
		}
	}
}

func TestClassicHasNoKicks(t *testing.T) {
	s := newTestSession(ModeClassic, 1)
	s.active = ActivePiece{Kind: KindT, Rot: RotRight, Row: 5, Col: -1}

	if s.RotateCW() {
		t.Fatal("classic rotation against the wall should be rejected")
	}
	p, _ := s.ActivePiece()
	if p.Rot != RotRight || p.Col != -1 || p.Row != 5 {
		t.Errorf("rejected rotation mutated the piece: %+v", p)
	}
}

func TestHoldOncePerDrop(t *testing.T) {
	s := newTestSession(ModePolished, 3)

	original, _ := s.ActivePiece()
	upcoming := s.PreviewQueue()[0]

	if !s.Hold() {
		t.Fatal("first hold should succeed")
	}
	held, ok := s.HoldKind()
	if !ok || held != original.Kind {
		t.Errorf("hold slot = %v, want %s", held, original.Kind)
	}

	swapped, _ := s.ActivePiece()
	if swapped.Kind != upcoming {
		t.Errorf("active after hold = %s, want next preview %s", swapped.Kind, upcoming)
	}
	if swapped.Rot != RotSpawn || swapped.Row != 0 || swapped.Col != spawnCol(DefaultWidth) {
		t.Errorf("swapped-in piece not reset to spawn: %+v", swapped)
	}

	if s.Hold() {
		t.Fatal("second hold before a lock should be a no-op")
	}
	if after, _ := s.ActivePiece(); after != swapped {
		t.Errorf("no-op hold mutated the active piece: %+v", after)
	}
	if held2, _ := s.HoldKind(); held2 != original.Kind {
		t.Errorf("no-op hold mutated the hold slot: %s", held2)
	}

	// Locking re-arms hold, and the next swap returns the stashed kind
	s.HardDrop()
	if !s.Hold() {
		t.Fatal("hold should be available again after a lock")
	}
	back, _ := s.ActivePiece()
	if back.Kind != original.Kind {
		t.Errorf("swap returned %s, want the stashed %s", back.Kind, original.Kind)
	}
}

func TestClassicHoldDisabled(t *testing.T) {
	s := newTestSession(ModeClassic, 3)
	if s.Hold() {
		t.Fatal("classic mode should reject hold")
	}
	if _, ok := s.HoldKind(); ok {
		t.Error("classic hold slot should stay empty")
	}
}

func TestTetrisBonusAtLevelOne(t *testing.T) {
	s := newTestSession(ModePolished, 8)
	h := s.board.Height()

	// Bottom four rows complete except column 0; a vertical I fills them.
	for row := h - 4; row < h; row++ {
		fillBoardRow(s.board, row, 0)
	}
	s.active = ActivePiece{Kind: KindI, Rot: RotLeft, Row: h - 4, Col: -1}

	dropped, res := s.HardDrop()
	if dropped != 0 {
		t.Fatalf("piece was already grounded, dropped %d rows", dropped)
	}
	if res.Lines != 4 || len(res.RowsCleared) != 4 {
		t.Fatalf("cleared %d rows (%v), want 4", res.Lines, res.RowsCleared)
	}
	if res.ScoreDelta != 800 {
		t.Errorf("level-1 tetris awarded %d, want 800", res.ScoreDelta)
	}
	if s.Score() != 800 {
		t.Errorf("score = %d, want 800", s.Score())
	}
	if s.Lines() != 4 {
		t.Errorf("lines = %d, want 4", s.Lines())
	}
	if s.Level() != 1 {
		t.Errorf("level advanced to %d after 4 lines", s.Level())
	}

	// The four rows are gone and the stack above them compressed down
	for row := h - 4; row < h; row++ {
		empty := true
		for col := 1; col < s.board.Width(); col++ {
			if !s.board.IsCellEmpty(row, col) {
				empty = false
			}
		}
		if empty {
			continue
		}
		t.Errorf("row %d still holds the cleared stack", row)
	}
}

func TestScoreTableScalesWithLevel(t *testing.T) {
	tests := []struct {
		lines, level, want int
	}{
		{1, 1, 100},
		{2, 1, 300},
		{3, 1, 500},
		{4, 1, 800},
		{1, 5, 500},
		{4, 3, 2400},
	}
	for _, tt := range tests {
		if got := scoreForLines(tt.lines, tt.level); got != tt.want {
			t.Errorf("scoreForLines(%d, %d) = %d, want %d", tt.lines, tt.level, got, tt.want)
		}
	}
}

func TestOPieceAgainstLeftWall(t *testing.T) {
	s := newTestSession(ModePolished, 2)
	s.active = ActivePiece{Kind: KindO, Rot: RotSpawn, Row: 0, Col: spawnCol(DefaultWidth)}

	moved := 0
	for i := 0; i < 5; i++ {
		if s.MoveLeft() {
			moved++
		}
	}
	if moved != 4 {
		t.Errorf("O piece accepted %d left moves from spawn, want 4", moved)
	}

	minCol := DefaultWidth
	for _, c := range s.ActivePieceCells() {
		if c.Col < minCol {
			minCol = c.Col
		}
	}
	if minCol != 0 {
		t.Errorf("leftmost occupied column = %d, want 0", minCol)
	}
	if s.MoveLeft() {
		t.Error("further MoveLeft at the wall should return false")
	}
}

func TestLockDelayResets(t *testing.T) {
	s := newTestSession(ModePolished, 4)
	h := s.board.Height()
	s.active = ActivePiece{Kind: KindT, Rot: RotSpawn, Row: h - 2, Col: 3}

	if s.SoftDrop() {
		t.Fatal("piece on the floor cannot soft drop")
	}
	if res := s.Tick(300 * time.Millisecond); res.Lock.Locked {
		t.Fatal("locked before the delay elapsed")
	}
	if !s.MoveLeft() {
		t.Fatal("grounded piece should still slide")
	}
	if res := s.Tick(300 * time.Millisecond); res.Lock.Locked {
		t.Fatal("the move should have reset the lock timer")
	}
	if res := s.Tick(300 * time.Millisecond); !res.Lock.Locked {
		t.Fatal("lock delay elapsed without a lock")
	}
}

func TestLockDelayResetCap(t *testing.T) {
	s := newTestSession(ModePolished, 4)
	h := s.board.Height()
	s.active = ActivePiece{Kind: KindT, Rot: RotSpawn, Row: h - 2, Col: 3}

	s.SoftDrop() // ground contact starts the timer
	s.lockResets = s.rules.MaxLockResets

	s.Tick(300 * time.Millisecond)
	if !s.MoveLeft() {
		t.Fatal("movement itself is never blocked by the cap")
	}
	if res := s.Tick(300 * time.Millisecond); !res.Lock.Locked {
		t.Fatal("an exhausted reset budget should let the timer run out")
	}
}

func TestClassicLocksImmediately(t *testing.T) {
	s := newTestSession(ModeClassic, 5)
	h := s.board.Height()
	s.active = ActivePiece{Kind: KindO, Rot: RotSpawn, Row: h - 2, Col: 3}

	if s.SoftDrop() {
		t.Fatal("piece on the floor cannot soft drop")
	}
	res := s.Tick(time.Millisecond)
	if !res.Lock.Locked {
		t.Fatal("classic should lock on the first grounded tick")
	}
}

func TestHardDropDistanceAndBonus(t *testing.T) {
	s := newTestSession(ModePolished, 21)

	start, _ := s.ActivePiece()
	ghost := s.GhostRow()

	dropped, res := s.HardDrop()
	if dropped != ghost-start.Row {
		t.Errorf("dropped %d rows, want %d", dropped, ghost-start.Row)
	}
	if !res.Locked || res.Lines != 0 {
		t.Errorf("unexpected lock result %+v", res)
	}
	if s.Score() != dropped*2 {
		t.Errorf("score = %d, want hard-drop bonus %d", s.Score(), dropped*2)
	}
}

func TestSoftDropBonusPerMode(t *testing.T) {
	polished := newTestSession(ModePolished, 6)
	if !polished.SoftDrop() {
		t.Fatal("soft drop from spawn should succeed")
	}
	if polished.Score() != 1 {
		t.Errorf("polished soft drop scored %d, want 1", polished.Score())
	}

	classic := newTestSession(ModeClassic, 6)
	if !classic.SoftDrop() {
		t.Fatal("soft drop from spawn should succeed")
	}
	if classic.Score() != 0 {
		t.Errorf("classic soft drop scored %d, want 0", classic.Score())
	}
}

func TestUnderfootCompression(t *testing.T) {
	s := newTestSession(ModeTopless, 6)
	h := s.board.Height()
	w := s.board.Width()

	// Fill the whole board, each row tagged with a distinct gap column
	for row := 0; row < h; row++ {
		fillBoardRow(s.board, row, row%w)
	}

	discarded := s.ensureHeadroom()
	if discarded != spawnZoneRows {
		t.Fatalf("discarded %d rows, want %d", discarded, spawnZoneRows)
	}
	if !s.spawnZoneEmpty() {
		t.Fatal("spawn zone still occupied after compression")
	}

	// Rows slid down: old row r now sits at r+spawnZoneRows, and the old
	// bottom rows fell out underfoot
	for row := 0; row < h-spawnZoneRows; row++ {
		gap := row % w
		for col := 0; col < w; col++ {
			wantEmpty := col == gap
			if s.board.IsCellEmpty(row+spawnZoneRows, col) != wantEmpty {
				t.Fatalf("row %d (was %d) col %d: empty=%v, want %v",
					row+spawnZoneRows, row, col, s.board.IsCellEmpty(row+spawnZoneRows, col), wantEmpty)
			}
		}
	}
}

func TestGhostRow(t *testing.T) {
	s := newTestSession(ModePolished, 9)
	h := s.board.Height()

	s.active = ActivePiece{Kind: KindT, Rot: RotSpawn, Row: 0, Col: 3}
	if got := s.GhostRow(); got != h-2 {
		t.Errorf("ghost row on an empty board = %d, want %d", got, h-2)
	}

	fillBoardRow(s.board, 10)
	if got := s.GhostRow(); got != 8 {
		t.Errorf("ghost row above a stack = %d, want 8", got)
	}
}

func TestLevelProgression(t *testing.T) {
	s := newTestSession(ModePolished, 10)

	tests := []struct {
		lines, want int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{25, 3},
		{100, 11},
	}
	for _, tt := range tests {
		if got := s.levelFor(tt.lines); got != tt.want {
			t.Errorf("levelFor(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}

	// A start level holds until the line count catches up
	rules := DefaultRules(ModePolished)
	rules.StartLevel = 5
	elevated := NewSession(rules, 10)
	if got := elevated.levelFor(0); got != 5 {
		t.Errorf("levelFor(0) with start level 5 = %d", got)
	}
	if got := elevated.levelFor(60); got != 7 {
		t.Errorf("levelFor(60) with start level 5 = %d, want 7", got)
	}
}

func TestFallIntervalCurves(t *testing.T) {
	classic := newTestSession(ModeClassic, 1)
	if got := classic.fallIntervalFor(1); got != 500*time.Millisecond {
		t.Errorf("classic level 1 interval = %v, want 500ms", got)
	}

	polished := newTestSession(ModePolished, 1)
	if got := polished.fallIntervalFor(1); got != 750*time.Millisecond {
		t.Errorf("polished level 1 interval = %v, want 750ms", got)
	}

	for _, s := range []*Session{classic, polished} {
		prev := s.fallIntervalFor(1)
		for level := 2; level <= 40; level++ {
			cur := s.fallIntervalFor(level)
			if cur < s.rules.MinFallInterval {
				t.Fatalf("%s interval %v below the floor at level %d", s.Mode(), cur, level)
			}
			if cur > prev {
				t.Fatalf("%s interval increased from %v to %v at level %d", s.Mode(), prev, cur, level)
			}
			if cur == prev && prev != s.rules.MinFallInterval {
				t.Fatalf("%s interval plateaued at %v before the floor at level %d", s.Mode(), cur, level)
			}
			prev = cur
		}
		if prev != s.rules.MinFallInterval {
			t.Errorf("%s curve never reached the floor, ended at %v", s.Mode(), prev)
		}
	}
}

func TestSpeedRampDisabled(t *testing.T) {
	rules := DefaultRules(ModePolished)
	rules.SpeedRampEnabled = false
	rules.StartLevel = 3
	s := NewSession(rules, 1)

	want := s.fallIntervalFor(3)
	if got := s.fallIntervalFor(20); got != want {
		t.Errorf("with the ramp disabled interval at level 20 = %v, want pinned %v", got, want)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() *Session {
		s := newTestSession(ModePolished, 77)
		for i := 0; i < 600; i++ {
			switch i % 5 {
			case 0:
				s.MoveLeft()
			case 1:
				s.RotateCW()
			case 2:
				s.MoveRight()
			case 3:
				s.SoftDrop()
			case 4:
				s.Hold()
			}
			s.Tick(50 * time.Millisecond)
		}
		return s
	}

	a, b := run(), run()

	if a.Score() != b.Score() || a.Lines() != b.Lines() || a.Level() != b.Level() {
		t.Errorf("counters diverged: %d/%d/%d vs %d/%d/%d",
			a.Score(), a.Lines(), a.Level(), b.Score(), b.Lines(), b.Level())
	}
	if !reflect.DeepEqual(a.BoardSnapshot(), b.BoardSnapshot()) {
		t.Error("boards diverged for identical seeds and commands")
	}
	pa, oka := a.ActivePiece()
	pb, okb := b.ActivePiece()
	if oka != okb || pa != pb {
		t.Errorf("active pieces diverged: %+v vs %+v", pa, pb)
	}
	if !reflect.DeepEqual(a.PreviewQueue(), b.PreviewQueue()) {
		t.Error("previews diverged for identical seeds")
	}
}

func TestResetStartsFresh(t *testing.T) {
	s := newTestSession(ModePolished, 30)
	s.HardDrop()
	s.HardDrop()
	if s.Score() == 0 {
		t.Fatal("drops should have scored")
	}

	s.Reset(DefaultRules(ModeClassic), 31)
	if s.Mode() != ModeClassic {
		t.Errorf("mode after reset = %s, want classic", s.Mode())
	}
	if s.Score() != 0 || s.Lines() != 0 || s.IsGameOver() {
		t.Error("reset should zero the session")
	}
	if _, ok := s.ActivePiece(); !ok {
		t.Error("reset should spawn a fresh piece")
	}
	for _, row := range s.BoardSnapshot() {
		for _, cell := range row {
			if cell != CellEmpty {
				t.Fatal("reset should clear the board")
			}
		}
	}
}
