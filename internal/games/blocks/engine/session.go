// Package engine implements the falling-block game logic: board, 7-bag piece
// generation, movement and wall-kick rotation, locking, line clears, underfoot
// compression, hold, scoring, and level progression.
// The package is UI-agnostic and deterministic: a Session advances only
// through its command and Tick methods, owns all of its mutable state, and
// never starts goroutines or invokes callbacks.
package engine

import (
	"math"
	"math/rand"
	"time"
)

// Mode selects one of the three rule profiles.
type Mode string

const (
	// ModeClassic is the fixed-height game: no wall kicks, no hold, a single
	// preview piece, immediate locking, and game over on spawn collision.
	ModeClassic Mode = "classic"
	// ModePolished adds guideline wall kicks, the hold slot, a five-piece
	// preview, lock delay, and drop bonuses on the fixed-height board.
	ModePolished Mode = "polished"
	// ModeTopless plays by polished rules but compresses rows out underfoot
	// whenever the stack reaches the spawn zone, so the game never ends.
	ModeTopless Mode = "topless"
)

// Valid reports whether m names a known rule profile.
func (m Mode) Valid() bool {
	switch m {
	case ModeClassic, ModePolished, ModeTopless:
		return true
	}
	return false
}

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// spawnZoneRows is how many top rows a spawning piece can occupy.
const spawnZoneRows = 2

// Rules is the complete rule set of a session. DefaultRules returns the
// built-in profile for a mode; the config layer may override individual
// fields before handing the rules to NewSession.
type Rules struct {
	Mode   Mode
	Width  int
	Height int

	WallKicks   bool
	HoldEnabled bool
	PreviewLen  int

	LockDelay     time.Duration // 0 locks on the first grounded tick
	MaxLockResets int

	GameOverEnabled      bool
	UnderfootCompression bool

	SoftDropPerRow int
	HardDropPerRow int

	StartLevel    int
	LinesPerLevel int

	BaseFallInterval  time.Duration
	MinFallInterval   time.Duration
	FallDecayPerLevel float64       // multiplicative per level; 0 selects the linear curve
	FallStepPerLevel  time.Duration // linear decrement per level
	SpeedRampEnabled  bool
}

// DefaultRules returns the rule profile for the given mode.
func DefaultRules(mode Mode) Rules {
	r := Rules{
		Mode:              mode,
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		WallKicks:         true,
		HoldEnabled:       true,
		PreviewLen:        5,
		LockDelay:         500 * time.Millisecond,
		MaxLockResets:     15,
		GameOverEnabled:   true,
		SoftDropPerRow:    1,
		HardDropPerRow:    2,
		StartLevel:        1,
		LinesPerLevel:     10,
		BaseFallInterval:  750 * time.Millisecond,
		MinFallInterval:   50 * time.Millisecond,
		FallDecayPerLevel: 0.875,
		SpeedRampEnabled:  true,
	}

	switch mode {
	case ModeClassic:
		r.WallKicks = false
		r.HoldEnabled = false
		r.PreviewLen = 1
		r.LockDelay = 0
		r.MaxLockResets = 0
		r.SoftDropPerRow = 0
		r.HardDropPerRow = 0
		r.BaseFallInterval = 500 * time.Millisecond
		r.MinFallInterval = 100 * time.Millisecond
		r.FallDecayPerLevel = 0
		r.FallStepPerLevel = 40 * time.Millisecond
	case ModeTopless:
		r.GameOverEnabled = false
		r.UnderfootCompression = true
	}
	return r
}

// normalized clamps out-of-range rule values to playable ones.
func (r Rules) normalized() Rules {
	if !r.Mode.Valid() {
		r.Mode = ModePolished
	}
	if r.Width < 4 {
		r.Width = DefaultWidth
	}
	if r.Height < spawnZoneRows+2 {
		r.Height = DefaultHeight
	}
	if r.PreviewLen < 1 {
		r.PreviewLen = 1
	}
	if r.LockDelay < 0 {
		r.LockDelay = 0
	}
	if r.MaxLockResets < 0 {
		r.MaxLockResets = 0
	}
	if r.StartLevel < 1 {
		r.StartLevel = 1
	}
	if r.LinesPerLevel < 1 {
		r.LinesPerLevel = 10
	}
	if r.MinFallInterval <= 0 {
		r.MinFallInterval = 50 * time.Millisecond
	}
	if r.BaseFallInterval < r.MinFallInterval {
		r.BaseFallInterval = r.MinFallInterval
	}
	if r.FallDecayPerLevel < 0 || r.FallDecayPerLevel >= 1 {
		r.FallDecayPerLevel = 0
	}
	if r.FallStepPerLevel < 0 {
		r.FallStepPerLevel = 0
	}
	return r
}

// ActivePiece is the piece currently in play: its kind, rotation, and the
// board position of its rotation-box origin.
type ActivePiece struct {
	Kind PieceKind
	Rot  Rotation
	Row  int
	Col  int
}

// phase is the persistent state of the session state machine between calls.
// Spawning and clearing are transient and resolve within the call that
// triggers them.
type phase uint8

const (
	phaseFalling phase = iota
	phaseLocking
	phaseGameOver
)

// lineScores maps a simultaneous clear count to its base award;
// the award is multiplied by the current level.
var lineScores = [5]int{0, 100, 300, 500, 800}

// LockResult reports what locking a piece produced. The UI maps these
// discrete values to effects; the engine calls nothing back.
type LockResult struct {
	Locked      bool
	RowsCleared []int // cleared row indices, ascending, pre-compression
	Lines       int
	ScoreDelta  int // line-clear award; drop bonuses are applied separately
	Compressed  int // rows discarded underfoot (topless)
	GameOver    bool
}

// TickResult reports what a gravity tick produced.
type TickResult struct {
	Moved bool // gravity advanced the piece one row
	Lock  LockResult
}

// Session is a single game: it owns the board, bag, active piece, hold slot,
// and all counters. It must be driven from one goroutine; every method is a
// synchronous state transition and commands are applied strictly in call
// order.
type Session struct {
	rules Rules
	rng   *rand.Rand

	board *Board
	bag   *Bag

	active    ActivePiece
	hasActive bool

	hold     PieceKind
	hasHold  bool
	holdUsed bool

	score int
	lines int
	level int

	fallInterval time.Duration
	fallAccum    time.Duration
	lockAccum    time.Duration
	lockResets   int

	phase    phase
	gameOver bool
}

// NewSession creates a session with the given rules and RNG seed and spawns
// the first piece.
func NewSession(rules Rules, seed int64) *Session {
	s := &Session{}
	s.Reset(rules, seed)
	return s
}

// Reset discards all state and starts a fresh game with the given rules and
// seed. Mode selection happens here: pass DefaultRules(mode) or a tuned copy.
func (s *Session) Reset(rules Rules, seed int64) {
	s.rules = rules.normalized()
	s.rng = rand.New(rand.NewSource(seed))
	s.board = NewBoard(s.rules.Width, s.rules.Height)
	s.bag = NewBag(s.rng)
	s.hasActive = false
	s.hasHold = false
	s.holdUsed = false
	s.score = 0
	s.lines = 0
	s.level = s.rules.StartLevel
	s.fallInterval = s.fallIntervalFor(s.level)
	s.fallAccum = 0
	s.lockAccum = 0
	s.lockResets = 0
	s.phase = phaseFalling
	s.gameOver = false

	if _, ok := s.spawn(); !ok {
		panic("engine: initial spawn failed on an empty board")
	}
}

// MoveLeft shifts the active piece one column left.
// Returns whether the piece moved.
func (s *Session) MoveLeft() bool {
	return s.moveBy(-1)
}

// MoveRight shifts the active piece one column right.
// Returns whether the piece moved.
func (s *Session) MoveRight() bool {
	return s.moveBy(1)
}

func (s *Session) moveBy(dcol int) bool {
	if s.gameOver || !s.hasActive {
		return false
	}
	if !s.shift(dcol, 0) {
		return false
	}
	s.noteShift()
	return true
}

// SoftDrop moves the active piece down one row, awarding the soft-drop bonus.
// A grounded piece starts (or keeps running) the lock-delay timer and the
// call returns false.
func (s *Session) SoftDrop() bool {
	if s.gameOver || !s.hasActive {
		return false
	}
	if !s.shift(0, 1) {
		s.enterLocking()
		return false
	}
	s.score += s.rules.SoftDropPerRow
	s.fallAccum = 0
	s.noteShift()
	return true
}

// RotateCW rotates the active piece clockwise, trying the wall-kick
// candidates in table order. Returns whether the rotation applied.
func (s *Session) RotateCW() bool {
	return s.rotate(true)
}

// RotateCCW rotates the active piece counter-clockwise, trying the wall-kick
// candidates in table order. Returns whether the rotation applied.
func (s *Session) RotateCCW() bool {
	return s.rotate(false)
}

func (s *Session) rotate(cw bool) bool {
	if s.gameOver || !s.hasActive {
		return false
	}

	from := s.active.Rot
	to := from.CW()
	if !cw {
		to = from.CCW()
	}

	candidates := identityKick
	if s.rules.WallKicks {
		candidates = kickCandidates(s.active.Kind, from, to)
	}

	for _, off := range candidates {
		cand := s.active
		cand.Rot = to
		cand.Col += off.Col
		cand.Row += off.Row
		if s.fits(cand) {
			s.active = cand
			s.noteShift()
			return true
		}
	}
	return false
}

// HardDrop slams the active piece to the floor and locks it immediately.
// Returns the rows dropped and the lock outcome.
func (s *Session) HardDrop() (int, LockResult) {
	if s.gameOver || !s.hasActive {
		return 0, LockResult{}
	}

	dropped := 0
	for s.shift(0, 1) {
		dropped++
	}
	s.score += dropped * s.rules.HardDropPerRow
	return dropped, s.lockNow()
}

// Hold stashes the active piece and swaps in the held kind, or draws fresh
// from the bag when the slot is empty. The swapped-in piece starts at the
// spawn origin and rotation. Usable once per drop; the flag clears on lock.
func (s *Session) Hold() bool {
	if s.gameOver || !s.hasActive || !s.rules.HoldEnabled || s.holdUsed {
		return false
	}

	var kind PieceKind
	if s.hasHold {
		kind = s.hold
	} else {
		kind = s.bag.Next()
	}
	s.hold = s.active.Kind
	s.hasHold = true
	s.holdUsed = true

	if s.rules.UnderfootCompression {
		s.ensureHeadroom()
	}

	p := ActivePiece{Kind: kind, Rot: RotSpawn, Row: 0, Col: spawnCol(s.board.Width())}
	if !s.fits(p) {
		// The swapped-in piece has no room at the spawn origin.
		if !s.rules.GameOverEnabled {
			panic("engine: hold spawn collision despite headroom compression")
		}
		s.hasActive = false
		s.gameOver = true
		s.phase = phaseGameOver
		return true
	}

	s.active = p
	s.phase = phaseFalling
	s.fallAccum = 0
	s.lockAccum = 0
	s.lockResets = 0
	return true
}

// Tick advances the session by the elapsed wall time: gravity steps while
// falling, lock-delay accounting while grounded. All locking that is not
// caused by HardDrop happens here.
func (s *Session) Tick(elapsed time.Duration) TickResult {
	var res TickResult
	if s.gameOver || !s.hasActive || elapsed <= 0 {
		return res
	}

	if s.phase == phaseLocking {
		s.lockAccum += elapsed
		if s.lockAccum >= s.rules.LockDelay {
			res.Lock = s.lockNow()
		}
		return res
	}

	s.fallAccum += elapsed
	for s.fallAccum >= s.fallInterval {
		s.fallAccum -= s.fallInterval
		if s.shift(0, 1) {
			res.Moved = true
			continue
		}
		s.enterLocking()
		if s.rules.LockDelay <= 0 {
			res.Lock = s.lockNow()
		}
		return res
	}
	return res
}

// Mode returns the active rule profile name.
func (s *Session) Mode() Mode {
	return s.rules.Mode
}

// Rules returns a copy of the session's active rule set.
func (s *Session) Rules() Rules {
	return s.rules
}

// BoardSnapshot returns a deep copy of the board grid.
func (s *Session) BoardSnapshot() [][]Cell {
	return s.board.Snapshot()
}

// ActivePiece returns the piece in play, if any.
func (s *Session) ActivePiece() (ActivePiece, bool) {
	return s.active, s.hasActive
}

// ActivePieceCells returns the absolute cells of the piece in play, or nil.
func (s *Session) ActivePieceCells() []PlacedCell {
	if !s.hasActive {
		return nil
	}
	return PieceCells(s.active)
}

// PreviewQueue returns the upcoming piece kinds without consuming them.
func (s *Session) PreviewQueue() []PieceKind {
	return s.bag.Peek(s.rules.PreviewLen)
}

// HoldKind returns the held piece kind, if any.
func (s *Session) HoldKind() (PieceKind, bool) {
	return s.hold, s.hasHold
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Level returns the current level.
func (s *Session) Level() int {
	return s.level
}

// Lines returns the total lines cleared.
func (s *Session) Lines() int {
	return s.lines
}

// FallInterval returns the current gravity interval.
func (s *Session) FallInterval() time.Duration {
	return s.fallInterval
}

// IsGameOver reports whether the session has ended. Always false in topless
// mode.
func (s *Session) IsGameOver() bool {
	return s.gameOver
}

// GhostRow returns the row the active piece's origin would rest at after a
// hard drop, or -1 when no piece is in play.
func (s *Session) GhostRow() int {
	if !s.hasActive {
		return -1
	}
	p := s.active
	for {
		cand := p
		cand.Row++
		if !s.fits(cand) {
			return p.Row
		}
		p = cand
	}
}

// PieceCells expands a piece into its four absolute board cells.
func PieceCells(p ActivePiece) []PlacedCell {
	cells := make([]PlacedCell, 0, 4)
	for _, off := range Shape(p.Kind, p.Rot) {
		cells = append(cells, PlacedCell{
			Row:  p.Row + off.Row,
			Col:  p.Col + off.Col,
			Kind: p.Kind,
		})
	}
	return cells
}

// fits reports whether the candidate placement is legal: inside the walls,
// above the floor, below the ceiling, and free of locked cells.
func (s *Session) fits(p ActivePiece) bool {
	for _, off := range Shape(p.Kind, p.Rot) {
		if !s.board.IsCellEmpty(p.Row+off.Row, p.Col+off.Col) {
			return false
		}
	}
	return true
}

// shift moves the active piece by the given delta if the result is legal.
// It mutates only the active piece, never the board.
func (s *Session) shift(dcol, drow int) bool {
	cand := s.active
	cand.Col += dcol
	cand.Row += drow
	if !s.fits(cand) {
		return false
	}
	s.active = cand
	return true
}

// canFall reports whether the active piece has room below.
func (s *Session) canFall() bool {
	cand := s.active
	cand.Row++
	return s.fits(cand)
}

// enterLocking starts the lock-delay timer on fresh ground contact.
func (s *Session) enterLocking() {
	if s.phase != phaseLocking {
		s.phase = phaseLocking
		s.lockAccum = 0
	}
}

// noteShift updates the lock-delay state after a successful player move or
// rotation: a piece shifted off its ledge resumes falling, otherwise the
// timer resets until the reset budget runs out.
func (s *Session) noteShift() {
	if s.phase != phaseLocking {
		return
	}
	if s.canFall() {
		s.phase = phaseFalling
		return
	}
	if s.lockResets < s.rules.MaxLockResets {
		s.lockResets++
		s.lockAccum = 0
	}
}

// lockNow merges the active piece into the board and runs the clear, score,
// level, and spawn pipeline.
func (s *Session) lockNow() LockResult {
	s.board.Place(PieceCells(s.active))
	s.hasActive = false

	res := LockResult{Locked: true}

	full := s.board.FullRows()
	if len(full) > 0 {
		s.board.ClearAndCompress(full)
		res.RowsCleared = full
		res.Lines = len(full)
		res.ScoreDelta = scoreForLines(len(full), s.level)
		s.score += res.ScoreDelta
		s.lines += len(full)
		s.level = s.levelFor(s.lines)
		s.fallInterval = s.fallIntervalFor(s.level)
	}

	s.holdUsed = false
	s.lockAccum = 0
	s.lockResets = 0

	compressed, ok := s.spawn()
	res.Compressed = compressed
	if !ok {
		if !s.rules.GameOverEnabled {
			panic("engine: spawn collision despite headroom compression")
		}
		s.gameOver = true
		s.phase = phaseGameOver
		res.GameOver = true
	}
	return res
}

// scoreForLines returns the award for clearing n rows at once at the given
// level.
func scoreForLines(n, level int) int {
	if n > 4 {
		n = 4
	}
	return lineScores[n] * level
}

// levelFor maps total cleared lines to a level, never below the start level.
func (s *Session) levelFor(lines int) int {
	level := lines/s.rules.LinesPerLevel + 1
	if level < s.rules.StartLevel {
		level = s.rules.StartLevel
	}
	return level
}

// fallIntervalFor computes the gravity interval at a level: geometric decay
// when configured, linear otherwise, floored at the minimum interval. With
// the speed ramp disabled the interval stays pinned to the start level.
func (s *Session) fallIntervalFor(level int) time.Duration {
	r := s.rules
	if !r.SpeedRampEnabled {
		level = r.StartLevel
	}
	steps := level - 1

	interval := r.BaseFallInterval
	if r.FallDecayPerLevel > 0 {
		interval = time.Duration(float64(r.BaseFallInterval) * math.Pow(r.FallDecayPerLevel, float64(steps)))
	} else if r.FallStepPerLevel > 0 {
		interval = r.BaseFallInterval - time.Duration(steps)*r.FallStepPerLevel
	}

	if interval < r.MinFallInterval {
		interval = r.MinFallInterval
	}
	return interval
}

// spawn draws the next kind and places it at the spawn origin. In topless
// mode it first compresses rows out underfoot until the spawn zone is empty,
// which is what makes a failed spawn impossible there. Returns the number of
// rows compressed and whether the spawn placement succeeded.
func (s *Session) spawn() (int, bool) {
	compressed := 0
	if s.rules.UnderfootCompression {
		compressed = s.ensureHeadroom()
	}

	p := ActivePiece{
		Kind: s.bag.Next(),
		Rot:  RotSpawn,
		Row:  0,
		Col:  spawnCol(s.board.Width()),
	}
	if !s.fits(p) {
		return compressed, false
	}

	s.active = p
	s.hasActive = true
	s.phase = phaseFalling
	s.fallAccum = 0
	return compressed, true
}

// ensureHeadroom compresses the bottommost row out underfoot until the spawn
// zone is completely empty, returning the number of rows discarded. The loop
// finishes within spawnZoneRows passes; the guard is the engine-fault check.
func (s *Session) ensureHeadroom() int {
	count := 0
	for !s.spawnZoneEmpty() {
		s.board.ClearAndCompress([]int{s.board.Height() - 1})
		count++
		if count > s.board.Height() {
			panic("engine: headroom compression failed to clear the spawn zone")
		}
	}
	return count
}

// spawnZoneEmpty reports whether the top spawnZoneRows rows are fully empty.
func (s *Session) spawnZoneEmpty() bool {
	for row := 0; row < spawnZoneRows; row++ {
		for col := 0; col < s.board.Width(); col++ {
			if !s.board.IsCellEmpty(row, col) {
				return false
			}
		}
	}
	return true
}
