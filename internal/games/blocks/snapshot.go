package blocks

import "github.com/vovakirdan/blockfall/internal/games/blocks/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateLineClear   GameStateType = "line_clear"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Variant   string // "classic", "polished" or "topless"
	Level     int
	Score     int
	Lines     int
	Board     [][]engine.Cell
	Active    engine.ActivePiece
	HasActive bool
	Hold      engine.PieceKind
	HasHold   bool
	Preview   []engine.PieceKind
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.IsGameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.flashTicks > 0:
		state = StateLineClear
	}

	active, hasActive := g.session.ActivePiece()
	hold, hasHold := g.session.HoldKind()

	return Snapshot{
		Tick:      g.tick,
		Variant:   string(g.variant),
		Level:     g.session.Level(),
		Score:     g.session.Score(),
		Lines:     g.session.Lines(),
		Board:     g.session.BoardSnapshot(),
		Active:    active,
		HasActive: hasActive,
		Hold:      hold,
		HasHold:   hasHold,
		Preview:   g.session.PreviewQueue(),
		State:     state,
	}
}
