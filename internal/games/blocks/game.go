package blocks

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// selectedStartLevel stores the start level chosen in the menu
var selectedStartLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// SetStartLevel sets the starting level for the next game. 0 keeps the
// configured default.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// Game adapts an engine session to the platform game interface. The
// session owns every gameplay decision; this layer owns pause, restart,
// the clear flash and drawing.
type Game struct {
	variant engine.Mode
	session *engine.Session
	rng     *rand.Rand
	tick    uint64
	frame   time.Duration

	startLevel int
	showGhost  bool

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused   bool
	tooSmall bool

	// Line clear flash
	flashRows  []int
	flashTicks int
}

// New creates a game for the given variant.
func New(variant engine.Mode) *Game {
	return &Game{variant: variant}
}

func init() {
	registry.Register("classic", func() registry.Game {
		return New(engine.ModeClassic)
	})
	registry.Register("polished", func() registry.Game {
		return New(engine.ModePolished)
	})
	registry.Register("topless", func() registry.Game {
		return New(engine.ModeTopless)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.variant {
	case engine.ModeClassic:
		return "Blockfall (Classic)"
	case engine.ModeTopless:
		return "Blockfall (Topless)"
	default:
		return "Blockfall (Polished)"
	}
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.flashRows = nil
	g.flashTicks = 0

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.frame = time.Second / time.Duration(tickRate)

	// Consume the menu selection once; restarts keep it
	if selectedStartLevel > 0 {
		g.startLevel = selectedStartLevel
		selectedStartLevel = 0
	}

	rules := g.loadRules()
	g.session = engine.NewSession(rules, cfg.Seed)

	g.checkScreenSize()
}

// loadRules builds the session rules from the config file, the difficulty
// preset and the menu selection.
func (g *Game) loadRules() engine.Rules {
	cfg, err := config.LoadBlocks(configPath)
	if err != nil {
		cfg = config.DefaultBlocksConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBlocksPreset(&cfg, difficultyPreset)
	}

	r := engine.DefaultRules(g.variant)
	r.Width = cfg.Board.Width
	r.Height = cfg.Board.Height
	r.LinesPerLevel = cfg.Gameplay.LinesPerLevel
	r.StartLevel = cfg.Gameplay.StartLevel
	r.SpeedRampEnabled = cfg.Speed.RampEnabled

	if g.variant == engine.ModeClassic {
		r.BaseFallInterval = msToDuration(cfg.ClassicSpeed.BaseIntervalMs)
		r.MinFallInterval = msToDuration(cfg.ClassicSpeed.MinIntervalMs)
		r.FallStepPerLevel = msToDuration(cfg.ClassicSpeed.StepMs)
	} else {
		r.LockDelay = msToDuration(cfg.Timing.LockDelayMs)
		r.MaxLockResets = cfg.Timing.MaxLockResets
		r.SoftDropPerRow = cfg.Scoring.SoftDropPerRow
		r.HardDropPerRow = cfg.Scoring.HardDropPerRow
		r.BaseFallInterval = msToDuration(cfg.Speed.BaseIntervalMs)
		r.MinFallInterval = msToDuration(cfg.Speed.MinIntervalMs)
		r.FallDecayPerLevel = cfg.Speed.DecayPerLevel
	}

	if g.startLevel > 0 {
		r.StartLevel = g.startLevel
	}

	// The classic variant never had a landing preview
	g.showGhost = cfg.Gameplay.GhostPiece && g.variant != engine.ModeClassic

	return r
}

func msToDuration(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW := g.boardBoxWidth() + sidebarGap + sidebarWidth
	minH := g.boardBoxHeight() + 1 // title row above the box
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.session.IsGameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: int(time.Second / g.frame),
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.session.IsGameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.session.IsGameOver() {
		return core.StepResult{State: g.State()}
	}

	// The session idles while the clear flash runs
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flashRows = nil
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLeft) {
		g.session.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.session.MoveRight()
	}
	if in.Has(core.ActionRotateCW) {
		g.session.RotateCW()
	}
	if in.Has(core.ActionRotateCCW) {
		g.session.RotateCCW()
	}
	if in.Has(core.ActionHold) {
		g.session.Hold()
	}
	if in.Has(core.ActionDown) {
		g.session.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		_, res := g.session.HardDrop()
		g.noteLock(res)
	}

	res := g.session.Tick(g.frame)
	g.noteLock(res.Lock)

	return core.StepResult{State: g.State()}
}

// noteLock starts the flash animation when a lock cleared lines.
func (g *Game) noteLock(res engine.LockResult) {
	if res.Lines == 0 {
		return
	}
	g.flashRows = res.RowsCleared
	g.flashTicks = lineFlashDuration
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.IsGameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}
