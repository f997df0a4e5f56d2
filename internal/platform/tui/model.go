package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Model hosts one game variant: it pumps ticks into the game, turns
// key presses into input frames and records the score when a run ends.
// The same model backs local play and SSH sessions; a session model
// carries a player name and exits back to its menu instead of
// terminating the program.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	cfg    core.RuntimeConfig
	player string // attached to saved scores, empty for local play

	frame core.InputFrame
	state core.GameState
	keys  *KeyMapper

	menuExit  bool // Esc/B after a finished or paused run returns to the menu
	returning bool
	quitting  bool
	saved     bool // score already recorded for this run
}

// NewModel builds a model for local play. A zero seed is replaced by
// the wall clock so two runs never share a piece sequence by accident.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		cfg:    cfg,
		frame:  core.NewInputFrame(),
		keys:   NewKeyMapper(),
	}
}

// NewSessionGameModel builds a model for a shared SSH session. Scores
// are recorded under player, and leaving a finished or paused run
// hands control back to the session menu instead of quitting.
func NewSessionGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	m := NewModel(game, store, cfg)
	m.player = player
	m.menuExit = true
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.cfg)
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.onKey(msg)

	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		// Note: This resets the game - could be improved to preserve state
		if !m.state.GameOver {
			m.game.Reset(m.cfg)
		}
		return m, nil

	case TickMsg:
		return m.onTick()
	}

	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Screenshots are local-only; SSH sessions must not write to the
	// server's home directory.
	if msg.String() == "ctrl+s" && !m.menuExit {
		m.dumpScreen()
		return m, nil
	}

	if m.menuExit && (m.state.GameOver || m.state.Paused) {
		if m.keys.MapKeyToMenuAction(msg) == MenuActionBack {
			m.returning = true
			return m, nil
		}
	}

	action, quit := m.keys.MapKey(msg)
	switch {
	case quit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionRestart:
		// Restart only applies once the game has ended
		if m.state.GameOver {
			return m.restart()
		}
	case action != core.ActionNone:
		m.frame.Set(action)
	}

	return m, nil
}

// restart reseeds and begins a fresh run of the same variant. The tick
// loop keeps running, so no new command is needed.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.cfg.Seed = time.Now().UnixNano()
	m.game.Reset(m.cfg)
	m.state = m.game.State()
	m.frame.Clear()
	m.saved = false
	return m, nil
}

func (m Model) onTick() (tea.Model, tea.Cmd) {
	m.state = m.game.Step(m.frame).State
	m.frame.Clear()

	if m.state.GameOver && !m.saved {
		m.recordScore()
		m.saved = true
	}

	return m, tickCmd(m.cfg.TickRate)
}

// recordScore writes the finished run to the scoreboard. Failures are
// swallowed so a broken database never interrupts play.
func (m Model) recordScore() {
	if m.store == nil || m.state.Score == 0 {
		return
	}
	//nolint:errcheck
	m.store.SaveScore(m.game.ID(), m.player, m.state.Score)
}

// dumpScreen writes the current frame to ~/.blockfall/screenshots.
func (m Model) dumpScreen() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game into the shared screen buffer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Quitting reports whether the player asked to leave entirely.
func (m Model) Quitting() bool { return m.quitting }

// Returning reports whether a session game wants its menu back.
func (m Model) Returning() bool { return m.returning }

// Run plays one game in the local terminal until the player quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, store, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
