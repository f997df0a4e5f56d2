package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.blockfall/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.blockfall/scores.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the menu and games to SSH clients via wish. Each
// session gets its own model; scores are recorded under the SSH user.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer wires storage, logging and the wish server together.
// An unavailable scores database downgrades to scoreless play with a
// warning rather than failing startup.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall-ssh",
	})

	keyPath, err := hostKeyFile(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("scores database unavailable", "error", err)
		store = nil
	}

	s := &SSHServer{config: cfg, store: store, logger: logger}

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			s.withSessionLog,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return s, nil
}

// hostKeyFile resolves the host key location and creates its directory
// so wish can generate the key on first start.
func hostKeyFile(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".blockfall", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler builds the Bubble Tea model served to one SSH client.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("rejecting session without a PTY", "user", sess.User())
		return nil, nil
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height
	cfg.Seed = time.Now().UnixNano()

	return NewSessionModel(s.store, cfg, sess.User()), []tea.ProgramOption{tea.WithAltScreen()}
}

// withSessionLog logs session open and close with the connection uptime.
func (s *SSHServer) withSessionLog(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		started := time.Now()
		s.logger.Info("session open", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session closed",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"uptime", time.Since(started).Round(time.Second),
		)
	}
}

// ListenAndServe runs the server until SIGINT/SIGTERM, then shuts down.
func (s *SSHServer) ListenAndServe() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "address", s.config.Address)
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	case <-stop:
		s.logger.Info("shutting down")
		return s.Shutdown()
	}
}

// Shutdown stops accepting sessions and closes the score store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionPhase int

const (
	phaseMenu sessionPhase = iota
	phaseGame
	phaseBoard
)

// SessionModel drives one SSH client through the menu, games and the
// scoreboard. The child models signal quit; the session intercepts
// those signals to switch phases instead of ending the program.
type SessionModel struct {
	store  *storage.Store
	cfg    core.RuntimeConfig
	player string

	menu  MenuModel
	game  Model
	board ScoreboardModel
	phase sessionPhase
	done  bool
}

// NewSessionModel starts a session at the variant menu.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, player string) SessionModel {
	return SessionModel{
		store:  store,
		cfg:    cfg,
		player: player,
		menu:   NewSessionMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to whichever phase is active.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.ScreenW = ws.Width
		m.cfg.ScreenH = ws.Height
	}

	switch m.phase {
	case phaseGame:
		return m.updateGame(msg)
	case phaseBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.done = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		m.board = NewScoreboardModel(m.store, m.cfg.ScreenW, m.cfg.ScreenH)
		m.menu = NewSessionMenuModel(m.store, m.cfg)
		m.phase = phaseBoard
		return m, m.board.Init()
	}

	sel := m.menu.Selected()
	if sel == nil {
		return m, cmd
	}

	game, err := registry.Create(sel.GameID)
	if err != nil {
		// The menu lists only registered variants
		return m, nil
	}

	m.cfg = m.menu.Config()
	m.cfg.Seed = time.Now().UnixNano()
	m.game = NewSessionGameModel(game, m.store, m.cfg, m.player)
	m.phase = phaseGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = gm
	}

	switch {
	case m.game.Returning():
		m.menu = NewSessionMenuModel(m.store, m.cfg)
		m.phase = phaseMenu
		return m, m.menu.Init()
	case m.game.Quitting():
		m.done = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if bm, ok := next.(ScoreboardModel); ok {
		m.board = bm
	}

	switch {
	case m.board.IsGoingBack():
		m.menu = NewSessionMenuModel(m.store, m.cfg)
		m.phase = phaseMenu
		return m, m.menu.Init()
	case m.board.IsQuitting():
		m.done = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the active phase.
func (m SessionModel) View() string {
	if m.done {
		return ""
	}
	switch m.phase {
	case phaseGame:
		return m.game.View()
	case phaseBoard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}
