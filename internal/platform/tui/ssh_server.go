package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
	"github.com/vovakirdan/tilematch/internal/storage"
)

// GameFactory builds a fresh game for a campaign.
type GameFactory func(campaign levels.Campaign) (*tilematch.Game, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tilematch/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	TickRate  int
	Theme     string
	Campaigns []levels.Campaign
	NewGame   GameFactory
	Logger    *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tilematch/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		Theme:       "dark",
	}
}

// SSHServer wraps a Wish SSH server serving one game per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.NewGame == nil {
		return nil, errors.New("ssh server: no game factory configured")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tilematch-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil // Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tilematch", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	holder := &gameHolder{}
	go func() {
		// Dispatchers outlive the program if the client just disconnects.
		<-sshSession.Context().Done()
		holder.Close()
	}()

	model := NewSessionModel(SessionOptions{
		Store:     s.store,
		Campaigns: s.config.Campaigns,
		NewGame:   s.config.NewGame,
		Theme:     s.config.Theme,
		Logger:    s.logger.With("user", sshSession.User()),
		holder:    holder,
	}, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// gameHolder tracks the game a session is playing so it can be stopped from
// outside the Bubble Tea program.
type gameHolder struct {
	mu     sync.Mutex
	game   *tilematch.Game
	closed bool
}

// Set replaces the current game, stopping the previous one.
func (h *gameHolder) Set(g *tilematch.Game) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.game != nil {
		h.game.Close()
	}
	h.game = g
	if h.closed && g != nil {
		g.Close()
	}
}

// Close stops the current game, if any.
func (h *gameHolder) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.game != nil {
		h.game.Close()
	}
}

// SessionOptions configure a SessionModel.
type SessionOptions struct {
	Store     *storage.Store
	Campaigns []levels.Campaign
	NewGame   GameFactory
	Theme     string
	Logger    *log.Logger

	holder *gameHolder
}

// SessionModel manages the full flow of a connection:
// menu -> game -> menu, with the scoreboard reachable from the menu.
type SessionModel struct {
	opts       SessionOptions
	config     core.RuntimeConfig
	id         string
	theme      Theme
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.holder == nil {
		opts.holder = &gameHolder{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	theme := ThemeByName(opts.Theme)
	id := uuid.NewString()
	opts.Logger = opts.Logger.With("session", id)

	return SessionModel{
		opts:   opts,
		config: cfg,
		id:     id,
		theme:  theme,
		menu:   NewMenuModel(opts.Campaigns, opts.Store, cfg, theme),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.opts.Campaigns, m.opts.Store, m.config.ScreenW, m.config.ScreenH, m.theme)
		m.scoreboard = &sb
		return m, sb.Init()

	case m.menu.Selected() != nil:
		campaign := m.menu.Selected().Campaign
		game, err := m.opts.NewGame(campaign)
		if err != nil {
			m.opts.Logger.Error("could not start game", "campaign", campaign.ID, "error", err)
			m.menu = NewMenuModel(m.opts.Campaigns, m.opts.Store, m.config, m.theme)
			return m, nil
		}
		m.opts.holder.Set(game)
		m.opts.Logger.Info("game started", "campaign", campaign.ID)

		gm := NewModel(game, m.config, ModelOptions{
			Store:    m.opts.Store,
			Theme:    m.theme.Name,
			Logger:   m.opts.Logger,
			Embedded: true,
		})
		m.gameModel = &gm
		return m, gm.Init()
	}

	// The menu returns tea.Quit when it finishes; only forward other commands.
	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.menu = NewMenuModel(m.opts.Campaigns, m.opts.Store, m.config, m.theme)
		return m, nil
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.gameModel = &gm
	}

	if m.gameModel.IsQuitting() {
		m.opts.holder.Close()
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.theme = m.gameModel.Theme()
		m.gameModel = nil
		m.opts.holder.Set(nil)
		m.menu = NewMenuModel(m.opts.Campaigns, m.opts.Store, m.config, m.theme)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
