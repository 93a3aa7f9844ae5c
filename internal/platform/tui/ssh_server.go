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

	"github.com/vovakirdan/evosim/internal/config"
	"github.com/vovakirdan/evosim/internal/core"
	"github.com/vovakirdan/evosim/internal/logging"
	"github.com/vovakirdan/evosim/internal/registry"
	"github.com/vovakirdan/evosim/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.evosim/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Settings provides display and pacing for every session.
	Settings config.Settings

	// Logger receives session events. A default logger is created when nil.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.evosim/evosim.db",
		IdleTimeout: 30 * time.Minute,
		Settings:    config.DefaultSettings(),
	}
}

// SSHServer wraps a Wish SSH server that serves preset runs.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger, _ = logging.New(os.Stderr, "info")
	}

	// Sessions still work without history
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		store = nil
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
		hostKeyPath = filepath.Join(home, ".evosim", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
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
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
	}

	model := NewSessionModel(s.store, s.config.Settings, cfg, sshSession.User(), s.logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
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

type sessionView int

const (
	viewMenu sessionView = iota
	viewRun
	viewHistory
)

// SessionModel manages a remote session: menu -> run -> menu, plus run history.
// Remote users pick presets only; the setup wizard is local.
type SessionModel struct {
	store    *storage.Store
	settings config.Settings
	config   core.RuntimeConfig
	username string
	logger   *log.Logger

	view    sessionView
	menu    MenuModel
	run     *RunModel
	history *HistoryModel

	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, settings config.Settings, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	return SessionModel{
		store:    store,
		settings: settings,
		config:   cfg,
		username: username,
		logger:   logger,
		menu:     NewMenuModel(cfg, false),
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

	switch m.view {
	case viewRun:
		return m.updateRun(msg)
	case viewHistory:
		return m.updateHistory(msg)
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

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		h := NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.history = &h
		m.view = viewHistory
		return m, h.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		setup, err := registry.Create(selected.SetupID)
		if err != nil {
			m.logger.Error("could not create preset", "preset", selected.SetupID, "error", err)
			return m.backToMenu()
		}

		cfg := m.menu.Config()
		cfg.Seed = 0
		run, err := NewRunModel(setup, RunOptions{
			Preset:   setup.ID,
			Settings: m.settings,
			Store:    m.store,
		}, cfg)
		if err != nil {
			m.logger.Error("could not start run", "preset", setup.ID, "error", err)
			return m.backToMenu()
		}

		m.logger.Info("run started", "user", m.username, "preset", setup.ID, "seed", run.Seed())
		m.run = &run
		m.view = viewRun
		return m, m.run.Init()
	}

	return m, cmd
}

// updateRun handles updates while a run is shown.
func (m SessionModel) updateRun(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.run.Update(msg)
	if runModel, ok := newModel.(RunModel); ok {
		m.run = &runModel
	}

	if m.run.IsQuitting() {
		m.logRun()
		m.quitting = true
		return m, tea.Quit
	}

	if m.run.BackToMenu() {
		m.logRun()
		return m.backToMenu()
	}

	return m, cmd
}

// updateHistory handles updates while run history is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = &historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.run = nil
	m.history = nil
	m.menu = NewMenuModel(m.config, false)
	return m, m.menu.Init()
}

func (m SessionModel) logRun() {
	res, ok := m.run.Result()
	if !ok {
		return
	}
	if err := m.run.Err(); err != nil {
		m.logger.Error("run failed",
			"user", m.username,
			"seed", m.run.Seed(),
			"cycles", res.CyclesRun,
			"error", err,
		)
		return
	}
	m.logger.Info("run finished",
		"user", m.username,
		"seed", m.run.Seed(),
		"cycles", res.CyclesRun,
		"reason", res.Reason.String(),
	)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewRun:
		return m.run.View()
	case viewHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}
