package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/display"
)

// SpectatorConfig holds configuration for the SSH spectator server.
type SpectatorConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// FrameRate is how often viewers redraw.
	FrameRate int

	Palette display.Palette
}

// DefaultSpectatorConfig returns a config with sensible defaults.
func DefaultSpectatorConfig() SpectatorConfig {
	return SpectatorConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		FrameRate:   30,
		Palette:     display.DefaultPalette,
	}
}

// Spectator is a display sink that mirrors the panel to SSH viewers.
// Viewers cannot send input.
type Spectator struct {
	config  SpectatorConfig
	server  *ssh.Server
	logger  *log.Logger
	latest  atomic.Pointer[core.Surface]
	viewers atomic.Int32
	serving atomic.Bool
}

// NewSpectator creates the server. Call Start to accept connections.
func NewSpectator(cfg SpectatorConfig, logger *log.Logger) (*Spectator, error) {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Spectator{config: cfg, logger: logger.WithPrefix("spectate")}
	s.latest.Store(core.NewSurface())

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("spectate: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("spectate: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			s.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("spectate: cannot create SSH server: %w", err)
	}
	s.server = server
	return s, nil
}

// Name implements display.Sink.
func (s *Spectator) Name() string { return "spectator" }

// Present implements display.Sink. It publishes a copy of the frame and
// never blocks on viewers.
func (s *Spectator) Present(surface *core.Surface) error {
	if s.latest.Load().Equal(surface) {
		return nil
	}
	frame := core.NewSurface()
	frame.CopyFrom(surface)
	s.latest.Store(frame)
	return nil
}

// Latest returns the most recently presented frame.
func (s *Spectator) Latest() *core.Surface {
	return s.latest.Load()
}

// Viewers returns the number of connected viewers.
func (s *Spectator) Viewers() int {
	return int(s.viewers.Load())
}

// Start accepts connections in the background.
func (s *Spectator) Start() {
	s.serving.Store(true)
	s.logger.Info("starting SSH server", "address", s.config.Address)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()
}

// Close implements display.Sink. It gracefully stops the server.
func (s *Spectator) Close() error {
	if !s.serving.Load() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down...")
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Spectator) Addr() string {
	return s.config.Address
}

// teaHandler creates a viewer program for each SSH session.
func (s *Spectator) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}
	renderer := bubbletea.MakeRenderer(sshSession)
	return newViewer(s, display.NewStyles(renderer, s.config.Palette), renderer), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *Spectator) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		n := s.viewers.Add(1)
		s.logger.Info("viewer joined",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"viewers", n,
		)
		next(sshSession)
		n = s.viewers.Add(-1)
		s.logger.Info("viewer left",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"viewers", n,
		)
	}
}

// viewer redraws the latest frame at the spectator frame rate.
type viewer struct {
	source   *Spectator
	styles   display.Styles
	title    lipgloss.Style
	shown    *core.Surface
	frame    string
	quitting bool
}

func newViewer(source *Spectator, styles display.Styles, r *lipgloss.Renderer) viewer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return viewer{
		source: source,
		styles: styles,
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("241")),
	}
}

func (v viewer) Init() tea.Cmd {
	return tickCmd(v.source.config.FrameRate)
}

func (v viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			v.quitting = true
			return v, tea.Quit
		}
	case TickMsg:
		if latest := v.source.Latest(); latest != v.shown {
			v.shown = latest
			v.frame = display.RenderSurface(latest, v.styles)
		}
		return v, tickCmd(v.source.config.FrameRate)
	}
	return v, nil
}

func (v viewer) View() string {
	if v.quitting {
		return ""
	}
	return v.title.Render("ARCADE - spectating, q to leave") + "\n" + v.frame
}
