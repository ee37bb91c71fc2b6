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

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/loop"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// sessionLoopKey stores a session's loop in its ssh.Context.
type sessionLoopKey struct{}

// SSHServer serves one independent game per SSH session.
type SSHServer struct {
	config config.Config
	server *ssh.Server
	store  *storage.Store // Nil unless sessions are recorded
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// When cfg.Storage.Record is set, every session is saved as a recording in store.
func NewSSHServer(cfg config.Config, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}
	if cfg.Storage.Record {
		srv.store = store
	}

	// Resolve host key path
	hostKeyPath := cfg.SSH.HostKeyPath
	if hostKeyPath == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		hostKeyPath = filepath.Join(dir, "host_key")
	}
	hostKeyPath, err := storage.ExpandHome(hostKeyPath)
	if err != nil {
		return nil, err
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout()),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a game and its Bubble Tea model for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		wish.Fatalln(sess, "pong needs an interactive terminal, try ssh -t")
		return nil, nil
	}

	opts := []loop.Option{loop.WithLogger(s.logger.With("user", sess.User()))}
	if s.store != nil {
		opts = append(opts, loop.WithRecorder(replay.NewRecorder()))
	}
	lp := loop.New(pong.New(), opts...)
	sess.Context().SetValue(sessionLoopKey{}, lp)

	model := NewModel(lp, s.config,
		WithRenderer(bubbletea.MakeRenderer(sess)),
		WithModelLogger(s.logger),
	)
	resized, _ := model.Update(tea.WindowSizeMsg{Width: pty.Window.Width, Height: pty.Window.Height})

	return resized, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionMiddleware logs SSH sessions and saves their recordings once the
// game has ended.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)

		next(sess)

		lp, _ := sess.Context().Value(sessionLoopKey{}).(*loop.Loop)
		ticks := uint64(0)
		if lp != nil {
			ticks = lp.Game().Tick()
			s.saveRecording(sess, lp)
		}
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"ticks", ticks,
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

func (s *SSHServer) saveRecording(sess ssh.Session, lp *loop.Loop) {
	rec := lp.Recorder()
	if s.store == nil || rec == nil || rec.Ticks() == 0 {
		return
	}
	id, err := s.store.SaveRecording(rec.Finish(lp.Snapshot().Hash(), "ssh", s.config.TickRate))
	if err != nil {
		s.logger.Error("could not save recording", "user", sess.User(), "error", err)
		return
	}
	s.logger.Info("recording saved", "user", sess.User(), "id", id)
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.SSH.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errc:
		return fmt.Errorf("tui: SSH server: %w", err)
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.SSH.Address
}
