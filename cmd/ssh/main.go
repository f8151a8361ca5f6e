package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/mergebox/internal/config"
	"github.com/tomz197/mergebox/internal/draw"
	"github.com/tomz197/mergebox/internal/highscore"
	zlog "github.com/tomz197/mergebox/internal/logging"
	"github.com/tomz197/mergebox/internal/loop"
	loopconfig "github.com/tomz197/mergebox/internal/loop/config"
	"github.com/tomz197/mergebox/internal/tuning"
)

func main() {
	cfg := config.Load()

	logger, err := zlog.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("ssh server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	tun, err := tuning.LoadFile(cfg.TuningFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := highscore.Open(ctx, highscore.Options{RedisURL: cfg.RedisURL, File: cfg.HighScoreFile})
	if err != nil {
		return err
	}
	defer store.Close()

	workingDir, _ := os.Getwd()
	logger.Info("ssh config",
		zap.String("host", cfg.SSHHost),
		zap.String("port", cfg.SSHPort),
		zap.String("host_key", cfg.SSHHostKeyPath),
		zap.String("working_dir", workingDir),
		zap.Bool("redis", cfg.RedisURL != ""),
		zap.Int("max_sessions", cfg.MaxSessions),
	)

	games := &gameHandler{
		ctx:         ctx,
		tuning:      tun,
		store:       store,
		logger:      logger,
		maxSessions: cfg.MaxSessions,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSHHost, cfg.SSHPort)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSHHostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSHHostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting ssh server", zap.String("addr", s.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server, notifying players")

		// Players see the shutdown notice, then their loops return.
		grace := time.Duration(loopconfig.ShutdownDisplaySeconds*float64(time.Second)) + time.Second
		games.wait(grace)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// gameHandler runs one independent game per SSH session.
type gameHandler struct {
	ctx         context.Context
	tuning      tuning.Tuning
	store       highscore.Store
	logger      *zap.Logger
	maxSessions int

	mu       sync.Mutex
	sessions int
	closing  bool
	active   sync.WaitGroup
}

// admission reasons returned by begin.
var (
	errShuttingDown = errors.New("server is shutting down, please try again later")
	errServerFull   = errors.New("server is full, please try again later")
)

// begin admits a new session. Every successful call must be paired with end.
func (h *gameHandler) begin() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closing {
		return errShuttingDown
	}
	if h.maxSessions > 0 && h.sessions >= h.maxSessions {
		return errServerFull
	}
	h.sessions++
	h.active.Add(1)
	return nil
}

func (h *gameHandler) end() {
	h.mu.Lock()
	h.sessions--
	h.mu.Unlock()
	h.active.Done()
}

// wait stops admitting sessions, then blocks until every session ended
// or timeout elapsed.
func (h *gameHandler) wait(timeout time.Duration) {
	h.mu.Lock()
	h.closing = true
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.active.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		h.logger.Warn("sessions still open after shutdown grace")
	}
}

// middleware handles SSH sessions and runs the game client.
func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		if err := h.begin(); err != nil {
			h.logger.Info("session rejected", zap.String("user", sess.User()), zap.Error(err))
			fmt.Fprintln(sess, err)
			return
		}
		defer h.end()

		log := h.logger.With(
			zap.String("session", uuid.NewString()),
			zap.String("user", sess.User()),
		)
		log.Info("new game session",
			zap.String("terminal", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height),
		)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		tun := h.tuning
		err := loop.Run(h.ctx, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Tuning:       &tun,
			Store:        h.store,
			Logger:       log,
		})
		if err != nil {
			log.Error("game error", zap.Error(err))
		}

		log.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
