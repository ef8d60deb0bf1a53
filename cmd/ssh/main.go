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

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/valentine-dash/internal/audio"
	"github.com/tomz197/valentine-dash/internal/config"
	"github.com/tomz197/valentine-dash/internal/draw"
	"github.com/tomz197/valentine-dash/internal/level"
	"github.com/tomz197/valentine-dash/internal/loop"
	"github.com/tomz197/valentine-dash/internal/loop/client"
	"github.com/tomz197/valentine-dash/internal/loop/server"
	"github.com/tomz197/valentine-dash/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	// The remote player cannot share a browser link, so they get this instead.
	sshShareHint = "Tip: tell a friend to ssh in and try it."
)

// Shared by all SSH sessions
var (
	hub    *server.Hub
	levels *level.Source
	best   *store.File
	logger *log.Logger
)

func main() {
	settings := config.Load()
	logger = config.NewLogger(os.Stderr, settings.LogLevel, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	table, err := level.Load(settings.LevelsFile)
	if err != nil {
		logger.Fatal("failed to load levels", "err", err)
	}
	levels = level.NewSource(table)
	if settings.WatchLevels && settings.LevelsFile != "" {
		w, err := level.Watch(settings.LevelsFile, levels, logger.WithPrefix("levels"))
		if err != nil {
			logger.Warn("level hot reload disabled", "err", err)
		} else {
			defer w.Close()
		}
	}

	best, err = store.Open(settings.BestFile)
	if err != nil {
		logger.Fatal("failed to open best-time store", "err", err)
	}

	// Start the shared session hub
	ctx, cancelHub := context.WithCancel(context.Background())
	hub = server.NewHub(logger.WithPrefix("hub"))
	go hub.Run(ctx)
	logger.Info("session hub started")

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger.WithPrefix("conn"), log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	hub.Shutdown(15 * time.Second)
	cancelHub()
	logger.Info("session hub stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		user := sess.User()
		logger.Info("new game session", "user", user, "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// The remote player's speakers are out of reach; cues are no-ops.
		sound := audio.NewService(audio.NoBackend, false, nil)
		defer sound.Close()

		reader := bufio.NewReader(sess)
		clientOpts := client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     user,
			Levels:       levels,
			Sound:        sound,
			Best:         bestFor(user),
			ShareHint:    sshShareHint,
			Logger:       logger,
		}

		// Create a new client registered with the shared hub
		c := client.NewClient(hub, reader, sess, clientOpts)
		if err := c.Run(); err != nil {
			logger.Error("game error", "user", user, "err", err)
		}

		logger.Info("session ended", "user", user)
		next(sess)
	}
}

// bestFor returns the best-time slot of an SSH user.
func bestFor(user string) loop.BestTimeStore {
	return best.Slot("vd_best:" + user)
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
