package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/servekit/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger
	signals         []os.Signal
	startHooks      []func(*slog.Logger)
	stopHooks       []func(*slog.Logger)
}

func defaultConfig() *config {
	return &config{
		addr:            ":3000",
		shutdownTimeout: 10 * time.Second,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT},
	}
}

// Server wraps http.Server with connection tracking and two-phase shutdown.
type Server struct {
	cfg   *config
	conns *registry

	mu  sync.Mutex
	srv *http.Server
	ln  net.Listener

	stopOnce sync.Once
	stopErr  error
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Noop()
	}
	return &Server{cfg: cfg, conns: newRegistry()}
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	return s.Listen(ctx, handler, nil)
}

// Listen binds the address, serves handler and blocks until shutdown.
//
// onReady is called once listening begins and again when shutdown completes.
// A signal, ctx cancellation or Shutdown starts a single shutdown sequence:
// the listener is closed and in-flight requests are drained. If that takes
// longer than the shutdown timeout every open connection is closed and
// Listen returns ErrForcedShutdown. Start failures are wrapped with ErrStart.
func (s *Server) Listen(ctx context.Context, handler http.Handler, onReady func()) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	if onReady == nil {
		onReady = func() {}
	}

	srv, ln, err := s.bind(handler)
	if err != nil {
		return err
	}

	cfg := s.cfg
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, cfg.signals...)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	cfg.logger.Info("server listening", logger.Addr(ln.Addr().String()))
	for _, h := range cfg.startHooks {
		h(cfg.logger)
	}
	onReady()

	select {
	case sig := <-stop:
		cfg.logger.Info("received signal, closing server", logger.Signal(sig.String()))
	case <-ctx.Done():
		cfg.logger.Info("context cancelled, closing server")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.stop(context.Background())
			return errors.Join(ErrStart, err)
		}
	}

	err = s.stop(context.Background())
	onReady()
	return err
}

func (s *Server) bind(handler http.Handler) (*http.Server, net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return nil, nil, errors.Join(ErrStart, errors.New("server already running"))
	}

	cfg := s.cfg
	srv := cfg.server
	if srv == nil {
		srv = &http.Server{}
	}

	if srv.Addr == "" {
		srv.Addr = cfg.addr
	}
	if srv.ReadTimeout == 0 && cfg.readTimeout != 0 {
		srv.ReadTimeout = cfg.readTimeout
	}
	if srv.WriteTimeout == 0 && cfg.writeTimeout != 0 {
		srv.WriteTimeout = cfg.writeTimeout
	}
	if srv.IdleTimeout == 0 && cfg.idleTimeout != 0 {
		srv.IdleTimeout = cfg.idleTimeout
	}
	srv.Handler = handler

	prev := srv.ConnState
	srv.ConnState = func(c net.Conn, state http.ConnState) {
		s.conns.track(c, state)
		if prev != nil {
			prev(c, state)
		}
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, nil, errors.Join(ErrStart, err)
	}

	s.srv = srv
	s.ln = ln
	return srv, ln, nil
}

// Addr returns the address the server is listening on, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ActiveConnections returns the number of open client connections.
func (s *Server) ActiveConnections() int {
	return s.conns.len()
}

// Shutdown runs the shutdown sequence and returns its result.
// It is safe for repeated calls; later calls return the first result.
// Cancelling ctx forces the shutdown early.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.stop(ctx)
}

func (s *Server) stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.stopOnce.Do(func() {
		s.stopErr = s.drain(ctx, srv)
		for _, h := range s.cfg.stopHooks {
			h(s.cfg.logger)
		}
	})
	return s.stopErr
}

// drain races a graceful shutdown against the grace timer.
func (s *Server) drain(ctx context.Context, srv *http.Server) error {
	log := s.cfg.logger
	start := time.Now()

	shutdownCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Shutdown(shutdownCtx) }()

	grace := time.NewTimer(s.cfg.shutdownTimeout)
	defer grace.Stop()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrShutdown, err)
		}
		log.Info("server closed", logger.Duration(time.Since(start)))
		return nil
	case <-grace.C:
	case <-ctx.Done():
	}

	closed := s.conns.closeAll()
	_ = srv.Close()
	cancel()
	<-done

	log.Warn("could not close server in time, forcing shutdown",
		slog.Int("connections", closed),
		logger.Duration(time.Since(start)),
	)
	return ErrForcedShutdown
}
