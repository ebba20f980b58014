package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/gatekeeper/core/logger"
)

// Server wraps http.Server with graceful shutdown. Safe for concurrent use.
type Server struct {
	mu             sync.Mutex
	addr           string
	listener       net.Listener
	server         *http.Server
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
}

// New creates a server for addr with default timeouts.
func New(addr string, opts ...Option) *Server {
	cfg := DefaultConfig()
	cfg.Addr = addr
	return newServer(cfg).apply(opts)
}

func newServer(cfg Config) *Server {
	def := DefaultConfig()
	return &Server{
		addr:           cfg.Addr,
		logger:         logger.Discard(),
		readTimeout:    positive(cfg.ReadTimeout, def.ReadTimeout),
		writeTimeout:   positive(cfg.WriteTimeout, def.WriteTimeout),
		idleTimeout:    positive(cfg.IdleTimeout, def.IdleTimeout),
		shutdown:       positive(cfg.ShutdownTimeout, def.ShutdownTimeout),
		maxHeaderBytes: positive(cfg.MaxHeaderBytes, def.MaxHeaderBytes),
	}
}

func (s *Server) apply(opts []Option) *Server {
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("server"))
	return s
}

// Addr returns the bound address once Run has started listening, else the
// configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Run serves handler until ctx is canceled, then shuts down gracefully.
// A canceled context is a clean exit and returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      s.writeTimeout,
		IdleTimeout:       s.idleTimeout,
		MaxHeaderBytes:    s.maxHeaderBytes,
		TLSConfig:         s.tlsConfig,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.server, s.listener = srv, ln
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.server, s.listener = nil, nil
		s.mu.Unlock()
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting server", slog.String("addr", ln.Addr().String()))
		if srv.TLSConfig != nil {
			errCh <- srv.ServeTLS(ln, "", "")
		} else {
			errCh <- srv.Serve(ln)
		}
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", logger.Duration(s.shutdown))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server shutdown failed", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrShutdown, err)
	}
	<-errCh
	s.logger.Info("server shutdown complete")
	return nil
}
