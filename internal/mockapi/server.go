package mockapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Haleralex/storefront/internal/config"
)

// ============================================
// Server
// ============================================

// Server - HTTP сервер с graceful shutdown.
type Server struct {
	config     config.ServerConfig
	httpServer *http.Server
	logger     *slog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer создаёт новый HTTP сервер.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Listen binds the listening socket. Start calls it when needed; calling it
// first lets a caller learn the real address of port 0.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = l
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Start запускает сервер и блокируется до Shutdown.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()

	s.logger.Info("Starting mock API server", slog.String("address", l.Addr().String()))

	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown выполняет graceful shutdown сервера.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down mock API server...")

	shutdownCtx := ctx
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Mock API server shutdown error", slog.String("error", err.Error()))
		return err
	}

	s.logger.Info("Mock API server stopped gracefully")
	return nil
}

// ============================================
// Run with Graceful Shutdown
// ============================================

// Run запускает сервер и останавливает его по SIGINT/SIGTERM.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.RunWithContext(ctx)
}

// RunWithContext запускает сервер с возможностью отмены через контекст.
func (s *Server) RunWithContext(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- s.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		s.logger.Info("Context cancelled, initiating shutdown")
	}

	if err := s.Shutdown(context.Background()); err != nil {
		return err
	}
	return <-errChan
}
