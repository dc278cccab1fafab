// Package server exposes the evaluation engine and question catalog over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/interview-evaluator/internal/batch"
	"github.com/spigell/interview-evaluator/internal/cache"
	"github.com/spigell/interview-evaluator/internal/evaluation"
	"github.com/spigell/interview-evaluator/internal/questions"
)

const (
	DefaultAddress         = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the listener settings.
type Config struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return c
}

// Deps are the collaborators served by the API.
type Deps struct {
	Engine           *evaluation.Engine
	Catalog          questions.Catalog
	Cache            cache.Cache
	Logger           *zap.Logger
	BatchConcurrency int
}

type Server struct {
	cfg     Config
	engine  *evaluation.Engine
	catalog questions.Catalog
	cache   cache.Cache
	logger  *zap.Logger
	batch   batch.Options
	handler http.Handler
}

func New(cfg Config, deps Deps) *Server {
	s := &Server{
		cfg:     cfg.withDefaults(),
		engine:  deps.Engine,
		catalog: deps.Catalog,
		cache:   deps.Cache,
		logger:  deps.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.engine == nil {
		s.engine = evaluation.New(s.logger)
	}
	if s.catalog == nil {
		s.catalog = questions.Builtin()
	}
	if s.cache == nil {
		s.cache = cache.Nop{}
	}
	s.batch = batch.Options{Concurrency: deps.BatchConcurrency, Logger: s.logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/roles", s.handleRoles)
	mux.HandleFunc("GET /api/questions/{role}", s.handleQuestions)
	mux.HandleFunc("POST /api/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/evaluate", s.handleMethodNotAllowed)
	mux.HandleFunc("POST /api/evaluate/batch", s.handleEvaluateBatch)
	mux.HandleFunc("/api/evaluate/batch", s.handleMethodNotAllowed)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.handler = s.withRequestID(s.withLogging(s.withCORS(mux)))
	return s
}

// Handler returns the API with its middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("server starting", zap.String("address", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", zap.Duration("timeout", s.cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := s.cache.Close(); err != nil {
		s.logger.Warn("closing cache", zap.Error(err))
	}

	s.logger.Info("server stopped")
	return nil
}
