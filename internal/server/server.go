// ============================================================================
// calc - Interaktiver Rechner
// ============================================================================
//
// Package:     server
// Description: HTTP server exposing calculator sessions over WebSocket
// Author:      msto63
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/calc/foundation/calc"
	"github.com/msto63/calc/pkg/core/health"
	"github.com/msto63/calc/pkg/core/logging"
)

// EngineFactory creates the engine for a new session
type EngineFactory func() (*calc.Engine, error)

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	MaxSessions    int
	AllowedOrigins []string
	Version        string
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         8765,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		PingInterval: 30 * time.Second,
		MaxSessions:  64,
		Version:      "0.1.0",
	}
}

// Server serves /ws sessions and /healthz
type Server struct {
	httpServer *http.Server
	sessions   *SessionHandler
	health     *health.Registry
	logger     *logging.Logger
	config     Config
}

// New creates a new server. Every WebSocket connection gets its own engine
// from newEngine, so sessions never share variables.
func New(cfg Config, newEngine EngineFactory, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.New("calc-server")
	}

	sessions := NewSessionHandler(newEngine, cfg, logger.With("component", "websocket"))

	healthRegistry := health.NewRegistry("calc", cfg.Version)
	healthRegistry.RegisterFunc("engine", func(ctx context.Context) health.CheckResult {
		return engineCheck(newEngine)
	})
	healthRegistry.Register(health.CapacityCheck("sessions", sessions.Active, cfg.MaxSessions))

	mux := http.NewServeMux()
	mux.Handle("/ws", sessions)
	mux.Handle("/healthz", healthRegistry)

	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
		Handler: loggingMiddleware(logger, mux),
		// The read timeout only guards the handshake; hijacked connections
		// manage their own deadlines.
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		sessions:   sessions,
		health:     healthRegistry,
		logger:     logger,
		config:     cfg,
	}
}

// engineCheck builds a throwaway engine and evaluates a probe line
func engineCheck(newEngine EngineFactory) health.CheckResult {
	result := health.CheckResult{Name: "engine", Status: health.StatusHealthy}

	engine, err := newEngine()
	if err != nil {
		result.Status = health.StatusUnhealthy
		result.Message = err.Error()
		return result
	}
	r, err := engine.Execute("1+1")
	if err != nil || r.Value.String() != "2" {
		result.Status = health.StatusUnhealthy
		result.Message = fmt.Sprintf("probe 1+1 failed: %v", err)
		return result
	}
	result.Message = "probe 1+1 = 2"
	return result
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to http.ResponseController
func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack implements http.Hijacker for the WebSocket upgrade
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting calc server", "address", s.Address())
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()
}

// Stop gracefully stops the server and closes open sessions
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping calc server")
	err := s.httpServer.Shutdown(ctx)
	s.sessions.CloseAll()
	return err
}

// Address returns the server address
func (s *Server) Address() string {
	return s.httpServer.Addr
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// ActiveSessions returns the number of open WebSocket sessions
func (s *Server) ActiveSessions() int {
	return s.sessions.Active()
}
