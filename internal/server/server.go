// Package server exposes the claim-intake HTTP API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/psellars/fnolgate/internal/model"
)

// Server wraps the HTTP listener and router.
type Server struct {
	cfg  model.ServerConfig
	srv  *http.Server
	quit chan os.Signal
}

// New builds the router and server around the decision engine.
func New(cfg model.ServerConfig, intake Intake) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(RequestID())
	router.Use(Recovery())
	router.Use(RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	claims := NewClaimsHandler(intake)
	router.POST("/onprem/v2/claims", claims.Create)

	return &Server{
		cfg: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		quit: make(chan os.Signal, 1),
	}
}

// Run starts the server and blocks until an interrupt, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		slog.Info("server starting", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	signal.Notify(s.quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-s.quit:
	}

	slog.Info("shutting down server")

	timeout := s.cfg.ShutdownTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	slog.Info("server exited gracefully")
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
