// Package web hosts the browser-facing shop service.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/bengkel/internal/platform/timeouts"
	"github.com/louisbranch/bengkel/internal/services/web/app"
	"github.com/louisbranch/bengkel/internal/services/web/gate"
	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/modules"
	"github.com/louisbranch/bengkel/internal/services/web/platform/httpx"
	"github.com/louisbranch/bengkel/internal/services/web/platform/observability"
	"github.com/louisbranch/bengkel/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	Store    storage.Store
	Sessions gate.SessionResolver
	Auth     module.Authenticator
	Policy   requestmeta.Policy
	Location *time.Location
	Now      func() time.Time
	Logger   *log.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler: every module behind the access gate.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("session resolver is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	deps := module.Dependencies{
		Store:    cfg.Store,
		Auth:     cfg.Auth,
		Sessions: cfg.Sessions,
		Policy:   cfg.Policy,
		Location: cfg.Location,
		Now:      cfg.Now,
		Logger:   logger,
	}
	root, err := app.Compose(app.ComposeInput{
		Modules:      modules.Default(),
		Dependencies: deps,
	})
	if err != nil {
		return nil, err
	}
	accessGate, err := gate.New(cfg.Sessions, gate.WithSchemePolicy(cfg.Policy))
	if err != nil {
		return nil, fmt.Errorf("build access gate: %w", err)
	}
	return httpx.Chain(root,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		observability.RequestLogger(logger),
		accessGate.Middleware(),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown web server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web: %w", err)
	}
}

// Close stops the HTTP server immediately.
func (s *Server) Close() error {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}
