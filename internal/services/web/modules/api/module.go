// Package api serves the JSON endpoints. The access gate lets every /api path
// through, so each protected handler resolves the session itself.
package api

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

// Module provides JSON API routes.
type Module struct{}

// New returns an API module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "api" }

// Mount wires API route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, errors.New("store is required")
	}
	if deps.Sessions == nil {
		return module.Mount{}, errors.New("session resolver is required")
	}
	h := handlers{
		Base:     modulehandler.NewBase(deps),
		store:    deps.Store,
		sessions: deps.Sessions,
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.APIPrefix, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.APIHealth, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIExpenses, h.requireSession(h.handleExpenses))
	mux.HandleFunc(http.MethodGet+" "+routepath.APIMechanicPerformancePat, h.requireSession(h.handleMechanicPerformance))
	mux.HandleFunc("/", h.handleNotFound)
}
