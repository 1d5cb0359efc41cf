// Package dashboard serves the month overview at the site root.
package dashboard

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

// Module provides the dashboard route.
type Module struct{}

// New returns a dashboard module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires dashboard route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, errors.New("store is required")
	}
	mux := http.NewServeMux()
	h := newHandlers(newService(deps.Store), deps)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Home, Handler: mux}, nil
}
