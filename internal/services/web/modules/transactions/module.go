// Package transactions serves the point-of-sale form, the sales list and
// printable receipts.
package transactions

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

// Module provides transaction routes.
type Module struct{}

// New returns a transactions module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "transactions" }

// Mount wires transaction route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, errors.New("store is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps.Store), deps))
	return module.Mount{Prefix: routepath.Transactions + "/", Handler: mux}, nil
}
