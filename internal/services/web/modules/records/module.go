// Package records serves list, create, edit and delete pages for the shop's
// record collections: mechanics, parts, services, suppliers and expenses.
package records

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// Module mounts one record collection.
type Module[T any] struct {
	id    string
	build func(module.Dependencies) collection[T]
}

// ID returns a stable module identifier.
func (m Module[T]) ID() string { return m.id }

// Mount wires collection route handlers.
func (m Module[T]) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, errors.New("store is required")
	}
	if m.build == nil {
		return module.Mount{}, errors.New("collection is required")
	}
	c := m.build(deps)
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(c, deps))
	return module.Mount{Prefix: c.path + "/", Handler: mux}, nil
}

// NewMechanics returns the mechanics module.
func NewMechanics() Module[storage.Mechanic] {
	return Module[storage.Mechanic]{id: "records.mechanics", build: mechanics}
}

// NewParts returns the parts module.
func NewParts() Module[storage.Part] {
	return Module[storage.Part]{id: "records.parts", build: parts}
}

// NewServices returns the services module.
func NewServices() Module[storage.Service] {
	return Module[storage.Service]{id: "records.services", build: services}
}

// NewSuppliers returns the suppliers module.
func NewSuppliers() Module[storage.Supplier] {
	return Module[storage.Supplier]{id: "records.suppliers", build: suppliers}
}

// NewExpenses returns the expenses module.
func NewExpenses() Module[storage.Expense] {
	return Module[storage.Expense]{id: "records.expenses", build: expenses}
}
