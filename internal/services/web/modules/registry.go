package modules

import (
	"github.com/louisbranch/bengkel/internal/services/web/modules/api"
	"github.com/louisbranch/bengkel/internal/services/web/modules/auth"
	"github.com/louisbranch/bengkel/internal/services/web/modules/dashboard"
	"github.com/louisbranch/bengkel/internal/services/web/modules/performance"
	"github.com/louisbranch/bengkel/internal/services/web/modules/records"
	"github.com/louisbranch/bengkel/internal/services/web/modules/static"
	"github.com/louisbranch/bengkel/internal/services/web/modules/transactions"
)

// DefaultPublicModules returns modules reachable without a session: assets,
// the JSON API (which checks sessions per route) and sign-in.
func DefaultPublicModules() []Module {
	return []Module{
		static.New(),
		api.New(),
		auth.NewLogin(),
	}
}

// DefaultProtectedModules returns the staff-facing shop modules.
func DefaultProtectedModules() []Module {
	return []Module{
		dashboard.New(),
		auth.NewLogout(),
		records.NewMechanics(),
		records.NewParts(),
		records.NewServices(),
		records.NewSuppliers(),
		records.NewExpenses(),
		transactions.New(),
		performance.New(),
	}
}

// Default returns every module the web service mounts.
func Default() []Module {
	return append(DefaultPublicModules(), DefaultProtectedModules()...)
}
