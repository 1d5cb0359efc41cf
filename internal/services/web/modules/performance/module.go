// Package performance serves the monthly mechanic ranking page.
package performance

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/bengkel/internal/services/web/reporting"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

// Module provides the ranking route.
type Module struct{}

// New returns a performance module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "performance" }

// Mount wires performance route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, errors.New("store is required")
	}
	h := handlers{Base: modulehandler.NewBase(deps), store: deps.Store}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Performance, h.handleRanking)
	mux.HandleFunc("/", h.WriteNotFound)
	return module.Mount{Prefix: routepath.Performance + "/", Handler: mux}, nil
}

type handlers struct {
	modulehandler.Base
	store storage.ReportStore
}

func (h handlers) handleRanking(w http.ResponseWriter, r *http.Request) {
	month, err := h.RequestMonth(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	ranked, err := reporting.MechanicRanking(r.Context(), h.store, month.From, month.To)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, "Kinerja Mekanik", http.StatusOK, webtemplates.PerformancePage(webtemplates.PerformanceView{
		Filter: month.Filter(routepath.Performance),
		Rows:   reporting.RankRows(ranked, 0),
	}))
}
