package dashboard

import (
	"net/http"

	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Home+"{$}", h.handleIndex)
	mux.HandleFunc(routepath.Home, h.WriteNotFound)
}
