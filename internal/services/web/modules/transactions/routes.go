package transactions

import (
	"net/http"

	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Transactions, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.Transactions, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.TransactionsNew, h.handleNew)
	mux.HandleFunc(http.MethodGet+" "+routepath.Transactions+"/{id}/receipt", h.handleReceipt)
	mux.HandleFunc("/", h.WriteNotFound)
}
