package records

import "net/http"

func registerRoutes[T any](mux *http.ServeMux, h handlers[T]) {
	if mux == nil {
		return
	}
	path := h.c.path
	mux.HandleFunc(http.MethodGet+" "+path, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+path, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+path+"/{id}", h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+path+"/{id}", h.handleUpdate)
	mux.HandleFunc(http.MethodPost+" "+path+"/{id}/delete", h.handleDelete)
	mux.HandleFunc("/", h.WriteNotFound)
}
