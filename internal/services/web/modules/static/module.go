// Package static serves embedded assets.
package static

import (
	"io/fs"
	"net/http"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	assets "github.com/louisbranch/bengkel/internal/services/web/static"
)

// Module serves files from an embedded filesystem.
type Module struct {
	files fs.FS
}

// New returns a static module over the embedded web assets.
func New() Module {
	return Module{files: assets.FS}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "static" }

// Mount wires the static file server.
func (m Module) Mount(module.Dependencies) (module.Mount, error) {
	files := m.files
	if files == nil {
		files = assets.FS
	}
	server := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(files)))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		server.ServeHTTP(w, r)
	})
	return module.Mount{Prefix: routepath.StaticPrefix, Handler: handler}, nil
}
