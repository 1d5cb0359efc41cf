// Package weberror renders shared error responses for web modules.
package weberror

import (
	"log"
	"net/http"

	"github.com/louisbranch/bengkel/internal/platform/requestctx"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/pagerender"
	"github.com/louisbranch/bengkel/internal/services/web/platform/requestmeta"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

// WriteError renders err as an app error page with its typed status. Server
// failures are logged and shown without internal detail.
func WriteError(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy, err error) {
	if w == nil || err == nil {
		return
	}
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError && r != nil {
		log.Printf("web error method=%s path=%s request_id=%s err=%v", r.Method, r.URL.Path, requestctx.RequestIDFromContext(r.Context()), err)
	}
	WriteStatus(w, r, policy, status, apperrors.PublicMessage(err))
}

// WriteStatus renders an app error page for status with message.
func WriteStatus(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy, status int, message string) {
	if w == nil {
		return
	}
	if message == "" {
		message = http.StatusText(status)
	}
	page := pagerender.Page{
		Title:      http.StatusText(status),
		StatusCode: status,
		Body:       webtemplates.ErrorPage(webtemplates.ErrorView{Status: status, Message: message}),
	}
	if renderErr := pagerender.WritePage(w, r, policy, page); renderErr != nil {
		http.Error(w, message, status)
	}
}

// NotFound renders the shared not-found page.
func NotFound(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy) {
	WriteStatus(w, r, policy, http.StatusNotFound, "Halaman tidak ditemukan.")
}
