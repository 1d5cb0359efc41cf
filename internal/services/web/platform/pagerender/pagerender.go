// Package pagerender centralizes full-page rendering for web modules.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/louisbranch/bengkel/internal/services/web/gate"
	flashnotice "github.com/louisbranch/bengkel/internal/services/web/platform/flash"
	"github.com/louisbranch/bengkel/internal/services/web/platform/httpx"
	"github.com/louisbranch/bengkel/internal/services/web/platform/requestmeta"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

// Page describes one full-page response.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the shared layout. The signed-in viewer comes
// from the session the gate stored on the request.
func WritePage(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}

	ctx := httpx.RequestContext(r)
	layout := webtemplates.PageContext{
		Title:  page.Title,
		Viewer: viewerFromContext(ctx),
		Notice: readNotice(w, r, policy),
	}
	if r != nil && r.URL != nil {
		layout.CurrentPath = r.URL.Path
	}

	var buf bytes.Buffer
	if err := webtemplates.Layout(layout).Render(templ.WithChildren(ctx, body), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func viewerFromContext(ctx context.Context) *webtemplates.Viewer {
	sess, ok := gate.SessionFromContext(ctx)
	if !ok {
		return nil
	}
	name := sess.DisplayName
	if name == "" {
		name = sess.Username
	}
	return &webtemplates.Viewer{DisplayName: name, Role: sess.Role}
}

func readNotice(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy) *webtemplates.Notice {
	notice, ok := flashnotice.ReadAndClear(w, r, policy)
	if !ok {
		return nil
	}
	return &webtemplates.Notice{Kind: string(notice.Kind), Message: notice.Message}
}
