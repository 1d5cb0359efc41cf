// Package modulehandler provides a composable base for web module handlers.
//
// Every HTML module shares the same request plumbing: the signed-in staff
// member, the shop clock and time zone, month filters, page rendering, flash
// redirects and error pages. Modules embed Base rather than duplicating it.
package modulehandler

import (
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/louisbranch/bengkel/internal/services/web/gate"
	module "github.com/louisbranch/bengkel/internal/services/web/module"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/flash"
	"github.com/louisbranch/bengkel/internal/services/web/platform/format"
	"github.com/louisbranch/bengkel/internal/services/web/platform/httpx"
	"github.com/louisbranch/bengkel/internal/services/web/platform/pagerender"
	"github.com/louisbranch/bengkel/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/bengkel/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

// Base carries the request-scoped helpers shared by module handlers.
type Base struct {
	policy requestmeta.Policy
	now    func() time.Time
	loc    *time.Location
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{policy: deps.Policy, now: deps.Clock(), loc: deps.Zone()}
}

// NewTestBase builds a handler base with a fixed clock in UTC.
func NewTestBase(now time.Time) Base {
	return Base{now: func() time.Time { return now }, loc: time.UTC}
}

// Policy returns the request scheme policy.
func (b Base) Policy() requestmeta.Policy { return b.policy }

// Now returns the current time in the shop's zone.
func (b Base) Now() time.Time {
	now := time.Now
	if b.now != nil {
		now = b.now
	}
	return now().In(b.Location())
}

// Location returns the shop's time zone.
func (b Base) Location() *time.Location {
	if b.loc == nil {
		return time.UTC
	}
	return b.loc
}

// RequestSession returns the staff session the gate attached to r.
func (b Base) RequestSession(r *http.Request) (gate.Session, bool) {
	if r == nil {
		return gate.Session{}, false
	}
	return gate.SessionFromContext(r.Context())
}

// RequestUserID returns the signed-in user id, or "".
func (b Base) RequestUserID(r *http.Request) string {
	sess, ok := b.RequestSession(r)
	if !ok {
		return ""
	}
	return strings.TrimSpace(sess.UserID)
}

// Month is a calendar month selected by a ?month= query value.
type Month struct {
	From time.Time
	To   time.Time
}

// Key returns the "2006-01" form of m.
func (m Month) Key() string { return format.MonthKey(m.From) }

// Filter returns the filter form state for m posting back to action.
func (m Month) Filter(action string) webtemplates.MonthFilter {
	return webtemplates.MonthFilter{Action: action, Key: m.Key(), Label: format.MonthYear(m.From)}
}

// RequestMonth reads ?month=YYYY-MM, defaulting to the current month.
func (b Base) RequestMonth(r *http.Request) (Month, error) {
	value := ""
	if r != nil {
		value = r.URL.Query().Get("month")
	}
	from, to, err := format.ParseMonth(value, b.Now(), b.Location())
	if err != nil {
		return Month{}, apperrors.Wrap(apperrors.KindInvalidInput, "bulan tidak valid", err)
	}
	return Month{From: from, To: to}, nil
}

// WritePage renders a full page inside the app layout.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, body templ.Component) {
	if err := pagerender.WritePage(w, r, b.policy, pagerender.Page{
		Title:      title,
		StatusCode: statusCode,
		Body:       body,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a typed error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteError(w, r, b.policy, err)
}

// WriteNotFound renders a 404 error page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.NotFound(w, r, b.policy)
}

// RedirectWithNotice stores notice for the next page and redirects to location.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flash.Notice) {
	flash.Write(w, r, b.policy, notice)
	httpx.WriteRedirect(w, r, location)
}

// ParseForm parses the request body, mapping failures to invalid input.
func (b Base) ParseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "form tidak valid", err)
	}
	return nil
}
