package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/louisbranch/bengkel/internal/platform/requestctx"
	"github.com/louisbranch/bengkel/internal/services/web/platform/sessioncookie"
)

type countingResolver struct {
	calls   atomic.Int32
	session Session
	ok      bool
	err     error
}

func (r *countingResolver) ResolveSession(*http.Request) (Session, bool, error) {
	r.calls.Add(1)
	return r.session, r.ok, r.err
}

func signedIn() *countingResolver {
	return &countingResolver{ok: true, session: Session{UserID: "user-1", Username: "budi", Role: "owner"}}
}

func newTestGate(t *testing.T, resolver SessionResolver, opts ...Option) *Gate {
	t.Helper()
	g, err := New(resolver, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func serve(g *Gate, path string, next http.Handler) *httptest.ResponseRecorder {
	if next == nil {
		next = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	}
	rr := httptest.NewRecorder()
	g.Middleware()(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestNewRequiresResolver(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil resolver")
	}
}

func TestMiddlewareScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		path         string
		resolver     *countingResolver
		wantStatus   int
		wantLocation string
		wantCalls    int32
	}{
		{name: "login with session goes home", path: "/login", resolver: signedIn(), wantStatus: http.StatusFound, wantLocation: "/", wantCalls: 1},
		{name: "dashboard without session goes to login", path: "/dashboard", resolver: &countingResolver{}, wantStatus: http.StatusFound, wantLocation: "/login", wantCalls: 1},
		{name: "api without session passes", path: "/api/expenses", resolver: &countingResolver{}, wantStatus: http.StatusTeapot},
		{name: "favicon without session passes", path: "/favicon.ico", resolver: &countingResolver{}, wantStatus: http.StatusTeapot},
		{name: "login without session passes", path: "/login", resolver: &countingResolver{}, wantStatus: http.StatusTeapot, wantCalls: 1},
		{name: "protected with session passes", path: "/parts", resolver: signedIn(), wantStatus: http.StatusTeapot, wantCalls: 1},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := serve(newTestGate(t, tc.resolver), tc.path, nil)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if got := rr.Header().Get("Location"); got != tc.wantLocation {
				t.Fatalf("Location = %q, want %q", got, tc.wantLocation)
			}
			if got := tc.resolver.calls.Load(); got != tc.wantCalls {
				t.Fatalf("resolver calls = %d, want %d", got, tc.wantCalls)
			}
		})
	}
}

func TestMiddlewareBypassNeverResolves(t *testing.T) {
	t.Parallel()

	resolver := &countingResolver{err: errors.New("backend down")}
	g := newTestGate(t, resolver)
	for _, path := range []string{"/api", "/api/health", "/static/app.css", "/_next/static/x", "/favicon.ico", "/login.css"} {
		rr := serve(g, path, nil)
		if rr.Code != http.StatusTeapot {
			t.Fatalf("%s status = %d, want %d", path, rr.Code, http.StatusTeapot)
		}
	}
	if got := resolver.calls.Load(); got != 0 {
		t.Fatalf("resolver calls = %d, want 0", got)
	}
}

func TestMiddlewareFailsClosedOnResolverError(t *testing.T) {
	t.Parallel()

	cause := errors.New("session store unreachable")
	resolver := &countingResolver{err: cause}
	nextCalled := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { nextCalled = true })

	for _, path := range []string{"/dashboard", "/login"} {
		rr := serve(newTestGate(t, resolver), path, next)
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s status = %d, want %d", path, rr.Code, http.StatusServiceUnavailable)
		}
		if loc := rr.Header().Get("Location"); loc != "" {
			t.Fatalf("%s Location = %q, want empty", path, loc)
		}
	}
	if nextCalled {
		t.Fatal("next handler called after resolver failure")
	}
}

func TestMiddlewareErrorWriterReceivesAuthResolutionError(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	var got error
	g := newTestGate(t, &countingResolver{err: cause}, WithErrorWriter(func(w http.ResponseWriter, _ *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusBadGateway)
	}))

	rr := serve(g, "/transactions", nil)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	var authErr *AuthResolutionError
	if !errors.As(got, &authErr) {
		t.Fatalf("error = %v, want *AuthResolutionError", got)
	}
	if authErr.Path != "/transactions" {
		t.Fatalf("Path = %q, want %q", authErr.Path, "/transactions")
	}
	if !errors.Is(got, cause) {
		t.Fatalf("error %v does not wrap cause", got)
	}
}

func TestMiddlewareWritesRenewedToken(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	resolver := signedIn()
	resolver.session.RenewedToken = "fresh-token"
	resolver.session.ExpiresAt = expires

	for _, tc := range []struct {
		path       string
		wantStatus int
	}{
		{path: "/parts", wantStatus: http.StatusTeapot},
		{path: "/login", wantStatus: http.StatusFound},
	} {
		rr := serve(newTestGate(t, resolver), tc.path, nil)
		if rr.Code != tc.wantStatus {
			t.Fatalf("%s status = %d, want %d", tc.path, rr.Code, tc.wantStatus)
		}
		cookies := rr.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("%s cookies = %d, want 1", tc.path, len(cookies))
		}
		if cookies[0].Name != sessioncookie.Name || cookies[0].Value != "fresh-token" {
			t.Fatalf("%s cookie = %s=%s, want %s=fresh-token", tc.path, cookies[0].Name, cookies[0].Value, sessioncookie.Name)
		}
		if !cookies[0].Expires.Equal(expires) {
			t.Fatalf("%s cookie expires = %v, want %v", tc.path, cookies[0].Expires, expires)
		}
	}
}

func TestMiddlewareNoCookieWithoutRenewal(t *testing.T) {
	t.Parallel()

	rr := serve(newTestGate(t, signedIn()), "/parts", nil)
	if got := len(rr.Result().Cookies()); got != 0 {
		t.Fatalf("cookies = %d, want 0", got)
	}
}

func TestMiddlewarePropagatesSession(t *testing.T) {
	t.Parallel()

	var gotSession Session
	var gotOK bool
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession, gotOK = SessionFromContext(r.Context())
		gotUserID = requestctx.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	rr := serve(newTestGate(t, signedIn()), "/mechanics", next)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if !gotOK || gotSession.Username != "budi" {
		t.Fatalf("session = %+v (%v), want budi", gotSession, gotOK)
	}
	if gotUserID != "user-1" {
		t.Fatalf("user id = %q, want %q", gotUserID, "user-1")
	}
}

func TestMiddlewareLoginWithoutSessionHasNoSessionInContext(t *testing.T) {
	t.Parallel()

	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = SessionFromContext(r.Context())
	})
	serve(newTestGate(t, &countingResolver{}), "/login", next)
	if gotOK {
		t.Fatal("expected no session in context")
	}
}

func TestEvaluateAppliesLookupTimeout(t *testing.T) {
	t.Parallel()

	var hadDeadline bool
	resolver := SessionResolverFunc(func(r *http.Request) (Session, bool, error) {
		_, hadDeadline = r.Context().Deadline()
		return Session{}, false, nil
	})
	g := newTestGate(t, resolver, WithLookupTimeout(time.Second))

	decision, err := g.Evaluate(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !hadDeadline {
		t.Fatal("expected lookup deadline on resolver context")
	}
	if decision.Action != Redirect(LoginPath) {
		t.Fatalf("action = %v, want %v", decision.Action, Redirect(LoginPath))
	}
	if decision.Class != PathProtected {
		t.Fatalf("class = %v, want %v", decision.Class, PathProtected)
	}
}

func TestEvaluateSurfacesContextCancellation(t *testing.T) {
	t.Parallel()

	resolver := SessionResolverFunc(func(r *http.Request) (Session, bool, error) {
		<-r.Context().Done()
		return Session{}, false, r.Context().Err()
	})
	g := newTestGate(t, resolver, WithLookupTimeout(time.Millisecond))

	_, err := g.Evaluate(httptest.NewRequest(http.MethodGet, "/expenses", nil))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Evaluate() error = %v, want deadline exceeded", err)
	}
}
