package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/bengkel/internal/services/web/webtest"
)

func mountLogin(t *testing.T, auth module.Authenticator) http.Handler {
	t.Helper()
	mount, err := NewLogin().Mount(module.Dependencies{Auth: auth, Now: webtest.Now})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/login/" {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, "/login/")
	}
	return mount.Handler
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestModuleIDs(t *testing.T) {
	t.Parallel()

	if got := NewLogin().ID(); got != "auth.login" {
		t.Fatalf("ID() = %q, want %q", got, "auth.login")
	}
	if got := NewLogout().ID(); got != "auth.logout" {
		t.Fatalf("ID() = %q, want %q", got, "auth.logout")
	}
}

func TestLoginMountRequiresAuthenticator(t *testing.T) {
	t.Parallel()

	if _, err := NewLogin().Mount(module.Dependencies{}); err == nil {
		t.Fatalf("Mount() error = nil, want authenticator error")
	}
}

func TestLoginPageRenders(t *testing.T) {
	t.Parallel()

	h := mountLogin(t, webtest.Auth{Username: "budi", Password: "rahasia123"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	if !strings.Contains(rr.Body.String(), `name="username"`) {
		t.Fatalf("body missing username field")
	}
}

func TestLoginSuccessSetsCookieAndRedirectsHome(t *testing.T) {
	t.Parallel()

	h := mountLogin(t, webtest.Auth{Username: "budi", Password: "rahasia123"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, postForm("/login", url.Values{"username": {" budi "}, "password": {"rahasia123"}}))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want %q", got, "/")
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), sessioncookie.Name+"=token-budi") {
		t.Fatalf("Set-Cookie = %q, want session token", rr.Header().Get("Set-Cookie"))
	}
}

func TestLoginInvalidCredentialsRerendersForm(t *testing.T) {
	t.Parallel()

	h := mountLogin(t, webtest.Auth{Username: "budi", Password: "rahasia123"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, postForm("/login", url.Values{"username": {"budi"}, "password": {"salah"}}))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "kata sandi salah") {
		t.Fatalf("body missing credential error")
	}
	if !strings.Contains(body, `value="budi"`) {
		t.Fatalf("body did not keep username")
	}
	if rr.Header().Get("Set-Cookie") != "" {
		t.Fatalf("Set-Cookie = %q, want none", rr.Header().Get("Set-Cookie"))
	}
}

func TestLoginBackendFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	h := mountLogin(t, webtest.Auth{Err: apperrors.Wrap(apperrors.KindUnavailable, "store down", errors.New("boom"))})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, postForm("/login", url.Values{"username": {"budi"}, "password": {"x"}}))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestLoginUnknownSubpathIsNotFound(t *testing.T) {
	t.Parallel()

	h := mountLogin(t, webtest.Auth{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/login/elsewhere", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestLogoutClearsCookieAndRedirectsToLogin(t *testing.T) {
	t.Parallel()

	mount, err := NewLogout().Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/logout", nil))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/login" {
		t.Fatalf("Location = %q, want %q", got, "/login")
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), "Max-Age=0") {
		t.Fatalf("Set-Cookie = %q, want cleared cookie", rr.Header().Get("Set-Cookie"))
	}
}

func TestLogoutRejectsGet(t *testing.T) {
	t.Parallel()

	mount, err := NewLogout().Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
