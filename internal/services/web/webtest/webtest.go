// Package webtest holds helpers shared by web module tests.
package webtest

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/bengkel/internal/services/web/gate"
	"github.com/louisbranch/bengkel/internal/services/web/session"
	"github.com/louisbranch/bengkel/internal/services/web/storage/sqlite"
)

// FixedNow is the clock used by module tests: 10 March 2026 09:00 UTC.
var FixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

// Now returns FixedNow.
func Now() time.Time { return FixedNow }

// OpenStore opens a migrated SQLite store in a temp dir, closed on cleanup.
func OpenStore(t testing.TB) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "bengkel.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Staff is the session used for signed-in requests.
var Staff = gate.Session{UserID: "user-1", Username: "budi", DisplayName: "Budi", Role: "owner"}

// SignedIn returns r as the gate would pass it on for Staff.
func SignedIn(r *http.Request) *http.Request {
	return r.WithContext(gate.WithSession(r.Context(), Staff))
}

// Resolver resolves every request to Staff unless Absent or Err is set.
type Resolver struct {
	Absent bool
	Err    error
}

// ResolveSession implements gate.SessionResolver.
func (r Resolver) ResolveSession(*http.Request) (gate.Session, bool, error) {
	if r.Err != nil {
		return gate.Session{}, false, r.Err
	}
	if r.Absent {
		return gate.Session{}, false, nil
	}
	return Staff, true, nil
}

// Auth accepts exactly one username and password pair.
type Auth struct {
	Username string
	Password string
	Err      error
}

// Login implements module.Authenticator.
func (a Auth) Login(_ context.Context, username, password string) (string, gate.Session, error) {
	if a.Err != nil {
		return "", gate.Session{}, a.Err
	}
	if username != a.Username || password != a.Password {
		return "", gate.Session{}, session.ErrInvalidCredentials
	}
	return "token-" + username, Staff, nil
}
