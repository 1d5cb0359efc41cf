package gate

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Session is the signed-in identity the gate observes. The gate never creates,
// mutates or ends a session.
type Session struct {
	UserID      string
	Username    string
	DisplayName string
	Role        string
	ExpiresAt   time.Time

	// RenewedToken is set by the resolver when it reissued the session token;
	// the gate forwards it to the browser as the new session cookie.
	RenewedToken string
}

// SessionResolver looks up the caller's session for a request.
//
// ok is false when the request carries no usable session. err is reserved for
// failures to reach the session backend; the gate never treats it as either
// signed-in or signed-out.
type SessionResolver interface {
	ResolveSession(r *http.Request) (session Session, ok bool, err error)
}

// SessionResolverFunc adapts a function to SessionResolver.
type SessionResolverFunc func(*http.Request) (Session, bool, error)

// ResolveSession calls f(r).
func (f SessionResolverFunc) ResolveSession(r *http.Request) (Session, bool, error) {
	return f(r)
}

// AuthResolutionError reports that the session provider could not answer.
type AuthResolutionError struct {
	Path string
	Err  error
}

func (e *AuthResolutionError) Error() string {
	return fmt.Sprintf("resolve session for %s: %v", e.Path, e.Err)
}

func (e *AuthResolutionError) Unwrap() error { return e.Err }

type sessionContextKey struct{}

// WithSession stores the resolved session in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session stored by the gate, if any.
func SessionFromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(sessionContextKey{}).(Session)
	return s, ok
}
