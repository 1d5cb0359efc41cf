// Package session issues and resolves signed-in staff sessions.
//
// Sessions are stateless HS256 tokens stored in the session cookie. Each
// lookup re-reads the user so disabling an account ends its sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/louisbranch/bengkel/internal/services/web/gate"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// MinKeyLength is the shortest accepted signing key, in bytes.
const MinKeyLength = 32

const (
	// DefaultTTL is how long an issued session stays valid.
	DefaultTTL = 12 * time.Hour
	// DefaultRenewWindow is how close to expiry a session gets reissued.
	DefaultRenewWindow = time.Hour

	issuer = "bengkel"
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = apperrors.E(apperrors.KindUnauthorized, "username or password is incorrect")

// Config configures a Provider.
type Config struct {
	Key         []byte
	TTL         time.Duration
	RenewWindow time.Duration
	Now         func() time.Time
}

// Provider is the session backend consulted by the access gate.
type Provider struct {
	users       storage.UserStore
	key         []byte
	ttl         time.Duration
	renewWindow time.Duration
	now         func() time.Time
}

var _ gate.SessionResolver = (*Provider)(nil)

// claims is the token payload.
type claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

// New validates cfg and builds a Provider over users.
func New(users storage.UserStore, cfg Config) (*Provider, error) {
	if users == nil {
		return nil, errors.New("user store is required")
	}
	if len(cfg.Key) < MinKeyLength {
		return nil, fmt.Errorf("session key must be at least %d bytes", MinKeyLength)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.RenewWindow < 0 || cfg.RenewWindow >= cfg.TTL {
		return nil, fmt.Errorf("session renew window must be between 0 and the session ttl")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	key := make([]byte, len(cfg.Key))
	copy(key, cfg.Key)
	return &Provider{
		users:       users,
		key:         key,
		ttl:         cfg.TTL,
		renewWindow: cfg.RenewWindow,
		now:         cfg.Now,
	}, nil
}

// Issue signs a new session token for u.
func (p *Provider) Issue(u storage.User) (string, time.Time, error) {
	now := p.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(p.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Name: u.DisplayName,
		Role: u.Role,
	})
	signed, err := token.SignedString(p.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// verify returns the subject and expiry of a well-formed, unexpired token.
func (p *Provider) verify(raw string) (string, time.Time, bool) {
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return p.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", time.Time{}, false
	}
	if parsed.Issuer != issuer || strings.TrimSpace(parsed.Subject) == "" || parsed.ExpiresAt == nil {
		return "", time.Time{}, false
	}
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(p.now().UTC()) {
		return "", time.Time{}, false
	}
	return parsed.Subject, exp, true
}

// ResolveSession reads the session cookie from r. Unusable tokens and unknown
// or disabled users resolve to no session; only store failures return an error.
func (p *Provider) ResolveSession(r *http.Request) (gate.Session, bool, error) {
	raw, ok := sessioncookie.Read(r)
	if !ok {
		return gate.Session{}, false, nil
	}
	userID, expiresAt, ok := p.verify(raw)
	if !ok {
		return gate.Session{}, false, nil
	}

	u, err := p.users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return gate.Session{}, false, nil
		}
		return gate.Session{}, false, fmt.Errorf("load session user: %w", err)
	}
	if u.Disabled {
		return gate.Session{}, false, nil
	}

	sess := sessionFor(u, expiresAt)
	if expiresAt.Sub(p.now().UTC()) <= p.renewWindow {
		token, renewedAt, err := p.Issue(u)
		if err != nil {
			return gate.Session{}, false, err
		}
		sess.RenewedToken = token
		sess.ExpiresAt = renewedAt
	}
	return sess, true, nil
}

// Login checks the credentials and issues a session token.
func (p *Provider) Login(ctx context.Context, username, password string) (string, gate.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", gate.Session{}, ErrInvalidCredentials
	}

	u, err := p.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			burnCompare(password)
			return "", gate.Session{}, ErrInvalidCredentials
		}
		return "", gate.Session{}, apperrors.Wrap(apperrors.KindUnavailable, "sign-in is unavailable", err)
	}
	if !CheckPassword(u.PasswordHash, password) || u.Disabled {
		return "", gate.Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := p.Issue(u)
	if err != nil {
		return "", gate.Session{}, err
	}
	return token, sessionFor(u, expiresAt), nil
}

func sessionFor(u storage.User, expiresAt time.Time) gate.Session {
	return gate.Session{
		UserID:      u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		ExpiresAt:   expiresAt,
	}
}
