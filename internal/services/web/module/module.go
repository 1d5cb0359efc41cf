// Package module defines the feature contract used by web composition.
package module

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/bengkel/internal/services/web/gate"
	"github.com/louisbranch/bengkel/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// Authenticator signs staff in.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (token string, session gate.Session, err error)
}

// Dependencies carries the shared services every module may draw from. Each
// module keeps only the narrow slice it needs.
type Dependencies struct {
	Store    storage.Store
	Auth     Authenticator
	Sessions gate.SessionResolver
	Policy   requestmeta.Policy
	Location *time.Location
	Now      func() time.Time
	Logger   *log.Logger
}

// Clock returns Now with a time.Now fallback.
func (d Dependencies) Clock() func() time.Time {
	if d.Now == nil {
		return time.Now
	}
	return d.Now
}

// Zone returns Location with a UTC fallback.
func (d Dependencies) Zone() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
