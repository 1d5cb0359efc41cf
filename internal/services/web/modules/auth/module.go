// Package auth serves the sign-in and sign-out routes.
package auth

import (
	"errors"
	"net/http"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
)

// LoginModule serves the login page.
type LoginModule struct{}

// NewLogin returns the login module.
func NewLogin() LoginModule { return LoginModule{} }

// ID returns a stable module identifier.
func (LoginModule) ID() string { return "auth.login" }

// Mount wires login route handlers.
func (LoginModule) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Auth == nil {
		return module.Mount{}, errors.New("authenticator is required")
	}
	h := newHandlers(deps)
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc("/", h.WriteNotFound)
	return module.Mount{Prefix: routepath.Login + "/", Handler: mux}, nil
}

// LogoutModule ends the browser session.
type LogoutModule struct{}

// NewLogout returns the logout module.
func NewLogout() LogoutModule { return LogoutModule{} }

// ID returns a stable module identifier.
func (LogoutModule) ID() string { return "auth.logout" }

// Mount wires logout route handlers.
func (LogoutModule) Mount(deps module.Dependencies) (module.Mount, error) {
	h := newHandlers(deps)
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
	return module.Mount{Prefix: routepath.Logout + "/", Handler: mux}, nil
}
