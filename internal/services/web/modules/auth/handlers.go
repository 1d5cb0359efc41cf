package auth

import (
	"net/http"
	"strings"

	module "github.com/louisbranch/bengkel/internal/services/web/module"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/httpx"
	"github.com/louisbranch/bengkel/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/bengkel/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/bengkel/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/bengkel/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	auth module.Authenticator
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), auth: deps.Auth}
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.WritePage(w, r, "Masuk", http.StatusOK, webtemplates.LoginPage(webtemplates.LoginView{}))
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := h.ParseForm(r); err != nil {
		h.WriteError(w, r, err)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	token, sess, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindUnauthorized {
			h.WriteError(w, r, err)
			return
		}
		h.WritePage(w, r, "Masuk", http.StatusUnauthorized, webtemplates.LoginPage(webtemplates.LoginView{
			Username: username,
			Error:    "Nama pengguna atau kata sandi salah.",
		}))
		return
	}

	sessioncookie.Write(w, r, h.Policy(), token, sess.ExpiresAt)
	httpx.WriteRedirect(w, r, routepath.Home)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessioncookie.Clear(w, r, h.Policy())
	httpx.WriteRedirect(w, r, routepath.Login)
}
