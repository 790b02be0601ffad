package handler

import (
	"net/http"

	"github.com/scoreline/tracker/internal/auth"
	"github.com/scoreline/tracker/internal/domain"
	"github.com/scoreline/tracker/internal/service"
)

// AuthHandler handles the OAuth sign-in endpoints.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles GET /auth/login: redirects to the OAuth authorize page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.authSvc.LoginURL(), http.StatusFound)
}

// Callback handles GET /auth/callback: exchanges the code and returns a
// session token.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	result, err := h.authSvc.HandleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}

// userIDFromContext returns the authenticated player id, or an UNAUTHORIZED
// error when the middleware did not run.
func userIDFromContext(r *http.Request) (int64, error) {
	id := auth.UserIDFromContext(r.Context())
	if id == 0 {
		return 0, domain.ErrUnauthorized("no auth context")
	}
	return id, nil
}
