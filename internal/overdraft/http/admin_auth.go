package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/arvorebank/overdraft/internal/overdraft/service"
	"github.com/arvorebank/overdraft/pkg/httpx"
	"github.com/arvorebank/overdraft/pkg/slogx"
)

// AdminAuthHandler serves back-office login and logout. Sessions ride in an
// HttpOnly cookie; the opaque token never appears in a response body.
type AdminAuthHandler struct {
	Operators *service.OperatorService

	// SecureCookies marks the session cookie Secure. Enabled outside dev.
	SecureCookies bool
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	User    loginUser `json:"user"`
}

type loginUser struct {
	Username string `json:"username"`
}

// HandleLogin serves POST /admin/login.
func (h *AdminAuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeAdminError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, session, err := h.Operators.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeAdminError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Error("admin login failed", "err", err)
		writeAdminError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    loginUser{Username: session.Operator},
	})
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleLogout serves POST /admin/logout.
func (h *AdminAuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.Operators.Logout(ctx, cookie.Value); err != nil {
			log.Error("admin logout failed", "err", err)
			writeAdminError(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, logoutResponse{Success: true, Message: "logged out"})
}
