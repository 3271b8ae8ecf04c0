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

// TokenHandler serves POST /auth/token, the client_credentials exchange for
// partner applications.
type TokenHandler struct {
	Credentials *service.CredentialService
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Status      string `json:"status"`
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ClientID = strings.TrimSpace(req.ClientID)
	if req.ClientID == "" || req.ClientSecret == "" {
		writeAPIError(w, http.StatusBadRequest, "client_id and client_secret are required")
		return
	}

	token, ttl, err := h.Credentials.IssueToken(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAppCredentials) {
			writeAPIError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Error("token issuance failed", "err", err)
		writeAPIError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
		Status:      "success",
	})
}
