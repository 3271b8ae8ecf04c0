package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/metrics"
	"github.com/arvorebank/overdraft/internal/overdraft/service"
	"github.com/arvorebank/overdraft/pkg/httpx"
	"github.com/arvorebank/overdraft/pkg/slogx"
)

// OverdraftHandler serves the partner API: limit checks and client creation
// under a verified application identity.
type OverdraftHandler struct {
	Registry *service.RegistryService
	Metrics  *metrics.Metrics
}

type checkRequest struct {
	Document string `json:"document"`
}

type checkResponse struct {
	AccountLimit float64 `json:"account_limit"`
	UpdatedDate  string  `json:"updated_date"`
	Status       string  `json:"status"`
}

// HandleCheck serves POST /overdraft/check.
func (h *OverdraftHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Document == "" {
		writeAPIError(w, http.StatusBadRequest, "document is required")
		return
	}

	client, err := h.Registry.FindByDocument(ctx, req.Document)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			writeAPIError(w, http.StatusBadRequest, "invalid document format")
		case errors.Is(err, service.ErrClientNotFound):
			writeAPIError(w, http.StatusNotFound, "client not found")
		default:
			log.Error("limit check failed", "err", err)
			writeAPIError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	if h.Metrics != nil {
		h.Metrics.ChecksPerformed.Inc()
	}
	httpx.WriteJSON(w, http.StatusOK, checkResponse{
		AccountLimit: client.Limit.Decimal(),
		UpdatedDate:  client.UpdatedAt.UTC().Format(time.RFC3339),
		Status:       "success",
	})
}

type apiCreateRequest struct {
	Document     string   `json:"document"`
	Name         string   `json:"name"`
	AccountLimit *float64 `json:"account_limit"`
}

type apiCreateResponse struct {
	Status string     `json:"status"`
	Client clientBody `json:"client"`
}

// HandleCreate serves POST /overdraft/client/create. The partner application
// is the audited actor.
func (h *OverdraftHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apiCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Document == "" || req.Name == "" {
		writeAPIError(w, http.StatusBadRequest, "document and name are required")
		return
	}

	var limit domain.Cents
	if req.AccountLimit != nil {
		if *req.AccountLimit < 0 {
			writeAPIError(w, http.StatusBadRequest, "account_limit must be a positive number")
			return
		}
		limit = domain.CentsFromDecimal(*req.AccountLimit)
	}

	actor, _, ok := httpx.AppIdentityFromCtx(ctx)
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "access token required")
		return
	}

	client, err := h.Registry.Create(ctx, req.Document, req.Name, limit, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			writeAPIError(w, http.StatusBadRequest, "invalid document format")
		case errors.Is(err, service.ErrEmptyName):
			writeAPIError(w, http.StatusBadRequest, "name is required")
		case errors.Is(err, service.ErrClientExists):
			writeAPIError(w, http.StatusConflict, "client with this document already exists")
		default:
			log.Error("client creation failed", "err", err)
			writeAPIError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, apiCreateResponse{
		Status: "success",
		Client: newClientBody(client, true),
	})
}
