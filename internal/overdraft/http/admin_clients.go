package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/service"
	"github.com/arvorebank/overdraft/pkg/httpx"
	"github.com/arvorebank/overdraft/pkg/slogx"
)

// AdminClientsHandler serves the back-office client endpoints. Mutations are
// additionally guarded by the operator's 8-digit operation password, checked
// before the registry is touched.
type AdminClientsHandler struct {
	Registry  *service.RegistryService
	Operators *service.OperatorService
}

type adminSearchRequest struct {
	Document string `json:"document"`
}

type adminClientResponse struct {
	Success bool       `json:"success"`
	Client  clientBody `json:"client"`
}

// HandleSearch serves POST /admin/client/search.
func (h *AdminClientsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req adminSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Document == "" {
		writeAdminError(w, http.StatusBadRequest, "document is required")
		return
	}

	client, err := h.Registry.FindByDocument(ctx, req.Document)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			writeAdminError(w, http.StatusBadRequest, "invalid document")
		case errors.Is(err, service.ErrClientNotFound):
			writeAdminError(w, http.StatusNotFound, "client not found")
		default:
			log.Error("client search failed", "err", err)
			writeAdminError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminClientResponse{
		Success: true,
		Client:  newClientBody(client, false),
	})
}

type adminListResponse struct {
	Success    bool           `json:"success"`
	Clients    []clientBody   `json:"clients"`
	Pagination paginationBody `json:"pagination"`
}

// HandleList serves GET /admin/clients.
func (h *AdminClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", service.DefaultPerPage)

	clients, pagination, err := h.Registry.List(ctx, page, perPage)
	if err != nil {
		log.Error("client listing failed", "err", err)
		writeAdminError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	bodies := make([]clientBody, len(clients))
	for i, c := range clients {
		bodies[i] = newClientBody(c, false)
	}
	httpx.WriteJSON(w, http.StatusOK, adminListResponse{
		Success:    true,
		Clients:    bodies,
		Pagination: newPaginationBody(pagination),
	})
}

type updateLimitRequest struct {
	Document          string   `json:"document"`
	NewLimit          *float64 `json:"new_limit"`
	OperationPassword string   `json:"operation_password"`
}

// HandleUpdateLimit serves POST /admin/client/update-limit.
func (h *AdminClientsHandler) HandleUpdateLimit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req updateLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Document == "" || req.NewLimit == nil || req.OperationPassword == "" {
		writeAdminError(w, http.StatusBadRequest, "document, new_limit and operation_password are required")
		return
	}
	if *req.NewLimit < 0 {
		writeAdminError(w, http.StatusBadRequest, "new_limit must be a positive number")
		return
	}

	operator, ok := httpx.OperatorFromCtx(ctx)
	if !ok {
		writeAdminError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !h.verifyOperationPassword(w, r, operator, req.OperationPassword) {
		return
	}

	client, err := h.Registry.UpdateLimit(ctx, req.Document, domain.CentsFromDecimal(*req.NewLimit), operator)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			writeAdminError(w, http.StatusBadRequest, "invalid document")
		case errors.Is(err, service.ErrClientNotFound):
			writeAdminError(w, http.StatusNotFound, "client not found")
		default:
			log.Error("limit update failed", "err", err)
			writeAdminError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminClientResponse{
		Success: true,
		Client:  newClientBody(client, false),
	})
}

type adminCreateRequest struct {
	Document          string   `json:"document"`
	Name              string   `json:"name"`
	AccountLimit      *float64 `json:"account_limit"`
	OperationPassword string   `json:"operation_password"`
}

// HandleCreate serves POST /admin/client/create.
func (h *AdminClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req adminCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Document == "" || req.Name == "" || req.OperationPassword == "" {
		writeAdminError(w, http.StatusBadRequest, "document, name and operation_password are required")
		return
	}

	var limit domain.Cents
	if req.AccountLimit != nil {
		if *req.AccountLimit < 0 {
			writeAdminError(w, http.StatusBadRequest, "account_limit must be a positive number")
			return
		}
		limit = domain.CentsFromDecimal(*req.AccountLimit)
	}

	operator, ok := httpx.OperatorFromCtx(ctx)
	if !ok {
		writeAdminError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !h.verifyOperationPassword(w, r, operator, req.OperationPassword) {
		return
	}

	client, err := h.Registry.Create(ctx, req.Document, req.Name, limit, operator)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			writeAdminError(w, http.StatusBadRequest, "invalid document format")
		case errors.Is(err, service.ErrEmptyName):
			writeAdminError(w, http.StatusBadRequest, "name is required")
		case errors.Is(err, service.ErrClientExists):
			writeAdminError(w, http.StatusConflict, "client with this document already exists")
		default:
			log.Error("client creation failed", "err", err)
			writeAdminError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminClientResponse{
		Success: true,
		Client:  newClientBody(client, true),
	})
}

// verifyOperationPassword writes the error response itself and reports
// whether the mutation may proceed.
func (h *AdminClientsHandler) verifyOperationPassword(w http.ResponseWriter, r *http.Request, operator, supplied string) bool {
	err := h.Operators.VerifyOperationPassword(r.Context(), operator, supplied)
	switch {
	case err == nil:
		return true
	case errors.Is(err, service.ErrMalformedOperationPassword):
		writeAdminError(w, http.StatusBadRequest, "operation password must be exactly 8 digits")
	case errors.Is(err, service.ErrWrongOperationPassword):
		writeAdminError(w, http.StatusUnauthorized, "incorrect operation password")
	default:
		slogx.FromContext(r.Context()).Error("operation password check failed", "err", err)
		writeAdminError(w, http.StatusInternalServerError, "internal server error")
	}
	return false
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
