package http

import (
	"net/http"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/pkg/httpx"
)

// Partner API responses carry a status field; back-office responses carry a
// success flag. Both shapes are fixed, integrators depend on them.

type apiErrorBody struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

func writeAPIError(w http.ResponseWriter, status int, msg string) {
	httpx.WriteJSON(w, status, apiErrorBody{Error: msg, Status: "error"})
}

type adminErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeAdminError(w http.ResponseWriter, status int, msg string) {
	httpx.WriteJSON(w, status, adminErrorBody{Success: false, Error: msg})
}

type clientBody struct {
	Document     string  `json:"document"`
	Name         string  `json:"name"`
	AccountLimit float64 `json:"account_limit"`
	CreatedDate  string  `json:"created_date,omitempty"`
	UpdatedDate  string  `json:"updated_date"`
}

func newClientBody(c domain.Client, withCreated bool) clientBody {
	b := clientBody{
		Document:     c.Document,
		Name:         c.Name,
		AccountLimit: c.Limit.Decimal(),
		UpdatedDate:  c.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if withCreated {
		b.CreatedDate = c.CreatedAt.UTC().Format(time.RFC3339)
	}
	return b
}

type paginationBody struct {
	Page    int  `json:"page"`
	Pages   int  `json:"pages"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

func newPaginationBody(p domain.Page) paginationBody {
	return paginationBody{
		Page:    p.Page,
		Pages:   p.Pages,
		PerPage: p.PerPage,
		Total:   p.Total,
		HasNext: p.HasNext,
		HasPrev: p.HasPrev,
	}
}
