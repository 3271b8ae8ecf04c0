package http

import (
	"net/http"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/service"
	"github.com/arvorebank/overdraft/pkg/httpx"
	"github.com/arvorebank/overdraft/pkg/slogx"
)

// AdminLogsHandler serves the audit trail, newest first.
type AdminLogsHandler struct {
	Ledger *service.LedgerService
}

type logBody struct {
	ID              string  `json:"id"`
	ClientDocument  string  `json:"client_document"`
	ClientName      string  `json:"client_name"`
	PreviousLimit   float64 `json:"previous_limit"`
	NewLimit        float64 `json:"new_limit"`
	ChangedBy       string  `json:"changed_by"`
	ChangeDate      string  `json:"change_date"`
	OperationStatus string  `json:"operation_status"`
}

type logsResponse struct {
	Success    bool           `json:"success"`
	Logs       []logBody      `json:"logs"`
	Pagination paginationBody `json:"pagination"`
}

// ServeHTTP serves GET /admin/logs.
func (h *AdminLogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "limit", service.DefaultPerPage)

	entries, pagination, err := h.Ledger.List(ctx, page, perPage)
	if err != nil {
		log.Error("log listing failed", "err", err)
		writeAdminError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	logs := make([]logBody, len(entries))
	for i, e := range entries {
		logs[i] = logBody{
			ID:              e.ID,
			ClientDocument:  e.ClientDocument,
			ClientName:      e.ClientName,
			PreviousLimit:   e.PreviousLimit.Decimal(),
			NewLimit:        e.NewLimit.Decimal(),
			ChangedBy:       e.Actor,
			ChangeDate:      e.OccurredAt.UTC().Format(time.RFC3339),
			OperationStatus: e.Outcome,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, logsResponse{
		Success:    true,
		Logs:       logs,
		Pagination: newPaginationBody(pagination),
	})
}
