package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/metrics"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/pkg/idx"
	"github.com/arvorebank/overdraft/pkg/slogx"
)

// LedgerService keeps the append-only record of limit mutation attempts.
// Entries are written inside the mutation transaction on success and as a
// contained best-effort write on persistence failure.
type LedgerService struct {
	Store   store.Store
	Metrics *metrics.Metrics
}

// Append writes one entry through the given store, which may be a Tx so the
// entry commits or rolls back together with the mutation it records.
func (s *LedgerService) Append(ctx context.Context, st store.Store, e domain.ChangeEntry) error {
	if e.ID == "" {
		e.ID = idx.New().String()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	return st.ChangeLog().AppendChangeEntry(ctx, e)
}

// RecordFailure appends a failed entry outside any transaction. It never
// returns an error: a broken audit write must not mask the original failure,
// so problems are only logged.
func (s *LedgerService) RecordFailure(ctx context.Context, e domain.ChangeEntry) {
	l := slogx.FromContext(ctx)

	// Count the failure up front; the audit write itself may fail too.
	if s.Metrics != nil {
		s.Metrics.FailedMutations.Inc()
	}

	e.Outcome = domain.OutcomeFailed
	if err := s.Append(ctx, s.Store, e); err != nil {
		l.Error("failed to record audit entry for failed mutation",
			slog.Any("error", err),
			slog.String("document", e.ClientDocument),
		)
	}
}

// List returns one page of entries, newest first.
func (s *LedgerService) List(ctx context.Context, page, perPage int) ([]domain.ChangeEntry, domain.Page, error) {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}

	entries, total, err := s.Store.ChangeLog().ListChangeEntries(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return entries, domain.NewPage(page, perPage, total), nil
}
