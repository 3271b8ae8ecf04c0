package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/metrics"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/pkg/document"
	"github.com/arvorebank/overdraft/pkg/idx"
)

// DefaultPerPage is the listing page size when the caller does not ask for one.
const DefaultPerPage = 10

// RegistryService owns the client records and their overdraft limits. All
// mutations run inside a single store transaction together with their audit
// entry, so a reader never observes a changed limit without its log line.
type RegistryService struct {
	Store   store.Store
	Ledger  *LedgerService
	Metrics *metrics.Metrics
}

// FindByDocument looks up a client by its document number. The raw value is
// normalized and checksum-validated before the store is touched.
func (s *RegistryService) FindByDocument(ctx context.Context, raw string) (domain.Client, error) {
	digits, err := s.validDocument(raw)
	if err != nil {
		return domain.Client{}, err
	}

	c, err := s.Store.Clients().GetClientByDocument(ctx, digits)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, err
	}
	return c, nil
}

// List returns one page of clients ordered by name.
func (s *RegistryService) List(ctx context.Context, page, perPage int) ([]domain.Client, domain.Page, error) {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}

	clients, total, err := s.Store.Clients().ListClients(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, domain.Page{}, err
	}
	return clients, domain.NewPage(page, perPage, total), nil
}

// Create registers a new client with an initial limit and appends the
// corresponding success entry in the same transaction.
func (s *RegistryService) Create(ctx context.Context, raw, name string, limit domain.Cents, actor string) (domain.Client, error) {
	digits, err := s.validDocument(raw)
	if err != nil {
		return domain.Client{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Client{}, ErrEmptyName
	}
	if limit < 0 {
		return domain.Client{}, ErrInvalidLimit
	}

	now := time.Now().UTC()
	c := domain.Client{
		ID:        idx.New().String(),
		Document:  digits,
		Name:      name,
		Limit:     limit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().CreateClient(ctx, c); err != nil {
			return err
		}
		return s.Ledger.Append(ctx, tx, domain.ChangeEntry{
			ClientDocument: digits,
			ClientName:     name,
			PreviousLimit:  0,
			NewLimit:       limit,
			Actor:          actor,
			Outcome:        domain.OutcomeSuccess,
			OccurredAt:     now,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Client{}, ErrClientExists
		}
		s.Ledger.RecordFailure(ctx, domain.ChangeEntry{
			ClientDocument: digits,
			ClientName:     name,
			PreviousLimit:  0,
			NewLimit:       limit,
			Actor:          actor,
		})
		return domain.Client{}, err
	}

	if s.Metrics != nil {
		s.Metrics.ClientsCreated.Inc()
	}
	return c, nil
}

// UpdateLimit sets a new limit for an existing client. Read, write, and audit
// entry run in one transaction so concurrent updates serialize cleanly.
func (s *RegistryService) UpdateLimit(ctx context.Context, raw string, newLimit domain.Cents, actor string) (domain.Client, error) {
	digits, err := s.validDocument(raw)
	if err != nil {
		return domain.Client{}, err
	}
	if newLimit < 0 {
		return domain.Client{}, ErrInvalidLimit
	}

	var updated domain.Client
	var previous domain.Cents
	var name string

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Clients().GetClientByDocument(ctx, digits)
		if err != nil {
			return err
		}
		previous = c.Limit
		name = c.Name

		now := time.Now().UTC()
		if err := tx.Clients().UpdateClientLimit(ctx, digits, newLimit, now); err != nil {
			return err
		}

		if err := s.Ledger.Append(ctx, tx, domain.ChangeEntry{
			ClientDocument: digits,
			ClientName:     c.Name,
			PreviousLimit:  previous,
			NewLimit:       newLimit,
			Actor:          actor,
			Outcome:        domain.OutcomeSuccess,
			OccurredAt:     now,
		}); err != nil {
			return err
		}

		c.Limit = newLimit
		c.UpdatedAt = now
		updated = c
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		if name == "" {
			name = "unknown"
		}
		s.Ledger.RecordFailure(ctx, domain.ChangeEntry{
			ClientDocument: digits,
			ClientName:     name,
			PreviousLimit:  previous,
			NewLimit:       newLimit,
			Actor:          actor,
		})
		return domain.Client{}, err
	}

	if s.Metrics != nil {
		s.Metrics.LimitUpdates.Inc()
	}
	return updated, nil
}

func (s *RegistryService) validDocument(raw string) (string, error) {
	digits := document.Normalize(raw)
	if !document.IsValid(digits) {
		if s.Metrics != nil {
			s.Metrics.InvalidDocuments.Inc()
		}
		return "", ErrInvalidDocument
	}
	return digits, nil
}
