package service

import (
	"context"
	"testing"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := &RegistryService{Store: st, Ledger: &LedgerService{Store: st}}

	t.Run("rejects invalid document", func(t *testing.T) {
		_, err := svc.Create(ctx, "123.456.789-00", "Alice", 1000, "admin")
		require.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, testDocShort, "   ", 1000, "admin")
		require.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		_, err := svc.Create(ctx, testDocShort, "Alice", -1, "admin")
		require.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("creates and finds by formatted document", func(t *testing.T) {
		created, err := svc.Create(ctx, "111.444.777-35", "Alice", 300000, "admin")
		require.NoError(t, err)
		require.Equal(t, testDocShort, created.Document)
		require.Equal(t, domain.Cents(300000), created.Limit)

		found, err := svc.FindByDocument(ctx, testDocShort)
		require.NoError(t, err)
		require.Equal(t, created.ID, found.ID)
	})

	t.Run("create writes a success audit entry", func(t *testing.T) {
		entries, _, err := st.ChangeLog().ListChangeEntries(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, domain.OutcomeSuccess, entries[0].Outcome)
		require.Equal(t, domain.Cents(0), entries[0].PreviousLimit)
		require.Equal(t, domain.Cents(300000), entries[0].NewLimit)
	})

	t.Run("duplicate create conflicts and leaves row untouched", func(t *testing.T) {
		_, err := svc.Create(ctx, testDocShort, "Impostor", 1, "admin")
		require.ErrorIs(t, err, ErrClientExists)

		found, err := svc.FindByDocument(ctx, testDocShort)
		require.NoError(t, err)
		require.Equal(t, "Alice", found.Name)
		require.Equal(t, domain.Cents(300000), found.Limit)

		// No extra ledger entry either: the conflict aborted the transaction.
		entries, _, err := st.ChangeLog().ListChangeEntries(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		_, err := svc.FindByDocument(ctx, testDocLong)
		require.ErrorIs(t, err, ErrClientNotFound)
	})
}

func TestRegistryUpdateLimit(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := &RegistryService{Store: st, Ledger: &LedgerService{Store: st}}

	_, err := svc.Create(ctx, testDocShort, "Alice", 300000, "admin")
	require.NoError(t, err)

	t.Run("updates limit and records previous value", func(t *testing.T) {
		updated, err := svc.UpdateLimit(ctx, testDocShort, 500000, "admin")
		require.NoError(t, err)
		require.Equal(t, domain.Cents(500000), updated.Limit)

		entries, _, err := st.ChangeLog().ListChangeEntries(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2) // create + update, newest first
		require.Equal(t, domain.OutcomeSuccess, entries[0].Outcome)
		require.Equal(t, domain.Cents(300000), entries[0].PreviousLimit)
		require.Equal(t, domain.Cents(500000), entries[0].NewLimit)
		require.Equal(t, "admin", entries[0].Actor)

		// The persisted updated_at is the same instant the caller was handed.
		stored, err := st.Clients().GetClientByDocument(ctx, testDocShort)
		require.NoError(t, err)
		require.True(t, stored.UpdatedAt.Equal(updated.UpdatedAt))
		require.True(t, stored.UpdatedAt.Equal(entries[0].OccurredAt))
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := svc.UpdateLimit(ctx, testDocLong, 1000, "admin")
		require.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("negative limit rejected before store access", func(t *testing.T) {
		_, err := svc.UpdateLimit(ctx, testDocShort, -100, "admin")
		require.ErrorIs(t, err, ErrInvalidLimit)

		found, err := svc.FindByDocument(ctx, testDocShort)
		require.NoError(t, err)
		require.Equal(t, domain.Cents(500000), found.Limit)
	})
}

func TestRegistryList(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := &RegistryService{Store: st, Ledger: &LedgerService{Store: st}}

	_, err := svc.Create(ctx, testDocShort, "Beatriz", 1000, "admin")
	require.NoError(t, err)
	_, err = svc.Create(ctx, testDocLong, "Antonio", 2000, "admin")
	require.NoError(t, err)

	t.Run("orders by name and paginates", func(t *testing.T) {
		clients, page, err := svc.List(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Equal(t, "Antonio", clients[0].Name)
		require.Equal(t, 2, page.Pages)
		require.Equal(t, 2, page.Total)
		require.True(t, page.HasNext)
		require.False(t, page.HasPrev)

		clients, page, err = svc.List(ctx, 2, 1)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		require.Equal(t, "Beatriz", clients[0].Name)
		require.False(t, page.HasNext)
		require.True(t, page.HasPrev)
	})

	t.Run("defaults apply for out-of-range arguments", func(t *testing.T) {
		clients, page, err := svc.List(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, clients, 2)
		require.Equal(t, 1, page.Page)
		require.Equal(t, DefaultPerPage, page.PerPage)
	})
}
