package service

import (
	"context"
	"testing"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("writes a failed entry and counts it", func(t *testing.T) {
		st := newTestStore(t)
		m := metrics.New(prometheus.NewRegistry())
		svc := &LedgerService{Store: st, Metrics: m}

		svc.RecordFailure(ctx, domain.ChangeEntry{
			ClientDocument: testDocShort,
			ClientName:     "Alice",
			NewLimit:       1000,
			Actor:          "admin",
		})

		entries, _, err := st.ChangeLog().ListChangeEntries(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, domain.OutcomeFailed, entries[0].Outcome)
		require.Equal(t, float64(1), testutil.ToFloat64(m.FailedMutations))
	})

	t.Run("counts the failure even when the audit write fails", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.Close())

		m := metrics.New(prometheus.NewRegistry())
		svc := &LedgerService{Store: st, Metrics: m}

		svc.RecordFailure(ctx, domain.ChangeEntry{
			ClientDocument: testDocShort,
			ClientName:     "Alice",
			NewLimit:       1000,
			Actor:          "admin",
		})
		require.Equal(t, float64(1), testutil.ToFloat64(m.FailedMutations))
	})
}
