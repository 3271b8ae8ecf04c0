package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/internal/overdraft/store/drivers/sqlite"
	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/arvorebank/overdraft/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Valid document numbers used across the service tests.
const (
	testDocShort = "11144477735"
	testDocLong  = "12345678000195"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedTestOperator(t *testing.T, st store.Store, username, password, opPassword string) {
	t.Helper()
	ctx := context.Background()

	passHash, err := cryptox.HashPassword(password)
	require.NoError(t, err)
	opHash, err := cryptox.HashPassword(opPassword)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, st.Operators().CreateOperator(ctx, domain.Operator{
		ID:                    idx.New().String(),
		Username:              username,
		PasswordHash:          passHash,
		OperationPasswordHash: opHash,
		CreatedAt:             now,
		UpdatedAt:             now,
	}))
}

func seedTestApplication(t *testing.T, st store.Store, clientID, secret, name string) {
	t.Helper()
	ctx := context.Background()

	secretHash, err := cryptox.HashPassword(secret)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, st.Applications().CreateApplication(ctx, domain.Application{
		ID:         idx.New().String(),
		ClientID:   clientID,
		SecretHash: secretHash,
		Name:       name,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))
}
