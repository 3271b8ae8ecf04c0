package service

import (
	"context"
	"testing"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/arvorebank/overdraft/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newCredentialService(t *testing.T, st store.Store) *CredentialService {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519PEM()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	return &CredentialService{
		Signer:    signer,
		Verifier:  jwtx.NewCommonEdDSA(keys, "test-issuer"),
		Store:     st,
		Issuer:    "test-issuer",
		AccessTTL: time.Hour,
	}
}

func TestIssueToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedTestApplication(t, st, "bank_app_001", "secret_key_123", "Banking App")

	svc := newCredentialService(t, st)

	t.Run("valid credentials issue a verifiable token", func(t *testing.T) {
		token, ttl, err := svc.IssueToken(ctx, "bank_app_001", "secret_key_123")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, time.Hour, ttl)

		identity, err := svc.VerifyToken(ctx, token)
		require.NoError(t, err)
		require.Equal(t, "bank_app_001", identity.ClientID)
		require.Equal(t, "Banking App", identity.AppName)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, _, err := svc.IssueToken(ctx, "bank_app_001", "wrong")
		require.ErrorIs(t, err, ErrInvalidAppCredentials)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, _, err := svc.IssueToken(ctx, "nobody", "secret_key_123")
		require.ErrorIs(t, err, ErrInvalidAppCredentials)
	})
}

func TestVerifyToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedTestApplication(t, st, "bank_app_001", "secret_key_123", "Banking App")

	svc := newCredentialService(t, st)

	t.Run("garbage token is malformed", func(t *testing.T) {
		_, err := svc.VerifyToken(ctx, "not.a.jwt")
		require.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("expired token", func(t *testing.T) {
		short := newCredentialService(t, st)
		short.Signer = svc.Signer
		short.Verifier = svc.Verifier
		short.AccessTTL = -time.Minute

		token, _, err := short.IssueToken(ctx, "bank_app_001", "secret_key_123")
		require.NoError(t, err)

		_, err = svc.VerifyToken(ctx, token)
		require.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("revocation beats an unexpired token", func(t *testing.T) {
		token, _, err := svc.IssueToken(ctx, "bank_app_001", "secret_key_123")
		require.NoError(t, err)

		require.NoError(t, st.Applications().SetApplicationActive(ctx, "bank_app_001", false))

		_, err = svc.VerifyToken(ctx, token)
		require.ErrorIs(t, err, ErrApplicationRevoked)

		// And issuing a fresh token is refused outright.
		_, _, err = svc.IssueToken(ctx, "bank_app_001", "secret_key_123")
		require.ErrorIs(t, err, ErrInvalidAppCredentials)
	})
}

func TestBootstrapSeedsOnce(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	boot := &BootstrapService{
		Store: st,
		Operator: SeedOperator{
			Username:          "admin",
			Password:          "admin123",
			OperationPassword: "12345678",
		},
		Applications: []SeedApplication{
			{ClientID: "bank_app_001", Secret: "secret_key_123", Name: "Banking App"},
			{ClientID: "mobile_app_002", Secret: "secret_key_123", Name: "Mobile App"},
		},
	}

	require.NoError(t, boot.Run(ctx))

	ops := &OperatorService{Store: st}
	_, _, err := ops.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)

	app, err := st.Applications().GetApplicationByClientID(ctx, "mobile_app_002")
	require.NoError(t, err)
	require.True(t, app.Active)

	// Second run must not duplicate or overwrite anything.
	require.NoError(t, boot.Run(ctx))

	empty, err := st.Operators().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}
