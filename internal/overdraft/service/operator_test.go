package service

import (
	"context"
	"testing"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestOperatorAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedTestOperator(t, st, "admin", "admin123", "12345678")

	svc := &OperatorService{Store: st}

	t.Run("valid credentials mint a session", func(t *testing.T) {
		token, session, err := svc.Authenticate(ctx, "admin", "admin123")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, "admin", session.Operator)
		require.WithinDuration(t, time.Now().Add(DefaultSessionTTL), session.ExpiresAt, time.Minute)

		verified, err := svc.VerifySession(ctx, token)
		require.NoError(t, err)
		require.Equal(t, session.ID, verified.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "admin", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Authenticate(ctx, "ghost", "admin123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestOperatorSessions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedTestOperator(t, st, "admin", "admin123", "12345678")

	svc := &OperatorService{Store: st}

	t.Run("logout invalidates the session", func(t *testing.T) {
		token, _, err := svc.Authenticate(ctx, "admin", "admin123")
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, token))

		_, err = svc.VerifySession(ctx, token)
		require.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("logout is idempotent", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, "never-issued"))
		require.NoError(t, svc.Logout(ctx, ""))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifySession(ctx, "not-a-session")
		require.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("expired session rejected and purged", func(t *testing.T) {
		short := &OperatorService{Store: st, SessionTTL: -time.Minute}
		token, session, err := short.Authenticate(ctx, "admin", "admin123")
		require.NoError(t, err)
		require.True(t, session.Expired(time.Now().UTC()))

		_, err = svc.VerifySession(ctx, token)
		require.ErrorIs(t, err, ErrInvalidSession)

		_, err = st.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestVerifyOperationPassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedTestOperator(t, st, "admin", "admin123", "12345678")

	svc := &OperatorService{Store: st}

	t.Run("correct password", func(t *testing.T) {
		require.NoError(t, svc.VerifyOperationPassword(ctx, "admin", "12345678"))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := svc.VerifyOperationPassword(ctx, "admin", "87654321")
		require.ErrorIs(t, err, ErrWrongOperationPassword)
	})

	t.Run("malformed values fail before lookup", func(t *testing.T) {
		for _, supplied := range []string{"", "1234567", "123456789", "1234567a", "12 45678"} {
			err := svc.VerifyOperationPassword(ctx, "admin", supplied)
			require.ErrorIs(t, err, ErrMalformedOperationPassword, "supplied=%q", supplied)
		}
	})

	t.Run("unknown operator reads as wrong password", func(t *testing.T) {
		err := svc.VerifyOperationPassword(ctx, "ghost", "12345678")
		require.ErrorIs(t, err, ErrWrongOperationPassword)
	})
}
