package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/metrics"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/arvorebank/overdraft/pkg/idx"
	"github.com/arvorebank/overdraft/pkg/slogx"
)

// DefaultSessionTTL is how long a back-office session stays valid.
const DefaultSessionTTL = 24 * time.Hour

// OperatorService authenticates back-office users and guards the mutation
// flow with the second, operation-scoped password.
type OperatorService struct {
	Store      store.Store
	SessionTTL time.Duration
	Metrics    *metrics.Metrics
}

// Authenticate verifies the login password and mints an opaque session token.
// Only the token fingerprint is persisted.
func (s *OperatorService) Authenticate(ctx context.Context, username, password string) (string, domain.Session, error) {
	l := slogx.FromContext(ctx)

	op, err := s.Store.Operators().GetOperatorByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.Session{}, ErrInvalidCredentials
		}
		return "", domain.Session{}, err
	}

	if err := cryptox.VerifyPassword(password, op.PasswordHash); err != nil {
		l.Info("operator password verification failed", slog.String("username", username))
		return "", domain.Session{}, ErrInvalidCredentials
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Session{}, err
	}

	ttl := s.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		Operator:  op.Username,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return "", domain.Session{}, err
	}

	if s.Metrics != nil {
		s.Metrics.AdminLogins.Inc()
	}
	return token, session, nil
}

// VerifySession resolves an opaque session token. Expired sessions are
// deleted on sight rather than waiting for housekeeping.
func (s *OperatorService) VerifySession(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrInvalidSession
	}

	fp := cryptox.FingerprintToken(token)
	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrInvalidSession
		}
		return domain.Session{}, err
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.Store.Sessions().DeleteSession(ctx, fp)
		return domain.Session{}, ErrInvalidSession
	}
	return session, nil
}

// Logout destroys the session for the given token. Unknown tokens are not an
// error; logout is idempotent.
func (s *OperatorService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().DeleteSession(ctx, cryptox.FingerprintToken(token))
}

// VerifyOperationPassword checks the second factor required for limit
// mutations. Format is checked first so a malformed value reads as a bad
// request rather than a failed authorization.
func (s *OperatorService) VerifyOperationPassword(ctx context.Context, username, supplied string) error {
	if !isOperationPassword(supplied) {
		return ErrMalformedOperationPassword
	}

	op, err := s.Store.Operators().GetOperatorByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrWrongOperationPassword
		}
		return err
	}

	if err := cryptox.VerifyPassword(supplied, op.OperationPasswordHash); err != nil {
		slogx.FromContext(ctx).Info("operation password verification failed", slog.String("username", username))
		return ErrWrongOperationPassword
	}
	return nil
}

// isOperationPassword reports whether s is exactly eight ASCII digits.
func isOperationPassword(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
