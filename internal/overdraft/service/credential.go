package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/metrics"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/arvorebank/overdraft/pkg/jwtx"
	"github.com/arvorebank/overdraft/pkg/slogx"
)

// AppIdentity is the verified caller of a partner API request.
type AppIdentity struct {
	ClientID string
	AppName  string
}

// CredentialService implements the client_credentials exchange for partner
// applications and verifies the resulting bearer tokens.
type CredentialService struct {
	Signer    jwtx.Signer
	Verifier  jwtx.Verifier
	Store     store.Store
	Issuer    string
	AccessTTL time.Duration
	Metrics   *metrics.Metrics
}

// IssueToken authenticates a partner application and returns a signed access
// token. Unknown clients, revoked clients, and bad secrets are all reported
// as the same error so callers learn nothing from the distinction.
func (s *CredentialService) IssueToken(ctx context.Context, clientID, secret string) (string, time.Duration, error) {
	l := slogx.FromContext(ctx)

	app, err := s.Store.Applications().GetApplicationByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", 0, ErrInvalidAppCredentials
		}
		return "", 0, err
	}

	if !app.Active {
		l.Info("token requested for inactive application", slog.String("client_id", clientID))
		return "", 0, ErrInvalidAppCredentials
	}

	if err := cryptox.VerifyPassword(secret, app.SecretHash); err != nil {
		l.Info("application secret verification failed", slog.String("client_id", clientID))
		return "", 0, ErrInvalidAppCredentials
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(app.ClientID, app.Name, ttl, s.Issuer, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		l.Error("failed to sign access token", slog.Any("error", err))
		return "", 0, err
	}

	if s.Metrics != nil {
		s.Metrics.TokensIssued.Inc()
	}
	return token, ttl, nil
}

// VerifyToken validates a bearer token and re-checks that the application is
// still active, so revocation takes effect before the token expires.
func (s *CredentialService) VerifyToken(ctx context.Context, token string) (AppIdentity, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, jwtx.ErrExpired):
			return AppIdentity{}, ErrTokenExpired
		default:
			return AppIdentity{}, ErrTokenMalformed
		}
	}

	app, err := s.Store.Applications().GetApplicationByClientID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AppIdentity{}, ErrTokenMalformed
		}
		return AppIdentity{}, err
	}
	if !app.Active {
		return AppIdentity{}, ErrApplicationRevoked
	}

	return AppIdentity{ClientID: app.ClientID, AppName: app.Name}, nil
}
