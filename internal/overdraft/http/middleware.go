package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/arvorebank/overdraft/internal/overdraft/service"
	"github.com/arvorebank/overdraft/pkg/httpx"
)

// SessionCookieName is the back-office session cookie.
const SessionCookieName = "admin_session"

// requireBearer verifies the partner access token and stores the application
// identity in the request context. Revocation is checked on every request,
// so a deactivated application is cut off before its tokens expire.
func requireBearer(credentials *service.CredentialService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeAPIError(w, http.StatusUnauthorized, "access token required")
				return
			}

			identity, err := credentials.VerifyToken(r.Context(), strings.TrimSpace(token))
			if err != nil {
				switch {
				case errors.Is(err, service.ErrTokenExpired):
					writeAPIError(w, http.StatusUnauthorized, "token expired")
				case errors.Is(err, service.ErrApplicationRevoked):
					writeAPIError(w, http.StatusUnauthorized, "application deactivated")
				case errors.Is(err, service.ErrTokenMalformed):
					writeAPIError(w, http.StatusUnauthorized, "invalid token")
				default:
					writeAPIError(w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			ctx := httpx.WithAppIdentity(r.Context(), identity.ClientID, identity.AppName)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireSession verifies the back-office session cookie and stores the
// operator username in the request context.
func requireSession(operators *service.OperatorService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				writeAdminError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			session, err := operators.VerifySession(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, service.ErrInvalidSession) {
					writeAdminError(w, http.StatusUnauthorized, "invalid or expired session")
					return
				}
				writeAdminError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := httpx.WithOperator(r.Context(), session.Operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
